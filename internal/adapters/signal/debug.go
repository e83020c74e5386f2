package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/pkozlov/huddle/internal/core"
	"github.com/pkozlov/huddle/internal/domain"
)

// handleDebugRoom answers an introspection query. The response goes to the
// asking connection only, member of the room or not.
func (ctl *ChatWSController) handleDebugRoom(
	sess core.MemberSession,
	data []byte,
) {
	type debugPayload struct {
		Room string `json:"room"`
	}
	var p debugPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad debug payload, dropped")
		return
	}
	if p.Room == "" {
		return
	}

	log.Debug().Str("module", "signal").Str("sid", string(sess.ID())).Str("room", p.Room).Msg("debug-room")
	ctl.Coord.DebugRoom(sess, domain.RoomName(p.Room))
}
