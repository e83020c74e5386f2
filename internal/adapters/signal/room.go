package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/pkozlov/huddle/internal/core"
	"github.com/pkozlov/huddle/internal/domain"
)

func (ctl *ChatWSController) handleJoin(
	sid core.ConnID,
	sess core.MemberSession,
	data []byte,
) {
	type joinPayload struct {
		Room     string `json:"room"`
		UserName string `json:"userName"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad join payload, dropped")
		return
	}
	room := domain.RoomName(p.Room)
	if err := domain.ValidateRoomName(room); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("invalid room on join, dropped")
		return
	}
	if err := domain.ValidateUserName(p.UserName); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("invalid name on join, dropped")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).
		Str("room", p.Room).Str("user", p.UserName).Msg("join")
	ctl.Coord.Join(sess, room, p.UserName)
}

func (ctl *ChatWSController) handleLeave(
	sid core.ConnID,
	data []byte,
) {
	type leavePayload struct {
		Room string `json:"room"`
	}
	var p leavePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad leave payload, dropped")
		return
	}
	if p.Room == "" {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("leave without room, dropped")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.Room).Msg("leave")
	ctl.Coord.Leave(sid, domain.RoomName(p.Room))
}

func (ctl *ChatWSController) handleMessage(
	sid core.ConnID,
	data []byte,
) {
	type messagePayload struct {
		Room    string `json:"room"`
		Sender  string `json:"sender"`
		Message string `json:"message"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad message payload, dropped")
		return
	}
	if p.Room == "" || p.Sender == "" {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("message missing room or sender, dropped")
		return
	}
	if err := domain.ValidateMessage(p.Message); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("invalid message body, dropped")
		return
	}
	if !ctl.limiter.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("message rate limit hit, dropped")
		return
	}

	ctl.Coord.Message(sid, domain.RoomName(p.Room), p.Sender, p.Message)
}

func (ctl *ChatWSController) handleTyping(
	sid core.ConnID,
	data []byte,
) {
	type typingPayload struct {
		Room     string `json:"room"`
		UserName string `json:"userName"`
		IsTyping bool   `json:"isTyping"`
	}
	var p typingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad typing payload, dropped")
		return
	}
	if p.Room == "" || p.UserName == "" {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("typing missing room or name, dropped")
		return
	}

	ctl.Coord.SetTyping(sid, domain.RoomName(p.Room), p.UserName, p.IsTyping)
}
