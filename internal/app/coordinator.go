package app

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pkozlov/huddle/internal/core"
	"github.com/pkozlov/huddle/internal/domain"
)

// DefaultTypingTTL is the debounce window after which an unrefreshed
// typing signal auto-expires to "not typing".
const DefaultTypingTTL = 3 * time.Second

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type userEvent struct {
	UserName  string `json:"userName"`
	Timestamp string `json:"timestamp"`
}

type typingEvent struct {
	UserName string `json:"userName"`
	IsTyping bool   `json:"isTyping"`
}

type usersUpdated struct {
	Users []domain.Member `json:"users"`
}

type debugResponse struct {
	Room   domain.RoomName `json:"room"`
	Users  []domain.Member `json:"users"`
	Typing []string        `json:"typing"`
}

// Coordinator owns the room roster and the typing tracker and is the only
// place either is mutated. One mutex serializes every inbound event and
// every fired typing timer, so compound read-then-write sequences never
// interleave.
type Coordinator struct {
	mu        sync.Mutex
	rooms     *roster
	typing    *typingTracker
	typingTTL time.Duration
}

func NewCoordinator(typingTTL time.Duration) *Coordinator {
	if typingTTL <= 0 {
		typingTTL = DefaultTypingTTL
	}
	return &Coordinator{
		rooms:     newRoster(),
		typing:    newTypingTracker(),
		typingTTL: typingTTL,
	}
}

// Join adds the session to the room, overwriting any earlier membership of
// the same connection. The rest of the room hears user-joined; everyone,
// the joiner included, gets the refreshed member list.
func (c *Coordinator) Join(sess core.MemberSession, room domain.RoomName, userName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	members := c.rooms.join(room, sess, userName)
	c.typing.ensure(room)
	log.Info().Str("module", "app.coordinator").Str("sid", string(sess.ID())).
		Str("room", string(room)).Str("user", userName).Msg("joined room")

	c.fanout(room, sess.ID(), core.EvUserJoined, userEvent{UserName: userName, Timestamp: c.now()})
	c.fanout(room, "", core.EvUsersUpdated, usersUpdated{Users: members})
}

// Leave handles an explicit leave of one room. Unknown room or non-member
// is a no-op. The remaining occupants hear user-left and get the refreshed
// member list; the leaver's typing entry is cleared without its own
// notification, the departure subsumes it.
func (c *Coordinator) Leave(sid core.ConnID, room domain.RoomName) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed, ok := c.rooms.leave(room, sid)
	if !ok {
		log.Debug().Str("module", "app.coordinator").Str("sid", string(sid)).
			Str("room", string(room)).Msg("leave for room without membership, dropped")
		return
	}
	c.typing.clear(room, removed.UserName)
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).
		Str("room", string(room)).Str("user", removed.UserName).Msg("left room")

	c.fanout(room, "", core.EvUserLeft, userEvent{UserName: removed.UserName, Timestamp: c.now()})
	c.fanout(room, "", core.EvUsersUpdated, usersUpdated{Users: c.rooms.members(room)})
	c.collect(room)
}

// Message stamps and relays a chat message to the rest of the room. A
// message for a room the sender never joined is dropped. Delivery clears
// the sender's typing state: a delivered message supersedes "still
// typing", so the room additionally hears isTyping=false if it was set.
func (c *Coordinator) Message(sid core.ConnID, room domain.RoomName, sender, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rooms.has(room, sid) {
		log.Debug().Str("module", "app.coordinator").Str("sid", string(sid)).
			Str("room", string(room)).Msg("message for room without membership, dropped")
		return
	}
	msg := domain.Message{Sender: sender, Message: text, Timestamp: c.now()}
	c.fanout(room, sid, core.EvMessage, msg)

	if c.typing.clear(room, sender) {
		c.fanout(room, sid, core.EvTyping, typingEvent{UserName: sender, IsTyping: false})
		c.collect(room)
	}
}

// SetTyping applies a typing signal and always re-broadcasts the resulting
// state to the rest of the room, whether or not it changed. isTyping=true
// (re)arms the pair's auto-expire timer; the previous timer, if any, is
// stopped first so at most one is ever live.
func (c *Coordinator) SetTyping(sid core.ConnID, room domain.RoomName, userName string, isTyping bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rooms.exists(room) {
		log.Debug().Str("module", "app.coordinator").Str("sid", string(sid)).
			Str("room", string(room)).Msg("typing for unknown room, dropped")
		return
	}
	if isTyping {
		c.typing.set(room, userName, c.typingTTL, c.expireTyping)
	} else {
		c.typing.clear(room, userName)
	}
	c.fanout(room, sid, core.EvTyping, typingEvent{UserName: userName, IsTyping: isTyping})
	c.collect(room)
}

// Disconnect drains every remaining membership of an abruptly terminated
// connection. Each affected room observes exactly what an explicit leave
// would have produced. Safe to call for a connection in zero rooms.
func (c *Coordinator) Disconnect(sid core.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rm := range c.rooms.removeEverywhere(sid) {
		c.typing.clear(rm.room, rm.member.UserName)
		log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).
			Str("room", string(rm.room)).Str("user", rm.member.UserName).Msg("removed on disconnect")

		c.fanout(rm.room, "", core.EvUserLeft, userEvent{UserName: rm.member.UserName, Timestamp: c.now()})
		c.fanout(rm.room, "", core.EvUsersUpdated, usersUpdated{Users: c.rooms.members(rm.room)})
		c.collect(rm.room)
	}
}

// DebugRoom answers an introspection query to the asking connection only.
func (c *Coordinator) DebugRoom(sess core.MemberSession, room domain.RoomName) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sendTo(sess, core.EvDebugResponse, debugResponse{
		Room:   room,
		Users:  c.rooms.members(room),
		Typing: c.typing.userNames(room),
	})
}

// Rooms returns a read-only snapshot for the REST API.
func (c *Coordinator) Rooms() []core.RoomInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := c.rooms.roomNames()
	out := make([]core.RoomInfo, 0, len(names))
	for _, room := range names {
		out = append(out, core.RoomInfo{
			Name:        room,
			MemberCount: c.rooms.count(room),
			TypingCount: c.typing.count(room),
		})
	}
	return out
}

// expireTyping runs when a typing timer matures. It re-enters through the
// coordinator mutex and acts only if the fired timer is still the pair's
// live one; a fire that raced an explicit clear or a reschedule does
// nothing.
func (c *Coordinator) expireTyping(room domain.RoomName, userName string, fired *time.Timer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.typing.expired(room, userName, fired) {
		return
	}
	log.Debug().Str("module", "app.coordinator").Str("room", string(room)).
		Str("user", userName).Msg("typing expired")

	// Exclude the typing user's own connection, same audience as an
	// explicit stop signal. A blank ConnID matches nobody.
	except, _ := c.rooms.findByName(room, userName)
	c.fanout(room, except, core.EvTyping, typingEvent{UserName: userName, IsTyping: false})
	c.collect(room)
}

// collect reclaims a room's backing sets once both are empty, so they stay
// lazily-created-together and dropped-together.
func (c *Coordinator) collect(room domain.RoomName) {
	if c.rooms.count(room) == 0 && c.typing.count(room) == 0 {
		c.rooms.dropIfEmpty(room)
		c.typing.dropIfEmpty(room)
	}
}

// fanout encodes the event once and pushes it to every room member except
// the given connection. A blank except delivers to the whole room.
func (c *Coordinator) fanout(room domain.RoomName, except core.ConnID, event string, v any) {
	frame, err := encode(event, v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Str("event", event).Msg("encode event")
		return
	}
	for _, sess := range c.rooms.sessions(room) {
		if sess.ID() == except {
			continue
		}
		if err := sess.Signal().TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "app.coordinator").Str("sid", string(sess.ID())).
				Str("event", event).Msg("dropped outbound event")
		}
	}
}

func (c *Coordinator) sendTo(sess core.MemberSession, event string, v any) {
	frame, err := encode(event, v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Str("event", event).Msg("encode event")
		return
	}
	if err := sess.Signal().TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "app.coordinator").Str("sid", string(sess.ID())).
			Str("event", event).Msg("dropped outbound event")
	}
}

func (c *Coordinator) now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func encode(event string, v any) (core.Frame, error) {
	b, err := json.Marshal(envelope{Event: event, Data: v})
	if err != nil {
		return nil, err
	}
	return core.Frame(b), nil
}
