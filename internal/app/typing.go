package app

import (
	"time"

	"github.com/pkozlov/huddle/internal/domain"
)

type typingEntry struct {
	timer *time.Timer
}

// expireFunc is invoked when a typing timer matures without being
// cancelled. It receives the fired timer so the tracker can tell a stale
// fire from the live entry.
type expireFunc func(room domain.RoomName, userName string, fired *time.Timer)

// typingTracker maps rooms to the users currently flagged as typing, one
// pending auto-expire timer per pair. It exclusively owns the timer
// handles. Like the roster, it holds no lock of its own: the Coordinator
// serializes every call, and expire callbacks re-enter through the
// Coordinator's mutex before touching the tracker.
type typingTracker struct {
	rooms map[domain.RoomName]map[string]*typingEntry
}

func newTypingTracker() *typingTracker {
	return &typingTracker{rooms: make(map[domain.RoomName]map[string]*typingEntry)}
}

// ensure lazily creates the room's typing set so it appears together with
// the roster's membership set.
func (t *typingTracker) ensure(room domain.RoomName) {
	if _, ok := t.rooms[room]; !ok {
		t.rooms[room] = make(map[string]*typingEntry)
	}
}

// set marks the pair as typing and (re)schedules its auto-expire timer.
// Any previously scheduled timer for the pair is stopped first, so at most
// one live timer exists per pair.
func (t *typingTracker) set(room domain.RoomName, userName string, ttl time.Duration, expire expireFunc) {
	t.ensure(room)
	users := t.rooms[room]
	if e, ok := users[userName]; ok {
		e.timer.Stop()
	}
	var tm *time.Timer
	tm = time.AfterFunc(ttl, func() { expire(room, userName, tm) })
	users[userName] = &typingEntry{timer: tm}
}

// clear removes the pair's entry and cancels its pending timer. Reports
// whether an entry existed.
func (t *typingTracker) clear(room domain.RoomName, userName string) bool {
	users, ok := t.rooms[room]
	if !ok {
		return false
	}
	e, ok := users[userName]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(users, userName)
	return true
}

// expired resolves a fired timer against the live state. It reports true
// and removes the entry only when the fired timer is still the pair's
// current one; a fire that lost the race to an explicit clear or to a
// reschedule is a no-op.
func (t *typingTracker) expired(room domain.RoomName, userName string, fired *time.Timer) bool {
	users, ok := t.rooms[room]
	if !ok {
		return false
	}
	e, ok := users[userName]
	if !ok || e.timer != fired {
		return false
	}
	delete(users, userName)
	return true
}

// userNames returns the users currently typing in the room.
func (t *typingTracker) userNames(room domain.RoomName) []string {
	users := t.rooms[room]
	out := make([]string, 0, len(users))
	for name := range users {
		out = append(out, name)
	}
	return out
}

func (t *typingTracker) count(room domain.RoomName) int {
	return len(t.rooms[room])
}

// dropIfEmpty reclaims the room's typing set once nobody is typing.
func (t *typingTracker) dropIfEmpty(room domain.RoomName) {
	if users, ok := t.rooms[room]; ok && len(users) == 0 {
		delete(t.rooms, room)
	}
}
