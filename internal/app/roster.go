package app

import (
	"github.com/pkozlov/huddle/internal/core"
	"github.com/pkozlov/huddle/internal/domain"
)

type memberEntry struct {
	member  *domain.Member
	session core.MemberSession
}

// removedMembership reports one room a connection was evicted from.
type removedMembership struct {
	room   domain.RoomName
	member *domain.Member
}

// roster maps rooms to their connected members. It is a plain data
// structure: the Coordinator serializes every access under its mutex,
// so the roster itself holds no lock.
type roster struct {
	rooms map[domain.RoomName]map[core.ConnID]*memberEntry
}

func newRoster() *roster {
	return &roster{rooms: make(map[domain.RoomName]map[core.ConnID]*memberEntry)}
}

// join adds or overwrites the connection's member record for the room and
// returns the room's full member list. Joining twice replaces the display
// name rather than duplicating the entry.
func (r *roster) join(room domain.RoomName, sess core.MemberSession, userName string) []domain.Member {
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[core.ConnID]*memberEntry)
		r.rooms[room] = members
	}
	sid := sess.ID()
	members[sid] = &memberEntry{
		member:  domain.NewMember(string(sid), userName, room),
		session: sess,
	}
	return r.members(room)
}

// leave removes the connection's member record from the room, reporting
// the removed member and whether it existed at all.
func (r *roster) leave(room domain.RoomName, sid core.ConnID) (*domain.Member, bool) {
	members, ok := r.rooms[room]
	if !ok {
		return nil, false
	}
	e, ok := members[sid]
	if !ok {
		return nil, false
	}
	delete(members, sid)
	return e.member, true
}

// removeEverywhere scans all rooms and evicts any membership held by the
// connection. Safe to call for a connection with zero memberships.
func (r *roster) removeEverywhere(sid core.ConnID) []removedMembership {
	var out []removedMembership
	for room, members := range r.rooms {
		if e, ok := members[sid]; ok {
			delete(members, sid)
			out = append(out, removedMembership{room: room, member: e.member})
		}
	}
	return out
}

// exists reports whether the room has a backing set at all. A room exists
// from the first join until garbage collection reclaims it.
func (r *roster) exists(room domain.RoomName) bool {
	_, ok := r.rooms[room]
	return ok
}

func (r *roster) has(room domain.RoomName, sid core.ConnID) bool {
	members, ok := r.rooms[room]
	if !ok {
		return false
	}
	_, ok = members[sid]
	return ok
}

// members returns the room's member records. Empty slice for an unknown room.
func (r *roster) members(room domain.RoomName) []domain.Member {
	members := r.rooms[room]
	out := make([]domain.Member, 0, len(members))
	for _, e := range members {
		out = append(out, *e.member)
	}
	return out
}

// sessions returns the fan-out targets for the room.
func (r *roster) sessions(room domain.RoomName) []core.MemberSession {
	members := r.rooms[room]
	out := make([]core.MemberSession, 0, len(members))
	for _, e := range members {
		out = append(out, e.session)
	}
	return out
}

// findByName returns the connection currently holding the display name in
// the room, if any.
func (r *roster) findByName(room domain.RoomName, userName string) (core.ConnID, bool) {
	for sid, e := range r.rooms[room] {
		if e.member.UserName == userName {
			return sid, true
		}
	}
	return "", false
}

func (r *roster) count(room domain.RoomName) int {
	return len(r.rooms[room])
}

func (r *roster) roomNames() []domain.RoomName {
	out := make([]domain.RoomName, 0, len(r.rooms))
	for room := range r.rooms {
		out = append(out, room)
	}
	return out
}

// dropIfEmpty reclaims the room's backing set once the last member is gone.
func (r *roster) dropIfEmpty(room domain.RoomName) {
	if members, ok := r.rooms[room]; ok && len(members) == 0 {
		delete(r.rooms, room)
	}
}
