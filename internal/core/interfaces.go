package core

import "github.com/pkozlov/huddle/internal/domain"

// Frame is one encoded outbound event, ready for a single WS text message.
type Frame []byte

// ConnID identifies one transport connection. Issued on accept, never reused.
type ConnID string

// SignalConnection abstracts the messaging transport endpoint of one client.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberSession binds a client's identity to its transport endpoint.
// This is what the coordinator stores and fans out to.
type MemberSession interface {
	ID() ConnID
	Signal() SignalConnection
}

// RoomInfo is a read-only room snapshot for introspection APIs.
type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"member_count"`
	TypingCount int             `json:"typing_count"`
}
