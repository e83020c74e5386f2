package domain

// Member is a connection's presence record within one room.
// ID is the transport connection identifier, not a stable user identity.
type Member struct {
	ID       string   `json:"id"`
	UserName string   `json:"userName"`
	Room     RoomName `json:"room"`
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
func NewMember(id string, userName string, room RoomName) *Member {
	return &Member{ID: id, UserName: userName, Room: room}
}
