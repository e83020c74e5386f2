package core

// Wire event names. Inbound and outbound events share one envelope:
// {"event": <name>, "data": <payload>}.
const (
	// client -> server
	EvJoinRoom  = "join-room"
	EvLeaveRoom = "leave-room"
	EvMessage   = "message"
	EvTyping    = "user-typing"
	EvDebugRoom = "debug-room"

	// server -> client
	EvUserJoined    = "user-joined"
	EvUserLeft      = "user-left"
	EvUsersUpdated  = "users-updated"
	EvDebugResponse = "debug-response"
	// EvMessage and EvTyping are re-used on the way out.
)
