package core

// memberSession implements MemberSession by pairing id + transport.
type memberSession struct {
	id   ConnID
	conn SignalConnection
}

func NewMemberSession(id ConnID, conn SignalConnection) MemberSession {
	return &memberSession{id: id, conn: conn}
}

func (m *memberSession) ID() ConnID               { return m.id }
func (m *memberSession) Signal() SignalConnection { return m.conn }
