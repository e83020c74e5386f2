package domain

// Message is a delivered chat message. Timestamp is stamped by the server
// at processing time so ordering stays authoritative.
type Message struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
