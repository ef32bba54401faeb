package domain

// ChatMessage is a single broadcast chat message, tagged with the sender's
// username at the moment it was sent. Messages are transient: no buffering,
// no replay, no persistence.
type ChatMessage struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}
