package bus

// InboundMessage is one chat message delivered by a channel adapter.
//
// Adapters only forward plain user text messages; service-level events
// such as joins, edits, and bot echoes never reach the relay handler.
type InboundMessage struct {
	Channel  string            `json:"channel"`
	SenderID string            `json:"sender_id"`
	ChatID   string            `json:"chat_id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Notification is one formatted story summary to post back into the
// conversation the triggering message came from. It maps onto a Slack
// attachment; other transports render it as plain text.
type Notification struct {
	ChatID    string `json:"chat_id"`
	Fallback  string `json:"fallback"`
	Color     string `json:"color"`
	Pretext   string `json:"pretext"`
	Title     string `json:"title"`
	TitleLink string `json:"title_link"`
	Body      string `json:"body"`
}
