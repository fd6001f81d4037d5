package messages

import "time"

// Roles a message can be attributed to.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn in a chat.
type Message struct {
	// ID is unique within the chat.
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
	// Parts carries multi-part content such as attachments.
	Parts []Part `json:"parts,omitempty"`
	// CreatedAt orders messages within a chat.
	CreatedAt time.Time `json:"createdAt"`
}

// Part is one piece of a multi-part message.
type Part struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// chatMessages is the stored document: the full ordered message list of one
// chat, kept under the chat's id rather than as independently keyed rows.
type chatMessages struct {
	ID       string     `json:"id"`
	Messages []*Message `json:"messages"`
}
