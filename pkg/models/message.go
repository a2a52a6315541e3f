package models

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single entry in a conversation transcript. Messages are
// immutable once appended; the history only ever removes them from the
// front during trimming.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is the wire form of a message: role and content only,
// exactly what the chat completion API accepts.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
