package models

import "time"

// Role distinguishes the two sides of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn in a conversation. Messages are append-only: once a
// message enters a transcript it is never edited.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Assistant-only attachments.
	Products    []Product `json:"products,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}
