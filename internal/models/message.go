package models

import "time"

// Message is a direct message. Read flips only when the receiver opens the thread.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// Between reports whether the message was exchanged by a and b
func (m *Message) Between(a, b string) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

// Conversation summarises the messages a user exchanged with one peer
type Conversation struct {
	User        UserCompact `json:"user"`
	LastMessage Message     `json:"last_message"`
	UnreadCount int         `json:"unread_count"`
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Text       string `json:"text" validate:"required,min=1,max=2000"`
}
