package domain

import "time"

type Message struct {
	ID           string    `db:"id" json:"messageId"`
	SenderID     string    `db:"sender_id" json:"sender"`
	SenderRole   string    `db:"sender_role" json:"senderRole"`
	ReceiverID   string    `db:"receiver_id" json:"receiver"`
	ReceiverRole string    `db:"receiver_role" json:"receiverRole"`
	Content      string    `db:"content" json:"content"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// Conversation summarizes the message history with one counterpart.
type Conversation struct {
	WithUser    string    `json:"withUser"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	LastMessage string    `json:"lastMessage"`
	LastAt      time.Time `json:"lastAt"`
	UnreadCount int       `json:"unreadCount"`
}
