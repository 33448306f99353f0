package domain

import "time"

// Message is a direct message between two users, optionally referencing an
// order being discussed.
type Message struct {
	ID         int64     `json:"id,string"`
	SenderID   int64     `gorm:"index" json:"sender_id,string"`
	ReceiverID int64     `gorm:"index" json:"receiver_id,string"`
	Content    string    `gorm:"size:4096" json:"content"`
	OrderID    *int64    `json:"order_id,string,omitempty"`
	Read       bool      `gorm:"column:is_read;index" json:"read"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName Specify table name
func (Message) TableName() string {
	return "messages"
}

// Conversation is a read-time fold of the message table: one entry per
// counterpart with the most recent message as preview.
type Conversation struct {
	PeerID      int64     `json:"peer_id,string"`
	Peer        *User     `json:"peer,omitempty"`
	LastMessage Message   `json:"last_message"`
	UnreadCount int64     `json:"unread_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}
