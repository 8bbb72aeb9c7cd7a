package domain

import "time"

// Message is a direct chat message. Only Read ever changes after creation.
type Message struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	SenderID   string    `json:"sender_id" gorm:"not null;index:idx_messages_pair,priority:1" bson:"sender_id"`
	ReceiverID string    `json:"receiver_id" gorm:"not null;index:idx_messages_pair,priority:2" bson:"receiver_id"`
	Text       string    `json:"message" gorm:"column:message;not null" bson:"message"`
	Read       bool      `json:"read" gorm:"not null;default:false" bson:"read"`
	CreatedAt  time.Time `json:"created_at" gorm:"index" bson:"created_at"`
}

func (Message) TableName() string { return "messages" }
