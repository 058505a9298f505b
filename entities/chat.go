package entities

import (
	"time"
)

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

type Chat struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            *string    `json:"name"`
	IsGroup         bool       `gorm:"default:false" json:"isGroup"`
	Participants    []string   `gorm:"serializer:json;type:text;not null" json:"participants"`
	LastMessage     *string    `json:"lastMessage"`
	LastMessageTime *time.Time `json:"lastMessageTime"`
	CreatedBy       string     `gorm:"not null" json:"createdBy"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type Message struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	ChatID     uint        `gorm:"index;not null" json:"chatId"`
	SenderID   string      `gorm:"not null" json:"senderId"`
	SenderName string      `gorm:"not null" json:"senderName"`
	Text       string      `gorm:"type:text;not null" json:"text"`
	Type       MessageType `gorm:"default:text;not null" json:"type"`
	FileURL    *string     `json:"fileUrl"`
	FileName   *string     `json:"fileName"`
	FileSize   *int64      `json:"fileSize"`
	Read       bool        `gorm:"column:is_read;default:false" json:"read"`
	Timestamp  time.Time   `gorm:"column:sent_at;index;not null" json:"timestamp"`
}

// HasParticipant reports whether uid is a member of the chat.
func (c Chat) HasParticipant(uid string) bool {
	for _, p := range c.Participants {
		if p == uid {
			return true
		}
	}
	return false
}

// LastActivity is the time the chat last changed: its last message, or its creation.
func (c Chat) LastActivity() time.Time {
	if c.LastMessageTime != nil {
		return *c.LastMessageTime
	}
	return c.CreatedAt
}
