package entities

import (
	"time"
)

type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string     `gorm:"not null" json:"displayName"`
	PhotoURL    *string    `json:"photoURL"`
	ExternalUID *string    `gorm:"uniqueIndex" json:"externalUid"` // identity provider uid
	IsOnline    bool       `gorm:"default:false" json:"isOnline"`
	LastSeen    *time.Time `json:"lastSeen"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
}
