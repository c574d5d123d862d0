package models

import "time"

// AuthToken is a long-lived bearer token, one per user. Sign-in is
// get-or-create: repeated sign-ins return the same key.
type AuthToken struct {
	ID        uint64    `gorm:"primarykey" json:"-"`
	Key       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"key"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
