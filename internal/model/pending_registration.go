package model

import "time"

// PendingRegistration exists only between signup and email verification. On
// success it is replaced by a User; re-registering before verifying silently
// supersedes the prior row.
type PendingRegistration struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	FirstName    string    `json:"first_name" gorm:"size:75"`
	LastName     string    `json:"last_name" gorm:"size:75"`
	ChapterID    *uint     `json:"chapter_id"`
	Token        string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	TokenExpiry  time.Time `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
