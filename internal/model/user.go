package model

import "time"

// User represents a verified chapter member. Accounts only come into existence
// through email verification of a PendingRegistration.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string    `json:"first_name" gorm:"size:75"`
	LastName     string    `json:"last_name" gorm:"size:75"`
	DisplayName  string    `json:"display_name" gorm:"size:150"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	IsOwner      bool      `json:"is_owner" gorm:"default:false"`
	ChapterID    *uint     `json:"chapter_id" gorm:"index"` // nullable only for the bootstrap account
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Password reset token, distinct from verification tokens; valid 1 hour.
	ResetToken       *string    `json:"-" gorm:"size:64;index"`
	ResetTokenExpiry *time.Time `json:"-"`
}

// HasAdminCapability reports whether the user can perform admin actions.
// Owners always have admin capability.
func (u *User) HasAdminCapability() bool {
	return u.IsAdmin || u.IsOwner
}
