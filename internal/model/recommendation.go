package model

import "time"

// Recommendation is a member-submitted meal suggestion for admins to review.
// It is independent of the engagement ledger.
type Recommendation struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ChapterID   uint      `json:"chapter_id" gorm:"index;not null"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Link        string    `json:"link" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
