package model

import "time"

// Chapter is the tenancy root: every user, meal, and ledger row belongs to
// exactly one chapter.
type Chapter struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	AccessCode *string   `json:"access_code,omitempty" gorm:"uniqueIndex;size:64"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Users []User `json:"users,omitempty" gorm:"foreignKey:ChapterID"`
	Meals []Meal `json:"meals,omitempty" gorm:"foreignKey:ChapterID"`
}
