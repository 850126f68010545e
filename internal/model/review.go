package model

import "time"

// Review is a member's rating of a meal, at most one per (user, meal).
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MealID    uint      `json:"meal_id" gorm:"uniqueIndex:idx_user_meal_review;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_user_meal_review;not null"`
	Rating    float64   `json:"rating" gorm:"not null"` // half-star increments in [1.0, 5.0]
	Comment   string    `json:"comment" gorm:"type:text"`
	Hidden    bool      `json:"hidden" gorm:"default:false"` // admin moderation, independent of delete
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Meal *Meal `json:"meal,omitempty" gorm:"foreignKey:MealID"`
}
