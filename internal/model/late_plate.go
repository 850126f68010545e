package model

import "time"

// Late plate request statuses. Approved and denied are terminal for a row; a
// new request on a later calendar day restarts the cycle.
const (
	LatePlateStatusPending  = "pending"
	LatePlateStatusApproved = "approved"
	LatePlateStatusDenied   = "denied"
)

// LatePlate is a reserved portion for a member arriving after service, at most
// one per (user, meal, request_date).
type LatePlate struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	MealID uint `json:"meal_id" gorm:"uniqueIndex:idx_user_meal_date_lp;not null"`
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_user_meal_date_lp;not null"`
	// Calendar day the request was made on, truncated to date.
	RequestDate time.Time `json:"request_date" gorm:"type:date;uniqueIndex:idx_user_meal_date_lp;not null"`
	RequestTime time.Time `json:"request_time" gorm:"autoCreateTime"`
	Status      string    `json:"status" gorm:"size:20;default:'pending'"`
	Notes       string    `json:"notes" gorm:"type:text"`
	PickupTime  *string   `json:"pickup_time" gorm:"size:5"` // 24-hour HH:MM

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Meal *Meal `json:"meal,omitempty" gorm:"foreignKey:MealID"`
}
