package model

import "time"

// AttendanceResolution is the post-meal state of a marked attendance row.
type AttendanceResolution string

const (
	// AttendanceUnresolved means marked attending, not yet resolved.
	AttendanceUnresolved AttendanceResolution = "unresolved"
	// AttendanceConfirmed means the member confirmed they ate the meal.
	AttendanceConfirmed AttendanceResolution = "attended"
	// AttendanceNoShow means the member reported not eating after all.
	AttendanceNoShow AttendanceResolution = "no_show"
)

// MealAttendance records that a user is (or was) attending a meal, at most one
// row per (user, meal). A row in the Marked state is fully retractable; once a
// meal's time has passed the attending user resolves it to attended or no_show.
type MealAttendance struct {
	ID             uint                 `json:"id" gorm:"primaryKey"`
	MealID         uint                 `json:"meal_id" gorm:"uniqueIndex:idx_user_meal_attendance;not null"`
	UserID         uint                 `json:"user_id" gorm:"uniqueIndex:idx_user_meal_attendance;not null"`
	AttendanceTime time.Time            `json:"attendance_time" gorm:"autoCreateTime"`
	Confirmed      AttendanceResolution `json:"confirmed" gorm:"size:10;default:'unresolved'"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Meal *Meal `json:"meal,omitempty" gorm:"foreignKey:MealID"`
}
