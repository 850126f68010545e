package model

import "time"

// Meal is a scheduled chapter meal. Deleting a meal cascades to its reviews,
// late plates, and attendance rows; the meal exclusively owns them.
type Meal struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ChapterID   uint      `json:"chapter_id" gorm:"index;not null"`
	MealDate    time.Time `json:"meal_date" gorm:"not null;index"`
	MealType    string    `json:"meal_type" gorm:"size:15;not null"`
	DishName    string    `json:"dish_name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url" gorm:"size:255"`
	// Hours before meal_date after which late plates close; nil means no cutoff.
	LatePlateHoursBefore *int      `json:"late_plate_hours_before"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	Reviews    []Review         `json:"reviews,omitempty" gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE"`
	LatePlates []LatePlate      `json:"late_plates,omitempty" gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE"`
	Attendees  []MealAttendance `json:"attendees,omitempty" gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE"`
}
