package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// LedgerTotals holds chapter-wide counters for the analytics rollup.
type LedgerTotals struct {
	TotalMeals      int64   `json:"total_meals"`
	TotalReviews    int64   `json:"total_reviews"`
	TotalAttendance int64   `json:"total_attendance"`
	TotalLatePlates int64   `json:"total_late_plates"`
	AverageRating   float64 `json:"average_rating"`
}

// MealAttendanceCount pairs a meal with its attendance count.
type MealAttendanceCount struct {
	MealID          uint      `json:"meal_id"`
	DishName        string    `json:"dish_name"`
	MealDate        time.Time `json:"meal_date"`
	AttendanceCount int64     `json:"attendance_count"`
}

// MealRating pairs a meal with its average rating over visible reviews.
type MealRating struct {
	MealID        uint    `json:"meal_id"`
	DishName      string  `json:"dish_name"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// AnalyticsRepository is the read-only aggregate surface over the ledger.
// Everything here is recomputable at any time; nothing mutates. Hidden
// reviews are excluded from every review count and rating average.
type AnalyticsRepository interface {
	Totals(ctx context.Context, chapterID uint) (*LedgerTotals, error)
	TopMealsByAttendance(ctx context.Context, chapterID uint, limit int) ([]MealAttendanceCount, error)
	MealRatings(ctx context.Context, chapterID uint) ([]MealRating, error)
	// MealAttendanceSince returns per-meal attendance counts for meals dated on
	// or after since, including meals with zero attendance.
	MealAttendanceSince(ctx context.Context, chapterID uint, since time.Time) ([]MealAttendanceCount, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository builds a GORM-backed repository.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Totals(ctx context.Context, chapterID uint) (*LedgerTotals, error) {
	var totals LedgerTotals
	db := r.db.WithContext(ctx)

	if err := db.Table("meals").
		Where("chapter_id = ?", chapterID).
		Count(&totals.TotalMeals).Error; err != nil {
		return nil, err
	}
	if err := db.Table("reviews").
		Joins("JOIN meals ON meals.id = reviews.meal_id").
		Where("meals.chapter_id = ? AND reviews.hidden = ?", chapterID, false).
		Count(&totals.TotalReviews).Error; err != nil {
		return nil, err
	}
	if err := db.Table("meal_attendances").
		Joins("JOIN meals ON meals.id = meal_attendances.meal_id").
		Where("meals.chapter_id = ?", chapterID).
		Count(&totals.TotalAttendance).Error; err != nil {
		return nil, err
	}
	if err := db.Table("late_plates").
		Joins("JOIN meals ON meals.id = late_plates.meal_id").
		Where("meals.chapter_id = ?", chapterID).
		Count(&totals.TotalLatePlates).Error; err != nil {
		return nil, err
	}
	if totals.TotalReviews > 0 {
		if err := db.Table("reviews").
			Joins("JOIN meals ON meals.id = reviews.meal_id").
			Where("meals.chapter_id = ? AND reviews.hidden = ?", chapterID, false).
			Select("AVG(reviews.rating)").
			Scan(&totals.AverageRating).Error; err != nil {
			return nil, err
		}
	}
	return &totals, nil
}

func (r *analyticsRepository) TopMealsByAttendance(ctx context.Context, chapterID uint, limit int) ([]MealAttendanceCount, error) {
	var rows []MealAttendanceCount
	if err := r.db.WithContext(ctx).Table("meals").
		Select("meals.id AS meal_id, meals.dish_name, meals.meal_date, COUNT(meal_attendances.id) AS attendance_count").
		Joins("LEFT JOIN meal_attendances ON meal_attendances.meal_id = meals.id").
		Where("meals.chapter_id = ?", chapterID).
		Group("meals.id, meals.dish_name, meals.meal_date").
		Order("attendance_count DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) MealRatings(ctx context.Context, chapterID uint) ([]MealRating, error) {
	var rows []MealRating
	if err := r.db.WithContext(ctx).Table("meals").
		Select("meals.id AS meal_id, meals.dish_name, AVG(reviews.rating) AS average_rating, COUNT(reviews.id) AS review_count").
		Joins("JOIN reviews ON reviews.meal_id = meals.id AND reviews.hidden = ?", false).
		Where("meals.chapter_id = ?", chapterID).
		Group("meals.id, meals.dish_name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) MealAttendanceSince(ctx context.Context, chapterID uint, since time.Time) ([]MealAttendanceCount, error) {
	var rows []MealAttendanceCount
	if err := r.db.WithContext(ctx).Table("meals").
		Select("meals.id AS meal_id, meals.dish_name, meals.meal_date, COUNT(meal_attendances.id) AS attendance_count").
		Joins("LEFT JOIN meal_attendances ON meal_attendances.meal_id = meals.id").
		Where("meals.chapter_id = ? AND meals.meal_date >= ?", chapterID, since).
		Group("meals.id, meals.dish_name, meals.meal_date").
		Order("meals.meal_date").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
