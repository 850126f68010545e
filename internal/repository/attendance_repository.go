package repository

import (
	"context"

	"gorm.io/gorm"

	"ordo/internal/model"
)

// AttendanceRepository defines attendance persistence operations.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *model.MealAttendance) error
	CreateBatch(ctx context.Context, rows []model.MealAttendance) error
	Update(ctx context.Context, attendance *model.MealAttendance) error
	Delete(ctx context.Context, id uint) error
	FindByUserAndMeal(ctx context.Context, userID, mealID uint) (*model.MealAttendance, error)
	ListByMeal(ctx context.Context, mealID uint) ([]model.MealAttendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository builds a GORM-backed repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *model.MealAttendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

func (r *attendanceRepository) CreateBatch(ctx context.Context, rows []model.MealAttendance) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *attendanceRepository) Update(ctx context.Context, attendance *model.MealAttendance) error {
	return r.db.WithContext(ctx).Save(attendance).Error
}

func (r *attendanceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.MealAttendance{}, id).Error
}

func (r *attendanceRepository) FindByUserAndMeal(ctx context.Context, userID, mealID uint) (*model.MealAttendance, error) {
	var attendance model.MealAttendance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND meal_id = ?", userID, mealID).
		First(&attendance).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) ListByMeal(ctx context.Context, mealID uint) ([]model.MealAttendance, error) {
	var rows []model.MealAttendance
	if err := r.db.WithContext(ctx).
		Where("meal_id = ?", mealID).
		Preload("User").
		Order("attendance_time").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
