package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ordo/internal/model"
)

// LatePlateRepository defines late-plate persistence operations.
type LatePlateRepository interface {
	Create(ctx context.Context, latePlate *model.LatePlate) error
	Update(ctx context.Context, latePlate *model.LatePlate) error
	FindByID(ctx context.Context, chapterID, id uint) (*model.LatePlate, error)
	FindByUserMealDate(ctx context.Context, userID, mealID uint, date time.Time) (*model.LatePlate, error)
	ListByMeal(ctx context.Context, mealID uint) ([]model.LatePlate, error)
	ListByUser(ctx context.Context, userID uint) ([]model.LatePlate, error)
	// DeleteRequestedBefore purges rows whose request_date is strictly before
	// the given day. Returns the number of rows removed.
	DeleteRequestedBefore(ctx context.Context, day time.Time) (int64, error)
}

type latePlateRepository struct {
	db *gorm.DB
}

// NewLatePlateRepository builds a GORM-backed repository.
func NewLatePlateRepository(db *gorm.DB) LatePlateRepository {
	return &latePlateRepository{db: db}
}

func (r *latePlateRepository) Create(ctx context.Context, latePlate *model.LatePlate) error {
	return r.db.WithContext(ctx).Create(latePlate).Error
}

func (r *latePlateRepository) Update(ctx context.Context, latePlate *model.LatePlate) error {
	return r.db.WithContext(ctx).Save(latePlate).Error
}

func (r *latePlateRepository) FindByID(ctx context.Context, chapterID, id uint) (*model.LatePlate, error) {
	var latePlate model.LatePlate
	if err := r.db.WithContext(ctx).
		Joins("JOIN meals ON meals.id = late_plates.meal_id").
		Where("meals.chapter_id = ? AND late_plates.id = ?", chapterID, id).
		First(&latePlate).Error; err != nil {
		return nil, err
	}
	return &latePlate, nil
}

func (r *latePlateRepository) FindByUserMealDate(ctx context.Context, userID, mealID uint, date time.Time) (*model.LatePlate, error) {
	var latePlate model.LatePlate
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND meal_id = ? AND request_date = ?", userID, mealID, date.Format("2006-01-02")).
		First(&latePlate).Error; err != nil {
		return nil, err
	}
	return &latePlate, nil
}

func (r *latePlateRepository) ListByMeal(ctx context.Context, mealID uint) ([]model.LatePlate, error) {
	var rows []model.LatePlate
	if err := r.db.WithContext(ctx).
		Where("meal_id = ?", mealID).
		Preload("User").
		Order("request_time DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *latePlateRepository) ListByUser(ctx context.Context, userID uint) ([]model.LatePlate, error) {
	var rows []model.LatePlate
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Meal").
		Order("request_time DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *latePlateRepository) DeleteRequestedBefore(ctx context.Context, day time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("request_date < ?", day.Format("2006-01-02")).
		Delete(&model.LatePlate{})
	return res.RowsAffected, res.Error
}
