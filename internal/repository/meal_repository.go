package repository

import (
	"context"

	"gorm.io/gorm"

	"ordo/internal/model"
)

// MealRepository defines meal persistence operations. Every lookup is scoped
// to a chapter so cross-tenant references cannot resolve.
type MealRepository interface {
	Create(ctx context.Context, meal *model.Meal) error
	Update(ctx context.Context, meal *model.Meal) error
	Delete(ctx context.Context, chapterID, id uint) error
	FindByID(ctx context.Context, chapterID, id uint) (*model.Meal, error)
	ListByChapter(ctx context.Context, chapterID uint) ([]model.Meal, error)
}

type mealRepository struct {
	db *gorm.DB
}

// NewMealRepository builds a GORM-backed repository.
func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) Create(ctx context.Context, meal *model.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *mealRepository) Update(ctx context.Context, meal *model.Meal) error {
	return r.db.WithContext(ctx).Save(meal).Error
}

// Delete removes the meal; the schema cascades to reviews, late plates, and
// attendance rows.
func (r *mealRepository) Delete(ctx context.Context, chapterID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Delete(&model.Meal{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mealRepository) FindByID(ctx context.Context, chapterID, id uint) (*model.Meal, error) {
	var meal model.Meal
	if err := r.db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		First(&meal, id).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) ListByChapter(ctx context.Context, chapterID uint) ([]model.Meal, error) {
	var meals []model.Meal
	if err := r.db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Order("meal_date").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}
