package repository

import (
	"context"

	"gorm.io/gorm"

	"ordo/internal/model"
)

// ReviewRepository defines review persistence operations. ID lookups join
// through meals so out-of-chapter reviews read as not found.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, chapterID, id uint) (*model.Review, error)
	FindByUserAndMeal(ctx context.Context, userID, mealID uint) (*model.Review, error)
	ListByMeal(ctx context.Context, mealID uint, includeHidden bool) ([]model.Review, error)
	ListByChapter(ctx context.Context, chapterID uint) ([]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, id).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, chapterID, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Joins("JOIN meals ON meals.id = reviews.meal_id").
		Where("meals.chapter_id = ? AND reviews.id = ?", chapterID, id).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByUserAndMeal(ctx context.Context, userID, mealID uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND meal_id = ?", userID, mealID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByMeal(ctx context.Context, mealID uint, includeHidden bool) ([]model.Review, error) {
	q := r.db.WithContext(ctx).Where("meal_id = ?", mealID)
	if !includeHidden {
		q = q.Where("hidden = ?", false)
	}
	var reviews []model.Review
	if err := q.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByChapter(ctx context.Context, chapterID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Joins("JOIN meals ON meals.id = reviews.meal_id").
		Where("meals.chapter_id = ?", chapterID).
		Preload("User").
		Preload("Meal").
		Order("reviews.created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
