package repository

import (
	"context"

	"gorm.io/gorm"

	"ordo/internal/model"
)

// RecommendationRepository defines recommendation persistence operations.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *model.Recommendation) error
	Delete(ctx context.Context, chapterID, id uint) error
	ListByChapter(ctx context.Context, chapterID uint) ([]model.Recommendation, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository builds a GORM-backed repository.
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Create(ctx context.Context, rec *model.Recommendation) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recommendationRepository) Delete(ctx context.Context, chapterID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Delete(&model.Recommendation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recommendationRepository) ListByChapter(ctx context.Context, chapterID uint) ([]model.Recommendation, error) {
	var recs []model.Recommendation
	if err := r.db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Preload("User").
		Order("created_at DESC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
