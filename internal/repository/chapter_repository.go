package repository

import (
	"context"

	"gorm.io/gorm"

	"ordo/internal/model"
)

// ChapterRepository defines chapter persistence operations.
type ChapterRepository interface {
	Create(ctx context.Context, chapter *model.Chapter) error
	FindByID(ctx context.Context, id uint) (*model.Chapter, error)
	FindByAccessCode(ctx context.Context, code string) (*model.Chapter, error)
	Count(ctx context.Context) (int64, error)
	UpdateAccessCode(ctx context.Context, id uint, code string) error
}

type chapterRepository struct {
	db *gorm.DB
}

// NewChapterRepository builds a GORM-backed repository.
func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(ctx context.Context, chapter *model.Chapter) error {
	return r.db.WithContext(ctx).Create(chapter).Error
}

func (r *chapterRepository) FindByID(ctx context.Context, id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.db.WithContext(ctx).First(&chapter, id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) FindByAccessCode(ctx context.Context, code string) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.db.WithContext(ctx).Where("access_code = ?", code).First(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Chapter{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *chapterRepository) UpdateAccessCode(ctx context.Context, id uint, code string) error {
	return r.db.WithContext(ctx).Model(&model.Chapter{}).
		Where("id = ?", id).
		Update("access_code", code).Error
}
