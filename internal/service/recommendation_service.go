package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "ordo/internal/errors"
	"ordo/internal/model"
	"ordo/internal/repository"
)

// RecommendationService handles member meal suggestions, reviewed by admins
// outside the engagement ledger.
type RecommendationService interface {
	Create(ctx context.Context, principal *model.User, name, description, link string) (*model.Recommendation, error)
	List(ctx context.Context, principal *model.User) ([]model.Recommendation, error)
	Delete(ctx context.Context, principal *model.User, recommendationID uint) error
}

type recommendationService struct {
	repos *repository.Registry
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(repos *repository.Registry) RecommendationService {
	return &recommendationService{repos: repos}
}

func (s *recommendationService) Create(ctx context.Context, principal *model.User, name, description, link string) (*model.Recommendation, error) {
	if principal.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	rec := &model.Recommendation{
		ChapterID:   *principal.ChapterID,
		UserID:      principal.ID,
		Name:        name,
		Description: description,
		Link:        link,
	}
	if err := s.repos.Recommendations.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create recommendation: %w", err)
	}
	return rec, nil
}

func (s *recommendationService) List(ctx context.Context, principal *model.User) ([]model.Recommendation, error) {
	if principal.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	return s.repos.Recommendations.ListByChapter(ctx, *principal.ChapterID)
}

func (s *recommendationService) Delete(ctx context.Context, principal *model.User, recommendationID uint) error {
	if principal.ChapterID == nil {
		return apperrors.ErrChapterNotFound
	}
	if err := s.repos.Recommendations.Delete(ctx, *principal.ChapterID, recommendationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRecommendationNotFound
		}
		return fmt.Errorf("delete recommendation: %w", err)
	}
	return nil
}
