package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	apperrors "ordo/internal/errors"
	"ordo/internal/model"
	"ordo/internal/repository"
)

// ReviewService runs the review sub-ledger, including the implicit attendance
// side effect of submitting a review.
type ReviewService interface {
	Create(ctx context.Context, principal *model.User, mealID uint, rating float64, comment string) (*model.Review, error)
	Update(ctx context.Context, principal *model.User, reviewID uint, rating *float64, comment *string) (*model.Review, error)
	Delete(ctx context.Context, principal *model.User, reviewID uint) error
	SetHidden(ctx context.Context, principal *model.User, reviewID uint, hidden bool) (*model.Review, error)
	ListByMeal(ctx context.Context, principal *model.User, mealID uint) ([]model.Review, error)
	ListByChapter(ctx context.Context, principal *model.User) ([]model.Review, error)
}

type reviewService struct {
	repos *repository.Registry
}

// NewReviewService creates a new review service.
func NewReviewService(repos *repository.Registry) ReviewService {
	return &reviewService{repos: repos}
}

// validRating accepts ratings in [1.0, 5.0] on the half-star grid.
func validRating(r float64) bool {
	if r < 1.0 || r > 5.0 {
		return false
	}
	doubled := r * 2
	return doubled == math.Trunc(doubled)
}

// Create submits the caller's review of a meal. Reviewing implicitly marks
// attendance when not already marked; both writes share one transaction.
func (s *reviewService) Create(ctx context.Context, principal *model.User, mealID uint, rating float64, comment string) (*model.Review, error) {
	if !validRating(rating) {
		return nil, apperrors.ErrInvalidRating
	}

	meal, err := findChapterMeal(ctx, s.repos.Meals, principal, mealID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Reviews.FindByUserAndMeal(ctx, principal.ID, meal.ID); err == nil {
		return nil, apperrors.ErrAlreadyReviewed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find review: %w", err)
	}

	review := &model.Review{
		MealID:  meal.ID,
		UserID:  principal.ID,
		Rating:  rating,
		Comment: comment,
	}

	err = s.repos.WithTransaction(ctx, func(ctx context.Context, tx *repository.Registry) error {
		if err := tx.Reviews.Create(ctx, review); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrAlreadyReviewed
			}
			return fmt.Errorf("create review: %w", err)
		}

		_, err := tx.Attendance.FindByUserAndMeal(ctx, principal.ID, meal.ID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find attendance: %w", err)
		}
		attendance := &model.MealAttendance{
			MealID:    meal.ID,
			UserID:    principal.ID,
			Confirmed: model.AttendanceUnresolved,
		}
		if err := tx.Attendance.Create(ctx, attendance); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("mark attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// Update edits a review; only the owning user may edit.
func (s *reviewService) Update(ctx context.Context, principal *model.User, reviewID uint, rating *float64, comment *string) (*model.Review, error) {
	review, err := s.find(ctx, principal, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != principal.ID {
		return nil, apperrors.ErrForbidden
	}

	if rating != nil {
		if !validRating(*rating) {
			return nil, apperrors.ErrInvalidRating
		}
		review.Rating = *rating
	}
	if comment != nil {
		review.Comment = *comment
	}

	if err := s.repos.Reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

// Delete removes a review; allowed for the owning user or anyone with admin
// capability.
func (s *reviewService) Delete(ctx context.Context, principal *model.User, reviewID uint) error {
	review, err := s.find(ctx, principal, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != principal.ID && !principal.HasAdminCapability() {
		return apperrors.ErrForbidden
	}
	return s.repos.Reviews.Delete(ctx, review.ID)
}

// SetHidden toggles soft moderation on a review without deleting it.
func (s *reviewService) SetHidden(ctx context.Context, principal *model.User, reviewID uint, hidden bool) (*model.Review, error) {
	review, err := s.find(ctx, principal, reviewID)
	if err != nil {
		return nil, err
	}
	review.Hidden = hidden
	if err := s.repos.Reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

// ListByMeal lists a meal's reviews. Hidden reviews are only visible to admin
// capability.
func (s *reviewService) ListByMeal(ctx context.Context, principal *model.User, mealID uint) ([]model.Review, error) {
	meal, err := findChapterMeal(ctx, s.repos.Meals, principal, mealID)
	if err != nil {
		return nil, err
	}
	return s.repos.Reviews.ListByMeal(ctx, meal.ID, principal.HasAdminCapability())
}

// ListByChapter is the owner's full review list across all chapter meals.
func (s *reviewService) ListByChapter(ctx context.Context, principal *model.User) ([]model.Review, error) {
	if principal.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	return s.repos.Reviews.ListByChapter(ctx, *principal.ChapterID)
}

func (s *reviewService) find(ctx context.Context, principal *model.User, reviewID uint) (*model.Review, error) {
	if principal.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	review, err := s.repos.Reviews.FindByID(ctx, *principal.ChapterID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return review, nil
}
