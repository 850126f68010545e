package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "ordo/internal/errors"
	"ordo/internal/model"
	"ordo/internal/repository"
)

// LatePlateService runs the late-plate sub-ledger: deadline-gated requests and
// the admin approve/deny transition.
type LatePlateService interface {
	Request(ctx context.Context, principal *model.User, mealID uint, notes, pickupTime string) (*model.LatePlate, error)
	ListByMeal(ctx context.Context, principal *model.User, mealID uint) ([]model.LatePlate, error)
	ListMine(ctx context.Context, principal *model.User) ([]model.LatePlate, error)
	UpdateStatus(ctx context.Context, principal *model.User, latePlateID uint, status string) (*model.LatePlate, error)
}

type latePlateService struct {
	repos *repository.Registry
}

// NewLatePlateService creates a new late-plate service.
func NewLatePlateService(repos *repository.Registry) LatePlateService {
	return &latePlateService{repos: repos}
}

// Request files a late-plate request for today. Eligibility is checked in
// order: the meal must exist, must not be on a past date, must be inside its
// cutoff window, and the caller must not have requested one today.
func (s *latePlateService) Request(ctx context.Context, principal *model.User, mealID uint, notes, pickupTime string) (*model.LatePlate, error) {
	meal, err := findChapterMeal(ctx, s.repos.Meals, principal, mealID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := startOfDay(now)
	if startOfDay(meal.MealDate).Before(today) {
		return nil, apperrors.ErrMealInPast
	}
	if meal.LatePlateHoursBefore != nil {
		deadline := meal.MealDate.Add(-time.Duration(*meal.LatePlateHoursBefore) * time.Hour)
		if now.After(deadline) {
			return nil, apperrors.ErrDeadlinePassed
		}
	}

	if _, err := s.repos.LatePlates.FindByUserMealDate(ctx, principal.ID, meal.ID, today); err == nil {
		return nil, apperrors.ErrDuplicateRequest
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find late plate: %w", err)
	}

	var pickup *string
	if pickupTime != "" {
		if _, err := time.Parse("15:04", pickupTime); err != nil {
			return nil, apperrors.ErrInvalidTimeFormat
		}
		pickup = &pickupTime
	}

	latePlate := &model.LatePlate{
		MealID:      meal.ID,
		UserID:      principal.ID,
		RequestDate: today,
		Status:      model.LatePlateStatusPending,
		Notes:       notes,
		PickupTime:  pickup,
	}
	if err := s.repos.LatePlates.Create(ctx, latePlate); err != nil {
		// Simultaneous duplicate submissions are resolved by the unique key.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateRequest
		}
		return nil, fmt.Errorf("create late plate: %w", err)
	}
	return latePlate, nil
}

// ListByMeal lists a meal's late plates with requester details.
func (s *latePlateService) ListByMeal(ctx context.Context, principal *model.User, mealID uint) ([]model.LatePlate, error) {
	meal, err := findChapterMeal(ctx, s.repos.Meals, principal, mealID)
	if err != nil {
		return nil, err
	}
	return s.repos.LatePlates.ListByMeal(ctx, meal.ID)
}

// ListMine lists the caller's own late-plate requests.
func (s *latePlateService) ListMine(ctx context.Context, principal *model.User) ([]model.LatePlate, error) {
	return s.repos.LatePlates.ListByUser(ctx, principal.ID)
}

// UpdateStatus moves a pending request to approved or denied. Both are
// terminal for the row; a new request on a later day restarts the cycle.
func (s *latePlateService) UpdateStatus(ctx context.Context, principal *model.User, latePlateID uint, status string) (*model.LatePlate, error) {
	if status != model.LatePlateStatusApproved && status != model.LatePlateStatusDenied {
		return nil, apperrors.ErrInvalidStatus
	}
	if principal.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}

	latePlate, err := s.repos.LatePlates.FindByID(ctx, *principal.ChapterID, latePlateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLatePlateNotFound
		}
		return nil, fmt.Errorf("find late plate: %w", err)
	}
	if latePlate.Status != model.LatePlateStatusPending {
		return nil, apperrors.ErrInvalidStatus
	}

	latePlate.Status = status
	if err := s.repos.LatePlates.Update(ctx, latePlate); err != nil {
		return nil, fmt.Errorf("update late plate: %w", err)
	}
	return latePlate, nil
}
