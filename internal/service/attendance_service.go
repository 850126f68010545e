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

// AttendanceService runs the attendance sub-ledger: a retractable toggle
// before the meal, a one-way resolution after it.
type AttendanceService interface {
	// Toggle marks the caller as attending, or retracts an unresolved mark.
	// Returns whether the caller is attending after the call.
	Toggle(ctx context.Context, principal *model.User, mealID uint) (bool, error)
	Confirm(ctx context.Context, principal *model.User, mealID uint, ate bool) (*model.MealAttendance, error)
	Roster(ctx context.Context, principal *model.User, mealID uint) ([]model.MealAttendance, error)
}

type attendanceService struct {
	repos *repository.Registry
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(repos *repository.Registry) AttendanceService {
	return &attendanceService{repos: repos}
}

// Toggle flips the caller's attendance mark for a meal. Marking is fully
// retractable until the row is resolved.
func (s *attendanceService) Toggle(ctx context.Context, principal *model.User, mealID uint) (bool, error) {
	meal, err := findChapterMeal(ctx, s.repos.Meals, principal, mealID)
	if err != nil {
		return false, err
	}

	existing, err := s.repos.Attendance.FindByUserAndMeal(ctx, principal.ID, meal.ID)
	if err == nil {
		if existing.Confirmed != model.AttendanceUnresolved {
			return false, apperrors.ErrAttendanceResolved
		}
		if err := s.repos.Attendance.Delete(ctx, existing.ID); err != nil {
			return false, fmt.Errorf("retract attendance: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("find attendance: %w", err)
	}

	row := &model.MealAttendance{
		MealID:    meal.ID,
		UserID:    principal.ID,
		Confirmed: model.AttendanceUnresolved,
	}
	if err := s.repos.Attendance.Create(ctx, row); err != nil {
		// A concurrent mark won the race; the caller is attending either way.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, fmt.Errorf("mark attendance: %w", err)
	}
	return true, nil
}

// Confirm resolves a marked row to attended or no_show once the meal's
// scheduled time has passed.
func (s *attendanceService) Confirm(ctx context.Context, principal *model.User, mealID uint, ate bool) (*model.MealAttendance, error) {
	meal, err := findChapterMeal(ctx, s.repos.Meals, principal, mealID)
	if err != nil {
		return nil, err
	}
	if time.Now().Before(meal.MealDate) {
		return nil, apperrors.ErrMealNotYetPast
	}

	row, err := s.repos.Attendance.FindByUserAndMeal(ctx, principal.ID, meal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotAttending
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}

	if ate {
		row.Confirmed = model.AttendanceConfirmed
	} else {
		row.Confirmed = model.AttendanceNoShow
	}
	if err := s.repos.Attendance.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("resolve attendance: %w", err)
	}
	return row, nil
}

// Roster lists a meal's attendance rows with member details.
func (s *attendanceService) Roster(ctx context.Context, principal *model.User, mealID uint) ([]model.MealAttendance, error) {
	meal, err := findChapterMeal(ctx, s.repos.Meals, principal, mealID)
	if err != nil {
		return nil, err
	}
	return s.repos.Attendance.ListByMeal(ctx, meal.ID)
}
