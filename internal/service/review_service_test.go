package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ordo/internal/errors"
	"ordo/internal/model"
)

func TestValidRating(t *testing.T) {
	tests := []struct {
		rating float64
		valid  bool
	}{
		{1.0, true},
		{3.5, true},
		{5.0, true},
		{0.5, false},
		{5.5, false},
		{3.25, false},
		{4.75, false},
		{0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, validRating(tt.rating), "rating %v", tt.rating)
	}
}

func TestReviewService_Create(t *testing.T) {
	chapterID := uint(7)
	member := &model.User{ID: 2, ChapterID: &chapterID}
	meal := &model.Meal{ID: 10, ChapterID: chapterID}

	t.Run("rejects off-grid rating before touching storage", func(t *testing.T) {
		_, registry := newTestRegistry()
		svc := NewReviewService(registry)

		_, err := svc.Create(context.Background(), member, 10, 3.3, "ok")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRating)
	})

	t.Run("second review is rejected", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.meals.On("FindByID", mock.Anything, chapterID, uint(10)).Return(meal, nil)
		mocks.reviews.On("FindByUserAndMeal", mock.Anything, uint(2), uint(10)).Return(&model.Review{ID: 1}, nil)
		svc := NewReviewService(registry)

		_, err := svc.Create(context.Background(), member, 10, 4.0, "again")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)
	})

	t.Run("review implicitly marks attendance", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.meals.On("FindByID", mock.Anything, chapterID, uint(10)).Return(meal, nil)
		mocks.reviews.On("FindByUserAndMeal", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)
		mocks.reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
		mocks.attendance.On("FindByUserAndMeal", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)
		mocks.attendance.On("Create", mock.Anything, mock.MatchedBy(func(a *model.MealAttendance) bool {
			return a.MealID == 10 && a.UserID == 2 && a.Confirmed == model.AttendanceUnresolved
		})).Return(nil)
		svc := NewReviewService(registry)

		review, err := svc.Create(context.Background(), member, 10, 4.5, "great")
		assert.NoError(t, err)
		assert.Equal(t, 4.5, review.Rating)
		mocks.attendance.AssertExpectations(t)
	})

	t.Run("already-marked attendance is left alone", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.meals.On("FindByID", mock.Anything, chapterID, uint(10)).Return(meal, nil)
		mocks.reviews.On("FindByUserAndMeal", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)
		mocks.reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
		mocks.attendance.On("FindByUserAndMeal", mock.Anything, uint(2), uint(10)).Return(&model.MealAttendance{ID: 5}, nil)
		svc := NewReviewService(registry)

		_, err := svc.Create(context.Background(), member, 10, 2.0, "")
		assert.NoError(t, err)
		mocks.attendance.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique key race maps to already reviewed", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.meals.On("FindByID", mock.Anything, chapterID, uint(10)).Return(meal, nil)
		mocks.reviews.On("FindByUserAndMeal", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)
		mocks.reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(gorm.ErrDuplicatedKey)
		svc := NewReviewService(registry)

		_, err := svc.Create(context.Background(), member, 10, 4.0, "")
		assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)
	})
}

func TestReviewService_Update(t *testing.T) {
	chapterID := uint(7)
	author := &model.User{ID: 2, ChapterID: &chapterID}
	otherMember := &model.User{ID: 3, ChapterID: &chapterID}

	t.Run("only the author may edit", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.reviews.On("FindByID", mock.Anything, chapterID, uint(1)).Return(&model.Review{ID: 1, UserID: 2}, nil)
		svc := NewReviewService(registry)

		rating := 4.0
		_, err := svc.Update(context.Background(), otherMember, 1, &rating, nil)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("author edits rating", func(t *testing.T) {
		review := &model.Review{ID: 1, UserID: 2, Rating: 2.0}
		mocks, registry := newTestRegistry()
		mocks.reviews.On("FindByID", mock.Anything, chapterID, uint(1)).Return(review, nil)
		mocks.reviews.On("Update", mock.Anything, review).Return(nil)
		svc := NewReviewService(registry)

		rating := 4.5
		updated, err := svc.Update(context.Background(), author, 1, &rating, nil)
		assert.NoError(t, err)
		assert.Equal(t, 4.5, updated.Rating)
	})
}

func TestReviewService_Delete(t *testing.T) {
	chapterID := uint(7)
	admin := &model.User{ID: 9, ChapterID: &chapterID, IsAdmin: true}
	bystander := &model.User{ID: 3, ChapterID: &chapterID}

	t.Run("admin may delete someone else's review", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.reviews.On("FindByID", mock.Anything, chapterID, uint(1)).Return(&model.Review{ID: 1, UserID: 2}, nil)
		mocks.reviews.On("Delete", mock.Anything, uint(1)).Return(nil)
		svc := NewReviewService(registry)

		assert.NoError(t, svc.Delete(context.Background(), admin, 1))
		mocks.reviews.AssertExpectations(t)
	})

	t.Run("non-author non-admin may not", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.reviews.On("FindByID", mock.Anything, chapterID, uint(1)).Return(&model.Review{ID: 1, UserID: 2}, nil)
		svc := NewReviewService(registry)

		assert.ErrorIs(t, svc.Delete(context.Background(), bystander, 1), apperrors.ErrForbidden)
	})
}

func TestReviewService_ListByMeal_HiddenVisibility(t *testing.T) {
	chapterID := uint(7)
	meal := &model.Meal{ID: 10, ChapterID: chapterID}
	member := &model.User{ID: 2, ChapterID: &chapterID}
	admin := &model.User{ID: 9, ChapterID: &chapterID, IsAdmin: true}

	mocks, registry := newTestRegistry()
	mocks.meals.On("FindByID", mock.Anything, chapterID, uint(10)).Return(meal, nil)
	mocks.reviews.On("ListByMeal", mock.Anything, uint(10), false).Return([]model.Review{}, nil)
	mocks.reviews.On("ListByMeal", mock.Anything, uint(10), true).Return([]model.Review{}, nil)
	svc := NewReviewService(registry)

	_, err := svc.ListByMeal(context.Background(), member, 10)
	assert.NoError(t, err)
	_, err = svc.ListByMeal(context.Background(), admin, 10)
	assert.NoError(t, err)
	mocks.reviews.AssertExpectations(t)
}
