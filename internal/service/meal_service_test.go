package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"ordo/internal/cache"
	apperrors "ordo/internal/errors"
	"ordo/internal/model"
)

// fakeImageStore records stored and deleted object keys.
type fakeImageStore struct {
	stored  []string
	deleted []string
}

func (f *fakeImageStore) Store(_ context.Context, key string, _ io.Reader, _ int64, _ string) (string, error) {
	f.stored = append(f.stored, key)
	return "/uploads/" + key, nil
}

func (f *fakeImageStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func TestMealService_Create_FansOutAttendance(t *testing.T) {
	chapterID := uint(7)
	admin := &model.User{ID: 9, ChapterID: &chapterID, IsAdmin: true}
	members := []model.User{{ID: 1}, {ID: 2}, {ID: 3}}

	mocks, registry := newTestRegistry()
	mocks.meals.On("Create", mock.Anything, mock.AnythingOfType("*model.Meal")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Meal).ID = 10
	}).Return(nil)
	mocks.users.On("ListByChapter", mock.Anything, chapterID).Return(members, nil)
	mocks.attendance.On("CreateBatch", mock.Anything, mock.MatchedBy(func(rows []model.MealAttendance) bool {
		if len(rows) != len(members) {
			return false
		}
		for _, row := range rows {
			if row.MealID != 10 || row.Confirmed != model.AttendanceUnresolved {
				return false
			}
		}
		return true
	})).Return(nil)

	svc := NewMealService(registry, nil, nil)
	meal, err := svc.Create(context.Background(), admin, MealInput{
		MealDate: time.Now().Add(24 * time.Hour),
		MealType: "dinner",
		DishName: "Chili",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(10), meal.ID)
	assert.Equal(t, chapterID, meal.ChapterID)
	mocks.attendance.AssertExpectations(t)
}

func TestMealService_Delete(t *testing.T) {
	chapterID := uint(7)
	admin := &model.User{ID: 9, ChapterID: &chapterID, IsAdmin: true}

	t.Run("unknown meal", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.meals.On("FindByID", mock.Anything, chapterID, uint(99)).Return(nil, gorm.ErrRecordNotFound)
		svc := NewMealService(registry, nil, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), admin, 99), apperrors.ErrMealNotFound)
	})

	t.Run("existing meal", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.meals.On("FindByID", mock.Anything, chapterID, uint(10)).Return(&model.Meal{ID: 10, ChapterID: chapterID}, nil)
		mocks.meals.On("Delete", mock.Anything, chapterID, uint(10)).Return(nil)
		svc := NewMealService(registry, nil, nil)

		assert.NoError(t, svc.Delete(context.Background(), admin, 10))
	})

	t.Run("stored image is removed with the meal", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.meals.On("FindByID", mock.Anything, chapterID, uint(10)).Return(&model.Meal{ID: 10, ChapterID: chapterID, ImageURL: "/uploads/abc.png"}, nil)
		mocks.meals.On("Delete", mock.Anything, chapterID, uint(10)).Return(nil)
		images := &fakeImageStore{}
		svc := NewMealService(registry, nil, images)

		assert.NoError(t, svc.Delete(context.Background(), admin, 10))
		assert.Equal(t, []string{"abc.png"}, images.deleted)
	})
}

func TestMealService_Menu(t *testing.T) {
	chapterID := uint(7)
	member := &model.User{ID: 2, ChapterID: &chapterID}
	meals := []model.Meal{{ID: 1, DishName: "Pasta"}, {ID: 2, DishName: "Salad"}}

	mocks, registry := newTestRegistry()
	mocks.meals.On("ListByChapter", mock.Anything, chapterID).Return(meals, nil)

	// A nil cache client behaves as a permanent miss.
	svc := NewMealService(registry, (*cache.Client)(nil), nil)
	got, err := svc.Menu(context.Background(), member)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Pasta", got[0].DishName)
}

func TestMealService_Update_Partial(t *testing.T) {
	chapterID := uint(7)
	admin := &model.User{ID: 9, ChapterID: &chapterID, IsAdmin: true}
	meal := &model.Meal{ID: 10, ChapterID: chapterID, DishName: "Old dish", MealType: "dinner"}

	mocks, registry := newTestRegistry()
	mocks.meals.On("FindByID", mock.Anything, chapterID, uint(10)).Return(meal, nil)
	mocks.meals.On("Update", mock.Anything, meal).Return(nil)
	svc := NewMealService(registry, nil, nil)

	dish := "New dish"
	updated, err := svc.Update(context.Background(), admin, 10, MealUpdate{DishName: &dish})

	assert.NoError(t, err)
	assert.Equal(t, "New dish", updated.DishName)
	assert.Equal(t, "dinner", updated.MealType) // untouched field survives
}

func TestMealService_Update_ReplacesImage(t *testing.T) {
	chapterID := uint(7)
	admin := &model.User{ID: 9, ChapterID: &chapterID, IsAdmin: true}
	meal := &model.Meal{ID: 10, ChapterID: chapterID, DishName: "Chili", ImageURL: "/uploads/old.png"}

	mocks, registry := newTestRegistry()
	mocks.meals.On("FindByID", mock.Anything, chapterID, uint(10)).Return(meal, nil)
	mocks.meals.On("Update", mock.Anything, meal).Return(nil)
	images := &fakeImageStore{}
	svc := NewMealService(registry, nil, images)

	updated, err := svc.Update(context.Background(), admin, 10, MealUpdate{
		Image: &ImageUpload{Filename: "new.png", Reader: strings.NewReader("png bytes"), Size: 9, ContentType: "image/png"},
	})

	assert.NoError(t, err)
	assert.Len(t, images.stored, 1)
	assert.Equal(t, "/uploads/"+images.stored[0], updated.ImageURL)
	assert.Equal(t, []string{"old.png"}, images.deleted) // the replaced image is cleaned up
}
