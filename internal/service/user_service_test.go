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

func TestUserService_SetAdmin(t *testing.T) {
	chapterID := uint(7)
	otherChapterID := uint(8)
	owner := &model.User{ID: 1, ChapterID: &chapterID, IsOwner: true}

	t.Run("owner cannot be demoted", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.users.On("FindByID", mock.Anything, uint(1)).Return(owner, nil)
		svc := NewUserService(registry)

		_, err := svc.SetAdmin(context.Background(), owner, 1, false)
		assert.ErrorIs(t, err, apperrors.ErrCannotDemoteOwner)
	})

	t.Run("member promoted to admin", func(t *testing.T) {
		target := &model.User{ID: 2, ChapterID: &chapterID}
		mocks, registry := newTestRegistry()
		mocks.users.On("FindByID", mock.Anything, uint(2)).Return(target, nil)
		mocks.users.On("Update", mock.Anything, target).Return(nil)
		svc := NewUserService(registry)

		updated, err := svc.SetAdmin(context.Background(), owner, 2, true)
		assert.NoError(t, err)
		assert.True(t, updated.IsAdmin)
	})

	t.Run("cross-chapter target reads as not found", func(t *testing.T) {
		target := &model.User{ID: 3, ChapterID: &otherChapterID}
		mocks, registry := newTestRegistry()
		mocks.users.On("FindByID", mock.Anything, uint(3)).Return(target, nil)
		svc := NewUserService(registry)

		_, err := svc.SetAdmin(context.Background(), owner, 3, true)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserService_Delete(t *testing.T) {
	chapterID := uint(7)
	owner := &model.User{ID: 1, ChapterID: &chapterID, IsOwner: true}

	t.Run("another owner cannot be deleted", func(t *testing.T) {
		secondOwner := &model.User{ID: 4, ChapterID: &chapterID, IsOwner: true}
		mocks, registry := newTestRegistry()
		mocks.users.On("FindByID", mock.Anything, uint(4)).Return(secondOwner, nil)
		svc := NewUserService(registry)

		err := svc.Delete(context.Background(), owner, 4)
		assert.ErrorIs(t, err, apperrors.ErrCannotDeleteOwner)
	})

	t.Run("owner may delete themselves", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.users.On("FindByID", mock.Anything, uint(1)).Return(owner, nil)
		mocks.users.On("Delete", mock.Anything, uint(1)).Return(nil)
		svc := NewUserService(registry)

		assert.NoError(t, svc.Delete(context.Background(), owner, 1))
	})

	t.Run("regular member is deleted", func(t *testing.T) {
		target := &model.User{ID: 2, ChapterID: &chapterID}
		mocks, registry := newTestRegistry()
		mocks.users.On("FindByID", mock.Anything, uint(2)).Return(target, nil)
		mocks.users.On("Delete", mock.Anything, uint(2)).Return(nil)
		svc := NewUserService(registry)

		assert.NoError(t, svc.Delete(context.Background(), owner, 2))
		mocks.users.AssertExpectations(t)
	})

	t.Run("unknown target", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.users.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
		svc := NewUserService(registry)

		err := svc.Delete(context.Background(), owner, 99)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	chapterID := uint(7)
	user := &model.User{ID: 2, ChapterID: &chapterID, FirstName: "Old", LastName: "Name", DisplayName: "Old Name"}

	mocks, registry := newTestRegistry()
	mocks.users.On("Update", mock.Anything, user).Return(nil)
	svc := NewUserService(registry)

	updated, err := svc.UpdateProfile(context.Background(), user, "New", "", "Nickname")
	assert.NoError(t, err)
	assert.Equal(t, "New", updated.FirstName)
	assert.Equal(t, "Name", updated.LastName) // blank input leaves the field
	assert.Equal(t, "Nickname", updated.DisplayName)
}
