package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "ordo/internal/errors"
	"ordo/internal/model"
)

func TestChapterService_Create_AttachesBootstrapOwner(t *testing.T) {
	owner := &model.User{ID: 1, IsOwner: true} // bootstrap: no chapter yet

	mocks, registry := newTestRegistry()
	mocks.chapters.On("Create", mock.Anything, mock.AnythingOfType("*model.Chapter")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Chapter).ID = 7
	}).Return(nil)
	mocks.users.On("Update", mock.Anything, owner).Return(nil)
	svc := NewChapterService(registry)

	chapter, err := svc.Create(context.Background(), owner, "  Alpha House ")

	assert.NoError(t, err)
	assert.Equal(t, "Alpha House", chapter.Name)
	assert.NotNil(t, chapter.AccessCode)
	assert.Len(t, *chapter.AccessCode, 10)
	assert.NotNil(t, owner.ChapterID)
	assert.Equal(t, uint(7), *owner.ChapterID)
	mocks.users.AssertExpectations(t)
}

func TestChapterService_Create_ExistingOwnerKeepsChapter(t *testing.T) {
	existing := uint(3)
	owner := &model.User{ID: 1, IsOwner: true, ChapterID: &existing}

	mocks, registry := newTestRegistry()
	mocks.chapters.On("Create", mock.Anything, mock.AnythingOfType("*model.Chapter")).Return(nil)
	svc := NewChapterService(registry)

	_, err := svc.Create(context.Background(), owner, "Beta House")

	assert.NoError(t, err)
	assert.Equal(t, existing, *owner.ChapterID)
	mocks.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestChapterService_RotateAccessCode(t *testing.T) {
	chapterID := uint(7)
	owner := &model.User{ID: 1, IsOwner: true, ChapterID: &chapterID}

	mocks, registry := newTestRegistry()
	mocks.chapters.On("UpdateAccessCode", mock.Anything, chapterID, mock.AnythingOfType("string")).Return(nil)
	svc := NewChapterService(registry)

	code, err := svc.RotateAccessCode(context.Background(), owner)
	assert.NoError(t, err)
	assert.Len(t, code, 10)
}

func TestChapterService_Get_RedactsCodeForMembers(t *testing.T) {
	chapterID := uint(7)
	code := "secretcode"
	member := &model.User{ID: 2, ChapterID: &chapterID}
	owner := &model.User{ID: 1, IsOwner: true, ChapterID: &chapterID}

	t.Run("member never sees the code", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.chapters.On("FindByID", mock.Anything, chapterID).Return(&model.Chapter{ID: chapterID, AccessCode: &code}, nil)
		svc := NewChapterService(registry)

		chapter, err := svc.Get(context.Background(), member)
		assert.NoError(t, err)
		assert.Nil(t, chapter.AccessCode)
	})

	t.Run("owner sees the code", func(t *testing.T) {
		ownerCode := "secretcode"
		mocks, registry := newTestRegistry()
		mocks.chapters.On("FindByID", mock.Anything, chapterID).Return(&model.Chapter{ID: chapterID, AccessCode: &ownerCode}, nil)
		svc := NewChapterService(registry)

		chapter, err := svc.Get(context.Background(), owner)
		assert.NoError(t, err)
		assert.NotNil(t, chapter.AccessCode)
		assert.Equal(t, "secretcode", *chapter.AccessCode)
	})

	t.Run("no chapter yet", func(t *testing.T) {
		_, registry := newTestRegistry()
		svc := NewChapterService(registry)

		_, err := svc.Get(context.Background(), &model.User{ID: 3})
		assert.ErrorIs(t, err, apperrors.ErrChapterNotFound)
	})
}
