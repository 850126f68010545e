package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "ordo/internal/errors"
	"ordo/internal/model"
	"ordo/internal/repository"
)

// ChapterService covers owner-side chapter provisioning and the member view.
type ChapterService interface {
	Create(ctx context.Context, owner *model.User, name string) (*model.Chapter, error)
	RotateAccessCode(ctx context.Context, owner *model.User) (string, error)
	Get(ctx context.Context, user *model.User) (*model.Chapter, error)
}

type chapterService struct {
	repos *repository.Registry
}

// NewChapterService creates a new chapter service.
func NewChapterService(repos *repository.Registry) ChapterService {
	return &chapterService{repos: repos}
}

// Create provisions a chapter with a fresh access code. A bootstrap owner with
// no chapter yet is attached to the one they create, closing the migration
// window on their account.
func (s *chapterService) Create(ctx context.Context, owner *model.User, name string) (*model.Chapter, error) {
	code := newAccessCode()
	chapter := &model.Chapter{
		Name:       strings.TrimSpace(name),
		AccessCode: &code,
	}

	err := s.repos.WithTransaction(ctx, func(ctx context.Context, tx *repository.Registry) error {
		if err := tx.Chapters.Create(ctx, chapter); err != nil {
			return fmt.Errorf("create chapter: %w", err)
		}
		if owner.ChapterID == nil {
			owner.ChapterID = &chapter.ID
			if err := tx.Users.Update(ctx, owner); err != nil {
				return fmt.Errorf("attach owner to chapter: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

// RotateAccessCode replaces the owner's chapter access code; outstanding codes
// stop working immediately.
func (s *chapterService) RotateAccessCode(ctx context.Context, owner *model.User) (string, error) {
	if owner.ChapterID == nil {
		return "", apperrors.ErrChapterNotFound
	}
	code := newAccessCode()
	if err := s.repos.Chapters.UpdateAccessCode(ctx, *owner.ChapterID, code); err != nil {
		return "", fmt.Errorf("rotate access code: %w", err)
	}
	return code, nil
}

// Get returns the caller's chapter. The access code is redacted for anyone
// below owner.
func (s *chapterService) Get(ctx context.Context, user *model.User) (*model.Chapter, error) {
	if user.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	chapter, err := s.repos.Chapters.FindByID(ctx, *user.ChapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChapterNotFound
		}
		return nil, fmt.Errorf("find chapter: %w", err)
	}
	if !user.IsOwner {
		chapter.AccessCode = nil
	}
	return chapter, nil
}

func newAccessCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
