package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "ordo/internal/errors"
	"ordo/internal/model"
	"ordo/internal/repository"
)

// UserService covers profile updates and owner-side member management.
type UserService interface {
	UpdateProfile(ctx context.Context, user *model.User, firstName, lastName, displayName string) (*model.User, error)
	ListChapterMembers(ctx context.Context, principal *model.User) ([]model.User, error)
	Delete(ctx context.Context, principal *model.User, targetID uint) error
	SetAdmin(ctx context.Context, principal *model.User, targetID uint, isAdmin bool) (*model.User, error)
}

type userService struct {
	repos *repository.Registry
}

// NewUserService creates a new user service.
func NewUserService(repos *repository.Registry) UserService {
	return &userService{repos: repos}
}

// UpdateProfile updates name fields on the caller's own account. Blank fields
// are left unchanged.
func (s *userService) UpdateProfile(ctx context.Context, user *model.User, firstName, lastName, displayName string) (*model.User, error) {
	if v := strings.TrimSpace(firstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(lastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(displayName); v != "" {
		user.DisplayName = v
	}
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ListChapterMembers lists the caller's chapter roster.
func (s *userService) ListChapterMembers(ctx context.Context, principal *model.User) ([]model.User, error) {
	if principal.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	return s.repos.Users.ListByChapter(ctx, *principal.ChapterID)
}

// Delete removes a member from the caller's chapter. Another owner can never
// be deleted.
func (s *userService) Delete(ctx context.Context, principal *model.User, targetID uint) error {
	target, err := s.findInChapter(ctx, principal, targetID)
	if err != nil {
		return err
	}
	if target.IsOwner && target.ID != principal.ID {
		return apperrors.ErrCannotDeleteOwner
	}
	return s.repos.Users.Delete(ctx, target.ID)
}

// SetAdmin flips a member's admin flag. Owners cannot be demoted; their admin
// capability is implied by the owner flag.
func (s *userService) SetAdmin(ctx context.Context, principal *model.User, targetID uint, isAdmin bool) (*model.User, error) {
	target, err := s.findInChapter(ctx, principal, targetID)
	if err != nil {
		return nil, err
	}
	if target.IsOwner && !isAdmin {
		return nil, apperrors.ErrCannotDemoteOwner
	}
	target.IsAdmin = isAdmin
	if err := s.repos.Users.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("update admin flag: %w", err)
	}
	return target, nil
}

// findInChapter resolves a target user and rejects cross-chapter references as
// not found.
func (s *userService) findInChapter(ctx context.Context, principal *model.User, targetID uint) (*model.User, error) {
	target, err := s.repos.Users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if principal.ChapterID == nil || target.ChapterID == nil || *principal.ChapterID != *target.ChapterID {
		return nil, apperrors.ErrUserNotFound
	}
	return target, nil
}
