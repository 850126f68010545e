package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ordo/internal/auth"
	apperrors "ordo/internal/errors"
	"ordo/internal/mail"
	"ordo/internal/model"
	"ordo/internal/repository"
)

const (
	bcryptCost        = 10
	verificationTTL   = 24 * time.Hour
	resetTTL          = time.Hour
	minPasswordLength = 6
)

// AuthService handles registration, verification, and session issuance.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName, accessCode string) error
	VerifyEmail(ctx context.Context, token string) (*model.User, error)
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	repos      *repository.Registry
	jwtService *auth.JWTService
	mailer     mail.Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(repos *repository.Registry, jwtService *auth.JWTService, mailer mail.Mailer) AuthService {
	return &authService{
		repos:      repos,
		jwtService: jwtService,
		mailer:     mailer,
	}
}

// NormalizeEmail lower-cases and trims an address; one live account per
// normalized email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register resolves the chapter from the access code, stages a pending
// registration, and dispatches a verification email. No User row is created
// until the email is verified.
func (s *authService) Register(ctx context.Context, email, password, firstName, lastName, accessCode string) error {
	email = NormalizeEmail(email)

	chapterID, err := s.resolveChapter(ctx, accessCode)
	if err != nil {
		return err
	}

	// A verified account wins over any pending row.
	if _, err := s.repos.Users.FindByEmail(ctx, email); err == nil {
		return apperrors.ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	pending := &model.PendingRegistration{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
		ChapterID:    chapterID,
		Token:        uuid.NewString(),
		TokenExpiry:  time.Now().Add(verificationTTL),
	}

	// Re-registering before verifying silently supersedes the prior row.
	if err := s.repos.Pending.Upsert(ctx, pending); err != nil {
		return fmt.Errorf("stage registration: %w", err)
	}

	s.dispatchVerification(email, pending.Token)
	return nil
}

// resolveChapter maps an access code to a chapter. While any chapter exists a
// valid code is mandatory; the empty-code path is a bootstrap allowance for a
// fresh install.
func (s *authService) resolveChapter(ctx context.Context, accessCode string) (*uint, error) {
	count, err := s.repos.Chapters.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count chapters: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	if strings.TrimSpace(accessCode) == "" {
		return nil, apperrors.ErrAccessCodeRequired
	}
	chapter, err := s.repos.Chapters.FindByAccessCode(ctx, accessCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidAccessCode
		}
		return nil, fmt.Errorf("resolve access code: %w", err)
	}
	return &chapter.ID, nil
}

// VerifyEmail promotes a pending registration into a User, atomically deleting
// the pending row. A user verified while no chapter existed becomes the
// bootstrap owner.
func (s *authService) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	pending, err := s.repos.Pending.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidOrExpiredToken
		}
		return nil, fmt.Errorf("find pending registration: %w", err)
	}
	if time.Now().After(pending.TokenExpiry) {
		return nil, apperrors.ErrInvalidOrExpiredToken
	}

	bootstrap := pending.ChapterID == nil
	user := &model.User{
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		FirstName:    pending.FirstName,
		LastName:     pending.LastName,
		DisplayName:  strings.TrimSpace(pending.FirstName + " " + pending.LastName),
		ChapterID:    pending.ChapterID,
		IsAdmin:      bootstrap,
		IsOwner:      bootstrap,
	}

	err = s.repos.WithTransaction(ctx, func(ctx context.Context, tx *repository.Registry) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateEmail
			}
			return fmt.Errorf("create user: %w", err)
		}
		return tx.Pending.Delete(ctx, pending.ID)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ResendVerification rotates the token and resends if a pending row exists.
// The caller always gets a generic success so account existence never leaks.
func (s *authService) ResendVerification(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	pending, err := s.repos.Pending.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find pending registration: %w", err)
	}

	pending.Token = uuid.NewString()
	pending.TokenExpiry = time.Now().Add(verificationTTL)
	if err := s.repos.Pending.Update(ctx, pending); err != nil {
		return fmt.Errorf("rotate verification token: %w", err)
	}

	s.dispatchVerification(email, pending.Token)
	return nil
}

// Login authenticates a verified user and issues a 24-hour session token. The
// error never reveals which of email or password was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = NormalizeEmail(email)

	user, err := s.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}
	return token, user, nil
}

// ForgotPassword issues a 1-hour reset token directly on the User row. Always
// generic to the caller.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	user, err := s.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token := uuid.NewString()
	expiry := time.Now().Add(resetTTL)
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	go func() {
		if err := s.mailer.SendReset(context.Background(), email, token); err != nil {
			log.Printf("send reset email to %s: %v", email, err)
		}
	}()
	return nil
}

// ResetPassword consumes a reset token and replaces the password hash.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.ErrPasswordTooShort
	}

	user, err := s.repos.Users.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("find reset token: %w", err)
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return apperrors.ErrInvalidOrExpiredToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *authService) dispatchVerification(email, token string) {
	go func() {
		if err := s.mailer.SendVerification(context.Background(), email, token); err != nil {
			log.Printf("send verification email to %s: %v", email, err)
		}
	}()
}
