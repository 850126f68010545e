package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ordo/internal/auth"
	apperrors "ordo/internal/errors"
	"ordo/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	chapterID := uint(7)

	tests := []struct {
		name       string
		accessCode string
		setup      func(m *testRegistry)
		wantErr    error
	}{
		{
			name:       "bootstrap registration with no chapters",
			accessCode: "",
			setup: func(m *testRegistry) {
				m.chapters.On("Count", mock.Anything).Return(int64(0), nil)
				m.users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.pending.On("Upsert", mock.Anything, mock.AnythingOfType("*model.PendingRegistration")).Return(nil)
			},
		},
		{
			name:       "access code required once a chapter exists",
			accessCode: "",
			setup: func(m *testRegistry) {
				m.chapters.On("Count", mock.Anything).Return(int64(1), nil)
			},
			wantErr: apperrors.ErrAccessCodeRequired,
		},
		{
			name:       "unknown access code",
			accessCode: "nope",
			setup: func(m *testRegistry) {
				m.chapters.On("Count", mock.Anything).Return(int64(1), nil)
				m.chapters.On("FindByAccessCode", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrInvalidAccessCode,
		},
		{
			name:       "email already verified",
			accessCode: "abc123",
			setup: func(m *testRegistry) {
				m.chapters.On("Count", mock.Anything).Return(int64(1), nil)
				m.chapters.On("FindByAccessCode", mock.Anything, "abc123").Return(&model.Chapter{ID: chapterID}, nil)
				m.users.On("FindByEmail", mock.Anything, "new@example.com").Return(&model.User{ID: 1}, nil)
			},
			wantErr: apperrors.ErrDuplicateEmail,
		},
		{
			name:       "valid code stages a pending registration",
			accessCode: "abc123",
			setup: func(m *testRegistry) {
				m.chapters.On("Count", mock.Anything).Return(int64(1), nil)
				m.chapters.On("FindByAccessCode", mock.Anything, "abc123").Return(&model.Chapter{ID: chapterID}, nil)
				m.users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.pending.On("Upsert", mock.Anything, mock.MatchedBy(func(p *model.PendingRegistration) bool {
					return p.Email == "new@example.com" && p.ChapterID != nil && *p.ChapterID == chapterID && p.Token != ""
				})).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks, registry := newTestRegistry()
			tt.setup(mocks)
			svc := NewAuthService(registry, auth.NewJWTService("test-secret"), stubMailer{})

			err := svc.Register(context.Background(), "New@Example.com ", "password123", "Pat", "Doe", tt.accessCode)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mocks.pending.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	t.Run("invalid token", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.pending.On("FindByToken", mock.Anything, "bad").Return(nil, gorm.ErrRecordNotFound)
		svc := NewAuthService(registry, auth.NewJWTService("test-secret"), stubMailer{})

		_, err := svc.VerifyEmail(context.Background(), "bad")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredToken)
	})

	t.Run("expired token", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.pending.On("FindByToken", mock.Anything, "stale").Return(&model.PendingRegistration{
			ID:          3,
			Email:       "a@b.com",
			TokenExpiry: time.Now().Add(-time.Minute),
		}, nil)
		svc := NewAuthService(registry, auth.NewJWTService("test-secret"), stubMailer{})

		_, err := svc.VerifyEmail(context.Background(), "stale")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredToken)
	})

	t.Run("bootstrap pending becomes owner and admin", func(t *testing.T) {
		mocks, registry := newTestRegistry()
		mocks.pending.On("FindByToken", mock.Anything, "good").Return(&model.PendingRegistration{
			ID:          3,
			Email:       "founder@example.com",
			FirstName:   "Fay",
			LastName:    "Founder",
			ChapterID:   nil,
			TokenExpiry: time.Now().Add(time.Hour),
		}, nil)
		mocks.users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		mocks.pending.On("Delete", mock.Anything, uint(3)).Return(nil)
		svc := NewAuthService(registry, auth.NewJWTService("test-secret"), stubMailer{})

		user, err := svc.VerifyEmail(context.Background(), "good")
		assert.NoError(t, err)
		assert.True(t, user.IsOwner)
		assert.True(t, user.IsAdmin)
		assert.Equal(t, "Fay Founder", user.DisplayName)
		mocks.pending.AssertExpectations(t)
	})

	t.Run("duplicate user surfaces as duplicate email", func(t *testing.T) {
		chapterID := uint(7)
		mocks, registry := newTestRegistry()
		mocks.pending.On("FindByToken", mock.Anything, "dup").Return(&model.PendingRegistration{
			ID:          4,
			Email:       "a@b.com",
			ChapterID:   &chapterID,
			TokenExpiry: time.Now().Add(time.Hour),
		}, nil)
		mocks.users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
		svc := NewAuthService(registry, auth.NewJWTService("test-secret"), stubMailer{})

		_, err := svc.VerifyEmail(context.Background(), "dup")
		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		setup    func(m *testRegistry)
		wantErr  error
	}{
		{
			name:     "unknown email",
			password: "whatever",
			setup: func(m *testRegistry) {
				m.users.On("FindByEmail", mock.Anything, "user@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			password: "wrong",
			setup: func(m *testRegistry) {
				m.users.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{ID: 1, PasswordHash: string(hash)}, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "valid credentials issue a token",
			password: "correct-horse",
			setup: func(m *testRegistry) {
				m.users.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{ID: 1, PasswordHash: string(hash)}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks, registry := newTestRegistry()
			tt.setup(mocks)
			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(registry, jwtService, stubMailer{})

			token, user, err := svc.Login(context.Background(), "User@Example.com", tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, uint(1), user.ID)

			claims, err := jwtService.ValidateToken(token)
			assert.NoError(t, err)
			assert.Equal(t, uint(1), claims.UserID)
		})
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		_, registry := newTestRegistry()
		svc := NewAuthService(registry, auth.NewJWTService("test-secret"), stubMailer{})

		err := svc.ResetPassword(context.Background(), "token", "short")
		assert.ErrorIs(t, err, apperrors.ErrPasswordTooShort)
	})

	t.Run("expired reset token", func(t *testing.T) {
		expiry := time.Now().Add(-time.Minute)
		mocks, registry := newTestRegistry()
		mocks.users.On("FindByResetToken", mock.Anything, "stale").Return(&model.User{
			ID:               1,
			ResetTokenExpiry: &expiry,
		}, nil)
		svc := NewAuthService(registry, auth.NewJWTService("test-secret"), stubMailer{})

		err := svc.ResetPassword(context.Background(), "stale", "long-enough")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredToken)
	})

	t.Run("valid token replaces the hash and clears the token", func(t *testing.T) {
		token := "valid"
		expiry := time.Now().Add(30 * time.Minute)
		user := &model.User{ID: 1, ResetToken: &token, ResetTokenExpiry: &expiry}

		mocks, registry := newTestRegistry()
		mocks.users.On("FindByResetToken", mock.Anything, "valid").Return(user, nil)
		mocks.users.On("Update", mock.Anything, user).Return(nil)
		svc := NewAuthService(registry, auth.NewJWTService("test-secret"), stubMailer{})

		err := svc.ResetPassword(context.Background(), "valid", "new-password")
		assert.NoError(t, err)
		assert.Nil(t, user.ResetToken)
		assert.Nil(t, user.ResetTokenExpiry)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password")))
	})
}
