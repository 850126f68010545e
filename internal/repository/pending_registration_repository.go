package repository

import (
	"context"

	"gorm.io/gorm"

	"ordo/internal/model"
)

// PendingRegistrationRepository defines persistence for unverified signups.
type PendingRegistrationRepository interface {
	// Upsert replaces any existing pending row for the same email.
	Upsert(ctx context.Context, pending *model.PendingRegistration) error
	FindByEmail(ctx context.Context, email string) (*model.PendingRegistration, error)
	FindByToken(ctx context.Context, token string) (*model.PendingRegistration, error)
	Update(ctx context.Context, pending *model.PendingRegistration) error
	Delete(ctx context.Context, id uint) error
}

type pendingRegistrationRepository struct {
	db *gorm.DB
}

// NewPendingRegistrationRepository builds a GORM-backed repository.
func NewPendingRegistrationRepository(db *gorm.DB) PendingRegistrationRepository {
	return &pendingRegistrationRepository{db: db}
}

func (r *pendingRegistrationRepository) Upsert(ctx context.Context, pending *model.PendingRegistration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", pending.Email).
			Delete(&model.PendingRegistration{}).Error; err != nil {
			return err
		}
		return tx.Create(pending).Error
	})
}

func (r *pendingRegistrationRepository) FindByEmail(ctx context.Context, email string) (*model.PendingRegistration, error) {
	var pending model.PendingRegistration
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&pending).Error; err != nil {
		return nil, err
	}
	return &pending, nil
}

func (r *pendingRegistrationRepository) FindByToken(ctx context.Context, token string) (*model.PendingRegistration, error) {
	var pending model.PendingRegistration
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&pending).Error; err != nil {
		return nil, err
	}
	return &pending, nil
}

func (r *pendingRegistrationRepository) Update(ctx context.Context, pending *model.PendingRegistration) error {
	return r.db.WithContext(ctx).Save(pending).Error
}

func (r *pendingRegistrationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.PendingRegistration{}, id).Error
}
