package repository

import (
	"context"

	"gorm.io/gorm"
)

// Registry bundles all repositories so multi-entity mutations can share one
// transaction (review + implicit attendance, meal + member fan-out).
type Registry struct {
	db *gorm.DB

	Chapters        ChapterRepository
	Users           UserRepository
	Pending         PendingRegistrationRepository
	Meals           MealRepository
	Reviews         ReviewRepository
	Attendance      AttendanceRepository
	LatePlates      LatePlateRepository
	Recommendations RecommendationRepository
	Analytics       AnalyticsRepository
}

// NewRegistry builds GORM-backed repositories over the given DB handle.
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		db:              db,
		Chapters:        NewChapterRepository(db),
		Users:           NewUserRepository(db),
		Pending:         NewPendingRegistrationRepository(db),
		Meals:           NewMealRepository(db),
		Reviews:         NewReviewRepository(db),
		Attendance:      NewAttendanceRepository(db),
		LatePlates:      NewLatePlateRepository(db),
		Recommendations: NewRecommendationRepository(db),
		Analytics:       NewAnalyticsRepository(db),
	}
}

// WithTransaction runs fn inside a database transaction, handing it a registry
// scoped to that transaction. Any error rolls the whole unit of work back.
// Registries assembled without a DB handle (unit tests with mock repositories)
// run fn against the registry itself.
func (r *Registry) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *Registry) error) error {
	if r.db == nil {
		return fn(ctx, r)
	}
	return r.db.WithContext(ctx).Transaction(func(txDB *gorm.DB) error {
		return fn(ctx, NewRegistry(txDB))
	})
}
