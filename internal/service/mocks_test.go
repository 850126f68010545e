package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ordo/internal/model"
	"ordo/internal/repository"
)

// MockChapterRepository is a mock implementation of ChapterRepository.
type MockChapterRepository struct {
	mock.Mock
}

func (m *MockChapterRepository) Create(ctx context.Context, chapter *model.Chapter) error {
	args := m.Called(ctx, chapter)
	return args.Error(0)
}

func (m *MockChapterRepository) FindByID(ctx context.Context, id uint) (*model.Chapter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Chapter), args.Error(1)
}

func (m *MockChapterRepository) FindByAccessCode(ctx context.Context, code string) (*model.Chapter, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Chapter), args.Error(1)
}

func (m *MockChapterRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChapterRepository) UpdateAccessCode(ctx context.Context, id uint, code string) error {
	args := m.Called(ctx, id, code)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByChapter(ctx context.Context, chapterID uint) ([]model.User, error) {
	args := m.Called(ctx, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockPendingRegistrationRepository is a mock implementation of PendingRegistrationRepository.
type MockPendingRegistrationRepository struct {
	mock.Mock
}

func (m *MockPendingRegistrationRepository) Upsert(ctx context.Context, pending *model.PendingRegistration) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}

func (m *MockPendingRegistrationRepository) FindByEmail(ctx context.Context, email string) (*model.PendingRegistration, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PendingRegistration), args.Error(1)
}

func (m *MockPendingRegistrationRepository) FindByToken(ctx context.Context, token string) (*model.PendingRegistration, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PendingRegistration), args.Error(1)
}

func (m *MockPendingRegistrationRepository) Update(ctx context.Context, pending *model.PendingRegistration) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}

func (m *MockPendingRegistrationRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMealRepository is a mock implementation of MealRepository.
type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) Create(ctx context.Context, meal *model.Meal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}

func (m *MockMealRepository) Update(ctx context.Context, meal *model.Meal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}

func (m *MockMealRepository) Delete(ctx context.Context, chapterID, id uint) error {
	args := m.Called(ctx, chapterID, id)
	return args.Error(0)
}

func (m *MockMealRepository) FindByID(ctx context.Context, chapterID, id uint) (*model.Meal, error) {
	args := m.Called(ctx, chapterID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealRepository) ListByChapter(ctx context.Context, chapterID uint) ([]model.Meal, error) {
	args := m.Called(ctx, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meal), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, chapterID, id uint) (*model.Review, error) {
	args := m.Called(ctx, chapterID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByUserAndMeal(ctx context.Context, userID, mealID uint) (*model.Review, error) {
	args := m.Called(ctx, userID, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByMeal(ctx context.Context, mealID uint, includeHidden bool) ([]model.Review, error) {
	args := m.Called(ctx, mealID, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByChapter(ctx context.Context, chapterID uint) ([]model.Review, error) {
	args := m.Called(ctx, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository.
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, attendance *model.MealAttendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) CreateBatch(ctx context.Context, rows []model.MealAttendance) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Update(ctx context.Context, attendance *model.MealAttendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttendanceRepository) FindByUserAndMeal(ctx context.Context, userID, mealID uint) (*model.MealAttendance, error) {
	args := m.Called(ctx, userID, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealAttendance), args.Error(1)
}

func (m *MockAttendanceRepository) ListByMeal(ctx context.Context, mealID uint) ([]model.MealAttendance, error) {
	args := m.Called(ctx, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MealAttendance), args.Error(1)
}

// MockLatePlateRepository is a mock implementation of LatePlateRepository.
type MockLatePlateRepository struct {
	mock.Mock
}

func (m *MockLatePlateRepository) Create(ctx context.Context, latePlate *model.LatePlate) error {
	args := m.Called(ctx, latePlate)
	return args.Error(0)
}

func (m *MockLatePlateRepository) Update(ctx context.Context, latePlate *model.LatePlate) error {
	args := m.Called(ctx, latePlate)
	return args.Error(0)
}

func (m *MockLatePlateRepository) FindByID(ctx context.Context, chapterID, id uint) (*model.LatePlate, error) {
	args := m.Called(ctx, chapterID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LatePlate), args.Error(1)
}

func (m *MockLatePlateRepository) FindByUserMealDate(ctx context.Context, userID, mealID uint, date time.Time) (*model.LatePlate, error) {
	args := m.Called(ctx, userID, mealID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LatePlate), args.Error(1)
}

func (m *MockLatePlateRepository) ListByMeal(ctx context.Context, mealID uint) ([]model.LatePlate, error) {
	args := m.Called(ctx, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LatePlate), args.Error(1)
}

func (m *MockLatePlateRepository) ListByUser(ctx context.Context, userID uint) ([]model.LatePlate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LatePlate), args.Error(1)
}

func (m *MockLatePlateRepository) DeleteRequestedBefore(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecommendationRepository is a mock implementation of RecommendationRepository.
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) Create(ctx context.Context, rec *model.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecommendationRepository) Delete(ctx context.Context, chapterID, id uint) error {
	args := m.Called(ctx, chapterID, id)
	return args.Error(0)
}

func (m *MockRecommendationRepository) ListByChapter(ctx context.Context, chapterID uint) ([]model.Recommendation, error) {
	args := m.Called(ctx, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recommendation), args.Error(1)
}

// MockAnalyticsRepository is a mock implementation of AnalyticsRepository.
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) Totals(ctx context.Context, chapterID uint) (*repository.LedgerTotals, error) {
	args := m.Called(ctx, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.LedgerTotals), args.Error(1)
}

func (m *MockAnalyticsRepository) TopMealsByAttendance(ctx context.Context, chapterID uint, limit int) ([]repository.MealAttendanceCount, error) {
	args := m.Called(ctx, chapterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MealAttendanceCount), args.Error(1)
}

func (m *MockAnalyticsRepository) MealRatings(ctx context.Context, chapterID uint) ([]repository.MealRating, error) {
	args := m.Called(ctx, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MealRating), args.Error(1)
}

func (m *MockAnalyticsRepository) MealAttendanceSince(ctx context.Context, chapterID uint, since time.Time) ([]repository.MealAttendanceCount, error) {
	args := m.Called(ctx, chapterID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MealAttendanceCount), args.Error(1)
}

// stubMailer is a no-op mailer; sends happen on goroutines, so tests use a
// stub rather than asserting on mail calls.
type stubMailer struct{}

func (stubMailer) SendVerification(context.Context, string, string) error { return nil }
func (stubMailer) SendReset(context.Context, string, string) error        { return nil }

// testRegistry bundles the mocks behind a DB-less registry; WithTransaction
// runs its callback directly against the same mocks.
type testRegistry struct {
	chapters   *MockChapterRepository
	users      *MockUserRepository
	pending    *MockPendingRegistrationRepository
	meals      *MockMealRepository
	reviews    *MockReviewRepository
	attendance *MockAttendanceRepository
	latePlates *MockLatePlateRepository
	recs       *MockRecommendationRepository
	analytics  *MockAnalyticsRepository
}

func newTestRegistry() (*testRegistry, *repository.Registry) {
	mocks := &testRegistry{
		chapters:   new(MockChapterRepository),
		users:      new(MockUserRepository),
		pending:    new(MockPendingRegistrationRepository),
		meals:      new(MockMealRepository),
		reviews:    new(MockReviewRepository),
		attendance: new(MockAttendanceRepository),
		latePlates: new(MockLatePlateRepository),
		recs:       new(MockRecommendationRepository),
		analytics:  new(MockAnalyticsRepository),
	}
	registry := &repository.Registry{
		Chapters:        mocks.chapters,
		Users:           mocks.users,
		Pending:         mocks.pending,
		Meals:           mocks.meals,
		Reviews:         mocks.reviews,
		Attendance:      mocks.attendance,
		LatePlates:      mocks.latePlates,
		Recommendations: mocks.recs,
		Analytics:       mocks.analytics,
	}
	return mocks, registry
}
