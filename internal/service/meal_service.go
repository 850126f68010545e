package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ordo/internal/cache"
	apperrors "ordo/internal/errors"
	"ordo/internal/model"
	"ordo/internal/repository"
	"ordo/internal/storage"
)

const menuCacheTTL = 5 * time.Minute

// ImageUpload carries an uploaded meal image into the service layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// MealInput is the payload for creating a meal.
type MealInput struct {
	MealDate             time.Time
	MealType             string
	DishName             string
	Description          string
	LatePlateHoursBefore *int
	Image                *ImageUpload
}

// MealUpdate is a partial update; nil fields are left unchanged.
type MealUpdate struct {
	MealDate             *time.Time
	MealType             *string
	DishName             *string
	Description          *string
	LatePlateHoursBefore *int
	Image                *ImageUpload
}

// MealService covers the catalog: the weekly menu plus admin meal management.
type MealService interface {
	Menu(ctx context.Context, principal *model.User) ([]model.Meal, error)
	Get(ctx context.Context, principal *model.User, mealID uint) (*model.Meal, error)
	Create(ctx context.Context, principal *model.User, input MealInput) (*model.Meal, error)
	Update(ctx context.Context, principal *model.User, mealID uint, update MealUpdate) (*model.Meal, error)
	Delete(ctx context.Context, principal *model.User, mealID uint) error
}

type mealService struct {
	repos  *repository.Registry
	cache  *cache.Client
	images storage.ImageStore
}

// NewMealService creates a new meal service.
func NewMealService(repos *repository.Registry, cacheClient *cache.Client, images storage.ImageStore) MealService {
	return &mealService{
		repos:  repos,
		cache:  cacheClient,
		images: images,
	}
}

// Menu lists the chapter's meals ordered by date.
func (s *mealService) Menu(ctx context.Context, principal *model.User) ([]model.Meal, error) {
	if principal.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	key := cache.MenuKey(*principal.ChapterID)

	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Meal
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	meals, err := s.repos.Meals.ListByChapter(ctx, *principal.ChapterID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	if payload, err := json.Marshal(meals); err == nil {
		_ = s.cache.Set(ctx, key, payload, menuCacheTTL)
	}
	return meals, nil
}

// Get returns one meal, scoped to the caller's chapter.
func (s *mealService) Get(ctx context.Context, principal *model.User, mealID uint) (*model.Meal, error) {
	return findChapterMeal(ctx, s.repos.Meals, principal, mealID)
}

// Create adds a meal and marks every current chapter member as attending in
// the same transaction; the chapter runs a default-opt-in model.
func (s *mealService) Create(ctx context.Context, principal *model.User, input MealInput) (*model.Meal, error) {
	if principal.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}

	meal := &model.Meal{
		ChapterID:            *principal.ChapterID,
		MealDate:             input.MealDate,
		MealType:             input.MealType,
		DishName:             input.DishName,
		Description:          input.Description,
		LatePlateHoursBefore: input.LatePlateHoursBefore,
	}

	if input.Image != nil {
		url, err := s.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		meal.ImageURL = url
	}

	err := s.repos.WithTransaction(ctx, func(ctx context.Context, tx *repository.Registry) error {
		if err := tx.Meals.Create(ctx, meal); err != nil {
			return fmt.Errorf("create meal: %w", err)
		}
		members, err := tx.Users.ListByChapter(ctx, meal.ChapterID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		rows := make([]model.MealAttendance, 0, len(members))
		for _, member := range members {
			rows = append(rows, model.MealAttendance{
				MealID:    meal.ID,
				UserID:    member.ID,
				Confirmed: model.AttendanceUnresolved,
			})
		}
		if err := tx.Attendance.CreateBatch(ctx, rows); err != nil {
			return fmt.Errorf("fan out attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, meal.ChapterID)
	return meal, nil
}

// Update applies a partial meal update, replacing the image when a new one is
// uploaded.
func (s *mealService) Update(ctx context.Context, principal *model.User, mealID uint, update MealUpdate) (*model.Meal, error) {
	meal, err := findChapterMeal(ctx, s.repos.Meals, principal, mealID)
	if err != nil {
		return nil, err
	}

	if update.MealDate != nil {
		meal.MealDate = *update.MealDate
	}
	if update.MealType != nil {
		meal.MealType = *update.MealType
	}
	if update.DishName != nil {
		meal.DishName = *update.DishName
	}
	if update.Description != nil {
		meal.Description = *update.Description
	}
	if update.LatePlateHoursBefore != nil {
		meal.LatePlateHoursBefore = update.LatePlateHoursBefore
	}
	oldImageURL := meal.ImageURL
	if update.Image != nil {
		url, err := s.storeImage(ctx, update.Image)
		if err != nil {
			return nil, err
		}
		meal.ImageURL = url
	}

	if err := s.repos.Meals.Update(ctx, meal); err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}
	if update.Image != nil && oldImageURL != meal.ImageURL {
		s.removeImage(ctx, oldImageURL)
	}

	s.invalidate(ctx, meal.ChapterID)
	return meal, nil
}

// Delete removes a meal and its stored image; the schema cascades to its
// reviews, late plates, and attendance rows.
func (s *mealService) Delete(ctx context.Context, principal *model.User, mealID uint) error {
	meal, err := findChapterMeal(ctx, s.repos.Meals, principal, mealID)
	if err != nil {
		return err
	}
	if err := s.repos.Meals.Delete(ctx, meal.ChapterID, meal.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMealNotFound
		}
		return fmt.Errorf("delete meal: %w", err)
	}
	s.removeImage(ctx, meal.ImageURL)
	s.invalidate(ctx, meal.ChapterID)
	return nil
}

func (s *mealService) storeImage(ctx context.Context, img *ImageUpload) (string, error) {
	key := uuid.NewString() + filepath.Ext(img.Filename)
	url, err := s.images.Store(ctx, key, img.Reader, img.Size, img.ContentType)
	if err != nil {
		log.Printf("store meal image: %v", err)
		return "", apperrors.ErrImageUploadFailed
	}
	return url, nil
}

// removeImage best-effort deletes a stored image by its serving URL. Keys are
// flat uuid filenames, so the URL's last path segment is the object key.
func (s *mealService) removeImage(ctx context.Context, imageURL string) {
	if imageURL == "" || s.images == nil {
		return
	}
	key := path.Base(imageURL)
	if err := s.images.Delete(ctx, key); err != nil {
		log.Printf("delete meal image %s: %v", key, err)
	}
}

func (s *mealService) invalidate(ctx context.Context, chapterID uint) {
	_ = s.cache.Delete(ctx, cache.MenuKey(chapterID), cache.AnalyticsKey(chapterID))
}

// findChapterMeal resolves a meal within the principal's chapter; anything
// outside it reads as not found.
func findChapterMeal(ctx context.Context, meals repository.MealRepository, principal *model.User, mealID uint) (*model.Meal, error) {
	if principal.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	meal, err := meals.FindByID(ctx, *principal.ChapterID, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMealNotFound
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}
	return meal, nil
}
