package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"ordo/internal/cache"
	apperrors "ordo/internal/errors"
	"ordo/internal/model"
	"ordo/internal/repository"
)

const (
	analyticsCacheTTL = 5 * time.Minute
	trendWeeks        = 8
	topMealsLimit     = 10
	ratedMealsLimit   = 5
)

// WeekBucket is one week of the trailing attendance trend. Weeks run Sunday
// to Saturday in server-local time.
type WeekBucket struct {
	WeekStart         time.Time `json:"week_start"`
	MealCount         int       `json:"meal_count"`
	TotalAttendance   int64     `json:"total_attendance"`
	AverageAttendance float64   `json:"average_attendance"`
}

// Summary is the per-chapter analytics rollup. Pure read side; always safe to
// recompute from the ledger.
type Summary struct {
	Totals      repository.LedgerTotals          `json:"totals"`
	TopMeals    []repository.MealAttendanceCount `json:"top_meals_by_attendance"`
	TopRated    []repository.MealRating          `json:"top_rated_meals"`
	BottomRated []repository.MealRating          `json:"bottom_rated_meals"`
	WeeklyTrend []WeekBucket                     `json:"weekly_attendance_trend"`
}

// AnalyticsService computes read-only rollups over the engagement ledger.
type AnalyticsService interface {
	Summary(ctx context.Context, principal *model.User) (*Summary, error)
}

type analyticsService struct {
	repos *repository.Registry
	cache *cache.Client
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(repos *repository.Registry, cacheClient *cache.Client) AnalyticsService {
	return &analyticsService{repos: repos, cache: cacheClient}
}

// Summary assembles the chapter rollup, cached briefly since it joins the
// whole ledger.
func (s *analyticsService) Summary(ctx context.Context, principal *model.User) (*Summary, error) {
	if principal.ChapterID == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	chapterID := *principal.ChapterID
	key := cache.AnalyticsKey(chapterID)

	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached Summary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	totals, err := s.repos.Analytics.Totals(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("ledger totals: %w", err)
	}

	topMeals, err := s.repos.Analytics.TopMealsByAttendance(ctx, chapterID, topMealsLimit)
	if err != nil {
		return nil, fmt.Errorf("top meals: %w", err)
	}

	ratings, err := s.repos.Analytics.MealRatings(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("meal ratings: %w", err)
	}
	topRated, bottomRated := rankRatings(ratings, ratedMealsLimit)

	now := time.Now()
	since := startOfWeek(now).AddDate(0, 0, -7*(trendWeeks-1))
	rows, err := s.repos.Analytics.MealAttendanceSince(ctx, chapterID, since)
	if err != nil {
		return nil, fmt.Errorf("attendance trend: %w", err)
	}

	summary := &Summary{
		Totals:      *totals,
		TopMeals:    topMeals,
		TopRated:    topRated,
		BottomRated: bottomRated,
		WeeklyTrend: bucketWeeklyAttendance(rows, now, trendWeeks),
	}

	if payload, err := json.Marshal(summary); err == nil {
		_ = s.cache.Set(ctx, key, payload, analyticsCacheTTL)
	}
	return summary, nil
}

// rankRatings returns the top and bottom n rated meals. Only meals with at
// least one review appear; ties keep query order.
func rankRatings(ratings []repository.MealRating, n int) (top, bottom []repository.MealRating) {
	byDesc := make([]repository.MealRating, len(ratings))
	copy(byDesc, ratings)
	sort.SliceStable(byDesc, func(i, j int) bool {
		return byDesc[i].AverageRating > byDesc[j].AverageRating
	})

	top = firstN(byDesc, n)

	byAsc := make([]repository.MealRating, len(ratings))
	copy(byAsc, ratings)
	sort.SliceStable(byAsc, func(i, j int) bool {
		return byAsc[i].AverageRating < byAsc[j].AverageRating
	})
	bottom = firstN(byAsc, n)
	return top, bottom
}

func firstN(rows []repository.MealRating, n int) []repository.MealRating {
	if len(rows) < n {
		n = len(rows)
	}
	out := make([]repository.MealRating, n)
	copy(out, rows[:n])
	return out
}

// bucketWeeklyAttendance folds per-meal attendance counts into the trailing
// weeks buckets, oldest first. A meal with zero attendance still counts toward
// its week's meal_count and contributes 0 to the total.
func bucketWeeklyAttendance(rows []repository.MealAttendanceCount, now time.Time, weeks int) []WeekBucket {
	newest := startOfWeek(now)
	buckets := make([]WeekBucket, weeks)
	for i := range buckets {
		buckets[i].WeekStart = newest.AddDate(0, 0, -7*(weeks-1-i))
	}
	oldest := buckets[0].WeekStart

	for _, row := range rows {
		week := startOfWeek(row.MealDate)
		if week.Before(oldest) || week.After(newest) {
			continue
		}
		// Round instead of truncate: DST shifts a week boundary by an hour.
		idx := int(math.Round(week.Sub(oldest).Hours() / (24 * 7)))
		if idx < 0 || idx >= weeks {
			continue
		}
		buckets[idx].MealCount++
		buckets[idx].TotalAttendance += row.AttendanceCount
	}

	for i := range buckets {
		if buckets[i].MealCount > 0 {
			buckets[i].AverageAttendance = float64(buckets[i].TotalAttendance) / float64(buckets[i].MealCount)
		}
	}
	return buckets
}
