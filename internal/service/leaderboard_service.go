package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/peakform/peakform/internal/error_values"
	"github.com/peakform/peakform/internal/repository"
	"github.com/peakform/peakform/pkg/entity"
)

// leaderboardSize caps every category snapshot at the top 100 users.
const leaderboardSize = 100

type LeaderboardService struct {
	categoriesRepo repository.CategoriesRepositoryI
	entriesRepo    repository.EntriesRepositoryI
	streaksRepo    repository.StreaksRepositoryI
	workoutsRepo   repository.WorkoutsRepositoryI
}

func NewLeaderboardService(
	categoriesRepo repository.CategoriesRepositoryI,
	entriesRepo repository.EntriesRepositoryI,
	streaksRepo repository.StreaksRepositoryI,
	workoutsRepo repository.WorkoutsRepositoryI,
) *LeaderboardService {
	if categoriesRepo == nil || entriesRepo == nil || streaksRepo == nil || workoutsRepo == nil {
		log.Fatal("on leaderboard service provided nil repos")
	}
	return &LeaderboardService{
		categoriesRepo: categoriesRepo,
		entriesRepo:    entriesRepo,
		streaksRepo:    streaksRepo,
		workoutsRepo:   workoutsRepo,
	}
}

// RecomputeAll runs one recomputation pass over every active category, in the
// order the listing query returns them. Categories are independent units of
// work: one failing leaves the rest running and only that category's old
// snapshot in place. An empty category list is a no-op, not an error.
func (ls *LeaderboardService) RecomputeAll(ctx context.Context) ([]CategoryResult, error) {
	categories, err := ls.categoriesRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.New("categories repository error: " + err.Error())
	}
	results := make([]CategoryResult, 0, len(categories))
	for _, category := range categories {
		results = append(results, ls.recomputeCategory(ctx, category))
	}
	return results, nil
}

func (ls *LeaderboardService) recomputeCategory(ctx context.Context, category *entity.LeaderboardCategory) CategoryResult {
	result := CategoryResult{
		CategoryID: category.ID,
		Category:   category.Name,
	}
	scores, err := ls.fetchScores(ctx, category.SortField)
	if err != nil {
		slog.Error("leaderboard metric fetch failed",
			slog.String("category", category.Name),
			slog.String("error", err.Error()),
		)
		result.Status = StatusError
		result.Message = err.Error()
		return result
	}
	// A transient zero-data read must not wipe a populated leaderboard.
	if len(scores) == 0 {
		result.Status = StatusSkipped
		result.Message = "no scores for this category"
		return result
	}
	if len(scores) > leaderboardSize {
		scores = scores[:leaderboardSize]
	}
	now := time.Now()
	entries := make([]entity.LeaderboardEntry, 0, len(scores))
	for i, score := range scores {
		entries = append(entries, entity.LeaderboardEntry{
			CategoryID:  category.ID,
			UserID:      score.UserID,
			Rank:        i + 1,
			Score:       score.Value,
			LastUpdated: now,
		})
	}
	if err := ls.entriesRepo.Replace(ctx, category.ID, entries); err != nil {
		slog.Error("leaderboard replace failed",
			slog.String("category", category.Name),
			slog.String("error", err.Error()),
		)
		result.Status = StatusError
		result.Message = err.Error()
		return result
	}
	result.Status = StatusSuccess
	result.Entries = len(entries)
	return result
}

// fetchScores dispatches on the category's sort field. Every branch returns
// rows already ordered descending and limited to the snapshot size; rank is
// the position in that order, ties fall wherever the query left them.
func (ls *LeaderboardService) fetchScores(ctx context.Context, sortField entity.SortField) ([]entity.UserScore, error) {
	switch sortField {
	case entity.SortFieldCurrentStreak:
		return ls.streaksRepo.TopCurrentStreaks(ctx, leaderboardSize)
	case entity.SortFieldTotalWorkouts:
		return ls.workoutsRepo.TopCompletedCounts(ctx, nil, leaderboardSize)
	case entity.SortFieldWeeklyWorkouts:
		since := startOfWeek(time.Now())
		return ls.workoutsRepo.TopCompletedCounts(ctx, &since, leaderboardSize)
	case entity.SortFieldMonthlyCompletionRate:
		// Despite the name this is a raw completed-workout count for the
		// current month, there is no denominator.
		since := startOfMonth(time.Now())
		return ls.workoutsRepo.TopCompletedCounts(ctx, &since, leaderboardSize)
	default:
		return nil, errorvalues.ErrUnknownSortField
	}
}

func (ls *LeaderboardService) GetLeaderboard(ctx context.Context, categoryID uuid.UUID) (*entity.LeaderboardCategory, []entity.LeaderboardEntry, error) {
	category, err := ls.categoriesRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return nil, nil, err
		}
		return nil, nil, errors.New("categories repository error: " + err.Error())
	}
	entries, err := ls.entriesRepo.GetByCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, errors.New("entries repository error: " + err.Error())
	}
	return category, entries, nil
}

func (ls *LeaderboardService) ListActiveCategories(ctx context.Context) ([]*entity.LeaderboardCategory, error) {
	categories, err := ls.categoriesRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return categories, nil
}

// startOfWeek is Sunday 00:00 of t's week, in t's location.
func startOfWeek(t time.Time) time.Time {
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
