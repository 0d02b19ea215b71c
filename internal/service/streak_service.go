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

type StreakService struct {
	repo repository.StreaksRepositoryI
}

func NewStreakService(streaksRepo repository.StreaksRepositoryI) *StreakService {
	if streaksRepo == nil {
		log.Fatal("provided nil streaksRepo")
	}
	return &StreakService{
		repo: streaksRepo,
	}
}

// RecordCompletion transitions the user's streak for a workout completed at
// completedAt. Only the calendar date matters: a completion dated yesterday or
// today increments the counter, anything older resets it to 1. A second
// completion on the same day still increments, the counter tracks completion
// events rather than distinct days.
//
// Best effort by contract: the completion flow that triggers this must succeed
// whether or not the streak row could be read or written, so every repository
// error ends up in the log and nowhere else.
func (ss *StreakService) RecordCompletion(ctx context.Context, userID uuid.UUID, completedAt time.Time) *entity.UserStreak {
	today := dateOnly(completedAt)
	streak, err := ss.repo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, errorvalues.ErrStreakNotFound) {
		slog.Error("streak update skipped: lookup failed",
			slog.String("uid", userID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if streak == nil {
		streak = &entity.UserStreak{
			UserID:          userID,
			CurrentStreak:   1,
			LongestStreak:   1,
			LastWorkoutDate: today,
		}
	} else {
		last := dateOnly(streak.LastWorkoutDate)
		yesterday := today.AddDate(0, 0, -1)
		if last.Equal(yesterday) || last.Equal(today) {
			streak.CurrentStreak++
		} else {
			streak.CurrentStreak = 1
		}
		if streak.CurrentStreak > streak.LongestStreak {
			streak.LongestStreak = streak.CurrentStreak
		}
		streak.LastWorkoutDate = today
	}
	if err := ss.repo.Upsert(ctx, streak); err != nil {
		slog.Error("streak update skipped: write failed",
			slog.String("uid", userID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return streak
}

func (ss *StreakService) GetStreak(ctx context.Context, userID uuid.UUID) (*entity.UserStreak, error) {
	streak, err := ss.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrStreakNotFound) {
			return &entity.UserStreak{UserID: userID}, nil
		}
		return nil, errors.New("streaks repository error: " + err.Error())
	}
	return streak, nil
}

// dateOnly strips the time of day, keeping the calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
