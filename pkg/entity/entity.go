package entity

import (
	"time"

	"github.com/google/uuid"
)

// SortField selects which metric a leaderboard category ranks by.
type SortField string

const (
	SortFieldCurrentStreak         SortField = "current_streak"
	SortFieldTotalWorkouts         SortField = "total_workouts"
	SortFieldWeeklyWorkouts        SortField = "weekly_workouts"
	SortFieldMonthlyCompletionRate SortField = "monthly_completion_rate"
)

type LeaderboardCategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SortField   SortField `json:"sort_field"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LeaderboardEntry is one ranked row of a category snapshot. The whole
// per-category set is replaced as a unit on recomputation, rows are never
// mutated individually.
type LeaderboardEntry struct {
	CategoryID  uuid.UUID `json:"category_id"`
	UserID      uuid.UUID `json:"user_id"`
	Rank        int       `json:"rank"`
	Score       int       `json:"score"`
	LastUpdated time.Time `json:"last_updated"`
}

// UserStreak keeps LongestStreak >= CurrentStreak after every update.
// LastWorkoutDate carries a calendar date only, no time of day.
type UserStreak struct {
	UserID          uuid.UUID `json:"user_id"`
	CurrentStreak   int       `json:"current_streak"`
	LongestStreak   int       `json:"longest_streak"`
	LastWorkoutDate time.Time `json:"last_workout_date"`
}

type UserWorkout struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Completed     bool       `json:"completed"`
	DurationTaken int        `json:"duration_taken"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// UserScore is one aggregated metric row as returned by the ranking queries.
type UserScore struct {
	UserID uuid.UUID `json:"user_id"`
	Value  int       `json:"value"`
}
