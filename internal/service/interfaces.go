package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peakform/peakform/pkg/entity"
)

type CreateCategoryRequest struct {
	Name        string `validate:"required,min=3,max=100"`
	Description string `validate:"max=500"`
	SortField   string `validate:"required,sort_field"`
	IsActive    bool
}

type UpdateCategoryRequest struct {
	Name        string `validate:"required,min=3,max=100"`
	Description string `validate:"max=500"`
	SortField   string `validate:"required,sort_field"`
	IsActive    bool
}

type CompleteWorkoutRequest struct {
	DurationTaken int `validate:"gte=0"`
}

// CategoryResultStatus is the outcome of one category within a recomputation pass.
type CategoryResultStatus string

const (
	StatusSuccess CategoryResultStatus = "success"
	StatusSkipped CategoryResultStatus = "skipped"
	StatusError   CategoryResultStatus = "error"
)

type CategoryResult struct {
	CategoryID uuid.UUID            `json:"category_id"`
	Category   string               `json:"category"`
	Status     CategoryResultStatus `json:"status"`
	Entries    int                  `json:"entries,omitempty"`
	Message    string               `json:"message,omitempty"`
}

type StreakServiceI interface {
	// Applies one completed-workout event to the user's streak. Best effort:
	// repository failures are logged and swallowed, the returned streak is nil
	RecordCompletion(ctx context.Context, userID uuid.UUID, completedAt time.Time) *entity.UserStreak
	// Current streak row of the user. A user with no completions yet gets a zero row
	GetStreak(ctx context.Context, userID uuid.UUID) (*entity.UserStreak, error)
}

type LeaderboardServiceI interface {
	// Recomputes every active category sequentially and reports per-category outcomes.
	// Only a failure to list the categories themselves aborts the whole pass
	RecomputeAll(ctx context.Context) ([]CategoryResult, error)
	// Current snapshot of one category
	GetLeaderboard(ctx context.Context, categoryID uuid.UUID) (*entity.LeaderboardCategory, []entity.LeaderboardEntry, error)
	// Active categories for the public listing
	ListActiveCategories(ctx context.Context) ([]*entity.LeaderboardCategory, error)
}

type CategoryServiceI interface {
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*entity.LeaderboardCategory, error)
	ListCategories(ctx context.Context) ([]*entity.LeaderboardCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*entity.LeaderboardCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type WorkoutServiceI interface {
	// Records a completed workout and bumps the user's streak as a side effect
	CompleteWorkout(ctx context.Context, userID uuid.UUID, req *CompleteWorkoutRequest) (*entity.UserWorkout, error)
}
