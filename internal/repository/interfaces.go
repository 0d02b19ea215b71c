package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peakform/peakform/pkg/entity"
)

type CategoriesRepositoryI interface {
	// Creates new leaderboard category. Only Name, Description, SortField, IsActive are necessary
	Create(ctx context.Context, category *entity.LeaderboardCategory) (uuid.UUID, error)
	// Searches category with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LeaderboardCategory, error)
	// Lists every category, active or not. Admin view
	List(ctx context.Context) ([]*entity.LeaderboardCategory, error)
	// Lists categories the recomputation pass iterates over
	ListActive(ctx context.Context) ([]*entity.LeaderboardCategory, error)
	// Updates category by ID (ID in category is necessary)
	Update(ctx context.Context, category *entity.LeaderboardCategory) error
	// Deletes category with id together with its entries
	Delete(ctx context.Context, id uuid.UUID) error
}

type EntriesRepositoryI interface {
	// Provides the current snapshot of a category ordered by rank
	GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.LeaderboardEntry, error)
	// Swaps the whole snapshot of a category for a new one. Delete and insert
	// run in one transaction, so a failed replace leaves the old snapshot intact
	Replace(ctx context.Context, categoryID uuid.UUID, entries []entity.LeaderboardEntry) error
}

type StreaksRepositoryI interface {
	// Searches streak row of user
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserStreak, error)
	// Inserts or updates the streak row of streak.UserID. longest_streak never regresses
	Upsert(ctx context.Context, streak *entity.UserStreak) error
	// Provides users ordered by current streak descending, up to limit rows
	TopCurrentStreaks(ctx context.Context, limit int) ([]entity.UserScore, error)
}

type WorkoutsRepositoryI interface {
	// Appends a workout record, returns its id
	Create(ctx context.Context, workout *entity.UserWorkout) (uuid.UUID, error)
	// Counts completed workouts per user, ordered by count descending, up to
	// limit rows. since == nil means all time, otherwise completed_at >= since
	TopCompletedCounts(ctx context.Context, since *time.Time, limit int) ([]entity.UserScore, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
