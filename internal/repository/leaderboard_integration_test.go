package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	errorvalues "github.com/peakform/peakform/internal/error_values"
	"github.com/peakform/peakform/internal/repository"
	"github.com/peakform/peakform/pkg/entity"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func setupLeaderboardTestDB(t *testing.T) *testPGConfig {
	container, err := postgres.Run(context.Background(), "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("peakform"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	connStr, err := container.ConnectionString(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	connStr += "sslmode=disable"
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	err = goose.Up(conn, "../../migrations")
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	return &testPGConfig{
		connStr: connStr,
	}
}

func TestLeaderboardRepositoriesIntegrational(t *testing.T) {
	cfg := setupLeaderboardTestDB(t)
	categoriesRepo := repository.NewCategoriesRepo(cfg)
	entriesRepo := repository.NewEntriesRepo(cfg)
	streaksRepo := repository.NewStreaksRepo(cfg)
	workoutsRepo := repository.NewWorkoutsRepo(cfg)
	ctx := context.Background()

	firstUser := uuid.New()
	secondUser := uuid.New()
	var categoryID uuid.UUID

	t.Run("category lifecycle", func(t *testing.T) {
		id, err := categoriesRepo.Create(ctx, &entity.LeaderboardCategory{
			Name:      "Total Workouts",
			SortField: entity.SortFieldTotalWorkouts,
			IsActive:  true,
		})
		require.NoError(t, err)
		categoryID = id

		_, err = categoriesRepo.Create(ctx, &entity.LeaderboardCategory{
			Name:      "Total Workouts",
			SortField: entity.SortFieldTotalWorkouts,
		})
		assert.ErrorIs(t, err, errorvalues.ErrCategoryExists)

		category, err := categoriesRepo.GetByID(ctx, categoryID)
		require.NoError(t, err)
		assert.Equal(t, entity.SortFieldTotalWorkouts, category.SortField)

		active, err := categoriesRepo.ListActive(ctx)
		require.NoError(t, err)
		assert.Len(t, active, 1)

		category.IsActive = false
		require.NoError(t, categoriesRepo.Update(ctx, category))
		active, err = categoriesRepo.ListActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)

		category.IsActive = true
		require.NoError(t, categoriesRepo.Update(ctx, category))
	})

	t.Run("workout counts", func(t *testing.T) {
		now := time.Now()
		old := now.AddDate(0, -2, 0)
		for i := 0; i < 3; i++ {
			_, err := workoutsRepo.Create(ctx, &entity.UserWorkout{
				UserID: firstUser, Completed: true, DurationTaken: 600, CompletedAt: &now,
			})
			require.NoError(t, err)
		}
		_, err := workoutsRepo.Create(ctx, &entity.UserWorkout{
			UserID: secondUser, Completed: true, DurationTaken: 600, CompletedAt: &now,
		})
		require.NoError(t, err)
		_, err = workoutsRepo.Create(ctx, &entity.UserWorkout{
			UserID: secondUser, Completed: true, DurationTaken: 600, CompletedAt: &old,
		})
		require.NoError(t, err)
		// Incomplete workouts never count
		_, err = workoutsRepo.Create(ctx, &entity.UserWorkout{
			UserID: secondUser, Completed: false, DurationTaken: 60,
		})
		require.NoError(t, err)

		scores, err := workoutsRepo.TopCompletedCounts(ctx, nil, 100)
		require.NoError(t, err)
		require.Len(t, scores, 2)
		assert.Equal(t, entity.UserScore{UserID: firstUser, Value: 3}, scores[0])
		assert.Equal(t, entity.UserScore{UserID: secondUser, Value: 2}, scores[1])

		since := now.AddDate(0, -1, 0)
		windowed, err := workoutsRepo.TopCompletedCounts(ctx, &since, 100)
		require.NoError(t, err)
		require.Len(t, windowed, 2)
		assert.Equal(t, 1, windowed[1].Value)
	})

	t.Run("streak upsert keeps longest", func(t *testing.T) {
		day := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
		require.NoError(t, streaksRepo.Upsert(ctx, &entity.UserStreak{
			UserID: firstUser, CurrentStreak: 6, LongestStreak: 6, LastWorkoutDate: day,
		}))
		// A reset must not pull longest_streak down
		require.NoError(t, streaksRepo.Upsert(ctx, &entity.UserStreak{
			UserID: firstUser, CurrentStreak: 1, LongestStreak: 1, LastWorkoutDate: day.AddDate(0, 0, 5),
		}))
		streak, err := streaksRepo.GetByUserID(ctx, firstUser)
		require.NoError(t, err)
		assert.Equal(t, 1, streak.CurrentStreak)
		assert.Equal(t, 6, streak.LongestStreak)

		_, err = streaksRepo.GetByUserID(ctx, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrStreakNotFound)

		scores, err := streaksRepo.TopCurrentStreaks(ctx, 100)
		require.NoError(t, err)
		require.Len(t, scores, 1)
		assert.Equal(t, firstUser, scores[0].UserID)
	})

	t.Run("entries snapshot replace", func(t *testing.T) {
		now := time.Now().UTC()
		first := []entity.LeaderboardEntry{
			{CategoryID: categoryID, UserID: firstUser, Rank: 1, Score: 3, LastUpdated: now},
			{CategoryID: categoryID, UserID: secondUser, Rank: 2, Score: 2, LastUpdated: now},
		}
		require.NoError(t, entriesRepo.Replace(ctx, categoryID, first))

		second := []entity.LeaderboardEntry{
			{CategoryID: categoryID, UserID: secondUser, Rank: 1, Score: 9, LastUpdated: now},
		}
		require.NoError(t, entriesRepo.Replace(ctx, categoryID, second))

		entries, err := entriesRepo.GetByCategory(ctx, categoryID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, secondUser, entries[0].UserID)
		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, 9, entries[0].Score)
	})

	t.Run("category deletion cascades", func(t *testing.T) {
		require.NoError(t, categoriesRepo.Delete(ctx, categoryID))
		entries, err := entriesRepo.GetByCategory(ctx, categoryID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
