package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peakform/peakform/internal/repository"
	"github.com/peakform/peakform/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWorkout(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	workoutsRepo := repository.NewWorkoutsRepoWithConn(mock)
	query := regexp.QuoteMeta(`INSERT INTO user_workouts (user_id, completed, duration_taken, completed_at) VALUES ($1, $2, $3, $4) RETURNING id;`)
	completedAt := time.Date(2026, time.March, 14, 18, 42, 7, 0, time.UTC)
	workout := &entity.UserWorkout{
		UserID:        uuid.New(),
		Completed:     true,
		DurationTaken: 1800,
		CompletedAt:   &completedAt,
	}
	workoutID := uuid.New()
	ctx := context.Background()

	t.Run("successful", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(workout.UserID, workout.Completed, workout.DurationTaken, workout.CompletedAt).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(workoutID))
		id, err := workoutsRepo.Create(ctx, workout)
		require.NoError(t, err)
		assert.Equal(t, workoutID, id)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(workout.UserID, workout.Completed, workout.DurationTaken, workout.CompletedAt).
			WillReturnError(errors.New("db error"))
		_, err := workoutsRepo.Create(ctx, workout)
		assert.EqualError(t, err, "creating workout db error: db error")
	})
}

func TestTopCompletedCounts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	workoutsRepo := repository.NewWorkoutsRepoWithConn(mock)
	first := uuid.New()
	second := uuid.New()
	ctx := context.Background()

	t.Run("all time", func(t *testing.T) {
		query := regexp.QuoteMeta(`WHERE completed = TRUE
				GROUP BY user_id ORDER BY score DESC LIMIT $1;`)
		mock.ExpectQuery(query).WithArgs(100).WillReturnRows(
			pgxmock.NewRows([]string{"user_id", "score"}).AddRow(first, 42).AddRow(second, 17),
		)
		scores, err := workoutsRepo.TopCompletedCounts(ctx, nil, 100)
		require.NoError(t, err)
		assert.Equal(t, []entity.UserScore{
			{UserID: first, Value: 42},
			{UserID: second, Value: 17},
		}, scores)
	})

	t.Run("windowed", func(t *testing.T) {
		query := regexp.QuoteMeta(`WHERE completed = TRUE AND completed_at >= $1
				GROUP BY user_id ORDER BY score DESC LIMIT $2;`)
		since := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(query).WithArgs(since, 100).WillReturnRows(
			pgxmock.NewRows([]string{"user_id", "score"}).AddRow(first, 5),
		)
		scores, err := workoutsRepo.TopCompletedCounts(ctx, &since, 100)
		require.NoError(t, err)
		assert.Equal(t, []entity.UserScore{{UserID: first, Value: 5}}, scores)
	})

	t.Run("db error", func(t *testing.T) {
		query := regexp.QuoteMeta(`WHERE completed = TRUE
				GROUP BY user_id ORDER BY score DESC LIMIT $1;`)
		mock.ExpectQuery(query).WithArgs(100).WillReturnError(errors.New("db error"))
		_, err := workoutsRepo.TopCompletedCounts(ctx, nil, 100)
		assert.EqualError(t, err, "counting completed workouts error: db error")
	})
}
