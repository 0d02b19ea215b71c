package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/peakform/peakform/internal/repository/mocks"
	"github.com/peakform/peakform/internal/service"
	"github.com/peakform/peakform/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

// streakRecorder counts RecordCompletion calls so the fire-and-forget contract
// can be asserted without a real streak stack.
type streakRecorder struct {
	calls int
}

func (sr *streakRecorder) RecordCompletion(ctx context.Context, userID uuid.UUID, completedAt time.Time) *entity.UserStreak {
	sr.calls++
	return nil
}

func (sr *streakRecorder) GetStreak(ctx context.Context, userID uuid.UUID) (*entity.UserStreak, error) {
	return nil, errors.New("not implemented")
}

func TestCompleteWorkout(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	workoutsRepo := mocks.NewMockWorkoutsRepositoryI(ctrl)
	streaks := &streakRecorder{}
	serv := service.NewWorkoutService(workoutsRepo, streaks)
	userID := uuid.New()
	workoutID := uuid.New()
	ctx := context.Background()

	t.Run("records workout and bumps streak", func(t *testing.T) {
		workoutsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, workout *entity.UserWorkout) (uuid.UUID, error) {
				assert.Equal(t, userID, workout.UserID)
				assert.True(t, workout.Completed)
				assert.Equal(t, 1800, workout.DurationTaken)
				require.NotNil(t, workout.CompletedAt)
				return workoutID, nil
			})
		workout, err := serv.CompleteWorkout(ctx, userID, &service.CompleteWorkoutRequest{DurationTaken: 1800})
		require.NoError(t, err)
		assert.Equal(t, workoutID, workout.ID)
		assert.Equal(t, 1, streaks.calls)
	})

	t.Run("repository failure keeps streak untouched", func(t *testing.T) {
		before := streaks.calls
		workoutsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.UUID{}, errors.New("db down"))
		_, err := serv.CompleteWorkout(ctx, userID, &service.CompleteWorkoutRequest{DurationTaken: 600})
		assert.EqualError(t, err, "workouts repository error: db down")
		assert.Equal(t, before, streaks.calls)
	})

	t.Run("negative duration rejected", func(t *testing.T) {
		before := streaks.calls
		_, err := serv.CompleteWorkout(ctx, userID, &service.CompleteWorkoutRequest{DurationTaken: -5})
		assert.Error(t, err)
		assert.Equal(t, before, streaks.calls)
	})
}
