package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/peakform/peakform/internal/repository"
	"github.com/peakform/peakform/pkg/entity"
)

type WorkoutService struct {
	repo          repository.WorkoutsRepositoryI
	streakService StreakServiceI
}

func NewWorkoutService(workoutsRepo repository.WorkoutsRepositoryI, streakService StreakServiceI) *WorkoutService {
	if workoutsRepo == nil || streakService == nil {
		log.Fatal("on workout service provided nil dependencies")
	}
	return &WorkoutService{
		repo:          workoutsRepo,
		streakService: streakService,
	}
}

// CompleteWorkout appends a completed workout record and bumps the user's
// streak. The streak update is fire-and-forget: the workout stays recorded
// even when the streak write fails.
func (ws *WorkoutService) CompleteWorkout(ctx context.Context, userID uuid.UUID, req *CompleteWorkoutRequest) (*entity.UserWorkout, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.New("invalid workout fields: " + err.Error())
	}
	now := time.Now()
	workout := entity.UserWorkout{
		UserID:        userID,
		Completed:     true,
		DurationTaken: req.DurationTaken,
		CompletedAt:   &now,
	}
	id, err := ws.repo.Create(ctx, &workout)
	if err != nil {
		return nil, errors.New("workouts repository error: " + err.Error())
	}
	workout.ID = id
	ws.streakService.RecordCompletion(ctx, userID, now)
	return &workout, nil
}
