package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peakform/peakform/pkg/cleanup"
	"github.com/peakform/peakform/pkg/entity"
)

type WorkoutsRepository struct {
	conn PgConnection
}

func NewWorkoutsRepo(cfg DBConfig) *WorkoutsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for workoutsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for workoutsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &WorkoutsRepository{
		conn: pool,
	}
}

func NewWorkoutsRepoWithConn(conn PgConnection) *WorkoutsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for workoutsRepo: " + err.Error())
	}
	return &WorkoutsRepository{
		conn: conn,
	}
}

func (wr *WorkoutsRepository) Create(ctx context.Context, workout *entity.UserWorkout) (uuid.UUID, error) {
	var id uuid.UUID
	row := wr.conn.QueryRow(ctx,
		`INSERT INTO user_workouts (user_id, completed, duration_taken, completed_at) VALUES ($1, $2, $3, $4) RETURNING id;`,
		workout.UserID,
		workout.Completed,
		workout.DurationTaken,
		workout.CompletedAt,
	)
	if err := row.Scan(&id); err != nil {
		return uuid.UUID{}, errors.New("creating workout db error: " + err.Error())
	}
	return id, nil
}

func (wr *WorkoutsRepository) TopCompletedCounts(ctx context.Context, since *time.Time, limit int) ([]entity.UserScore, error) {
	var query string
	var args []any
	if since != nil {
		query = `SELECT user_id, COUNT(*) AS score FROM user_workouts
			WHERE completed = TRUE AND completed_at >= $1
			GROUP BY user_id ORDER BY score DESC LIMIT $2;`
		args = []any{*since, limit}
	} else {
		query = `SELECT user_id, COUNT(*) AS score FROM user_workouts
			WHERE completed = TRUE
			GROUP BY user_id ORDER BY score DESC LIMIT $1;`
		args = []any{limit}
	}
	scores := make([]entity.UserScore, 0)
	rows, err := wr.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.New("counting completed workouts error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		s := entity.UserScore{}
		err = rows.Scan(&s.UserID, &s.Value)
		if err != nil {
			return nil, errors.New("unmarshalling workout score error: " + err.Error())
		}
		scores = append(scores, s)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return scores, nil
}
