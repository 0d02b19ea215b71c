package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/peakform/peakform/internal/error_values"
	"github.com/peakform/peakform/pkg/cleanup"
	"github.com/peakform/peakform/pkg/entity"
)

type StreaksRepository struct {
	conn PgConnection
}

func NewStreaksRepo(cfg DBConfig) *StreaksRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for streaksRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for streaksRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &StreaksRepository{
		conn: pool,
	}
}

func NewStreaksRepoWithConn(conn PgConnection) *StreaksRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for streaksRepo: " + err.Error())
	}
	return &StreaksRepository{
		conn: conn,
	}
}

func (sr *StreaksRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserStreak, error) {
	var streak entity.UserStreak
	streak.UserID = userID
	row := sr.conn.QueryRow(ctx,
		`SELECT current_streak, longest_streak, last_workout_date FROM user_streaks WHERE user_id = $1;`, userID)
	if err := row.Scan(&streak.CurrentStreak, &streak.LongestStreak, &streak.LastWorkoutDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrStreakNotFound
		}
		return nil, errors.New("getting streak by user id error: " + err.Error())
	}
	return &streak, nil
}

// Upsert writes the streak row of streak.UserID. GREATEST on longest_streak
// keeps it from regressing when two completions race on the same row.
func (sr *StreaksRepository) Upsert(ctx context.Context, streak *entity.UserStreak) error {
	_, err := sr.conn.Exec(ctx,
		`INSERT INTO user_streaks (user_id, current_streak, longest_streak, last_workout_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = GREATEST(user_streaks.longest_streak, EXCLUDED.longest_streak),
			last_workout_date = EXCLUDED.last_workout_date,
			updated_at = NOW();`,
		streak.UserID,
		streak.CurrentStreak,
		streak.LongestStreak,
		streak.LastWorkoutDate,
	)
	if err != nil {
		return errors.New("upserting streak error: " + err.Error())
	}
	return nil
}

func (sr *StreaksRepository) TopCurrentStreaks(ctx context.Context, limit int) ([]entity.UserScore, error) {
	scores := make([]entity.UserScore, 0)
	rows, err := sr.conn.Query(ctx,
		`SELECT user_id, current_streak FROM user_streaks WHERE current_streak > 0 ORDER BY current_streak DESC LIMIT $1;`,
		limit,
	)
	if err != nil {
		return nil, errors.New("getting top streaks error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		s := entity.UserScore{}
		err = rows.Scan(&s.UserID, &s.Value)
		if err != nil {
			return nil, errors.New("unmarshalling streak score error: " + err.Error())
		}
		scores = append(scores, s)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return scores, nil
}
