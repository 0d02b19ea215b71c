package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peakform/peakform/pkg/cleanup"
	"github.com/peakform/peakform/pkg/entity"
)

type EntriesRepository struct {
	conn PgConnection
}

func NewEntriesRepo(cfg DBConfig) *EntriesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for entriesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for entriesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &EntriesRepository{
		conn: pool,
	}
}

func NewEntriesRepoWithConn(conn PgConnection) *EntriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for entriesRepo: " + err.Error())
	}
	return &EntriesRepository{
		conn: conn,
	}
}

func (er *EntriesRepository) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.LeaderboardEntry, error) {
	entries := make([]entity.LeaderboardEntry, 0)
	rows, err := er.conn.Query(ctx,
		`SELECT user_id, rank, score, last_updated FROM leaderboard_entries WHERE category_id = $1 ORDER BY rank;`,
		categoryID,
	)
	if err != nil {
		return nil, errors.New("getting entries by category error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		e := entity.LeaderboardEntry{CategoryID: categoryID}
		err = rows.Scan(&e.UserID, &e.Rank, &e.Score, &e.LastUpdated)
		if err != nil {
			return nil, errors.New("unmarshalling entry error: " + err.Error())
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return entries, nil
}

// Replace swaps a category's snapshot inside one transaction: the old rows stay
// in place unless the whole new set commits.
func (er *EntriesRepository) Replace(ctx context.Context, categoryID uuid.UUID, entries []entity.LeaderboardEntry) error {
	tx, err := er.conn.Begin(ctx)
	if err != nil {
		return errors.New("starting entries replace tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM leaderboard_entries WHERE category_id = $1;`, categoryID)
	if err != nil {
		return errors.New("deleting old entries error: " + err.Error())
	}
	for _, e := range entries {
		_, err = tx.Exec(ctx,
			`INSERT INTO leaderboard_entries (category_id, user_id, rank, score, last_updated) VALUES ($1, $2, $3, $4, $5);`,
			categoryID, e.UserID, e.Rank, e.Score, e.LastUpdated,
		)
		if err != nil {
			return errors.New("inserting new entry error: " + err.Error())
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing entries replace error: " + err.Error())
	}
	return nil
}
