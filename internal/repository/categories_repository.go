package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/peakform/peakform/internal/error_values"
	"github.com/peakform/peakform/pkg/cleanup"
	"github.com/peakform/peakform/pkg/entity"
)

type CategoriesRepository struct {
	conn PgConnection
}

func NewCategoriesRepo(cfg DBConfig) *CategoriesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for categoriesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for categoriesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &CategoriesRepository{
		conn: pool,
	}
}

func NewCategoriesRepoWithConn(conn PgConnection) *CategoriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for categoriesRepo: " + err.Error())
	}
	return &CategoriesRepository{
		conn: conn,
	}
}

func (cr *CategoriesRepository) Create(ctx context.Context, category *entity.LeaderboardCategory) (uuid.UUID, error) {
	var id uuid.UUID
	row := cr.conn.QueryRow(ctx,
		`INSERT INTO leaderboard_categories (name, description, sort_field, is_active) VALUES ($1, $2, $3, $4) RETURNING id;`,
		category.Name,
		category.Description,
		category.SortField,
		category.IsActive,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return uuid.UUID{}, errorvalues.ErrCategoryExists
			}
		}
		return uuid.UUID{}, errors.New("creating category db error: " + err.Error())
	}
	return id, nil
}

func (cr *CategoriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LeaderboardCategory, error) {
	var category entity.LeaderboardCategory
	category.ID = id
	row := cr.conn.QueryRow(ctx,
		`SELECT name, description, sort_field, is_active, created_at, updated_at FROM leaderboard_categories WHERE id = $1;`, id)
	if err := row.Scan(&category.Name, &category.Description, &category.SortField, &category.IsActive, &category.CreatedAt, &category.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrCategoryNotFound
		}
		return nil, errors.New("getting category by id error: " + err.Error())
	}
	return &category, nil
}

func (cr *CategoriesRepository) List(ctx context.Context) ([]*entity.LeaderboardCategory, error) {
	return cr.list(ctx,
		`SELECT id, name, description, sort_field, is_active, created_at, updated_at FROM leaderboard_categories ORDER BY created_at;`)
}

func (cr *CategoriesRepository) ListActive(ctx context.Context) ([]*entity.LeaderboardCategory, error) {
	return cr.list(ctx,
		`SELECT id, name, description, sort_field, is_active, created_at, updated_at FROM leaderboard_categories WHERE is_active = TRUE ORDER BY created_at;`)
}

func (cr *CategoriesRepository) list(ctx context.Context, query string) ([]*entity.LeaderboardCategory, error) {
	categories := make([]*entity.LeaderboardCategory, 0)
	rows, err := cr.conn.Query(ctx, query)
	if err != nil {
		return nil, errors.New("listing categories error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		c := entity.LeaderboardCategory{}
		err = rows.Scan(&c.ID, &c.Name, &c.Description, &c.SortField, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling category error: " + err.Error())
		}
		categories = append(categories, &c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return categories, nil
}

func (cr *CategoriesRepository) Update(ctx context.Context, category *entity.LeaderboardCategory) error {
	ct, err := cr.conn.Exec(ctx,
		`UPDATE leaderboard_categories SET name = $1, description = $2, sort_field = $3, is_active = $4, updated_at = NOW() WHERE id = $5;`,
		category.Name, category.Description, category.SortField, category.IsActive, category.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return errorvalues.ErrCategoryExists
		}
		return errors.New("error updating category: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrCategoryNotFound
	}
	return nil
}

func (cr *CategoriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := cr.conn.Exec(ctx, `DELETE FROM leaderboard_categories WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting category: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrCategoryNotFound
	}
	return nil
}
