package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"filmorate-backend/internal/domains/reference/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository reads the seeded genres and mpa_ratings tables
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListGenres(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.pool.Query(ctx, `SELECT genre_id, name FROM genres ORDER BY genre_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	var genres []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return genres, nil
}

func (r *postgresRepository) ListMpaRatings(ctx context.Context) ([]model.Mpa, error) {
	rows, err := r.pool.Query(ctx, `SELECT mpa_id, name, description FROM mpa_ratings ORDER BY mpa_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	defer rows.Close()

	var ratings []model.Mpa
	for rows.Next() {
		var m model.Mpa
		if err := rows.Scan(&m.ID, &m.Name, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan mpa rating: %w", err)
		}
		ratings = append(ratings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return ratings, nil
}
