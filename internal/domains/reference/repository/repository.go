package repository

import (
	"context"

	"filmorate-backend/internal/domains/reference/model"
)

// RepositoryInterface loads the static reference tables.
// Both lists come back in ascending id order.
type RepositoryInterface interface {
	ListGenres(ctx context.Context) ([]model.Genre, error)
	ListMpaRatings(ctx context.Context) ([]model.Mpa, error)
}
