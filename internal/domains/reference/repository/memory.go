package repository

import (
	"context"

	"filmorate-backend/internal/domains/reference/model"
)

type memoryRepository struct{}

// NewMemoryRepository serves the built-in tables
func NewMemoryRepository() RepositoryInterface {
	return memoryRepository{}
}

func (memoryRepository) ListGenres(ctx context.Context) ([]model.Genre, error) {
	out := make([]model.Genre, len(model.DefaultGenres))
	copy(out, model.DefaultGenres)
	return out, nil
}

func (memoryRepository) ListMpaRatings(ctx context.Context) ([]model.Mpa, error) {
	out := make([]model.Mpa, len(model.DefaultMpaRatings))
	copy(out, model.DefaultMpaRatings)
	return out, nil
}
