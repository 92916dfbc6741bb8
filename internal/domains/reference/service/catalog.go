package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"filmorate-backend/internal/domains/reference/model"
	"filmorate-backend/internal/domains/reference/repository"
)

// ServiceInterface answers lookups against the genre and MPA tables
type ServiceInterface interface {
	Genres() []model.Genre
	Genre(id int64) (model.Genre, error)
	MpaRatings() []model.Mpa
	Mpa(id int64) (model.Mpa, error)

	// ResolveGenres maps ids onto genres, dropping duplicates.
	// The result is ordered by genre id.
	ResolveGenres(ids []int64) ([]model.Genre, error)
}

// Catalog is an immutable snapshot of the reference tables.
// The tables never change at runtime so it is loaded once at startup.
type Catalog struct {
	genres  []model.Genre
	ratings []model.Mpa

	genreByID map[int64]model.Genre
	mpaByID   map[int64]model.Mpa
}

// LoadCatalog reads both tables through repo
func LoadCatalog(ctx context.Context, repo repository.RepositoryInterface) (*Catalog, error) {
	genres, err := repo.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	ratings, err := repo.ListMpaRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load mpa ratings: %w", err)
	}

	c := &Catalog{
		genres:    genres,
		ratings:   ratings,
		genreByID: make(map[int64]model.Genre, len(genres)),
		mpaByID:   make(map[int64]model.Mpa, len(ratings)),
	}
	for _, g := range genres {
		c.genreByID[g.ID] = g
	}
	for _, m := range ratings {
		c.mpaByID[m.ID] = m
	}

	log.Info().
		Int("genres", len(genres)).
		Int("mpa_ratings", len(ratings)).
		Msg("Reference catalog loaded")

	return c, nil
}

func (c *Catalog) Genres() []model.Genre {
	out := make([]model.Genre, len(c.genres))
	copy(out, c.genres)
	return out
}

func (c *Catalog) Genre(id int64) (model.Genre, error) {
	g, ok := c.genreByID[id]
	if !ok {
		return model.Genre{}, model.NewGenreNotFound(id)
	}
	return g, nil
}

func (c *Catalog) MpaRatings() []model.Mpa {
	out := make([]model.Mpa, len(c.ratings))
	copy(out, c.ratings)
	return out
}

func (c *Catalog) Mpa(id int64) (model.Mpa, error) {
	m, ok := c.mpaByID[id]
	if !ok {
		return model.Mpa{}, model.NewMpaNotFound(id)
	}
	return m, nil
}

func (c *Catalog) ResolveGenres(ids []int64) ([]model.Genre, error) {
	if ids == nil {
		return nil, nil
	}

	seen := make(map[int64]struct{}, len(ids))
	out := make([]model.Genre, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		g, err := c.Genre(id)
		if err != nil {
			return nil, err
		}
		seen[id] = struct{}{}
		out = append(out, g)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
