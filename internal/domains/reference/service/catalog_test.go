package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate-backend/internal/domains/reference/model"
	"filmorate-backend/internal/domains/reference/repository"
	"filmorate-backend/internal/shared"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog(context.Background(), repository.NewMemoryRepository())
	require.NoError(t, err)
	return c
}

func TestCatalog_Lookups(t *testing.T) {
	c := newCatalog(t)

	assert.Len(t, c.Genres(), 6)
	assert.Len(t, c.MpaRatings(), 5)

	g, err := c.Genre(1)
	require.NoError(t, err)
	assert.Equal(t, "Комедия", g.Name)

	m, err := c.Mpa(3)
	require.NoError(t, err)
	assert.Equal(t, "PG-13", m.Name)
}

func TestCatalog_UnknownIDsAreReferentialErrors(t *testing.T) {
	c := newCatalog(t)

	_, err := c.Genre(99)
	assert.ErrorIs(t, err, model.ErrGenreNotFound)
	assert.ErrorIs(t, err, shared.ErrReferential)

	_, err = c.Mpa(0)
	assert.ErrorIs(t, err, model.ErrMpaNotFound)
	assert.ErrorIs(t, err, shared.ErrReferential)
}

func TestCatalog_ResolveGenres(t *testing.T) {
	c := newCatalog(t)

	genres, err := c.ResolveGenres([]int64{4, 1, 4, 2})
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, []int64{1, 2, 4}, []int64{genres[0].ID, genres[1].ID, genres[2].ID})
	assert.Equal(t, "Триллер", genres[2].Name)

	// nil means "not specified" and is kept as nil
	genres, err = c.ResolveGenres(nil)
	require.NoError(t, err)
	assert.Nil(t, genres)

	genres, err = c.ResolveGenres([]int64{})
	require.NoError(t, err)
	assert.NotNil(t, genres)
	assert.Empty(t, genres)

	_, err = c.ResolveGenres([]int64{1, 7})
	assert.ErrorIs(t, err, model.ErrGenreNotFound)
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := newCatalog(t)

	genres := c.Genres()
	genres[0].Name = "changed"

	g, err := c.Genre(1)
	require.NoError(t, err)
	assert.Equal(t, "Комедия", g.Name)
}

type failingRepo struct{}

func (failingRepo) ListGenres(context.Context) ([]model.Genre, error) {
	return nil, errors.New("db down")
}

func (failingRepo) ListMpaRatings(context.Context) ([]model.Mpa, error) {
	return nil, nil
}

func TestLoadCatalog_PropagatesErrors(t *testing.T) {
	_, err := LoadCatalog(context.Background(), failingRepo{})
	assert.ErrorContains(t, err, "db down")
}
