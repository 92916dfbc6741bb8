package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate-backend/internal/domains/film/model"
	refmodel "filmorate-backend/internal/domains/reference/model"
	"filmorate-backend/internal/infrastructure/database"
	"filmorate-backend/internal/shared"
	"filmorate-backend/pkg/cache"
)

// newPostgresRepo connects to FILMORATE_TEST_DATABASE_URL and starts from empty tables
func newPostgresRepo(t *testing.T) (RepositoryInterface, *pgxpool.Pool) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	dsn := os.Getenv("FILMORATE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("FILMORATE_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE films, users, friendships, film_likes, film_genres RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return NewPostgresRepository(pool, cache.NewNoop(), time.Minute), pool
}

func insertUser(t *testing.T, pool *pgxpool.Pool, login string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (login, name, email) VALUES ($1, $1, $1 || '@filmorate.test') RETURNING user_id`,
		login).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestPostgres_CreateAndFind(t *testing.T) {
	repo, _ := newPostgresRepo(t)
	ctx := context.Background()

	in := newFilm("Matrix")
	in.Genres = []refmodel.Genre{{ID: 4}, {ID: 6}}
	f, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.ID)
	assert.Equal(t, "G", f.Mpa.Name)
	require.Len(t, f.Genres, 2)
	assert.Equal(t, "Триллер", f.Genres[0].Name)

	got, found, err := repo.FindByID(ctx, f.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, f, got)

	_, found, err = repo.FindByID(ctx, 99)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPostgres_CreateUnknownReferences(t *testing.T) {
	repo, _ := newPostgresRepo(t)
	ctx := context.Background()

	bad := newFilm("x")
	bad.Mpa.ID = 42
	_, err := repo.Create(ctx, bad)
	assert.ErrorIs(t, err, refmodel.ErrMpaNotFound)
	assert.ErrorIs(t, err, shared.ErrReferential)

	bad = newFilm("y")
	bad.Genres = []refmodel.Genre{{ID: 42}}
	_, err = repo.Create(ctx, bad)
	assert.ErrorIs(t, err, refmodel.ErrGenreNotFound)
}

func TestPostgres_UpdatePartialReplace(t *testing.T) {
	repo, _ := newPostgresRepo(t)
	ctx := context.Background()

	desc := "original"
	in := newFilm("a")
	in.Description = &desc
	in.Genres = []refmodel.Genre{{ID: 1}}
	f, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got, err := repo.Update(ctx, &model.Film{ID: f.ID, Name: "b", ReleaseDate: f.ReleaseDate, Mpa: refmodel.Mpa{ID: 2}})
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)
	assert.Equal(t, "PG", got.Mpa.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "original", *got.Description)
	assert.Len(t, got.Genres, 1)

	got, err = repo.Update(ctx, &model.Film{ID: f.ID, Name: "b", ReleaseDate: f.ReleaseDate, Mpa: refmodel.Mpa{ID: 2}, Genres: []refmodel.Genre{}})
	require.NoError(t, err)
	assert.Empty(t, got.Genres)

	_, err = repo.Update(ctx, &model.Film{ID: 77, Name: "c", ReleaseDate: f.ReleaseDate, Mpa: refmodel.Mpa{ID: 1}})
	assert.ErrorIs(t, err, model.ErrFilmNotFound)
}

func TestPostgres_LikesAndPopular(t *testing.T) {
	repo, pool := newPostgresRepo(t)
	ctx := context.Background()

	var films []int64
	for _, name := range []string{"a", "b", "c"} {
		f, err := repo.Create(ctx, newFilm(name))
		require.NoError(t, err)
		films = append(films, f.ID)
	}
	alice := insertUser(t, pool, "alice")
	bob := insertUser(t, pool, "bob")

	added, err := repo.AddLike(ctx, films[2], alice)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddLike(ctx, films[2], alice)
	require.NoError(t, err)
	assert.False(t, added)

	_, err = repo.AddLike(ctx, films[1], bob)
	require.NoError(t, err)
	_, err = repo.AddLike(ctx, films[2], bob)
	require.NoError(t, err)

	_, err = repo.AddLike(ctx, films[0], 999)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = repo.AddLike(ctx, 999, alice)
	assert.ErrorIs(t, err, model.ErrFilmNotFound)

	count, err := repo.LikesOf(ctx, films[2])
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	likers, err := repo.LikersOf(ctx, films[2])
	require.NoError(t, err)
	assert.Equal(t, []int64{alice, bob}, likers)

	liked, err := repo.LikedBy(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []int64{films[1], films[2]}, liked)

	popular, err := repo.Popular(ctx, 0)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, []int64{films[2], films[1], films[0]}, []int64{popular[0].ID, popular[1].ID, popular[2].ID})
	assert.Equal(t, 2, popular[0].Rate)

	removed, err := repo.RemoveLike(ctx, films[2], alice)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.RemoveLike(ctx, films[2], alice)
	require.NoError(t, err)
	assert.False(t, removed)

	popular, err = repo.Popular(ctx, 1)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, films[1], popular[0].ID)
}
