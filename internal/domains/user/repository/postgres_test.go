package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate-backend/internal/domains/user/model"
	"filmorate-backend/internal/infrastructure/database"
	"filmorate-backend/pkg/cache"
)

func newPostgresRepo(t *testing.T) RepositoryInterface {
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

	return NewPostgresRepository(pool, cache.NewNoop(), time.Minute)
}

func TestPostgres_CreateUpdateUser(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()

	ids := seedUsers(t, repo, "neo")
	u, found, err := repo.FindByID(ctx, ids[0])
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "neo", u.Name)
	assert.Empty(t, u.Friends)

	_, err = repo.Create(ctx, &model.User{Login: "neo", Email: "other@filmorate.test"})
	assert.ErrorIs(t, err, model.ErrDuplicateLogin)

	got, err := repo.Update(ctx, &model.User{ID: u.ID, Login: "the_one", Email: "neo@filmorate.test"})
	require.NoError(t, err)
	assert.Equal(t, "the_one", got.Login)
	assert.Equal(t, "neo", got.Name)

	_, err = repo.Update(ctx, &model.User{ID: 42, Login: "ghost", Email: "g@filmorate.test"})
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestPostgres_FriendshipSymmetry(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()
	ids := seedUsers(t, repo, "a", "b", "c")

	added, err := repo.AddFriend(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddFriend(ctx, ids[1], ids[0])
	require.NoError(t, err)
	assert.False(t, added)

	for _, pair := range [][2]int64{{ids[0], ids[1]}, {ids[1], ids[0]}} {
		friends, err := repo.FriendIDs(ctx, pair[0])
		require.NoError(t, err)
		assert.Equal(t, []int64{pair[1]}, friends)
	}

	_, err = repo.AddFriend(ctx, ids[0], ids[0])
	assert.ErrorIs(t, err, model.ErrSelfFriendship)
	_, err = repo.AddFriend(ctx, ids[0], 99)
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	removed, err := repo.RemoveFriend(ctx, ids[1], ids[0])
	require.NoError(t, err)
	assert.True(t, removed)

	friends, err := repo.FriendIDs(ctx, ids[0])
	require.NoError(t, err)
	assert.Empty(t, friends)
	friends, err = repo.FriendIDs(ctx, ids[1])
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestPostgres_CommonFriends(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()
	ids := seedUsers(t, repo, "a", "b", "c", "d")

	for _, pair := range [][2]int64{{ids[0], ids[2]}, {ids[1], ids[2]}, {ids[0], ids[3]}} {
		_, err := repo.AddFriend(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	common, err := repo.CommonFriends(ctx, ids[0], ids[1])
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, ids[2], common[0].ID)

	common, err = repo.CommonFriends(ctx, ids[2], ids[3])
	require.NoError(t, err)
	assert.Empty(t, common)

	_, err = repo.CommonFriends(ctx, ids[0], 99)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
