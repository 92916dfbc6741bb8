package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate-backend/internal/domains/user/model"
	"filmorate-backend/internal/domains/user/repository"
)

func newService(t *testing.T, people map[string]string) (ServiceInterface, map[string]int64) {
	t.Helper()
	svc := NewUserService(repository.NewMemoryRepository())

	ids := make(map[string]int64, len(people))
	for _, login := range []string{"alice", "bob", "carol", "dave", "eve"} {
		name, ok := people[login]
		if !ok {
			continue
		}
		u, err := svc.Create(context.Background(), &model.User{Login: login, Name: name, Email: login + "@filmorate.test"})
		require.NoError(t, err)
		ids[login] = u.ID
	}
	return svc, ids
}

func TestFriends_SortedByName(t *testing.T) {
	svc, ids := newService(t, map[string]string{
		"alice": "Alice",
		"bob":   "Zed",
		"carol": "Carol",
		"dave":  "Bob",
	})
	ctx := context.Background()

	for _, login := range []string{"bob", "carol", "dave"} {
		require.NoError(t, svc.AddFriend(ctx, ids["alice"], ids[login]))
	}

	friends, err := svc.Friends(ctx, ids["alice"])
	require.NoError(t, err)
	names := make([]string, len(friends))
	for i, f := range friends {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Bob", "Carol", "Zed"}, names)
}

func TestCommonFriends_SortedAndRequiresBothUsers(t *testing.T) {
	svc, ids := newService(t, map[string]string{
		"alice": "",
		"bob":   "",
		"carol": "Carol",
		"dave":  "Abe",
	})
	ctx := context.Background()

	for _, friend := range []string{"carol", "dave"} {
		require.NoError(t, svc.AddFriend(ctx, ids["alice"], ids[friend]))
		require.NoError(t, svc.AddFriend(ctx, ids["bob"], ids[friend]))
	}

	common, err := svc.CommonFriends(ctx, ids["alice"], ids["bob"])
	require.NoError(t, err)
	require.Len(t, common, 2)
	assert.Equal(t, "Abe", common[0].Name)
	assert.Equal(t, "Carol", common[1].Name)

	_, err = svc.CommonFriends(ctx, ids["alice"], 999)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestAddFriend_ErrorsAndNoOps(t *testing.T) {
	svc, ids := newService(t, map[string]string{"alice": "", "bob": ""})
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddFriend(ctx, ids["alice"], ids["alice"]), model.ErrSelfFriendship)
	assert.ErrorIs(t, svc.AddFriend(ctx, ids["alice"], 42), model.ErrUserNotFound)

	require.NoError(t, svc.AddFriend(ctx, ids["alice"], ids["bob"]))
	require.NoError(t, svc.AddFriend(ctx, ids["alice"], ids["bob"]))
	require.NoError(t, svc.RemoveFriend(ctx, ids["bob"], ids["alice"]))
	require.NoError(t, svc.RemoveFriend(ctx, ids["bob"], ids["alice"]))

	u, err := svc.GetByID(ctx, ids["alice"])
	require.NoError(t, err)
	assert.Empty(t, u.Friends)
}

func TestGetByIDAndExists(t *testing.T) {
	svc, ids := newService(t, map[string]string{"alice": ""})
	ctx := context.Background()

	u, err := svc.GetByID(ctx, ids["alice"])
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name)

	_, err = svc.GetByID(ctx, 55)
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	ok, err := svc.Exists(ctx, ids["alice"])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, 55)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	svc, _ := newService(t, map[string]string{"alice": "", "bob": "", "carol": ""})

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Login)
	assert.Equal(t, "carol", users[2].Login)
}
