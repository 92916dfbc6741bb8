package repository

import (
	"context"

	"filmorate-backend/internal/domains/user/model"
)

// RepositoryInterface is the user store together with the friendship index.
// Friendship is symmetric: adding or removing a-b always covers b-a as well.
type RepositoryInterface interface {
	// Create assigns the next id, defaults a blank name to the login and
	// fails with ErrDuplicateLogin when the login is taken
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// Update replaces the user with id u.ID, see User.Merge
	Update(ctx context.Context, u *model.User) (*model.User, error)

	FindByID(ctx context.Context, id int64) (*model.User, bool, error)

	// FindAll returns every user in ascending id order
	FindAll(ctx context.Context) ([]*model.User, error)

	// FindByIDs skips unknown ids, result in ascending id order
	FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error)

	AddFriend(ctx context.Context, a, b int64) (added bool, err error)
	RemoveFriend(ctx context.Context, a, b int64) (removed bool, err error)

	// FriendIDs lists the friend set in ascending order
	FriendIDs(ctx context.Context, id int64) ([]int64, error)

	// Friends and CommonFriends return full records in ascending id order
	Friends(ctx context.Context, id int64) ([]*model.User, error)
	CommonFriends(ctx context.Context, a, b int64) ([]*model.User, error)
}
