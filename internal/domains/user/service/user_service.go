package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"filmorate-backend/internal/domains/user/model"
	"filmorate-backend/internal/domains/user/repository"
)

// ServiceInterface is the user side of the core: the user store,
// friendships and the friend aggregations
type ServiceInterface interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Update(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)

	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error

	// Friends and CommonFriends sort by name, empty names last, then by id
	Friends(ctx context.Context, userID int64) ([]*model.User, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]*model.User, error)
}

type userService struct {
	repo repository.RepositoryInterface
}

func NewUserService(repo repository.RepositoryInterface) ServiceInterface {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, u *model.User) (*model.User, error) {
	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", created.ID).Str("login", created.Login).Msg("User created")
	return created, nil
}

func (s *userService) Update(ctx context.Context, u *model.User) (*model.User, error) {
	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", updated.ID).Msg("User updated")
	return updated, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.NewUserNotFound(id)
	}
	return u, nil
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) Exists(ctx context.Context, id int64) (bool, error) {
	_, found, err := s.repo.FindByID(ctx, id)
	return found, err
}

func (s *userService) AddFriend(ctx context.Context, userID, friendID int64) error {
	added, err := s.repo.AddFriend(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if !added {
		log.Info().Int64("user_id", userID).Int64("friend_id", friendID).Msg("Users are already friends")
		return nil
	}

	log.Info().Int64("user_id", userID).Int64("friend_id", friendID).Msg("Friendship added")
	return nil
}

func (s *userService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	removed, err := s.repo.RemoveFriend(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if !removed {
		log.Warn().Int64("user_id", userID).Int64("friend_id", friendID).Msg("Users are not friends")
		return nil
	}

	log.Info().Int64("user_id", userID).Int64("friend_id", friendID).Msg("Friendship removed")
	return nil
}

func (s *userService) Friends(ctx context.Context, userID int64) ([]*model.User, error) {
	users, err := s.repo.Friends(ctx, userID)
	if err != nil {
		return nil, err
	}
	model.SortByName(users)
	return users, nil
}

func (s *userService) CommonFriends(ctx context.Context, userID, otherID int64) ([]*model.User, error) {
	users, err := s.repo.CommonFriends(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	model.SortByName(users)
	return users, nil
}
