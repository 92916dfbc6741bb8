package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"filmorate-backend/internal/domains/film/model"
	"filmorate-backend/internal/domains/film/repository"
	refservice "filmorate-backend/internal/domains/reference/service"
)

// ServiceInterface is the film side of the core: the film store, likes
// and the popularity ranking
type ServiceInterface interface {
	Create(ctx context.Context, f *model.Film) (*model.Film, error)
	Update(ctx context.Context, f *model.Film) (*model.Film, error)
	GetByID(ctx context.Context, id int64) (*model.Film, error)
	List(ctx context.Context) ([]*model.Film, error)

	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	Likers(ctx context.Context, filmID int64) ([]int64, error)
	LikedBy(ctx context.Context, userID int64) ([]int64, error)

	// Popular returns up to count films, count <= 0 means DefaultPopularLimit
	Popular(ctx context.Context, count int) ([]*model.Film, error)
}

// UserDirectory answers whether a user id exists
type UserDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type filmService struct {
	repo    repository.RepositoryInterface
	catalog refservice.ServiceInterface
	users   UserDirectory
}

func NewFilmService(
	repo repository.RepositoryInterface,
	catalog refservice.ServiceInterface,
	users UserDirectory,
) ServiceInterface {
	return &filmService{
		repo:    repo,
		catalog: catalog,
		users:   users,
	}
}

// resolveReferences swaps the bare MPA and genre ids for catalog entries
func (s *filmService) resolveReferences(f *model.Film) (*model.Film, error) {
	out := f.Clone()

	mpa, err := s.catalog.Mpa(f.Mpa.ID)
	if err != nil {
		return nil, err
	}
	out.Mpa = mpa

	genres, err := s.catalog.ResolveGenres(f.GenreIDs())
	if err != nil {
		return nil, err
	}
	out.Genres = genres
	return out, nil
}

func (s *filmService) Create(ctx context.Context, f *model.Film) (*model.Film, error) {
	resolved, err := s.resolveReferences(f)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, resolved)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("film_id", created.ID).Str("name", created.Name).Msg("Film created")
	return created, nil
}

func (s *filmService) Update(ctx context.Context, f *model.Film) (*model.Film, error) {
	resolved, err := s.resolveReferences(f)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, resolved)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("film_id", updated.ID).Msg("Film updated")
	return updated, nil
}

func (s *filmService) GetByID(ctx context.Context, id int64) (*model.Film, error) {
	f, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.NewFilmNotFound(id)
	}
	return f, nil
}

func (s *filmService) List(ctx context.Context) ([]*model.Film, error) {
	return s.repo.FindAll(ctx)
}

// ensureParticipants checks both ends of a like before the index is touched
func (s *filmService) ensureParticipants(ctx context.Context, filmID, userID int64) error {
	if _, err := s.GetByID(ctx, filmID); err != nil {
		return err
	}

	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	if !ok {
		return model.NewLikerNotFound(userID)
	}
	return nil
}

func (s *filmService) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := s.ensureParticipants(ctx, filmID, userID); err != nil {
		return err
	}

	added, err := s.repo.AddLike(ctx, filmID, userID)
	if err != nil {
		return err
	}
	if !added {
		log.Info().Int64("film_id", filmID).Int64("user_id", userID).Msg("User already liked film")
		return nil
	}

	log.Info().Int64("film_id", filmID).Int64("user_id", userID).Msg("Like added")
	return nil
}

func (s *filmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := s.ensureParticipants(ctx, filmID, userID); err != nil {
		return err
	}

	removed, err := s.repo.RemoveLike(ctx, filmID, userID)
	if err != nil {
		return err
	}
	if !removed {
		log.Warn().Int64("film_id", filmID).Int64("user_id", userID).Msg("User has not liked film")
		return nil
	}

	log.Info().Int64("film_id", filmID).Int64("user_id", userID).Msg("Like removed")
	return nil
}

func (s *filmService) Likers(ctx context.Context, filmID int64) ([]int64, error) {
	return s.repo.LikersOf(ctx, filmID)
}

func (s *filmService) LikedBy(ctx context.Context, userID int64) ([]int64, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	if !ok {
		return nil, model.NewLikerNotFound(userID)
	}
	return s.repo.LikedBy(ctx, userID)
}

func (s *filmService) Popular(ctx context.Context, count int) ([]*model.Film, error) {
	if count <= 0 {
		count = model.DefaultPopularLimit
	}
	return s.repo.Popular(ctx, count)
}
