package repository

import (
	"context"

	"filmorate-backend/internal/domains/film/model"
)

// RepositoryInterface is the film store together with the like index.
// Every film it returns is enriched: Genres and Rate reflect the
// association tables at the time of the read.
type RepositoryInterface interface {
	// Create assigns the next id and persists f
	Create(ctx context.Context, f *model.Film) (*model.Film, error)

	// Update replaces the stored film with id f.ID, see Film.Merge.
	// Returns ErrFilmNotFound when the id is unknown.
	Update(ctx context.Context, f *model.Film) (*model.Film, error)

	// FindByID reports found=false for an unknown id, that is not an error here
	FindByID(ctx context.Context, id int64) (*model.Film, bool, error)

	// FindAll returns every film in ascending id order
	FindAll(ctx context.Context) ([]*model.Film, error)

	// AddLike is idempotent, added=false when the like already existed.
	// An unknown film gives ErrFilmNotFound and an unknown user ErrLikerNotFound,
	// the memory backend checks users only when built WithUserCheck.
	AddLike(ctx context.Context, filmID, userID int64) (added bool, err error)

	// RemoveLike is idempotent, removed=false when there was no like
	RemoveLike(ctx context.Context, filmID, userID int64) (removed bool, err error)

	LikesOf(ctx context.Context, filmID int64) (int, error)

	// LikersOf lists user ids in ascending order
	LikersOf(ctx context.Context, filmID int64) ([]int64, error)

	// LikedBy lists the films a user likes, ascending by film id
	LikedBy(ctx context.Context, userID int64) ([]int64, error)

	// Popular orders by like count desc then id asc, at most limit films
	Popular(ctx context.Context, limit int) ([]*model.Film, error)
}
