package repository

import (
	"context"
	"sort"
	"sync"

	"filmorate-backend/internal/domains/film/model"
)

// memoryRepository keeps films and likes in process memory.
// Films and likes are guarded by separate locks and never held together.
type memoryRepository struct {
	mu     sync.RWMutex
	films  map[int64]*model.Film
	lastID int64

	likes *likeIndex

	userExists UserExistsFunc
}

// UserExistsFunc reports whether a user id is known to the user store
type UserExistsFunc func(ctx context.Context, id int64) (bool, error)

// MemoryOption configures the memory repository
type MemoryOption func(*memoryRepository)

// WithUserCheck makes AddLike reject unknown users, as the film_likes
// foreign key does in Postgres
func WithUserCheck(fn UserExistsFunc) MemoryOption {
	return func(r *memoryRepository) {
		r.userExists = fn
	}
}

func NewMemoryRepository(opts ...MemoryOption) RepositoryInterface {
	r := &memoryRepository{
		films: make(map[int64]*model.Film),
		likes: newLikeIndex(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *memoryRepository) Create(ctx context.Context, f *model.Film) (*model.Film, error) {
	stored := f.Clone()
	stored.Rate = 0

	r.mu.Lock()
	r.lastID++
	stored.ID = r.lastID
	r.films[stored.ID] = stored
	out := stored.Clone()
	r.mu.Unlock()

	return out, nil
}

func (r *memoryRepository) Update(ctx context.Context, f *model.Film) (*model.Film, error) {
	r.mu.Lock()
	stored, ok := r.films[f.ID]
	if !ok {
		r.mu.Unlock()
		return nil, model.NewFilmNotFound(f.ID)
	}
	stored.Merge(f)
	out := stored.Clone()
	r.mu.Unlock()

	out.Rate = r.likes.count(out.ID)
	return out, nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id int64) (*model.Film, bool, error) {
	r.mu.RLock()
	stored, ok := r.films[id]
	var out *model.Film
	if ok {
		out = stored.Clone()
	}
	r.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	out.Rate = r.likes.count(id)
	return out, true, nil
}

func (r *memoryRepository) FindAll(ctx context.Context) ([]*model.Film, error) {
	r.mu.RLock()
	films := make([]*model.Film, 0, len(r.films))
	for _, f := range r.films {
		films = append(films, f.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })

	ids := make([]int64, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	counts := r.likes.counts(ids)
	for _, f := range films {
		f.Rate = counts[f.ID]
	}
	return films, nil
}

func (r *memoryRepository) exists(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.films[id]
	return ok
}

func (r *memoryRepository) AddLike(ctx context.Context, filmID, userID int64) (bool, error) {
	if !r.exists(filmID) {
		return false, model.NewFilmNotFound(filmID)
	}
	if r.userExists != nil {
		ok, err := r.userExists(ctx, userID)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, model.NewLikerNotFound(userID)
		}
	}
	return r.likes.add(filmID, userID), nil
}

func (r *memoryRepository) RemoveLike(ctx context.Context, filmID, userID int64) (bool, error) {
	if !r.exists(filmID) {
		return false, model.NewFilmNotFound(filmID)
	}
	return r.likes.remove(filmID, userID), nil
}

func (r *memoryRepository) LikesOf(ctx context.Context, filmID int64) (int, error) {
	if !r.exists(filmID) {
		return 0, model.NewFilmNotFound(filmID)
	}
	return r.likes.count(filmID), nil
}

func (r *memoryRepository) LikersOf(ctx context.Context, filmID int64) ([]int64, error) {
	if !r.exists(filmID) {
		return nil, model.NewFilmNotFound(filmID)
	}
	return r.likes.likers(filmID), nil
}

func (r *memoryRepository) LikedBy(ctx context.Context, userID int64) ([]int64, error) {
	return r.likes.likedBy(userID), nil
}

func (r *memoryRepository) Popular(ctx context.Context, limit int) ([]*model.Film, error) {
	films, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return RankPopular(films, limit), nil
}

// RankPopular sorts films by Rate desc, ties by id asc, and truncates to limit.
// A non-positive limit falls back to DefaultPopularLimit.
func RankPopular(films []*model.Film, limit int) []*model.Film {
	if limit <= 0 {
		limit = model.DefaultPopularLimit
	}
	sort.SliceStable(films, func(i, j int) bool {
		if films[i].Rate != films[j].Rate {
			return films[i].Rate > films[j].Rate
		}
		return films[i].ID < films[j].ID
	})
	if len(films) > limit {
		films = films[:limit]
	}
	return films
}
