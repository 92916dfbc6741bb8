package repository

import (
	"context"
	"sort"
	"sync"

	"filmorate-backend/internal/domains/user/model"
)

// memoryRepository keeps users and friendships in process memory.
// The user table and the friendship index have independent locks.
type memoryRepository struct {
	mu      sync.RWMutex
	users   map[int64]*model.User
	byLogin map[string]int64
	lastID  int64

	friends *friendIndex
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		users:   make(map[int64]*model.User),
		byLogin: make(map[string]int64),
		friends: newFriendIndex(),
	}
}

func (r *memoryRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	stored := u.Clone()
	stored.Friends = nil
	stored.ApplyNameDefault()

	r.mu.Lock()
	if _, taken := r.byLogin[stored.Login]; taken {
		r.mu.Unlock()
		return nil, model.NewDuplicateLogin(stored.Login)
	}
	r.lastID++
	stored.ID = r.lastID
	r.users[stored.ID] = stored
	r.byLogin[stored.Login] = stored.ID
	out := stored.Clone()
	r.mu.Unlock()

	out.Friends = []int64{}
	return out, nil
}

func (r *memoryRepository) Update(ctx context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	stored, ok := r.users[u.ID]
	if !ok {
		r.mu.Unlock()
		return nil, model.NewUserNotFound(u.ID)
	}
	if owner, taken := r.byLogin[u.Login]; taken && owner != u.ID {
		r.mu.Unlock()
		return nil, model.NewDuplicateLogin(u.Login)
	}

	delete(r.byLogin, stored.Login)
	stored.Merge(u)
	r.byLogin[stored.Login] = stored.ID
	out := stored.Clone()
	r.mu.Unlock()

	out.Friends = r.friends.of(out.ID)
	return out, nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id int64) (*model.User, bool, error) {
	r.mu.RLock()
	stored, ok := r.users[id]
	var out *model.User
	if ok {
		out = stored.Clone()
	}
	r.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	out.Friends = r.friends.of(id)
	return out, true, nil
}

func (r *memoryRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	r.mu.RLock()
	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u.Clone())
	}
	r.mu.RUnlock()

	return r.enrich(users), nil
}

func (r *memoryRepository) FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	r.mu.RLock()
	users := make([]*model.User, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if u, ok := r.users[id]; ok {
			users = append(users, u.Clone())
		}
	}
	r.mu.RUnlock()

	return r.enrich(users), nil
}

// enrich sorts by id and attaches friend sets in one index pass
func (r *memoryRepository) enrich(users []*model.User) []*model.User {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	sets := r.friends.snapshot(ids)
	for _, u := range users {
		u.Friends = sets[u.ID]
	}
	return users
}

// ensure returns ErrUserNotFound for the first id that is not stored
func (r *memoryRepository) ensure(ids ...int64) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range ids {
		if _, ok := r.users[id]; !ok {
			return model.NewUserNotFound(id)
		}
	}
	return nil
}

func (r *memoryRepository) AddFriend(ctx context.Context, a, b int64) (bool, error) {
	if err := r.ensure(a, b); err != nil {
		return false, err
	}
	if a == b {
		return false, model.ErrSelfFriendship
	}
	return r.friends.add(a, b), nil
}

func (r *memoryRepository) RemoveFriend(ctx context.Context, a, b int64) (bool, error) {
	if err := r.ensure(a, b); err != nil {
		return false, err
	}
	return r.friends.remove(a, b), nil
}

func (r *memoryRepository) FriendIDs(ctx context.Context, id int64) ([]int64, error) {
	if err := r.ensure(id); err != nil {
		return nil, err
	}
	return r.friends.of(id), nil
}

func (r *memoryRepository) Friends(ctx context.Context, id int64) ([]*model.User, error) {
	if err := r.ensure(id); err != nil {
		return nil, err
	}
	return r.FindByIDs(ctx, r.friends.of(id))
}

func (r *memoryRepository) CommonFriends(ctx context.Context, a, b int64) ([]*model.User, error) {
	if err := r.ensure(a, b); err != nil {
		return nil, err
	}
	return r.FindByIDs(ctx, r.friends.common(a, b))
}
