package repository

import (
	"sort"
	"sync"
)

// likeIndex keeps (film, user) like pairs addressable from both sides
type likeIndex struct {
	mu     sync.RWMutex
	byFilm map[int64]map[int64]struct{}
	byUser map[int64]map[int64]struct{}
}

func newLikeIndex() *likeIndex {
	return &likeIndex{
		byFilm: make(map[int64]map[int64]struct{}),
		byUser: make(map[int64]map[int64]struct{}),
	}
}

func (x *likeIndex) add(filmID, userID int64) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	users, ok := x.byFilm[filmID]
	if !ok {
		users = make(map[int64]struct{})
		x.byFilm[filmID] = users
	}
	if _, exists := users[userID]; exists {
		return false
	}
	users[userID] = struct{}{}

	films, ok := x.byUser[userID]
	if !ok {
		films = make(map[int64]struct{})
		x.byUser[userID] = films
	}
	films[filmID] = struct{}{}
	return true
}

func (x *likeIndex) remove(filmID, userID int64) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	users := x.byFilm[filmID]
	if _, exists := users[userID]; !exists {
		return false
	}
	delete(users, userID)
	if len(users) == 0 {
		delete(x.byFilm, filmID)
	}

	films := x.byUser[userID]
	delete(films, filmID)
	if len(films) == 0 {
		delete(x.byUser, userID)
	}
	return true
}

func (x *likeIndex) count(filmID int64) int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.byFilm[filmID])
}

// counts reads all requested counters under a single lock
func (x *likeIndex) counts(filmIDs []int64) map[int64]int {
	x.mu.RLock()
	defer x.mu.RUnlock()

	out := make(map[int64]int, len(filmIDs))
	for _, id := range filmIDs {
		out[id] = len(x.byFilm[id])
	}
	return out
}

func (x *likeIndex) likers(filmID int64) []int64 {
	x.mu.RLock()
	ids := make([]int64, 0, len(x.byFilm[filmID]))
	for id := range x.byFilm[filmID] {
		ids = append(ids, id)
	}
	x.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// likedBy lists the films a user likes, ascending
func (x *likeIndex) likedBy(userID int64) []int64 {
	x.mu.RLock()
	ids := make([]int64, 0, len(x.byUser[userID]))
	for id := range x.byUser[userID] {
		ids = append(ids, id)
	}
	x.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
