package repository

import (
	"sort"
	"sync"
)

// friendIndex is a symmetric adjacency set.
// Both directions of an edge change under one write lock.
type friendIndex struct {
	mu  sync.RWMutex
	adj map[int64]map[int64]struct{}
}

func newFriendIndex() *friendIndex {
	return &friendIndex{adj: make(map[int64]map[int64]struct{})}
}

func (x *friendIndex) link(from, to int64) {
	set, ok := x.adj[from]
	if !ok {
		set = make(map[int64]struct{})
		x.adj[from] = set
	}
	set[to] = struct{}{}
}

func (x *friendIndex) unlink(from, to int64) {
	set := x.adj[from]
	delete(set, to)
	if len(set) == 0 {
		delete(x.adj, from)
	}
}

func (x *friendIndex) add(a, b int64) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, exists := x.adj[a][b]; exists {
		return false
	}
	x.link(a, b)
	x.link(b, a)
	return true
}

func (x *friendIndex) remove(a, b int64) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, exists := x.adj[a][b]; !exists {
		return false
	}
	x.unlink(a, b)
	x.unlink(b, a)
	return true
}

func (x *friendIndex) of(id int64) []int64 {
	x.mu.RLock()
	ids := keys(x.adj[id])
	x.mu.RUnlock()
	return ids
}

// snapshot reads the friend sets of all ids under a single lock
func (x *friendIndex) snapshot(ids []int64) map[int64][]int64 {
	x.mu.RLock()
	defer x.mu.RUnlock()

	out := make(map[int64][]int64, len(ids))
	for _, id := range ids {
		out[id] = keys(x.adj[id])
	}
	return out
}

// common intersects two friend sets, walking the smaller one
func (x *friendIndex) common(a, b int64) []int64 {
	x.mu.RLock()
	defer x.mu.RUnlock()

	small, large := x.adj[a], x.adj[b]
	if len(small) > len(large) {
		small, large = large, small
	}

	ids := make([]int64, 0, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func keys(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
