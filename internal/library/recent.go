// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"slices"
	"strings"
	"sync"
)

// DefaultRecentSize caps the recent-searches list.
const DefaultRecentSize = 10

// Recent is the recent-searches list: most recent first, no duplicates,
// capped. It is safe for concurrent use.
type Recent struct {
	mu    sync.Mutex
	size  int
	items []string
}

// NewRecent returns an empty list holding at most size entries
// (DefaultRecentSize when size <= 0).
func NewRecent(size int) *Recent {
	if size <= 0 {
		size = DefaultRecentSize
	}
	return &Recent{size: size}
}

// Push moves q to the front. Blank queries are ignored. Push reports
// whether the list changed.
func (r *Recent) Push(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) > 0 && r.items[0] == q {
		return false
	}
	items := make([]string, 0, r.size)
	items = append(items, q)
	for _, it := range r.items {
		if it != q && len(items) < r.size {
			items = append(items, it)
		}
	}
	r.items = items
	return true
}

// Seed replaces the list with entries, given most recent first.
func (r *Recent) Seed(entries []string) {
	r.mu.Lock()
	r.items = nil
	r.mu.Unlock()
	for _, e := range slices.Backward(entries) {
		r.Push(e)
	}
}

// List returns a copy of the entries, most recent first.
func (r *Recent) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}

// Clear empties the list.
func (r *Recent) Clear() {
	r.mu.Lock()
	r.items = nil
	r.mu.Unlock()
}
