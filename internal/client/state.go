package client

import (
	"slices"
	"sync"
)

// collection is the shared state of a list store: the cached items, whether
// a call is in flight, and the last error.
type collection[T any] struct {
	mu      sync.RWMutex
	items   []T
	loading bool
	err     error
}

// Items returns a copy of the cached items.
func (c *collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Loading reports whether a server call is in flight.
func (c *collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err is the error of the last server call, or nil.
func (c *collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *collection[T]) ClearError() {
	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()
}

func (c *collection[T]) begin() {
	c.mu.Lock()
	c.loading = true
	c.err = nil
	c.mu.Unlock()
}

// finish ends a call. On success apply runs under the lock to update items;
// on failure the items are left as they were.
func (c *collection[T]) finish(err error, apply func(items []T) []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.err = err
	if err == nil && apply != nil {
		c.items = apply(c.items)
	}
	return err
}

// mutate updates items without touching loading or err.
func (c *collection[T]) mutate(apply func(items []T) []T) {
	c.mu.Lock()
	c.items = apply(c.items)
	c.mu.Unlock()
}

// find returns the first item matching pred.
func (c *collection[T]) find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// filter returns the items matching pred.
func (c *collection[T]) filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// replace swaps the first item matching pred for v.
func replace[T any](items []T, pred func(T) bool, v T) []T {
	if i := slices.IndexFunc(items, pred); i >= 0 {
		items[i] = v
	}
	return items
}

// deleteWhere removes every item matching pred.
func deleteWhere[T any](items []T, pred func(T) bool) []T {
	return slices.DeleteFunc(items, pred)
}
