// Package pricecache provides a small in-process TTL cache used to gate the
// price aggregation entry points. Entries are replaced atomically as a
// {value, timestamp} pair, and a stale entry is preferred over a failed or
// empty recomputation (stale-while-error).
package pricecache

import (
	"context"
	"sync"
	"time"
)

type entry[T any] struct {
	value   T
	fetched time.Time
}

// Cache is a process-wide key → {value, timestamp} store. Concurrent misses
// for the same key are not deduplicated; each successful compute replaces
// the entry wholesale, so readers never observe a partial write.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	now     func() time.Time
	accept  func(T) bool
}

// Option configures a Cache.
type Option[T any] func(*Cache[T])

// WithClock overrides the time source, mainly for tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) {
		if now != nil {
			c.now = now
		}
	}
}

// WithAcceptFunc installs a predicate deciding whether a computed value may
// replace the stored one. Rejected values fall back to the cached entry, so
// an empty upstream response never clobbers a good cache.
func WithAcceptFunc[T any](accept func(T) bool) Option[T] {
	return func(c *Cache[T]) {
		if accept != nil {
			c.accept = accept
		}
	}
}

// New constructs an empty cache.
func New[T any](opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
		accept:  func(T) bool { return true },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the cached value for key when it is younger than ttl,
// otherwise it invokes compute. A successful, accepted result replaces the
// entry; a failed or rejected result returns the previous value unchanged.
// A rejected result with no previous entry is returned as-is without being
// stored. The error is non-nil only when compute failed and no entry was
// ever stored.
func (c *Cache[T]) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	if value, ok := c.lookup(key, ttl); ok {
		return value, nil
	}

	value, err := compute(ctx)
	if err == nil {
		if c.accept(value) {
			c.store(key, value)
			return value, nil
		}
		// A rejected value never replaces a stored entry, but with nothing
		// stored it is still the best answer available.
		if stale, ok := c.Peek(key); ok {
			return stale, nil
		}
		return value, nil
	}

	// Stale-while-error: serve whatever we had before, however old.
	if stale, ok := c.Peek(key); ok {
		return stale, nil
	}
	var zero T
	return zero, err
}

// Peek returns the stored value regardless of age.
func (c *Cache[T]) Peek(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Store unconditionally replaces the entry for key, stamped with the current
// clock.
func (c *Cache[T]) Store(key string, value T) {
	c.store(key, value)
}

// StoreAt replaces the entry with an explicit fetch time. Used to seed the
// cache from a durable snapshot on startup without marking it fresh.
func (c *Cache[T]) StoreAt(key string, value T, fetched time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, fetched: fetched}
}

func (c *Cache[T]) lookup(key string, ttl time.Duration) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetched) >= ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *Cache[T]) store(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, fetched: c.now()}
}
