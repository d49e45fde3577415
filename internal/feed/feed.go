// Package feed keeps a last-known-good copy of a Finance API listing.
// Concurrent refreshes collapse into one upstream call.
package feed

import (
	"context"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/GregMSThompson/finan-bff/internal/events"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

type FetchFunc[T any] func(ctx context.Context) ([]T, error)

type Feed[T any] struct {
	name  string
	fetch FetchFunc[T]
	group singleflight.Group

	mu        sync.RWMutex
	items     []T
	loaded    bool
	stale     bool
	fetchedAt time.Time
	// gen moves on every Invalidate; a fetch only stores its result if
	// gen has not moved since it started.
	gen uint64
}

func New[T any](name string, fetch FetchFunc[T]) *Feed[T] {
	return &Feed[T]{name: name, fetch: fetch}
}

func (f *Feed[T]) Name() string { return f.name }

// Get returns the cached listing, fetching first when nothing has been
// loaded yet or the feed was invalidated.
func (f *Feed[T]) Get(ctx context.Context) ([]T, error) {
	f.mu.RLock()
	fresh := f.loaded && !f.stale
	items := f.items
	f.mu.RUnlock()
	if fresh {
		return slices.Clone(items), nil
	}
	return f.Refresh(ctx)
}

// Refresh fetches the listing. When the fetch fails but an earlier one
// succeeded, the earlier result is returned and the failure only logged.
func (f *Feed[T]) Refresh(ctx context.Context) ([]T, error) {
	items, err := f.load(ctx)
	if err == nil {
		return items, nil
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.loaded {
		return nil, err
	}
	logger.FromContext(ctx).Warn("feed refresh failed, serving last known good",
		"feed", f.name,
		"fetchedAt", f.fetchedAt,
		"error", err)
	return slices.Clone(f.items), nil
}

// Poll refreshes and reports the raw fetch error.
func (f *Feed[T]) Poll(ctx context.Context) error {
	_, err := f.load(ctx)
	return err
}

func (f *Feed[T]) load(ctx context.Context) ([]T, error) {
	v, err, _ := f.group.Do(f.name, func() (any, error) {
		f.mu.RLock()
		gen := f.gen
		f.mu.RUnlock()

		items, err := f.fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		if f.gen == gen {
			f.items = items
			f.loaded = true
			f.stale = false
			f.fetchedAt = time.Now()
		}
		f.mu.Unlock()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]T)), nil
}

// Invalidate marks the cached copy stale; it is still served if the next
// refresh fails. A fetch already in flight is detached so the next load
// starts a new one and the older result is not stored.
func (f *Feed[T]) Invalidate() {
	f.mu.Lock()
	f.stale = true
	f.gen++
	f.mu.Unlock()
	f.group.Forget(f.name)
}

// FetchedAt is the time of the last successful fetch.
func (f *Feed[T]) FetchedAt() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fetchedAt
}

// Follow invalidates the feed whenever topic fires and refreshes it in the
// background.
func (f *Feed[T]) Follow(bus *events.Bus, topic events.Topic) (unsubscribe func()) {
	return bus.Subscribe(topic, func(ctx context.Context, e events.Event) {
		f.Invalidate()
		go func() {
			if err := f.Poll(context.WithoutCancel(ctx)); err != nil {
				logger.FromContext(ctx).Warn("feed refresh after event failed",
					"feed", f.name,
					"topic", e.Topic,
					"error", err)
			}
		}()
	})
}
