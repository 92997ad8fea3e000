package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process TTL cache. A zero ttl keeps entries until they are
// deleted. Every delete starts a new generation; loads begun in an older
// generation are returned to their callers but never stored.
type Store[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	generation uint64
	ttl        time.Duration
	flight     singleflight.Group
	now        func() time.Time
}

type bypassKey struct{}

// Bypass marks ctx so that GetOrLoad skips the cache and calls the loader
// directly. Decision paths that must see the stored record use it.
func Bypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

func Bypassed(ctx context.Context) bool {
	v, _ := ctx.Value(bypassKey{}).(bool)
	return v
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = s.newEntry(value)
	s.mu.Unlock()
}

// setIfGeneration stores value only when no delete happened since gen.
func (s *Store[V]) setIfGeneration(key string, value V, gen uint64) {
	s.mu.Lock()
	if s.generation == gen {
		s.entries[key] = s.newEntry(value)
	}
	s.mu.Unlock()
}

func (s *Store[V]) newEntry(value V) entry[V] {
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e
}

func (s *Store[V]) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.generation++
	s.mu.Unlock()
}

func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.generation++
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key or runs loader once for all
// concurrent callers of the same key. Failed loads are not cached, and a
// bypassed ctx always reaches the loader.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" || Bypassed(ctx) {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	// Callers arriving after a delete must not join a load that started
	// before it, so the flight key carries the generation.
	gen := s.currentGeneration()
	value, err, _ := s.flight.Do(fmt.Sprintf("%d:%s", gen, key), func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.setIfGeneration(key, loaded, gen)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	out, _ := value.(V)
	return out, nil
}
