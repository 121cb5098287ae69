// Package state holds observable values whose snapshots persist in a core.KeyValueStore.
package state

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core"
)

type subscription[T any] struct {
	id int
	fn func(T)
}

// Store is safe for concurrent use. Subscribers run synchronously, in subscription order,
// after the new value is persisted and the store lock is released.
type Store[T any] struct {
	kv  core.KeyValueStore
	key string

	mu     sync.RWMutex
	value  T
	subs   []subscription[T]
	nextID int
}

// Open loads the snapshot stored under key, or starts from initial when there is none.
// A snapshot that cannot be decoded is discarded.
func Open[T any](ctx context.Context, kv core.KeyValueStore, key string, initial T) (*Store[T], error) {
	s := &Store[T]{kv: kv, key: key, value: initial}

	data, err := kv.Get(ctx, key)
	switch {
	case errors.Is(err, core.ErrKeyNotFound):
		return s, nil
	case err != nil:
		return nil, errors.Wrapf(err, "loading %s", key)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return s, nil
	}
	s.value = v
	return s, nil
}

func (s *Store[T]) Key() string { return s.key }

func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set persists v, makes it the current value and notifies the subscribers.
// On a persistence failure the current value is left untouched.
func (s *Store[T]) Set(ctx context.Context, v T) error {
	return s.Update(ctx, func(T) T { return v })
}

// Update applies fn to the current value under the store lock.
func (s *Store[T]) Update(ctx context.Context, fn func(T) T) error {
	s.mu.Lock()
	v := fn(s.value)
	data, err := json.Marshal(v)
	if err != nil {
		s.mu.Unlock()
		return errors.Wrapf(err, "encoding %s", s.key)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.mu.Unlock()
		return errors.Wrapf(err, "saving %s", s.key)
	}
	s.value = v
	subs := make([]subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
	return nil
}

// Subscribe registers fn for every future change. The returned func unsubscribes; calling it twice is harmless.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription[T]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Reset deletes the snapshot and reverts to initial.
func (s *Store[T]) Reset(ctx context.Context, initial T) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return errors.Wrapf(err, "deleting %s", s.key)
	}
	s.mu.Lock()
	s.value = initial
	subs := make([]subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(initial)
	}
	return nil
}
