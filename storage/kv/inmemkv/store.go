package inmemkv

import (
	"context"
	"sync"

	"github.com/trezcool/eduverse/core"
)

type Store struct {
	sync.RWMutex
	table map[string][]byte
}

var _ core.KeyValueStore = (*Store)(nil)

func New() *Store {
	return &Store{table: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.RLock()
	defer s.RUnlock()

	v, ok := s.table[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.Lock()
	defer s.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.table[key] = v
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.Lock()
	defer s.Unlock()
	delete(s.table, key)
	return nil
}

// Len is the number of stored keys.
func (s *Store) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.table)
}
