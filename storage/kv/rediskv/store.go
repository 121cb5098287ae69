package rediskv

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trezcool/eduverse/core"
)

// Store keeps client state snapshots in redis. Keys expire ttl after their last write; 0 keeps them forever.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ core.KeyValueStore = (*Store)(nil)

func NewClient(conf *core.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     conf.Storage.RedisAddr,
		Password: conf.Storage.RedisPassword,
		DB:       conf.Storage.RedisDB,
	})
}

func New(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// Ping checks the connection at startup.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
