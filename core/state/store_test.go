package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/storage/kv/inmemkv"
)

type snapshot struct {
	Mode  string `json:"mode"`
	Count int    `json:"count"`
}

type failingKV struct {
	core.KeyValueStore
	err error
}

func (kv failingKV) Set(context.Context, string, []byte) error { return kv.err }

func TestOpen(t *testing.T) {
	ctx := context.Background()
	kv := inmemkv.New()

	s, err := Open(ctx, kv, "k", snapshot{Mode: "light"})
	require.NoError(t, err)
	assert.Equal(t, snapshot{Mode: "light"}, s.Get())

	require.NoError(t, s.Set(ctx, snapshot{Mode: "dark", Count: 2}))

	reopened, err := Open(ctx, kv, "k", snapshot{Mode: "light"})
	require.NoError(t, err)
	assert.Equal(t, snapshot{Mode: "dark", Count: 2}, reopened.Get())
}

func TestOpen_corruptSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := inmemkv.New()
	require.NoError(t, kv.Set(ctx, "k", []byte("{not json")))

	s, err := Open(ctx, kv, "k", snapshot{Mode: "light"})
	require.NoError(t, err)
	assert.Equal(t, snapshot{Mode: "light"}, s.Get())
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, inmemkv.New(), "k", snapshot{})
	require.NoError(t, err)

	var calls []string
	unsub1 := s.Subscribe(func(v snapshot) { calls = append(calls, "first:"+v.Mode) })
	s.Subscribe(func(v snapshot) {
		// reading from a subscriber must not deadlock
		calls = append(calls, "second:"+s.Get().Mode)
	})

	require.NoError(t, s.Set(ctx, snapshot{Mode: "dark"}))
	assert.Equal(t, []string{"first:dark", "second:dark"}, calls)

	unsub1()
	unsub1()
	require.NoError(t, s.Update(ctx, func(v snapshot) snapshot { v.Mode = "light"; return v }))
	assert.Equal(t, []string{"first:dark", "second:dark", "second:light"}, calls)
}

func TestStore_Set_persistFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	s, err := Open(ctx, failingKV{KeyValueStore: inmemkv.New(), err: boom}, "k", snapshot{Mode: "light"})
	require.NoError(t, err)

	var notified bool
	s.Subscribe(func(snapshot) { notified = true })

	err = s.Set(ctx, snapshot{Mode: "dark"})
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, "light", s.Get().Mode)
	assert.False(t, notified)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	kv := inmemkv.New()
	s, err := Open(ctx, kv, "k", snapshot{})
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, snapshot{Count: 3}))

	require.NoError(t, s.Reset(ctx, snapshot{}))
	assert.Equal(t, snapshot{}, s.Get())
	_, err = kv.Get(ctx, "k")
	assert.Equal(t, core.ErrKeyNotFound, err)
}
