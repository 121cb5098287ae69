package inmemkv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduverse/core"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "theme-storage:v1")
	assert.Equal(t, core.ErrKeyNotFound, err)

	value := []byte(`{"mode":"dark"}`)
	require.NoError(t, s.Set(ctx, "theme-storage:v1", value))
	value[2] = 'X' // caller buffers are not retained

	got, err := s.Get(ctx, "theme-storage:v1")
	require.NoError(t, err)
	assert.Equal(t, `{"mode":"dark"}`, string(got))
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, "theme-storage:v1"))
	require.NoError(t, s.Delete(ctx, "theme-storage:v1"))
	_, err = s.Get(ctx, "theme-storage:v1")
	assert.Equal(t, core.ErrKeyNotFound, err)
}
