package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/storage/kv/inmemkv"
)

func TestTheme(t *testing.T) {
	ctx := context.Background()
	kv := inmemkv.New()

	th, err := Open(ctx, kv, "v1")
	require.NoError(t, err)
	assert.Equal(t, Light, th.Mode())
	assert.Equal(t, "", th.Class())

	var seen []Mode
	th.Subscribe(func(st State) { seen = append(seen, st.Mode) })

	mode, err := th.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, mode)
	assert.Equal(t, "dark", th.Class())

	mode, err = th.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, mode)
	assert.Equal(t, []Mode{Dark, Light}, seen)

	require.NoError(t, th.Set(ctx, Dark))
	reopened, err := Open(ctx, kv, "v1")
	require.NoError(t, err)
	assert.True(t, reopened.IsDark())

	err = th.Set(ctx, Mode("sepia"))
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.True(t, th.IsDark())
}

func TestTheme_unknownPersistedMode(t *testing.T) {
	ctx := context.Background()
	kv := inmemkv.New()
	require.NoError(t, kv.Set(ctx, core.Namespaced(StorageNamespace, "v1"), []byte(`{"mode":"sepia"}`)))

	th, err := Open(ctx, kv, "v1")
	require.NoError(t, err)
	assert.Equal(t, Light, th.Mode())

	mode, err := th.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, mode)
}
