package artifact_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"go.trai.ch/flowlock/internal/adapters/artifact"
	"go.trai.ch/flowlock/internal/core/domain"
)

func TestStore_WriteCreatesDirectories(t *testing.T) {
	root := t.TempDir()
	store := artifact.NewStore(afs.New(), root)

	changed, err := store.Write(context.Background(), "flow-typed/flowgen/left-pad_v1.3.0.js", []byte("declare module 'left-pad' {}\n"))
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(filepath.Join(root, "flow-typed", "flowgen", "left-pad_v1.3.0.js"))
	require.NoError(t, err)
	assert.Equal(t, "declare module 'left-pad' {}\n", string(data))
}

func TestStore_WriteUnchanged(t *testing.T) {
	root := t.TempDir()
	store := artifact.NewStore(afs.New(), root)
	ctx := context.Background()
	path := "flow-typed/flowgen/x_vx.x.x.js"

	_, err := store.Write(ctx, path, []byte("same"))
	require.NoError(t, err)

	full := filepath.Join(root, "flow-typed", "flowgen", "x_vx.x.x.js")
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(full, past, past))

	changed, err := store.Write(ctx, path, []byte("same"))
	require.NoError(t, err)
	assert.False(t, changed)

	info, err := os.Stat(full)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "unchanged content must not be rewritten")

	changed, err = store.Write(ctx, path, []byte("different"))
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestStore_Read(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.d.ts"), []byte("export {};\n"), 0o600))

	store := artifact.NewStore(afs.New(), root)

	data, err := store.Read(context.Background(), "index.d.ts")
	require.NoError(t, err)
	assert.Equal(t, "export {};\n", string(data))

	data, err = store.Read(context.Background(), filepath.Join(root, "index.d.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export {};\n", string(data))
}

func TestStore_ReadMissing(t *testing.T) {
	store := artifact.NewStore(afs.New(), t.TempDir())

	_, err := store.Read(context.Background(), "missing.d.ts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrArtifactReadFailed.Error())
}
