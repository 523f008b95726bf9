package lockfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flowlock/internal/adapters/lockfile"
	"go.trai.ch/flowlock/internal/core/domain"
)

func TestStore_LoadMissing(t *testing.T) {
	store := lockfile.NewStore(filepath.Join(t.TempDir(), "flow-typed", "flow.lock"))

	lock, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewLockfile(), lock)
}

func TestStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.lock")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	lock, err := lockfile.NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 2, lock.Version)
}

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow-typed", "flow.lock")
	store := lockfile.NewStore(path)

	lock := domain.NewLockfile()
	lock.SetTier(domain.TierConverted, "left-pad", "flow-typed/flowgen/left-pad_v1.3.0.js")
	lock.SetTier(domain.TierNativeBuiltin, "immutable", "")
	lock.SetTier(domain.TierCustom, "mystery", "")

	require.NoError(t, store.Save(lock))

	reloaded, err := lockfile.NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, lock, reloaded)
}

func TestStore_SaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.lock")
	store := lockfile.NewStore(path)

	lock := domain.NewLockfile()
	lock.SetTier(domain.TierStub, "x", "flow-typed/npm/x_vx.x.x.js")
	require.NoError(t, store.Save(lock))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `{
  "version": 2,
  "packages": {
    "builtin": {},
    "custom": {},
    "flowTyped": {},
    "flowgen": {},
    "stub": {
      "x": "flow-typed/npm/x_vx.x.x.js"
    }
  }
}
`
	assert.Equal(t, want, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".flow-lock-"), "temp file left behind: %s", e.Name())
	}
}

func TestStore_LoadFillsMissingTiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.lock")
	content := `{"version": 2, "packages": {"flowTyped": {"react": ""}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	lock, err := lockfile.NewStore(path).Load()
	require.NoError(t, err)

	for _, tier := range domain.AllTiers() {
		assert.NotNil(t, lock.Packages[tier], tier)
	}
	tier, _, ok := lock.TierOf("react")
	require.True(t, ok)
	assert.Equal(t, domain.TierCommunityRegistry, tier)
}

func TestStore_LoadUpgradesOlderVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.lock")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "packages": {}}`), 0o600))

	lock, err := lockfile.NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 2, lock.Version)
}

func TestStore_LoadRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.lock")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 3, "packages": {}}`), 0o600))

	_, err := lockfile.NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrLockfileVersionUnsupported.Error())
}

func TestStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.lock")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": `), 0o600))

	_, err := lockfile.NewStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrLockfileParseFailed.Error())
}
