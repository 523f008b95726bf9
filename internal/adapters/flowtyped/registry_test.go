package flowtyped_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flowlock/internal/adapters/flowtyped"
	"go.trai.ch/flowlock/internal/adapters/shell"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeFlowTyped records its arguments and only knows the "react" libdef.
const fakeFlowTyped = `#!/bin/sh
echo "$@" >> calls.log
if [ "$1" = "install" ] && [ "$2" != "react" ]; then
  echo "!! No flow@v0.x-compatible libdefs found in flow-typed for $2" >&2
  exit 1
fi
if [ "$1" = "create-stub" ] && [ "$2" = "broken" ]; then
  exit 2
fi
exit 0
`

func setup(t *testing.T) (*flowtyped.Registry, *domain.Config) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	cfg := domain.DefaultConfig(t.TempDir())
	binDir := domain.NodeModulesBinPath(cfg.Root)
	require.NoError(t, os.MkdirAll(binDir, 0o750))
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "flow-typed"), []byte(fakeFlowTyped), 0o700))

	return flowtyped.NewRegistry(shell.NewRunner(mockLogger, cfg), cfg), cfg
}

func readCalls(t *testing.T, cfg *domain.Config) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.Root, "calls.log"))
	require.NoError(t, err)
	return string(data)
}

func TestRegistry_Install(t *testing.T) {
	registry, cfg := setup(t)

	require.NoError(t, registry.Install(context.Background(), "react"))
	assert.Equal(t, "install react\n", readCalls(t, cfg))
}

func TestRegistry_Install_NotFound(t *testing.T) {
	registry, _ := setup(t)

	err := registry.Install(context.Background(), "left-pad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrRegistryLookupFailed.Error())
}

func TestRegistry_CreateStub(t *testing.T) {
	registry, cfg := setup(t)

	path, err := registry.CreateStub(context.Background(), "left-pad")
	require.NoError(t, err)
	assert.Equal(t, "flow-typed/npm/left-pad_vx.x.x.js", path)
	assert.Equal(t, "create-stub left-pad\n", readCalls(t, cfg))
}

func TestRegistry_CreateStub_Failure(t *testing.T) {
	registry, _ := setup(t)

	_, err := registry.CreateStub(context.Background(), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrStubGenerationFailed.Error())
}

func TestRegistry_CustomLibdefDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	cfg := domain.DefaultConfig(t.TempDir())
	cfg.FlowTypedDir = "types/flow"
	binDir := domain.NodeModulesBinPath(cfg.Root)
	require.NoError(t, os.MkdirAll(binDir, 0o750))
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "flow-typed"), []byte(fakeFlowTyped), 0o700))

	registry := flowtyped.NewRegistry(shell.NewRunner(mockLogger, cfg), cfg)

	path, err := registry.CreateStub(context.Background(), "@scope/pkg")
	require.NoError(t, err)
	assert.Equal(t, "types/flow/npm/@scope/pkg_vx.x.x.js", path)
	assert.Equal(t, "create-stub @scope/pkg --libdefDir types/flow\n", readCalls(t, cfg))
}

func TestRegistry_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	cfg := domain.DefaultConfig(t.TempDir())
	cfg.Commands.FlowTyped = nil
	registry := flowtyped.NewRegistry(shell.NewRunner(mockLogger, cfg), cfg)

	err := registry.Install(context.Background(), "react")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrEmptyCommand.Error())
}
