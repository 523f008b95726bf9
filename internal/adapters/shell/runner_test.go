package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flowlock/internal/adapters/shell"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
	"go.trai.ch/flowlock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRunner(t *testing.T, log ports.Logger) (*shell.Runner, *domain.Config) {
	t.Helper()
	cfg := domain.DefaultConfig(t.TempDir())
	return shell.NewRunner(log, cfg), cfg
}

func TestRunner_Run_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		mockLogger.EXPECT().Debug("running sh -c echo line1; echo line2"),
		mockLogger.EXPECT().Debug("line1"),
		mockLogger.EXPECT().Debug("line2"),
	)

	runner, _ := newRunner(t, mockLogger)

	out, err := runner.Run(context.Background(), shell.Command{
		Args: []string{"sh", "-c", "echo line1; echo line2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", string(out))
}

func TestRunner_Run_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Debug(gomock.Not("part1part2")).Times(1)
	mockLogger.EXPECT().Debug("part1part2").Times(1)

	runner, _ := newRunner(t, mockLogger)

	_, err := runner.Run(context.Background(), shell.Command{
		Args: []string{"sh", "-c", "printf part1; sleep 0.1; echo part2"},
	})
	require.NoError(t, err)
}

func TestRunner_Run_TrailingPartialLineFlushed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Debug(gomock.Not("no newline")).Times(1)
	mockLogger.EXPECT().Debug("no newline").Times(1)

	runner, _ := newRunner(t, mockLogger)

	out, err := runner.Run(context.Background(), shell.Command{
		Args: []string{"sh", "-c", "printf 'no newline'"},
	})
	require.NoError(t, err)
	assert.Equal(t, "no newline", string(out))
}

func TestRunner_Run_Stdin(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	runner, _ := newRunner(t, mockLogger)

	out, err := runner.Run(context.Background(), shell.Command{
		Args:  []string{"cat"},
		Stdin: []byte("declare var x: number;\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "declare var x: number;\n", string(out))
}

func TestRunner_Run_DefaultsToProjectRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	runner, cfg := newRunner(t, mockLogger)

	out, err := runner.Run(context.Background(), shell.Command{Args: []string{"pwd"}})
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(cfg.Root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(string(out)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunner_Run_NodeModulesBinOnPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	runner, cfg := newRunner(t, mockLogger)

	binDir := domain.NodeModulesBinPath(cfg.Root)
	require.NoError(t, os.MkdirAll(binDir, 0o750))
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "fake-flow-typed"), []byte("#!/bin/sh\necho \"local $1\"\n"), 0o700))

	out, err := runner.Run(context.Background(), shell.Command{
		Args: []string{"fake-flow-typed", "install"},
	})
	require.NoError(t, err)
	assert.Equal(t, "local install\n", string(out))
}

func TestRunner_Run_ConfiguredEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	cfg := domain.DefaultConfig(t.TempDir())
	cfg.Environment = map[string]string{"FLOWLOCK_TEST_VALUE": "test-value-123"}
	runner := shell.NewRunner(mockLogger, cfg)

	out, err := runner.Run(context.Background(), shell.Command{
		Args: []string{"sh", "-c", "echo $FLOWLOCK_TEST_VALUE"},
	})
	require.NoError(t, err)
	assert.Equal(t, "test-value-123\n", string(out))
}

func TestRunner_Run_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	runner, _ := newRunner(t, mockLogger)

	_, err := runner.Run(context.Background(), shell.Command{
		Args: []string{"sh", "-c", "echo boom >&2; exit 3"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrCommandFailed.Error())
}

func TestRunner_Run_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	runner, _ := newRunner(t, mockLogger)

	_, err := runner.Run(context.Background(), shell.Command{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrEmptyCommand.Error())
}

func TestRunner_Run_WithVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	var stdoutBuf, stderrBuf bytes.Buffer
	mockVertex := mocks.NewMockVertex(ctrl)
	mockVertex.EXPECT().Stdout().Return(&stdoutBuf).AnyTimes()
	mockVertex.EXPECT().Stderr().Return(&stderrBuf).AnyTimes()

	runner, _ := newRunner(t, mockLogger)
	ctx := ports.ContextWithVertex(context.Background(), mockVertex)

	_, err := runner.Run(ctx, shell.Command{
		Args: []string{"sh", "-c", "echo hello to stdout; echo hello to stderr >&2"},
	})
	require.NoError(t, err)

	assert.Contains(t, stdoutBuf.String(), "hello to stdout")
	assert.Contains(t, stderrBuf.String(), "hello to stderr")
}

func TestRunner_Run_ContextCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	runner, _ := newRunner(t, mockLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, shell.Command{Args: []string{"sh", "-c", "sleep 5"}})
	require.Error(t, err)
}
