// Package flowtyped drives the flow-typed CLI: registry installs and stub generation.
package flowtyped

import (
	"context"
	"slices"

	"go.trai.ch/flowlock/internal/adapters/shell"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Registry implements ports.TypeRegistry on top of the flow-typed CLI.
type Registry struct {
	runner    *shell.Runner
	command   []string
	libdefDir string
}

// NewRegistry creates a Registry using the configured flow-typed command.
func NewRegistry(runner *shell.Runner, cfg *domain.Config) *Registry {
	return &Registry{
		runner:    runner,
		command:   cfg.Commands.FlowTyped,
		libdefDir: cfg.FlowTypedDir,
	}
}

// Install runs "flow-typed install <key>".
func (r *Registry) Install(ctx context.Context, key string) error {
	if _, err := r.runner.Run(ctx, shell.Command{Args: r.args("install", key)}); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryLookupFailed.Error()), "package", key)
	}
	return nil
}

// CreateStub runs "flow-typed create-stub <key>" and returns the stub's project-relative path.
func (r *Registry) CreateStub(ctx context.Context, key string) (string, error) {
	if _, err := r.runner.Run(ctx, shell.Command{Args: r.args("create-stub", key)}); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStubGenerationFailed.Error()), "package", key)
	}
	return domain.StubPath(r.libdefDir, key), nil
}

func (r *Registry) args(subcommand, key string) []string {
	if len(r.command) == 0 {
		return nil
	}
	args := slices.Clone(r.command)
	args = append(args, subcommand, key)
	if r.libdefDir != "" && r.libdefDir != domain.FlowTypedDirName {
		args = append(args, "--libdefDir", r.libdefDir)
	}
	return args
}
