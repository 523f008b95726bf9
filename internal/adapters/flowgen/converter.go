// Package flowgen converts TypeScript declarations to Flow with the flowgen CLI.
package flowgen

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/flowlock/internal/adapters/shell"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	inputName  = "input.d.ts"
	outputName = "output.js"
)

// Converter implements ports.Converter using flowgen and a formatter command.
type Converter struct {
	runner    *shell.Runner
	flowgen   []string
	formatter []string
}

// NewConverter creates a Converter from the configured commands.
func NewConverter(runner *shell.Runner, cfg *domain.Config) *Converter {
	return &Converter{
		runner:    runner,
		flowgen:   cfg.Commands.Flowgen,
		formatter: cfg.Commands.Formatter,
	}
}

// Compile runs "flowgen <input.d.ts> -o <output.js>" in a scratch directory and returns the output.
func (c *Converter) Compile(ctx context.Context, source string) (string, error) {
	if len(c.flowgen) == 0 {
		return "", zerr.Wrap(domain.ErrEmptyCommand, domain.ErrConversionFailed.Error())
	}

	dir, err := os.MkdirTemp("", "flowlock-flowgen-*")
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConversionFailed.Error())
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	input := filepath.Join(dir, inputName)
	output := filepath.Join(dir, outputName)
	if err := os.WriteFile(input, []byte(source), domain.FilePerm); err != nil {
		return "", zerr.Wrap(err, domain.ErrConversionFailed.Error())
	}

	args := slices.Clone(c.flowgen)
	args = append(args, input, "-o", output)
	if _, err := c.runner.Run(ctx, shell.Command{Args: args}); err != nil {
		return "", zerr.Wrap(err, domain.ErrConversionFailed.Error())
	}

	//nolint:gosec // Path is inside our own temp directory
	code, err := os.ReadFile(output)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConversionFailed.Error()), "path", output)
	}

	return string(code), nil
}

// Format pipes code through the formatter command. Without a formatter, code is returned as is.
func (c *Converter) Format(ctx context.Context, code string) (string, error) {
	if len(c.formatter) == 0 {
		return code, nil
	}

	out, err := c.runner.Run(ctx, shell.Command{Args: c.formatter, Stdin: []byte(code)})
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConversionFailed.Error())
	}
	return string(out), nil
}
