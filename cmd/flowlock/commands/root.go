// Package commands implements the CLI commands for flowlock.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/flowlock/internal/app"
)

// CLI represents the command line interface for flowlock.
type CLI struct {
	app      Application
	settings LogSettings
	rootCmd  *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Status(ctx context.Context, w io.Writer) error
}

// LogSettings adjusts logger output from global flags.
type LogSettings interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app.
// settings may be nil when the logger cannot be reconfigured.
func New(a Application, settings LogSettings) *CLI {
	c := &CLI{
		app:      a,
		settings: settings,
	}

	rootCmd := &cobra.Command{
		Use:   "flowlock [package]",
		Short: "Resolve Flow library definitions for every dependency",
		Long: "flowlock finds a Flow library definition for each project dependency, trying in order:\n" +
			"the package's own index.js.flow, the flow-typed registry, conversion of its TypeScript\n" +
			"declarations and finally a flow-typed stub. Outcomes are recorded in flow-typed/flow.lock.\n\n" +
			"With a package argument only that package is resolved and the lockfile is left untouched.\n" +
			"Packages named like a subcommand are passed after \"--\", e.g. \"flowlock -- status\".",
		Example: "  flowlock\n" +
			"  flowlock left-pad@^1.3.0\n" +
			"  flowlock -- version",
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.applyGlobalFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.RunOptions{Out: cmd.OutOrStdout()}
			if len(args) == 1 {
				opts.Pattern = args[0]
			}
			return c.app.Run(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output, including external tool output")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	if c.settings == nil {
		return nil
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	jsonLogs, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	c.settings.SetVerbose(verbose)
	c.settings.SetJSON(jsonLogs)
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
