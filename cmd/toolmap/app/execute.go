package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/toolmap/cmd"
)

// Execute runs the toolmap CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "toolmap",
		Short:   "AI tools catalog CLI",
		Version: a.version,
		Long: `Toolmap manages a curated catalog of AI tools.

It ships with an embedded seed catalog, imports new tools from JSON or
pipe-delimited text with duplicate-link detection, keeps the tag
vocabulary consistent with rename and delete cascades, and syncs the
whole catalog with a Supabase backend.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "catalog",
		Title: "Catalog Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.toolmap.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("toolmap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand runs before any command: flags override config, and the
// logger is rebuilt with the final settings.
func (a *App) setupCommand(c *cobra.Command, _ []string) error {
	verbose := mustGetBool(c, "verbose")
	quiet := mustGetBool(c, "quiet")
	noColor := mustGetBool(c, "no-color")
	logLevel := mustGetString(c, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands wires all subcommands to the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Catalog commands
	rootCmd.AddCommand(cmd.NewListCommand(a))
	rootCmd.AddCommand(cmd.NewImportCommand(a))
	rootCmd.AddCommand(cmd.NewExportCommand(a))
	rootCmd.AddCommand(cmd.NewNewsCommand(a))

	// Management commands
	rootCmd.AddCommand(cmd.NewTagsCommand(a))
	rootCmd.AddCommand(cmd.NewDuplicatesCommand(a))
	rootCmd.AddCommand(cmd.NewSyncCommand(a))
	rootCmd.AddCommand(cmd.NewPublishCommand(a))
	rootCmd.AddCommand(cmd.NewEnrichCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand reports build information.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(c *cobra.Command, args []string) {
			c.Printf("toolmap %s\n", a.version)
			if a.config.Verbose {
				c.Printf("  commit:   %s\n", a.commit)
				c.Printf("  built:    %s\n", a.date)
				c.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// ExitOnError prints an error and exits with status 1. Meant for top-level
// error handling in main.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't
// exist. Only for flags defined in this package.
func mustGetBool(c *cobra.Command, name string) bool {
	val, err := c.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't
// exist. Only for flags defined in this package.
func mustGetString(c *cobra.Command, name string) string {
	val, err := c.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
