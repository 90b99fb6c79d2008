// Package cli provides the command-line interface for farsql.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/farsql/internal/cli/commands"
	"github.com/leapstack-labs/farsql/internal/config"
)

var (
	cfgFile    string
	driverFlag string
	verbose    bool

	env = &commands.Env{}
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "farsql",
		Short: "farsql - remote analytic-database execution layer",
		Long: `farsql submits compiled queries to a remote SQL engine, recovers from
transient connection failures, and converts result metadata into typed
schemas. It also issues CTAS and DROP TABLE statements derived from
compiled plans.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			path := cfgFile
			if path == "" {
				path = config.FindConfigFile(".")
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if driverFlag != "" {
				cfg.Driver = driverFlag
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			env.Config = cfg
			env.Logger = logger
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./farsql.yaml)")
	rootCmd.PersistentFlags().StringVarP(&driverFlag, "driver", "d", "", "driver to connect with (e.g. duckdb, postgres)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(commands.NewQueryCommand(env))
	rootCmd.AddCommand(commands.NewSchemaCommand(env))
	rootCmd.AddCommand(commands.NewCreateTableCommand(env))
	rootCmd.AddCommand(commands.NewDropTableCommand(env))
	rootCmd.AddCommand(commands.NewRunsCommand(env))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}
