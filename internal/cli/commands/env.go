// Package commands implements the farsql CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/farsql/internal/config"
	"github.com/leapstack-labs/farsql/internal/state"
	"github.com/leapstack-labs/farsql/pkg/client"

	// Register the bundled drivers.
	_ "github.com/leapstack-labs/farsql/pkg/drivers/duckdb"
	_ "github.com/leapstack-labs/farsql/pkg/drivers/postgres"
)

// Env carries the loaded configuration and logger into commands. It is
// populated by the root command before any subcommand runs.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
}

// openConnection connects using the configured driver and target.
func openConnection(ctx context.Context, env *Env) (*client.Connection, error) {
	return client.Connect(ctx, env.Config.Driver, client.Config{
		Params:  env.Config.Target.Params(),
		Logger:  env.Logger,
		Retries: env.Config.Retries,
	})
}

// openStore opens the run-history store and applies migrations.
func openStore(env *Env) (*state.SQLiteStore, error) {
	store := state.NewSQLiteStore(env.Logger)
	if err := store.Open(env.Config.StatePath); err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrate state store: %w", err)
	}
	return store, nil
}

// recordRun wraps fn with run-history bookkeeping. Store failures are
// logged, not fatal: history must never block a query.
func recordRun(env *Env, query string, fn func() (int64, error)) error {
	store, err := openStore(env)
	if err != nil {
		env.Logger.Warn("run history disabled", slog.String("error", err.Error()))
		_, execErr := fn()
		return execErr
	}
	defer func() { _ = store.Close() }()

	run, err := store.StartRun(query)
	if err != nil {
		env.Logger.Warn("failed to record run", slog.String("error", err.Error()))
	}

	rows, execErr := fn()
	if run != nil {
		status := state.RunStatusSuccess
		if execErr != nil {
			status = state.RunStatusError
		}
		if err := store.FinishRun(run.ID, status, rows, execErr); err != nil {
			env.Logger.Warn("failed to finish run", slog.String("error", err.Error()))
		}
	}
	return execErr
}
