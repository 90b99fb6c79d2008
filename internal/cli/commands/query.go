package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/farsql/pkg/client"
	"github.com/leapstack-labs/farsql/pkg/result"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Limit  int64
}

// NewQueryCommand creates the query command.
func NewQueryCommand(env *Env) *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query SQL",
		Short: "Execute a SQL query against the remote engine",
		Example: `  # Execute SQL directly
  farsql query "SELECT * FROM events"

  # Bound the result to 100 rows unless the query carries its own limit
  farsql query "SELECT * FROM events" --limit 100

  # Output as JSON
  farsql query "SELECT count(*) n FROM events" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], env, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table|json|csv)")
	cmd.Flags().Int64Var(&opts.Limit, "limit", 0, "default row limit (0 uses the configured default)")
	return cmd
}

func runQuery(cmd *cobra.Command, queryText string, env *Env, opts *QueryOptions) error {
	ctx := cmd.Context()

	conn, err := openConnection(ctx, env)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	limit := opts.Limit
	if limit == 0 {
		limit = env.Config.DefaultLimit
	}

	var res *result.Table
	err = recordRun(env, queryText, func() (int64, error) {
		e, err := conn.SQL(ctx, queryText)
		if err != nil {
			return 0, err
		}
		res, err = conn.Execute(ctx, e, client.WithDefaultLimit(limit))
		if err != nil {
			return 0, err
		}
		return int64(res.NumRows()), nil
	})
	if err != nil {
		return err
	}

	return renderResult(cmd.OutOrStdout(), res, opts.Format)
}
