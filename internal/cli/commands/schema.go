package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/farsql/pkg/expr"
)

// SchemaOptions holds options for the schema command.
type SchemaOptions struct {
	Query string
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(env *Env) *cobra.Command {
	opts := &SchemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema [TABLE]",
		Short: "Show the typed schema of a table or query",
		Long: `Probe the remote engine for the schema of a table or an arbitrary
query. The probe is bounded to zero rows, so it is cheap even on large
tables.`,
		Example: `  # Schema of a table
  farsql schema events

  # Schema of a query
  farsql schema --query "SELECT a, count(*) n FROM events GROUP BY a"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && opts.Query == "" {
				return fmt.Errorf("a table name or --query is required")
			}
			if len(args) == 1 && opts.Query != "" {
				return fmt.Errorf("a table name and --query are mutually exclusive")
			}

			ctx := cmd.Context()
			conn, err := openConnection(ctx, env)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			var e expr.TableExpr
			if opts.Query != "" {
				e, err = conn.SQL(ctx, opts.Query)
			} else {
				e, err = conn.Table(ctx, args[0], "")
			}
			if err != nil {
				return err
			}

			return renderSchema(cmd.OutOrStdout(), e.Schema())
		},
	}

	cmd.Flags().StringVar(&opts.Query, "query", "", "probe the schema of a query instead of a table")
	return cmd
}
