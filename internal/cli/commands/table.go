package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/farsql/pkg/client"
)

// CreateTableOptions holds options for the create-table command.
type CreateTableOptions struct {
	From      string
	Database  string
	Format    string
	Overwrite bool
}

// NewCreateTableCommand creates the create-table command.
func NewCreateTableCommand(env *Env) *cobra.Command {
	opts := &CreateTableOptions{}

	cmd := &cobra.Command{
		Use:   "create-table NAME",
		Short: "Create a table from a query (CTAS)",
		Example: `  # Materialize a query into a new table
  farsql create-table daily_counts --from "SELECT day, count(*) n FROM events GROUP BY day"

  # Replace an existing table
  farsql create-table daily_counts --from "SELECT ..." --overwrite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conn, err := openConnection(ctx, env)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			return recordRun(env, "CREATE TABLE "+args[0], func() (int64, error) {
				e, err := conn.SQL(ctx, opts.From)
				if err != nil {
					return 0, err
				}
				return 0, conn.CreateTable(ctx, args[0], e, client.CreateTableOptions{
					Database:  opts.Database,
					Format:    opts.Format,
					Overwrite: opts.Overwrite,
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "query providing the table body (required)")
	cmd.Flags().StringVar(&opts.Database, "database", "", "database to create the table in")
	cmd.Flags().StringVar(&opts.Format, "storage-format", "", `storage format (default "parquet")`)
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "replace the table if it exists")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

// DropTableOptions holds options for the drop-table command.
type DropTableOptions struct {
	Database  string
	MustExist bool
}

// NewDropTableCommand creates the drop-table command.
func NewDropTableCommand(env *Env) *cobra.Command {
	opts := &DropTableOptions{}

	cmd := &cobra.Command{
		Use:   "drop-table NAME",
		Short: "Drop a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conn, err := openConnection(ctx, env)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			return recordRun(env, "DROP TABLE "+args[0], func() (int64, error) {
				return 0, conn.DropTable(ctx, args[0], client.DropTableOptions{
					Database:  opts.Database,
					MustExist: opts.MustExist,
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Database, "database", "", "database containing the table")
	cmd.Flags().BoolVar(&opts.MustExist, "must-exist", false, "fail if the table does not exist")
	return cmd
}
