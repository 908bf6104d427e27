package main

import (
	"io"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/nlimpid/sqlrows/conn"
)

type rootOptions struct {
	cfg     conn.Config
	pretty  bool
	verbose bool
}

// newRootCmd builds the command tree. Flags default to cfg.
func newRootCmd(cfg conn.Config) *cobra.Command {
	o := &rootOptions{cfg: cfg}

	root := &cobra.Command{
		Use:   "sqlrows",
		Short: "Run SQL statements and print typed results",
		Long: `sqlrows runs a statement against a database/sql driver and prints the rows
as JSON, with values cast by column name (id and *_id to integers, is_* to
booleans, *_at and *_on to timestamps).

Connection settings default from the environment:
  SQLROWS_DRIVER, SQLROWS_DSN, SQLROWS_LOG_SQL, SQLROWS_SLOW_QUERY, ...

Examples:
  sqlrows query "SELECT id, name FROM users WHERE id > ?" 10
  sqlrows --driver duckdb query --index-by id "SELECT * FROM 'users.parquet'"
  sqlrows --dsn app.db exec "DELETE FROM sessions WHERE expires_at < ?" 2024-01-01`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.cfg.Driver, "driver", o.cfg.Driver, "database/sql driver (sqlite3, duckdb)")
	flags.StringVar(&o.cfg.DSN, "dsn", o.cfg.DSN, "data source name")
	flags.BoolVar(&o.cfg.LogSQL, "log-sql", o.cfg.LogSQL, "log every statement to stderr")
	flags.BoolVar(&o.pretty, "pretty", false, "pretty print output")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newQueryCmd(o))
	root.AddCommand(newExecCmd(o))
	return root
}

func (o *rootOptions) open(cmd *cobra.Command) (*conn.DB, error) {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return conn.Open(o.cfg, conn.WithLogger(logger))
}

func (o *rootOptions) write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if o.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// statementArgs passes positional arguments to the driver as strings.
func statementArgs(args []string) []any {
	return lo.Map(args, func(a string, _ int) any { return a })
}
