package main

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/nlimpid/sqlrows/result"
	"github.com/nlimpid/sqlrows/row"
)

type queryOptions struct {
	indexBy string
	columns []string
}

func newQueryCmd(o *rootOptions) *cobra.Command {
	q := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query SQL [ARGS...]",
		Short: "Run a query and print the rows as JSON",
		Long: `Run a query and print the rows as a JSON array, or as an object keyed by
--index-by. Positional arguments after the statement are bound to its
placeholders as strings.

Examples:
  sqlrows query "SELECT * FROM users"
  sqlrows query --select id,name "SELECT * FROM users WHERE created_at > ?" 2024-01-01
  sqlrows query --index-by email "SELECT id, email FROM users"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			var out any
			err = db.Each(cmd.Context(), args[0], statementArgs(args[1:]), func(v *result.View) error {
				var err error
				out, err = q.render(v)
				return err
			})
			if err != nil {
				return err
			}
			return o.write(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&q.indexBy, "index-by", "", "print an object keyed by this column")
	cmd.Flags().StringSliceVarP(&q.columns, "select", "s", nil, "columns to include (e.g. id,name)")
	return cmd
}

func (q *queryOptions) render(v *result.View) (any, error) {
	if q.indexBy != "" {
		m, err := v.ToArrayIndexedBy(q.indexBy)
		if err != nil {
			return nil, err
		}
		return lo.MapValues(m, func(rec any, _ string) any { return q.pick(rec) }), nil
	}

	recs, err := v.ToArray()
	if err != nil {
		return nil, err
	}
	return lo.Map(recs, func(rec any, _ int) any { return q.pick(rec) }), nil
}

// pick keeps the selected columns in result order.
func (q *queryOptions) pick(rec any) any {
	r, ok := rec.(*row.Row)
	if !ok || len(q.columns) == 0 {
		return rec
	}
	cols := lo.Filter(r.Columns(), func(c string, _ int) bool {
		return lo.Contains(q.columns, c)
	})
	return row.New(cols, lo.Map(cols, func(c string, _ int) any { return r.Value(c) }))
}
