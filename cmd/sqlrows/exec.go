package main

import (
	"github.com/spf13/cobra"
)

func newExecCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec SQL [ARGS...]",
		Short: "Run a statement and print the number of affected rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := o.open(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Exec(cmd.Context(), args[0], statementArgs(args[1:])...)
			if err != nil {
				return err
			}
			return o.write(cmd.OutOrStdout(), n)
		},
	}
}
