package main

import (
	"fmt"

	"github.com/samuelfneumann/smartcab/agent/tabular/qtable"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table <file>",
	Short: "Print a saved table of action values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := qtable.Load(args[0])
		if err != nil {
			return fmt.Errorf("table: %v", err)
		}
		_, err = table.WriteTo(cmd.OutOrStdout())
		return err
	},
}
