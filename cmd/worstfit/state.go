package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStateCmd())
}

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the initial partition table",
		Long: `The state command builds the partition table and prints every block.

Example:
  worstfit state --partitions 100,500,200,300,600
  worstfit state --partitions 100,500,200 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(cmd.OutOrStdout())
		},
	}
	return cmd
}

func runState(out io.Writer) error {
	allocator, err := newAllocator()
	if err != nil {
		return err
	}

	if jsonOut {
		str, err := allocator.BuildStatsString(true)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, str)
		return nil
	}

	renderState(out, allocator.Snapshot())
	return nil
}
