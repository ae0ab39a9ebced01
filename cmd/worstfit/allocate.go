package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/worstfit/partition"
)

var (
	resetAfter bool
)

func init() {
	cmd := newAllocateCmd()
	cmd.Flags().BoolVar(&resetAfter, "reset", false, "Reset the table after all allocations and show it again")
	rootCmd.AddCommand(cmd)
}

func newAllocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate <size>...",
		Short: "Allocate processes in order and show the resulting table",
		Long: `The allocate command places each process size, in order, into the partition
table using worst-fit, prints the result of each allocation, then prints the
final table.

Example:
  worstfit allocate --partitions 100,500,200,300,600 212 417 112 426
  worstfit allocate --partitions 100,500,200 --reset 50 60
  worstfit allocate --partitions 100,500,200 --json 50`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAllocate(cmd.OutOrStdout(), args)
		},
	}
	return cmd
}

func runAllocate(out io.Writer, args []string) error {
	sizes, err := parseProcessSizes(args)
	if err != nil {
		return err
	}

	allocator, err := newAllocator()
	if err != nil {
		return err
	}

	outcomes := make([]partition.Outcome, 0, len(sizes))
	for _, size := range sizes {
		outcome, err := allocator.Allocate(size)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, outcome)
	}

	if jsonOut {
		if resetAfter {
			allocator.Reset()
		}

		stats, err := allocator.BuildStatsString(true)
		if err != nil {
			return err
		}
		return printOutcomesJSON(out, outcomes, stats)
	}

	for _, outcome := range outcomes {
		renderOutcome(out, outcome)
	}

	fmt.Fprintln(out)
	renderState(out, allocator.Snapshot())

	if resetAfter {
		allocator.Reset()

		fmt.Fprintln(out)
		fmt.Fprintln(out, "After reset:")
		renderState(out, allocator.Snapshot())
	}

	return nil
}

func printOutcomesJSON(out io.Writer, outcomes []partition.Outcome, stats string) error {
	writer := jwriter.NewWriter()
	obj := writer.Object()

	arr := obj.Name("Outcomes").Array()
	for _, outcome := range outcomes {
		o := arr.Object()
		o.Name("ProcessSize").Int(outcome.Size)
		o.Name("Granted").Bool(outcome.Granted)
		if outcome.Granted {
			o.Name("BlockId").Int(int(outcome.BlockID))
			o.Name("Leftover").Int(outcome.Leftover)
			if outcome.FragmentID != partition.NoBlock {
				o.Name("FragmentId").Int(int(outcome.FragmentID))
			}
		}
		o.Name("Message").String(outcome.String())
		o.End()
	}
	arr.End()

	obj.Name("Allocator").Raw([]byte(stats))
	obj.End()

	err := writer.Error()
	if err != nil {
		return errors.Wrap(err, "failed to write allocation outcomes")
	}

	fmt.Fprintln(out, string(writer.Bytes()))
	return nil
}
