package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vkngwrapper/worstfit/wfa"
	"golang.org/x/exp/slog"
)

var (
	// Global flags
	verbose    bool
	jsonOut    bool
	noColor    bool
	partitions string
)

var rootCmd = &cobra.Command{
	Use:   "worstfit",
	Short: "Simulate worst-fit allocation over a fixed set of memory partitions",
	Long: `worstfit builds a table of memory partitions from a comma-separated list of
sizes in kilobytes and places processes into it using the worst-fit strategy:
each process goes to the largest free block that can hold it, and whatever is
left over becomes a new free block at the end of the table.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVarP(&partitions, "partitions", "p", "", "Comma-separated partition sizes in KB, e.g. 100,500,200")
	_ = rootCmd.MarkPersistentFlagRequired("partitions")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.HandlerOptions{Level: level}.NewTextHandler(os.Stderr))
}

// newAllocator builds an allocator from the --partitions flag. Commands run on a single goroutine,
// so the allocator's lock is switched off.
func newAllocator() (*wfa.Allocator, error) {
	sizes, err := parsePartitionSizes(partitions)
	if err != nil {
		return nil, err
	}

	return wfa.New(newLogger(), sizes, wfa.CreateOptions{
		Flags: wfa.AllocatorCreateExternallySynchronized,
	})
}
