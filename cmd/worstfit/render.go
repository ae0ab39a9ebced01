package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/vkngwrapper/worstfit/partition"
)

var (
	freeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#14919B")).Bold(true)
	allocatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B6477"))
	deniedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func renderState(out io.Writer, blocks []partition.BlockView) {
	for _, view := range blocks {
		status := view.Status()
		if !noColor {
			if view.IsFree {
				status = freeStyle.Render(status)
			} else {
				status = allocatedStyle.Render(status)
			}
		}

		fmt.Fprintf(out, "Block %d: %dKB - %s\n", view.ID, view.Size, status)
	}
}

func renderOutcome(out io.Writer, outcome partition.Outcome) {
	message := outcome.String()
	if !outcome.Granted && !noColor {
		message = deniedStyle.Render(message)
	}

	fmt.Fprintln(out, message)
}
