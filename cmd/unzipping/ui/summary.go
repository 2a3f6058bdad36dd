package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/xl-idp/unzipping/internal/orchestrator"
)

// Summary prints the batch outcome counters.
func Summary(snap orchestrator.Snapshot) {
	fmt.Fprintln(os.Stderr)
	color.New(color.Bold).Fprintln(os.Stderr, "Summary")
	fmt.Fprintf(os.Stderr, "  workbooks: %d\n", snap.Workbooks)
	color.New(color.FgGreen).Fprintf(os.Stderr, "  succeeded: %d\n", snap.Succeeded)
	if snap.Failed > 0 {
		color.New(color.FgRed).Fprintf(os.Stderr, "  failed:    %d\n", snap.Failed)
	} else {
		fmt.Fprintf(os.Stderr, "  failed:    %d\n", snap.Failed)
	}
	fmt.Fprintf(os.Stderr, "  items:     %d\n", snap.Items)
}
