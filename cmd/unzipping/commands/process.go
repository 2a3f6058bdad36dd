package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xl-idp/unzipping/cmd/unzipping/ui"
)

var processCmd = &cobra.Command{
	Use:   "process <workbook>...",
	Short: "Process the given workbooks once and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService()
		if err != nil {
			return err
		}
		defer svc.close()

		bar := ui.NewProgressBar(int64(len(args)), "processing")
		failures := 0
		for i, path := range args {
			if _, err := svc.pipeline.ProcessFile(cmd.Context(), path, path); err != nil {
				failures++
				ui.Errorf("%s: %v", path, err)
			}
			bar.Set(int64(i + 1))
		}
		bar.Finish()

		ui.Summary(svc.pipeline.Stats().Snapshot())
		if failures > 0 {
			return fmt.Errorf("%d of %d workbooks failed", failures, len(args))
		}
		return nil
	},
}
