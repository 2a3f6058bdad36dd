package commands

import (
	"github.com/spf13/cobra"

	"github.com/xl-idp/unzipping/cmd/unzipping/ui"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "unzipping",
	Short: "Customs invoice ingestion - decodes shipping workbooks into JSON",
	Long: `The unzipping service watches an inbox for Excel invoices and zip batches,
decodes the semi-structured sheets into line-item JSON, and enriches every
party with its taxpayer identity resolved from the national registries.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.Init(noColor, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(validateCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
