package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xl-idp/unzipping/internal/registry"
)

var validateCmd = &cobra.Command{
	Use:   "validate <taxpayer-id>...",
	Short: "Check taxpayer ids against the country checksum rules",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invalid := 0
		for _, id := range args {
			country, ok := classify(id)
			if ok {
				fmt.Printf("%s\t%s\n", id, country)
			} else {
				fmt.Printf("%s\tinvalid\n", id)
				invalid++
			}
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d ids failed validation", invalid, len(args))
		}
		return nil
	},
}

func classify(id string) (registry.Country, bool) {
	for _, v := range registry.Validators() {
		if v.Valid(id) {
			return v.Country(), true
		}
	}
	return "", false
}
