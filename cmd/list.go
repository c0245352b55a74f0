package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
	"layout-switcher/internal/logger"
)

// newListCmd prints every layout in the registry, in the order the config declares them.
func newListCmd(opts *options) *cobra.Command {
	var jsonOut bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show all available layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			sw, err := opts.switcher()
			if err != nil {
				return err
			}
			reg, err := registry(sw)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reg.All())
			}

			logger.Plain("Available layouts:\n")
			logger.Plain("%s\n", strings.Repeat("=", 50))
			for _, l := range reg.All() {
				logger.Plain("\n%s:\n", l.ID)
				logger.Plain("  Name: %s\n", l.Name)
				logger.Plain("  Description: %s\n", l.Description)
				logger.Plain("  Recommended Resolution: %s\n", l.RecommendedResolution)
				logger.Plain("  Use Cases: %s\n", strings.Join(l.UseCases, ", "))
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the layouts as a JSON array")
	return listCmd
}
