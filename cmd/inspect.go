package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"layout-switcher/internal/logger"
)

// newCurrentCmd reports which preset, if any, the editor layout file currently holds.
func newCurrentCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show which preset the current layout matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			sw, err := opts.switcher()
			if err != nil {
				return err
			}
			reg, err := registry(sw)
			if err != nil {
				return err
			}
			status, err := sw.Current(reg)
			if err != nil {
				return err
			}

			if !status.TargetExists {
				logger.Plain("No current layout file at %s.\n", status.Target)
			} else {
				logger.Plain("Current layout file: %s\n", status.Target)
				if len(status.Matches) == 0 {
					logger.Warn("  Does not match any preset (modified or unknown).\n")
				} else {
					logger.Info("  Matches preset: %s\n", strings.Join(status.Matches, ", "))
				}
			}
			if status.LastApplied != nil {
				logger.Plain("  Last applied: %s (%s) at %s\n",
					status.LastApplied.ID, status.LastApplied.Name, status.LastApplied.AppliedAt.Format(time.RFC3339))
			}
			if status.LastBackup != nil {
				logger.Plain("  Last backup: %s at %s\n",
					status.LastBackup.Path, status.LastBackup.BackedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

// newValidateCmd checks every preset file referenced by the registry.
func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every preset file exists and is valid JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			sw, err := opts.switcher()
			if err != nil {
				return err
			}
			reg, err := registry(sw)
			if err != nil {
				return err
			}

			problems := sw.Validate(reg)
			if len(problems) == 0 {
				logger.Info("✓ All %d layouts are valid.\n", reg.Len())
				return nil
			}
			for _, p := range problems {
				logger.Plain("  %s: %s (%v)\n", p.ID, p.Path, p.Err)
			}
			return &cliError{msg: fmt.Sprintf("%d of %d layouts failed validation.", len(problems), reg.Len())}
		},
	}
}
