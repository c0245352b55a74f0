package cmd

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	"layout-switcher/internal/layouts"
	"layout-switcher/internal/logger"
	"layout-switcher/internal/switcher"
)

// newApplyCmd copies a preset over the editor layout file after backing the current one up.
func newApplyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <layout_id>",
		Short: "Apply a specific layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			sw, err := opts.switcher()
			if err != nil {
				return err
			}
			reg, err := registry(sw)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return &cliError{msg: "Please specify a layout ID.", hint: listHint}
			}
			id := args[0]

			res, err := sw.Apply(reg, id)
			switch {
			case errors.Is(err, layouts.ErrLayoutNotFound):
				return &cliError{msg: "Layout '" + id + "' not found.", hint: listHint, err: err}
			case errors.Is(err, switcher.ErrSourceMissing):
				return failf(err, "Layout file '%s' not found.", res.Source)
			}

			// The backup runs before the copy, so report it first even if the copy failed.
			printBackup(res.Backup, res.BackupErr)
			if err != nil {
				return failf(err, "Failed to copy layout file: %v", errors.Unwrap(err))
			}

			logger.Info("✓ Applied layout: %s\n", res.Layout.Name)
			logger.Plain("  Description: %s\n", res.Layout.Description)
			logger.Plain("  File: %s -> %s\n", res.Layout.File, filepath.Base(res.Target))
			logger.Plain("\nRestart the editor to see the new layout.\n")
			return nil
		},
	}
}
