package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"layout-switcher/internal/logger"
	"layout-switcher/internal/switcher"
)

// newBackupCmd snapshots the editor layout file. Nothing to back up is not a failure.
func newBackupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Backup current layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			sw, err := opts.switcher()
			if err != nil {
				return err
			}
			res, err := sw.Backup()
			printBackup(res, err)
			return nil
		},
	}
}

// newRestoreCmd copies the snapshot back over the editor layout file.
func newRestoreCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore backed up layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			sw, err := opts.switcher()
			if err != nil {
				return err
			}
			err = sw.Restore()
			switch {
			case errors.Is(err, switcher.ErrNoBackup):
				return failf(err, "No backup file found.")
			case err != nil:
				return failf(err, "Failed to restore backup: %v", errors.Unwrap(err))
			}
			logger.Info("✓ Backup layout restored.\n")
			return nil
		},
	}
}

// printBackup reports a backup attempt. A failed backup is only a warning.
func printBackup(res switcher.BackupResult, err error) {
	switch {
	case err != nil:
		logger.Warn("Warning: %v\n", err)
	case res.Skipped:
		logger.Plain("No current layout file to backup.\n")
	default:
		logger.Info("✓ Current layout backed up to: %s\n", res.Path)
	}
}
