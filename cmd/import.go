package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"layout-switcher/internal/archive"
	"layout-switcher/internal/layouts"
	"layout-switcher/internal/logger"
)

// newImportCmd unpacks a layout pack (local archive or http(s) URL) into the layouts directory.
func newImportCmd(opts *options) *cobra.Command {
	var force bool

	importCmd := &cobra.Command{
		Use:   "import <archive|url>",
		Short: "Unpack a layout pack into the layouts directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &cliError{msg: "Please specify an archive path or URL."}
			}
			sw, err := opts.switcher()
			if err != nil {
				return err
			}
			dir := sw.Paths().Dir

			res, err := archive.Import(cmd.Context(), args[0], dir, archive.Options{Overwrite: force})
			for _, path := range res.Written {
				logger.Debug("[DEBUG] Wrote %s\n", path)
			}
			for _, path := range res.Skipped {
				logger.Warn("Skipped existing file: %s (use --force to overwrite)\n", path)
			}
			if errors.Is(err, archive.ErrUnsupported) {
				return failf(err, "Unsupported archive format: %s", args[0])
			}
			if err != nil {
				return failf(err, "Failed to import layout pack: %v", err)
			}
			logger.Info("✓ Imported %d file(s) into %s\n", len(res.Written), dir)

			// The pack may have brought its own registry; report what is now available.
			if reg, err := layouts.Load(sw.Paths().Config); err == nil {
				logger.Plain("%d layouts available. Use 'list' command to see them.\n", reg.Len())
			} else {
				logger.Debug("[DEBUG] Registry not loadable after import: %v\n", err)
			}
			return nil
		},
	}
	importCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite files that already exist")
	return importCmd
}
