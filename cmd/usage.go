package cmd

import (
	"strings"

	"layout-switcher/internal/logger"
)

const usageText = `
Usage:
  layout-switcher [flags] <command> [argument]

Commands:
  list                   - Show all available layouts
  apply <layout_id>      - Apply a specific layout (backs up the current one first)
  backup                 - Backup current layout
  restore                - Restore backed up layout
  current                - Show which preset the current layout matches
  validate               - Check that every preset file exists and is valid JSON
  import <archive|url>   - Unpack a layout pack into the layouts directory
  help                   - Show this help message

Flags:
  -d, --dir string        Layouts directory (default: directory of the executable)
  -s, --settings string   Settings file (default: <dir>/switcher.yaml)
      --debug             Enable debug logging

Examples:
  layout-switcher list
  layout-switcher apply developer
  layout-switcher apply dual_monitor
  layout-switcher import https://example.com/packs/studio.tar.gz
`

const usageTitle = "Multi-Viewport Editor Layout Switcher"

func printUsage() {
	logger.Plain("%s\n%s\n%s", usageTitle, strings.Repeat("=", 40), usageText)
}
