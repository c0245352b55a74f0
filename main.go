package main

import (
	"os"

	"layout-switcher/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which parses the command line, runs the command,
// and returns the exit status.
//
// layout-switcher swaps the active layout file of a multi-viewport editor between
// named presets:
//   - A registry file (layout_config.json) lists each preset's name, description,
//     recommended resolution, use cases, and preset file
//   - apply copies a preset over the editor's layout file, backing up the old one first
//   - backup and restore snapshot the editor's layout file and put it back
//   - current, validate, and import inspect the setup and install new layout packs
//
// Every failure is printed to standard output and exits with status 1.
func main() {
	os.Exit(cmd.Execute())
}
