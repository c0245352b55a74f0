package cmd

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"layout-switcher/internal/config"
	"layout-switcher/internal/layouts"
	"layout-switcher/internal/logger"
	"layout-switcher/internal/switcher"
)

// options holds the global flags shared by every subcommand.
type options struct {
	debug    bool   // --debug: enable debug output
	dir      string // --dir: layouts directory, defaults to the executable's directory
	settings string // --settings: explicit switcher.yaml
}

// switcher resolves the paths for this invocation and returns a Switcher over them.
func (o *options) switcher() (*switcher.Switcher, error) {
	dir := o.dir
	if dir == "" {
		exeDir, err := config.ExecutableDir()
		if err != nil {
			return nil, err
		}
		dir = exeDir
	}
	paths, err := config.Load(dir, o.settings)
	if err != nil {
		return nil, err
	}
	logger.Debug("[DEBUG] Paths: %+v\n", paths)
	return switcher.New(paths), nil
}

// registry loads the layout registry named by the switcher's paths.
func registry(sw *switcher.Switcher) (*layouts.Registry, error) {
	path := sw.Paths().Config
	reg, err := layouts.Load(path)
	var cfgErr *layouts.ConfigError
	switch {
	case errors.Is(err, layouts.ErrConfigNotFound):
		return nil, failf(err, "Configuration file not found at %s", path)
	case errors.As(err, &cfgErr):
		return nil, failf(err, "Invalid JSON in configuration file: %v", cfgErr.Err)
	case err != nil:
		return nil, err
	}
	logger.Debug("[DEBUG] Loaded %d layouts from %s: %s\n", reg.Len(), path, strings.Join(reg.IDs(), ", "))
	return reg, nil
}

// newRootCmd builds the command tree. Each invocation gets a fresh tree so flag values
// never leak between runs.
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "layout-switcher",
		Short: "Switch between editor layout presets",

		// Errors and usage are printed by run so every failure looks the same.
		SilenceErrors: true,
		SilenceUsage:  true,

		// Arguments that match no subcommand reach RunE and are reported as unknown commands.
		Args: cobra.ArbitraryArgs,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(opts.debug) // Set up logging (verbose if --debug is true)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoCommand
			}
			return &cliError{msg: "Unknown command '" + args[0] + "'", usage: true}
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "d", "", "Layouts directory (default: directory of the executable)")
	rootCmd.PersistentFlags().StringVarP(&opts.settings, "settings", "s", "", "Settings file (default: <dir>/"+config.DefaultSettingsFile+")")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == rootCmd {
			printUsage()
			return
		}
		defaultHelp(cmd, args)
	})
	defaultUsage := rootCmd.UsageFunc()
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		if cmd == rootCmd {
			printUsage()
			return nil
		}
		return defaultUsage(cmd)
	})

	rootCmd.AddCommand(
		newListCmd(opts),
		newApplyCmd(opts),
		newBackupCmd(opts),
		newRestoreCmd(opts),
		newCurrentCmd(opts),
		newValidateCmd(opts),
		newImportCmd(opts),
	)
	return rootCmd
}

func init() {
	// Command words match regardless of case: "APPLY" runs apply.
	cobra.EnableCaseInsensitive = true
}

// Execute runs the CLI against os.Args and returns the process exit status.
func Execute() int {
	return run(os.Args[1:], os.Stdout)
}

// run executes one invocation with args, writing all output to out.
// It returns 0 on success and 1 on any failure.
func run(args []string, out io.Writer) int {
	logger.SetOutput(out)
	if args == nil {
		args = []string{}
	}

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	if err := rootCmd.Execute(); err != nil {
		report(err)
		return 1
	}
	return 0
}
