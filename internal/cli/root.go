package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yildizm/reqlog/internal/config"
	"github.com/yildizm/reqlog/internal/emoji"
	"github.com/yildizm/reqlog/internal/logger"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	noEmoji bool
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &viewOptions{}

	rootCmd := &cobra.Command{
		Use:   "reqlog [file]",
		Short: "Browse logs grouped by request",
		Long: `reqlog reads a log file, groups its lines by the 32-character hex request id
each line carries, and lets you browse the requests in a terminal UI.

Requests are ordered by the timestamp of their first line. Press / to filter
requests by a substring of any of their lines.

Running reqlog without a subcommand is the same as "reqlog view".`,
		Example: `  reqlog
  reqlog log/production.log
  reqlog --watch log/development.log
  reqlog dump --filter ERROR log/production.log`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, opts)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	addViewFlags(rootCmd, opts)

	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "reqlog %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// setup loads the effective configuration and a logger whose verbosity
// follows --verbose or output.verbose
func setup() (*config.Config, *logger.Logger, error) {
	var cfgVerbose bool
	log := logger.New("cli", func() bool { return verbose || cfgVerbose })

	cfg, err := config.NewLoader().WithWarn(log.Warnf).LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfgVerbose = cfg.Output.Verbose

	return cfg, log, nil
}

// resolveFile returns the file argument or the configured default
func resolveFile(args []string, cfg *config.Config) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cfg.Input.DefaultFile
}

// colorEnabled decides whether plain-text output gets ANSI colors
func colorEnabled(mode string) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
