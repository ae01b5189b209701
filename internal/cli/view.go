package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yildizm/reqlog/internal/config"
	"github.com/yildizm/reqlog/internal/logger"
	"github.com/yildizm/reqlog/internal/logset"
	"github.com/yildizm/reqlog/internal/report"
	"github.com/yildizm/reqlog/internal/ui"
	"github.com/yildizm/reqlog/internal/watch"
)

type viewOptions struct {
	watch bool
	theme string
	noTUI bool
}

func newViewCommand() *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse requests in the terminal UI",
		Long: `Open the interactive viewer on a log file.

The upper pane lists one request per row, the lower pane shows every line of
the selected request. When no file is given the configured default_file
(rails.log unless configured otherwise) is opened.

Keys:
  j/k, ↓/↑    next/previous request
  g/G         first/last request
  /           filter requests (enter applies, esc clears)
  pgdn/pgup   scroll the detail pane
  q           quit`,
		Example: `  reqlog view log/production.log
  reqlog view --watch log/development.log
  reqlog view --theme high-contrast app.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, opts)
		},
	}

	addViewFlags(cmd, opts)
	return cmd
}

func addViewFlags(cmd *cobra.Command, opts *viewOptions) {
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload when the file changes")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme (default, high-contrast, minimal)")
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "print requests instead of opening the viewer")
}

func runView(cmd *cobra.Command, args []string, opts *viewOptions) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("watch") {
		cfg.Viewer.Watch = opts.watch
	}
	if opts.theme != "" {
		cfg.Viewer.Theme = opts.theme
	}
	if !ui.SetThemeByName(cfg.Viewer.Theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", cfg.Viewer.Theme, ui.GetAvailableThemes())
	}
	ui.ApplyColorMode(cfg.Output.ColorMode, noColor)

	path := resolveFile(args, cfg)
	sets, stats, err := loadSets(path, cfg, log)
	if err != nil {
		return err
	}

	if !shouldUseTUI(opts.noTUI, isTerminal(os.Stdout)) {
		log.Debug("stdout is not a terminal, printing requests")
		return writeReport(cmd.OutOrStdout(), report.NewTerminal(colorEnabled(cfg.Output.ColorMode)), sets, stats)
	}

	closeLog, err := redirectLogs(log, cfg.Output.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	model := ui.NewModel(sets, ui.Options{
		Source:       filepath.Base(path),
		PollInterval: cfg.Viewer.PollInterval,
		ListRatio:    cfg.Viewer.ListRatio,
		WrapIndent:   cfg.Viewer.WrapIndent,
		Stats:        stats,
		Logger:       log,
	})
	program := ui.NewProgram(ctx, model)

	if cfg.Viewer.Watch {
		stopWatch, err := startWatcher(ctx, path, cfg, log, program)
		if err != nil {
			return err
		}
		defer stopWatch()
	}

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}

// shouldUseTUI reports whether the interactive viewer should run
func shouldUseTUI(noTUI, terminal bool) bool {
	return !noTUI && terminal
}

func loadSets(path string, cfg *config.Config, log *logger.Logger) ([]logset.Set, logset.Stats, error) {
	start := time.Now()
	sets, stats, err := logset.Load(path, logset.LoadOptions{MaxLineLength: cfg.Input.MaxLineLength})
	if err != nil {
		return nil, logset.Stats{}, err
	}

	log.Info("loaded log file",
		logger.F("path", path),
		logger.F("lines", stats.Lines),
		logger.F("sets", stats.Sets),
		logger.F("skipped", stats.Skipped),
		logger.Duration(time.Since(start)))
	return sets, stats, nil
}

// redirectLogs keeps diagnostics off the terminal while the viewer owns it
func redirectLogs(log *logger.Logger, path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(path, "reqlog")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

// startWatcher forwards reloads of path into the running program
func startWatcher(ctx context.Context, path string, cfg *config.Config, log *logger.Logger, program *tea.Program) (func(), error) {
	w, err := watch.New(path, watch.Options{
		Debounce: cfg.Viewer.WatchDebounce,
		Load:     logset.LoadOptions{MaxLineLength: cfg.Input.MaxLineLength},
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}

	log.Info("watching for changes", logger.F("path", w.Path()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		err := w.Run(ctx, func(r watch.Result) {
			program.Send(ui.ReloadMsg{Sets: r.Sets, Stats: r.Stats, Err: r.Err})
		})
		if err != nil {
			log.Warn("watcher stopped", logger.Error(err))
		}
	}()

	return func() {
		if err := w.Close(); err != nil {
			log.Warn("failed to close watcher", logger.Error(err))
		}
		<-done
	}, nil
}

func writeReport(w io.Writer, formatter report.Formatter, sets []logset.Set, stats logset.Stats) error {
	out, err := formatter.Format(sets, stats)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
