package cli

import (
	"github.com/spf13/cobra"
	"github.com/yildizm/reqlog/internal/logger"
	"github.com/yildizm/reqlog/internal/logset"
	"github.com/yildizm/reqlog/internal/report"
)

func newDumpCommand() *cobra.Command {
	var (
		format string
		filter string
	)

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print requests without the terminal UI",
		Long: `Print every request of a log file, in the same order the viewer shows them.

--filter keeps only requests with at least one line containing the given
text (case-sensitive), the same rule as the viewer's / filter.`,
		Example: `  reqlog dump log/production.log
  reqlog dump --format json log/production.log
  reqlog dump --filter "Completed 500" log/production.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				format = cfg.Output.DumpFormat
			}
			formatter, err := report.New(format, colorEnabled(cfg.Output.ColorMode))
			if err != nil {
				return err
			}

			sets, stats, err := loadSets(resolveFile(args, cfg), cfg, log)
			if err != nil {
				return err
			}

			if filter != "" {
				sets = logset.Filter(sets, filter)
				log.Debug("applied filter", logger.F("filter", filter), logger.Count(len(sets)))
			}

			return writeReport(cmd.OutOrStdout(), formatter, sets, stats)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().StringVar(&filter, "filter", "", "only print requests containing this text")

	return cmd
}
