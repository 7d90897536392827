package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/parcelscope/parcelscope/internal/metrics"
	"github.com/parcelscope/parcelscope/internal/observability"
	"github.com/parcelscope/parcelscope/internal/output"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <address>",
	Short: "Look up assessments for a single address",
	Long: `Resolve one street address to a property parcel and fetch its tax
assessments for the selected years.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().IntSlice("years", nil, "tax years to include (default: all selectable years)")
	lookupCmd.Flags().StringP("output", "o", "table", "Output format: table, json, csv, report")
}

func runLookup(cmd *cobra.Command, args []string) error {
	format, err := resolveOutputFormat(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	years, err := resolveYears(cmd, cfg)
	if err != nil {
		return err
	}

	startedAt := time.Now()
	aggregator := buildAggregator(cfg)

	result := aggregator.Run(cmd.Context(), args[:1], years)
	metrics.RecordBatchRun(1, len(result.Rows), len(result.Errors))

	formatter := output.NewFormatter(format, cfg.Report.MaxRows)
	rendered, err := formatter.Format(result)
	if err != nil {
		return err
	}
	fmt.Println(rendered)

	if len(result.Errors) > 0 {
		observability.CLILogger.Warn("Lookup completed with errors",
			zap.Int("errors", len(result.Errors)))
	}
	if format != output.FormatJSON {
		logThroughput(1, startedAt)
	}
	return nil
}
