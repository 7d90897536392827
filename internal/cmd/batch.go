package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/parcelscope/parcelscope/internal/carto"
	"github.com/parcelscope/parcelscope/internal/config"
	"github.com/parcelscope/parcelscope/internal/core"
	"github.com/parcelscope/parcelscope/internal/metrics"
	"github.com/parcelscope/parcelscope/internal/observability"
	"github.com/parcelscope/parcelscope/internal/output"
)

var batchCmd = &cobra.Command{
	Use:   "batch [addresses...]",
	Short: "Look up assessments for multiple addresses",
	Long: `Resolve each address to a parcel and fetch its assessments for the
selected years, aggregated into one table. Addresses come from positional
arguments or from --addresses-file (one per line, or a CSV with an
"address" column; "-" reads from stdin).`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("addresses-file", "f", "", `addresses file ("-" for stdin)`)
	batchCmd.Flags().IntSlice("years", nil, "tax years to include (default: all selectable years)")
	batchCmd.Flags().StringP("output", "o", "table", "Output format: table, json, csv, report")
	batchCmd.Flags().String("out", "", `write output to file ("-" for stdout)`)
}

func runBatch(cmd *cobra.Command, args []string) error {
	format, err := resolveOutputFormat(cmd)
	if err != nil {
		return err
	}

	addressesFile, err := cmd.Flags().GetString("addresses-file")
	if err != nil {
		return err
	}
	addresses, err := resolveAddresses(args, addressesFile)
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

	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	startedAt := time.Now()
	aggregator := buildAggregator(cfg)

	result := aggregator.Run(cmd.Context(), addresses, years)
	metrics.RecordBatchRun(len(addresses), len(result.Rows), len(result.Errors))

	formatter := output.NewFormatter(format, cfg.Report.MaxRows)
	rendered, err := formatter.Format(result)
	if err != nil {
		return err
	}

	sink, err := openSink(outPath)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(sink.writer, rendered); err != nil {
		_ = sink.close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := sink.close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if sink.path != "-" {
		observability.CLILogger.Info("Wrote output", zap.String("path", sink.path))
	}

	if len(result.Errors) > 0 {
		observability.CLILogger.Warn("Batch completed with errors",
			zap.Int("errors", len(result.Errors)))
	}
	if format != output.FormatJSON {
		logThroughput(len(addresses), startedAt)
	}
	return nil
}

// resolveYears reads the --years flag, defaulting to the full selectable
// menu, and rejects years outside the configured range.
func resolveYears(cmd *cobra.Command, cfg *config.Config) ([]int, error) {
	years, err := cmd.Flags().GetIntSlice("years")
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return cfg.SelectableYears(), nil
	}
	for _, year := range years {
		if year < cfg.Years.Min || year > cfg.Years.Max {
			return nil, fmt.Errorf("year %d outside selectable range %d-%d", year, cfg.Years.Min, cfg.Years.Max)
		}
	}
	return years, nil
}

// buildAggregator wires the pipeline from the loaded configuration, with
// per-address progress reported at debug level.
func buildAggregator(cfg *config.Config) *core.Aggregator {
	client := carto.NewClient(cfg.Carto.BaseURL, cfg.Carto.Timeout)
	return &core.Aggregator{
		Resolver: &core.Resolver{Client: client, Table: cfg.Carto.PropertiesTable},
		Fetcher:  &core.Fetcher{Client: client, Table: cfg.Carto.AssessmentsTable},
		Progress: func(done, total int) {
			observability.CLILogger.Debug("Address processed",
				zap.Int("done", done),
				zap.Int("total", total))
		},
	}
}

func logThroughput(count int, startedAt time.Time) {
	if count <= 0 {
		return
	}
	elapsed := time.Since(startedAt)
	if elapsed <= 0 {
		return
	}
	rate := float64(count) / elapsed.Seconds()
	observability.CLILogger.Info(
		"Lookup throughput",
		zap.Int("addresses", count),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rate_per_sec", rate),
	)
}
