// Package metrics emits application metrics through the global telemetry
// system. All emitters are no-ops until serve mode initializes telemetry.
package metrics

import (
	"strconv"

	"github.com/parcelscope/parcelscope/internal/observability"
)

// RecordBatchRun records one completed aggregation run.
func RecordBatchRun(addresses, rows, errors int) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter("batch_runs_total", 1, nil)
	_ = observability.TelemetrySystem.Counter("batch_addresses_total", float64(addresses), nil)
	_ = observability.TelemetrySystem.Counter("batch_rows_total", float64(rows), nil)
	if errors > 0 {
		_ = observability.TelemetrySystem.Counter("batch_address_errors_total", float64(errors), nil)
	}
}

// RecordRegistryQuery records one remote registry query by table and
// outcome.
func RecordRegistryQuery(table string, success bool) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(
		"registry_queries_total",
		1,
		map[string]string{
			"table":   table,
			"success": strconv.FormatBool(success),
		},
	)
}
