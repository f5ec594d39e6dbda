package ingest

import (
	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/pkg/models"
)

var (
	backhaulTimeColumns = []string{"timestamp", "time"}
	latencyColumns      = []string{"latency", "latencyms"}
	jitterColumns       = []string{"jitter", "jitterms"}
	txErrorColumns      = []string{"txerrors", "txerr"}
	rxErrorColumns      = []string{"rxerrors", "rxerr"}
)

// ParseBackhaulCSV parses microwave/fiber backhaul telemetry. The
// modulation label is converted to its numeric ordinal; numeric fields
// default to 0.0 when missing or unparsable. Timestamps are kept as
// exported, with the current instant substituted when absent.
func ParseBackhaulCSV(cat *rules.Catalog, content []byte) []models.BackhaulSample {
	var samples []models.BackhaulSample
	for _, row := range rowMaps(content) {
		ts := first(row, backhaulTimeColumns...)
		if ts == "" {
			ts = nowUTC()
		}

		samples = append(samples, models.BackhaulSample{
			Timestamp:  ts,
			Modulation: cat.ModulationOrder(row["modulation"]),
			RSSI:       numeric(row, "rssi"),
			LatencyMS:  numeric(row, latencyColumns...),
			JitterMS:   numeric(row, jitterColumns...),
			TxErrors:   numeric(row, txErrorColumns...),
			RxErrors:   numeric(row, rxErrorColumns...),
		})
	}
	return samples
}
