package ingest

import (
	"strconv"
	"strings"

	"github.com/milewire/RAN-copilot/pkg/models"
)

var (
	kpiNameColumns  = []string{"kpi", "metric", "counter", "name"}
	kpiSiteColumns  = []string{"site", "cell", "node"}
	kpiValueColumns = []string{"value", "mean", "avg"}
)

// ParseKPICSV parses a PM export into KPI samples. Rows without a KPI
// name or a parsable value are dropped; a missing site defaults to
// UNKNOWN.
func ParseKPICSV(content []byte) []models.KPISample {
	var samples []models.KPISample
	for _, row := range rowMaps(content) {
		name := strings.TrimSpace(first(row, kpiNameColumns...))
		raw := strings.TrimSpace(first(row, kpiValueColumns...))
		if name == "" || raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}

		samples = append(samples, models.KPISample{
			KPI:   name,
			Site:  orUnknown(strings.TrimSpace(first(row, kpiSiteColumns...))),
			Value: value,
		})
	}
	return samples
}
