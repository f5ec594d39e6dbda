package analyzer

import (
	"math"
	"sort"

	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/pkg/models"
)

// SummarizeKPIs groups samples by KPI name, computes the evidence
// statistics, and flags threshold violations against the rule catalog.
// Samples without a KPI name are ignored; a missing site groups under
// UNKNOWN. Anomalies come out in first-seen KPI order.
func SummarizeKPIs(cat *rules.Catalog, samples []models.KPISample) (models.Evidence, []models.Anomaly, models.SiteIndex) {
	byName := map[string][]float64{}
	var nameOrder []string
	bySite := models.SiteIndex{}

	for _, s := range samples {
		if s.KPI == "" {
			continue
		}
		site := s.Site
		if site == "" {
			site = "UNKNOWN"
		}

		if _, ok := byName[s.KPI]; !ok {
			nameOrder = append(nameOrder, s.KPI)
		}
		byName[s.KPI] = append(byName[s.KPI], s.Value)

		if bySite[site] == nil {
			bySite[site] = map[string][]float64{}
		}
		bySite[site][s.KPI] = append(bySite[site][s.KPI], s.Value)
	}

	evidence := models.Evidence{}
	var anomalies []models.Anomaly

	for _, name := range nameOrder {
		stats := computeStats(byName[name])
		evidence[name] = stats

		threshold, ok := cat.Thresholds[name]
		if !ok {
			continue
		}

		if threshold.Min != nil && stats.Mean < *threshold.Min {
			severity := models.AnomalySeverityMedium
			if stats.Mean < *threshold.Min*0.8 {
				severity = models.AnomalySeverityHigh
			}
			anomalies = append(anomalies, models.Anomaly{
				KPI:       name,
				Type:      models.AnomalyBelowThreshold,
				Value:     stats.Mean,
				Threshold: *threshold.Min,
				Severity:  severity,
			})
		}

		if threshold.Max != nil && stats.Mean > *threshold.Max {
			severity := models.AnomalySeverityMedium
			if stats.Mean > *threshold.Max*1.2 {
				severity = models.AnomalySeverityHigh
			}
			anomalies = append(anomalies, models.Anomaly{
				KPI:       name,
				Type:      models.AnomalyAboveThreshold,
				Value:     stats.Mean,
				Threshold: *threshold.Max,
				Severity:  severity,
			})
		}
	}

	return evidence, anomalies, bySite
}

func computeStats(values []float64) models.KPIStats {
	minV, maxV, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		sum += v
	}

	stats := models.KPIStats{
		Mean:  sum / float64(len(values)),
		Min:   minV,
		Max:   maxV,
		Count: len(values),
	}

	if len(values) > 1 {
		med := median(values)
		sd := stdev(values, stats.Mean)
		stats.Median = &med
		stats.Stdev = &sd
	}

	return stats
}

func median(values []float64) float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)

	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// stdev is the sample standard deviation (n-1 denominator). Callers
// guarantee len(values) > 1.
func stdev(values []float64, mean float64) float64 {
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
