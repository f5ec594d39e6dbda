package analyzer

import (
	"math"

	"github.com/milewire/RAN-copilot/pkg/models"
)

// Fixed impairment policy: flags per sample and their score weights.
const (
	lowModulationOrder = 4.0
	highLatencyMS      = 50.0
	highJitterMS       = 20.0

	lowModulationWeight = 0.4
	highLatencyWeight   = 0.3
	highJitterWeight    = 0.3
)

// SummarizeBackhaul builds the backhaul trend series, error totals, and
// the heuristic impairment score in [0, 1].
func SummarizeBackhaul(samples []models.BackhaulSample) models.BackhaulSummary {
	summary := models.BackhaulSummary{
		ModulationTrend:    []models.ModulationPoint{},
		RSSITrend:          []models.RSSIPoint{},
		LatencyJitterTrend: []models.LatencyJitterPoint{},
	}
	if len(samples) == 0 {
		return summary
	}
	summary.TotalSamples = len(samples)

	lowMod, highLatency, highJitter := 0, 0, 0

	for _, s := range samples {
		summary.ModulationTrend = append(summary.ModulationTrend, models.ModulationPoint{
			Timestamp:  s.Timestamp,
			Modulation: s.Modulation,
		})
		summary.RSSITrend = append(summary.RSSITrend, models.RSSIPoint{
			Timestamp: s.Timestamp,
			RSSI:      s.RSSI,
		})
		summary.LatencyJitterTrend = append(summary.LatencyJitterTrend, models.LatencyJitterPoint{
			Timestamp: s.Timestamp,
			LatencyMS: s.LatencyMS,
			JitterMS:  s.JitterMS,
		})

		summary.ErrorSummary.TxErrors += s.TxErrors
		summary.ErrorSummary.RxErrors += s.RxErrors

		if s.Modulation < lowModulationOrder {
			lowMod++
		}
		if s.LatencyMS > highLatencyMS {
			highLatency++
		}
		if s.JitterMS > highJitterMS {
			highJitter++
		}
	}

	n := float64(len(samples))
	score := float64(lowMod)/n*lowModulationWeight +
		float64(highLatency)/n*highLatencyWeight +
		float64(highJitter)/n*highJitterWeight
	summary.ImpairmentScore = math.Min(1.0, score)

	return summary
}
