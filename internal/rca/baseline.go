package rca

import (
	"fmt"
	"strings"

	"github.com/milewire/RAN-copilot/pkg/models"
)

// RootCauseNormalOperation is the baseline label for a clean KPI set.
// The alarm rule checks for it when deciding how to qualify the label.
const RootCauseNormalOperation = "Normal Operation"

// Baseline root-cause labels, ordered from most to least specific. The
// fusion rules build on top of these; they may replace or qualify them
// but never reach back into the ladder.
const (
	baselineTransport    = "Transport/TIMING Fault"
	baselineAvailability = "Cell Availability Degradation"
	baselineAccess       = "Access & Paging Degradation"
	baselineBearer       = "Bearer Setup Degradation"
	baselineCongestion   = "Congestion / High PRB Utilization"
	baselineRF           = "RF Quality Degradation"
	baselineGeneric      = "KPI Degradation"
)

// baselineClassify maps KPI anomalies alone to an initial root cause and
// severity. The ladder picks the first matching anomaly family; severity
// is the worst anomaly severity seen.
func baselineClassify(anomalies []models.Anomaly) (string, string) {
	if len(anomalies) == 0 {
		return RootCauseNormalOperation, models.AssessmentSeverityLow
	}

	severity := models.AssessmentSeverityMedium
	for _, a := range anomalies {
		if a.Severity == models.AnomalySeverityHigh {
			severity = models.AssessmentSeverityHigh
			break
		}
	}

	switch {
	case hasAnomalyFor(anomalies, "S1_Setup_Failure_Rate"):
		return baselineTransport, severity
	case hasAnomalyFor(anomalies, "Cell_Availability"):
		return baselineAvailability, severity
	case hasAnomalyFor(anomalies, "RRC_Setup_Success_Rate") || hasAnomalyFor(anomalies, "Paging_Success_Rate"):
		return baselineAccess, severity
	case hasAnomalyFor(anomalies, "ERAB_Setup_Success_Rate"):
		return baselineBearer, severity
	case hasAnomalyPrefix(anomalies, "PRB_"):
		return baselineCongestion, severity
	case hasAnomalyPrefix(anomalies, "SINR_") || hasAnomalyPrefix(anomalies, "BLER_"):
		return baselineRF, severity
	default:
		return baselineGeneric, severity
	}
}

// baselineRecommendations is the advice list for the KPI-only
// classification: one lead per root cause plus one line per anomaly.
func baselineRecommendations(rootCause string, anomalies []models.Anomaly) []string {
	if len(anomalies) == 0 {
		return []string{"KPIs within thresholds; continue routine monitoring."}
	}

	var recs []string
	switch rootCause {
	case baselineTransport:
		recs = append(recs,
			"Check S1/X2 transport links, synchronization, and router health.",
			"Validate PTP/SyncE timing sources at impacted sites.")
	case baselineAvailability:
		recs = append(recs,
			"Check cell and site availability; review outage and restart history.")
	case baselineAccess:
		recs = append(recs,
			"Review RRC and paging performance; check admission control and signaling load.")
	case baselineBearer:
		recs = append(recs,
			"Review ERAB setup failures per cause code; check transport and core reachability.")
	case baselineCongestion:
		recs = append(recs,
			"Review PRB utilization trends; consider load balancing or capacity expansion.")
	case baselineRF:
		recs = append(recs,
			"Check SINR and BLER distributions; investigate interference and coverage holes.")
	default:
		recs = append(recs,
			"Review KPI trends against thresholds for the affected metrics.")
	}

	for _, a := range anomalies {
		recs = append(recs, fmt.Sprintf("%s %s: %.1f (threshold %.1f).",
			a.KPI, strings.ReplaceAll(a.Type, "_", " "), a.Value, a.Threshold))
	}
	return recs
}

func hasAnomalyPrefix(anomalies []models.Anomaly, prefix string) bool {
	for _, a := range anomalies {
		if strings.HasPrefix(a.KPI, prefix) {
			return true
		}
	}
	return false
}
