package rca

import (
	"strings"

	"github.com/milewire/RAN-copilot/pkg/models"
)

// correlationImpairmentFloor is the backhaul impairment score above
// which correlation statements fire. It is deliberately lower than the
// escalation threshold: the statements are advisory.
const correlationImpairmentFloor = 0.2

// Correlations produces human-readable statements linking the KPI
// anomalies to the supplied domain summaries. The statements complement
// an assessment; they never alter it. The result may be empty.
func Correlations(anomalies []models.Anomaly, alarms *models.AlarmSummary, backhaul *models.BackhaulSummary, attach *models.AttachSummary) []string {
	var out []string
	out = append(out, backhaulCorrelations(anomalies, backhaul)...)
	out = append(out, alarmCorrelations(alarms)...)
	out = append(out, attachCorrelations(attach)...)
	return out
}

func backhaulCorrelations(anomalies []models.Anomaly, backhaul *models.BackhaulSummary) []string {
	if backhaul == nil || backhaul.ImpairmentScore <= correlationImpairmentFloor {
		return nil
	}

	var hasBLER, hasERAB bool
	for _, a := range anomalies {
		if strings.Contains(a.KPI, "BLER") {
			hasBLER = true
		}
		if strings.Contains(a.KPI, "ERAB") {
			hasERAB = true
		}
	}

	var statements []string
	if hasBLER {
		statements = append(statements,
			"Backhaul impairment detected while BLER anomalies are present; modulation drops and degraded RSSI may be contributing to high BLER.")
	}
	if hasERAB {
		statements = append(statements,
			"Elevated ERAB setup anomalies coincide with degraded backhaul conditions; investigate jitter, latency, and error counters on the affected link.")
	}
	if len(statements) == 0 {
		statements = append(statements,
			"Backhaul impairment is present; verify whether KPI anomalies align with periods of low modulation, high latency, or high jitter.")
	}
	return statements
}

func alarmCorrelations(alarms *models.AlarmSummary) []string {
	if alarms == nil || alarms.CriticalMajor() == 0 {
		return nil
	}
	return []string{
		"Critical/major alarms are active during KPI degradation; check ENM alarm browser for transport, radio, or license alarms on the affected sites.",
	}
}

func attachCorrelations(attach *models.AttachSummary) []string {
	if attach == nil || attach.OverallSuccessRate == nil {
		return nil
	}
	if *attach.OverallSuccessRate >= attachSuccessFloor {
		return nil
	}

	switch attach.DominantFailure {
	case models.FailureAPNQCI:
		return []string{
			"Attach failures are dominated by APN/QCI-related causes; verify APN provisioning, QCI mappings, and PDN/GGSN configuration for SCADA/CPE devices.",
		}
	case models.FailureTAC:
		return []string{
			"Attach failures are dominated by TAC-related causes; review TAC assignments and mobility restrictions for the affected UEs and cells.",
		}
	case models.FailureRF:
		return []string{
			"Attach failures are dominated by RF-related causes; check coverage, RSRP/SINR, and interference for the impacted sectors.",
		}
	case models.FailureCongestion:
		return []string{
			"Attach failures are dominated by congestion-related causes; correlate attach failures with PRB utilization and throughput peaks.",
		}
	default:
		return []string{
			"Attach failures are elevated; further drill-down by IMSI, APN, and TAC is recommended.",
		}
	}
}
