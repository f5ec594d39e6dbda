package rca

import (
	"fmt"
	"strings"

	"github.com/milewire/RAN-copilot/pkg/models"
)

// attachSuccessFloor is the overall attach success rate below which the
// attach signal escalates the assessment.
const attachSuccessFloor = 95.0

// escalateAlarms handles active CRITICAL/MAJOR alarms. With an S1 setup
// anomaly present they corroborate a transport fault; otherwise they
// qualify the current label and raise severity to at least medium.
func escalateAlarms(st state) state {
	if st.alarms == nil || st.alarms.TotalCount == 0 {
		return st
	}
	if st.alarms.CriticalMajor() == 0 {
		return st
	}

	if hasAnomalyFor(st.anomalies, "S1_Setup_Failure_Rate") {
		st.rootCause = RootCauseTransportAlarms
		st.score = escalate(st.score, scoreHigh)
		return st
	}

	if st.rootCause == RootCauseNormalOperation {
		st.rootCause = RootCauseActiveAlarms
	} else {
		st.rootCause += " with Active Alarms"
	}
	st.score = escalate(st.score, scoreMedium)
	return st
}

// escalateBackhaul overrides the label once the impairment score passes
// 0.5 and forces severity high. The label specializes to Microwave/Fiber
// when the current root cause already points at transport.
func escalateBackhaul(st state) state {
	if !st.backhaul.Impaired() {
		return st
	}

	if strings.Contains(st.rootCause, "Transport") || strings.Contains(st.rootCause, "Microwave") {
		st.rootCause = RootCauseBackhaulMW
	} else {
		st.rootCause = RootCauseBackhaul
	}
	st.score = escalate(st.score, scoreHigh)
	return st
}

// escalateAttach forces severity high when the overall attach success
// rate is known and below the floor. The label is overridden only for
// the four classified dominant categories; an Other dominant keeps the
// current label.
func escalateAttach(st state) state {
	if st.attach == nil || st.attach.OverallSuccessRate == nil {
		return st
	}
	if *st.attach.OverallSuccessRate >= attachSuccessFloor {
		return st
	}

	switch st.attach.DominantFailure {
	case models.FailureAPNQCI:
		st.rootCause = RootCauseAttachAPNQCI
	case models.FailureTAC:
		st.rootCause = RootCauseAttachTAC
	case models.FailureRF:
		st.rootCause = RootCauseAttachRF
	case models.FailureCongestion:
		st.rootCause = RootCauseAttachCongestion
	}
	st.score = escalate(st.score, scoreHigh)
	return st
}

// appendSignalRecommendations adds the fixed advice strings for each
// signal that fired. Deduplication and ordering happen at the end of
// the pipeline, so repeated appends are harmless.
func appendSignalRecommendations(st state) state {
	if st.alarms != nil && st.alarms.TotalCount > 0 {
		st.recommendations = append(st.recommendations,
			"Review active CRITICAL/MAJOR alarms in ENM for impacted MOs.",
			"Verify whether alarms coincide with KPI degradation periods.",
		)
	}

	if st.backhaul.Impaired() {
		st.recommendations = append(st.recommendations,
			"Investigate microwave/fiber backhaul modulation drops and high jitter.",
			"Correlate backhaul RSSI and error counters with BLER and ERAB failures.",
		)
	}

	if st.attach != nil && st.attach.OverallSuccessRate != nil && *st.attach.OverallSuccessRate < attachSuccessFloor {
		st.recommendations = append(st.recommendations, fmt.Sprintf(
			"Investigate attach failures; overall attach success rate is %.1f%%.",
			*st.attach.OverallSuccessRate))

		switch st.attach.DominantFailure {
		case models.FailureAPNQCI:
			st.recommendations = append(st.recommendations,
				"Check APN, QCI, and bearer configuration for impacted IMSIs and APNs.")
		case models.FailureTAC:
			st.recommendations = append(st.recommendations,
				"Verify TAC assignment and mobility configuration for affected cells.")
		case models.FailureRF:
			st.recommendations = append(st.recommendations,
				"Check RF coverage, SINR, and interference around sites with high attach failures.")
		case models.FailureCongestion:
			st.recommendations = append(st.recommendations,
				"Correlate attach failures with congestion indicators (PRB utilization, throughput).")
		}
	}

	return st
}
