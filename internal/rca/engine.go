// Package rca fuses KPI anomalies with alarm, backhaul, and attach
// context into a single root-cause assessment. The fusion is an ordered
// pipeline of pure rules over a running state: the root-cause label is
// last-write-wins, the severity score only ever climbs.
package rca

import (
	"sort"

	"github.com/milewire/RAN-copilot/internal/analyzer"
	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/pkg/models"
)

// Root-cause labels produced by the fusion rules.
const (
	RootCauseNoData           = "No Data"
	RootCauseActiveAlarms     = "Active Network Alarms"
	RootCauseTransportAlarms  = "Transport/TIMING Fault (Alarms corroborated)"
	RootCauseBackhaul         = "Backhaul Impairment"
	RootCauseBackhaulMW       = "Backhaul Impairment (Microwave/Fiber)"
	RootCauseAttachAPNQCI     = "CPE Attach Failures - APN/QCI Configuration"
	RootCauseAttachTAC        = "CPE Attach Failures - TAC / Mobility Configuration"
	RootCauseAttachRF         = "CPE Attach Failures - RF / Coverage"
	RootCauseAttachCongestion = "CPE Attach Failures - Congestion Driven"
)

// Severity scores tracked during escalation; mapped back to the
// low/medium/high labels at the end.
const (
	scoreLow    = 1
	scoreMedium = 2
	scoreHigh   = 3
)

// signals carries the optional domain summaries supplied to Analyze.
type signals struct {
	alarms   *models.AlarmSummary
	backhaul *models.BackhaulSummary
	attach   *models.AttachSummary
}

// Option supplies an optional domain summary to Analyze.
type Option func(*signals)

// WithAlarms attaches an alarm summary to the analysis.
func WithAlarms(s *models.AlarmSummary) Option {
	return func(sig *signals) { sig.alarms = s }
}

// WithBackhaul attaches a backhaul summary to the analysis.
func WithBackhaul(s *models.BackhaulSummary) Option {
	return func(sig *signals) { sig.backhaul = s }
}

// WithAttach attaches an attach summary to the analysis.
func WithAttach(s *models.AttachSummary) Option {
	return func(sig *signals) { sig.attach = s }
}

// state is the running fusion state threaded through the rule pipeline.
type state struct {
	rootCause       string
	score           int
	anomalies       []models.Anomaly
	alarms          *models.AlarmSummary
	backhaul        *models.BackhaulSummary
	attach          *models.AttachSummary
	recommendations []string
}

// step is one fusion rule: a pure transformation of the running state.
type step func(state) state

// pipeline is the ordered escalation. Order matters: a later rule may
// overwrite the label set by an earlier one.
var pipeline = []step{
	escalateAlarms,
	escalateBackhaul,
	escalateAttach,
	appendSignalRecommendations,
}

// Analyze fuses KPI samples with the optional domain summaries into a
// single assessment. Without KPI samples it short-circuits to the fixed
// No Data result; absent summaries simply contribute nothing.
func Analyze(cat *rules.Catalog, samples []models.KPISample, opts ...Option) models.Assessment {
	var sig signals
	for _, opt := range opts {
		opt(&sig)
	}

	if len(samples) == 0 {
		return models.Assessment{
			RootCause:       RootCauseNoData,
			Severity:        models.AssessmentSeverityLow,
			Evidence:        models.Evidence{},
			Anomalies:       []models.Anomaly{},
			Recommendations: []string{"No KPI data available for analysis"},
		}
	}

	evidence, anomalies, _ := analyzer.SummarizeKPIs(cat, samples)

	baseCause, baseSeverity := baselineClassify(anomalies)

	st := state{
		rootCause:       baseCause,
		score:           scoreOf(baseSeverity),
		anomalies:       anomalies,
		alarms:          sig.alarms,
		backhaul:        sig.backhaul,
		attach:          sig.attach,
		recommendations: baselineRecommendations(baseCause, anomalies),
	}

	for _, apply := range pipeline {
		st = apply(st)
	}

	if anomalies == nil {
		anomalies = []models.Anomaly{}
	}

	return models.Assessment{
		RootCause:       st.rootCause,
		Severity:        severityOf(st.score),
		Evidence:        evidence,
		Anomalies:       anomalies,
		Recommendations: dedupeSorted(st.recommendations),
	}
}

func scoreOf(severity string) int {
	switch severity {
	case models.AssessmentSeverityHigh:
		return scoreHigh
	case models.AssessmentSeverityMedium:
		return scoreMedium
	default:
		return scoreLow
	}
}

func severityOf(score int) string {
	switch {
	case score >= scoreHigh:
		return models.AssessmentSeverityHigh
	case score == scoreMedium:
		return models.AssessmentSeverityMedium
	default:
		return models.AssessmentSeverityLow
	}
}

// escalate raises score to at least floor; it never lowers it.
func escalate(score, floor int) int {
	if floor > score {
		return floor
	}
	return score
}

func hasAnomalyFor(anomalies []models.Anomaly, kpi string) bool {
	for _, a := range anomalies {
		if a.KPI == kpi {
			return true
		}
	}
	return false
}

// dedupeSorted deduplicates the recommendation list and returns it in
// sorted order.
func dedupeSorted(recs []string) []string {
	seen := make(map[string]bool, len(recs))
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Strings(out)
	return out
}
