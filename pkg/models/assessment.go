package models

import (
	"errors"
	"time"
)

// ErrReportNotFound is returned when an archived report ID is unknown.
var ErrReportNotFound = errors.New("report not found")

// Assessment severity labels, least to most urgent.
const (
	AssessmentSeverityLow    = "low"
	AssessmentSeverityMedium = "medium"
	AssessmentSeverityHigh   = "high"
)

// Assessment is the fused root-cause verdict produced by the RCA engine.
type Assessment struct {
	RootCause       string    `json:"root_cause"`
	Severity        string    `json:"severity"`
	Evidence        Evidence  `json:"evidence"`
	Anomalies       []Anomaly `json:"anomalies"`
	Recommendations []string  `json:"recommendations"`
}

// AnalysisReport wraps an assessment with service-level metadata for API
// responses and the assessment archive. The engine itself only produces
// the Assessment; the wrapper is assembled by the caller.
type AnalysisReport struct {
	ID           string     `json:"id"`
	WorkspaceID  string     `json:"workspace_id,omitempty"`
	GeneratedAt  time.Time  `json:"generated_at"`
	Assessment   Assessment `json:"assessment"`
	Correlations []string   `json:"correlations,omitempty"`
}
