package models

// KPISample is one KPI measurement from a PM export.
type KPISample struct {
	KPI   string  `json:"kpi"`
	Site  string  `json:"site"`
	Value float64 `json:"value"`
}

// KPIStats is the per-KPI statistics block used as RCA evidence. Median
// and Stdev are populated only when more than one sample contributed.
type KPIStats struct {
	Mean   float64  `json:"mean"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Count  int      `json:"count"`
	Median *float64 `json:"median,omitempty"`
	Stdev  *float64 `json:"stdev,omitempty"`
}

// Anomaly types: the KPI mean landed on the wrong side of a threshold.
const (
	AnomalyBelowThreshold = "below_threshold"
	AnomalyAboveThreshold = "above_threshold"
)

// Anomaly severities. "high" means the mean missed the threshold by more
// than 20%.
const (
	AnomalySeverityMedium = "medium"
	AnomalySeverityHigh   = "high"
)

// Anomaly is one KPI threshold violation.
type Anomaly struct {
	KPI       string  `json:"kpi"`
	Type      string  `json:"type"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Severity  string  `json:"severity"`
}

// Evidence maps KPI name to its aggregated statistics.
type Evidence map[string]KPIStats

// SiteIndex groups raw KPI values by site, then by KPI name.
type SiteIndex map[string]map[string][]float64
