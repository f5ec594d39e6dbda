// Package models defines the canonical record and summary types exchanged
// between the parsers, the domain analyzers, and the RCA engine.
package models

// Normalized alarm severities, ordered from most to least urgent.
const (
	SeverityCritical      = "CRITICAL"
	SeverityMajor         = "MAJOR"
	SeverityMinor         = "MINOR"
	SeverityWarning       = "WARNING"
	SeverityIndeterminate = "INDETERMINATE"
	SeverityCleared       = "CLEARED"
	SeverityInfo          = "INFO"
)

// SeverityOrder lists the alarm severities in presentation priority order.
// Per-severity breakdowns follow this order.
var SeverityOrder = []string{
	SeverityCritical,
	SeverityMajor,
	SeverityMinor,
	SeverityWarning,
	SeverityIndeterminate,
	SeverityCleared,
	SeverityInfo,
}

// AlarmRecord is a single normalized FM alarm extracted from an XML, CSV,
// or plain-text export.
type AlarmRecord struct {
	// Timestamp is the normalized event time in ISO-8601 (seconds precision).
	Timestamp string `json:"timestamp"`

	// Severity is one of the Severity* constants, or the upper-cased raw
	// value when the export used a vocabulary we do not recognize.
	Severity string `json:"severity"`

	// AlarmType carries the alarm type / probable cause ("UNKNOWN" when absent).
	AlarmType string `json:"alarm_type"`

	// MO is the managed object the alarm points at ("UNKNOWN" when absent).
	MO string `json:"mo"`

	// AlarmID is the export's alarm or notification identifier, if any.
	AlarmID string `json:"alarm_id"`

	// AdditionalText is the free-text description attached to the alarm.
	AdditionalText string `json:"additional_text"`
}

// SeverityCount is one entry of a per-severity breakdown. Breakdowns are
// lists rather than maps so the severity priority order survives JSON
// encoding.
type SeverityCount struct {
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// TimelineBucket counts alarms raised within one hour.
type TimelineBucket struct {
	Timestamp string `json:"timestamp"`
	Count     int    `json:"count"`
}

// AlarmSummary aggregates alarm records for dashboards and the RCA engine.
type AlarmSummary struct {
	TotalCount int `json:"total_count"`

	// BySeverity holds non-zero severity counts in SeverityOrder.
	BySeverity []SeverityCount `json:"by_severity"`

	ByMO     map[string]int   `json:"by_mo"`
	Timeline []TimelineBucket `json:"timeline"`

	// Sample holds up to the first 200 records for display.
	Sample []AlarmRecord `json:"sample,omitempty"`
}

// SeverityCountOf returns the count recorded for the given severity.
func (s *AlarmSummary) SeverityCountOf(severity string) int {
	if s == nil {
		return 0
	}
	for _, sc := range s.BySeverity {
		if sc.Severity == severity {
			return sc.Count
		}
	}
	return 0
}

// CriticalMajor returns the combined CRITICAL and MAJOR alarm count.
func (s *AlarmSummary) CriticalMajor() int {
	return s.SeverityCountOf(SeverityCritical) + s.SeverityCountOf(SeverityMajor)
}
