// Package analyzer aggregates canonical records into the per-domain
// summaries consumed by dashboards and the RCA engine. Every function is
// a pure transformation over a fully-materialized record batch.
package analyzer

import (
	"sort"
	"time"

	"github.com/milewire/RAN-copilot/internal/ingest"
	"github.com/milewire/RAN-copilot/pkg/models"
)

// alarmSampleCap bounds the record sample carried in a summary.
const alarmSampleCap = 200

// SummarizeAlarms builds the alarm summary: total count, per-severity
// counts in priority order, per-MO counts, and an hourly timeline.
// Severities outside the canonical enumeration contribute to the total
// but not to the per-severity breakdown.
func SummarizeAlarms(records []models.AlarmRecord) models.AlarmSummary {
	summary := models.AlarmSummary{
		BySeverity: []models.SeverityCount{},
		ByMO:       map[string]int{},
		Timeline:   []models.TimelineBucket{},
	}
	if len(records) == 0 {
		return summary
	}
	summary.TotalCount = len(records)

	bySeverity := make(map[string]int)
	timeline := make(map[string]int)

	for _, rec := range records {
		sev := rec.Severity
		if sev == "" {
			sev = models.SeverityIndeterminate
		}
		bySeverity[sev]++

		mo := rec.MO
		if mo == "" {
			mo = "UNKNOWN"
		}
		summary.ByMO[mo]++

		timeline[hourBucket(rec.Timestamp)]++
	}

	for _, sev := range models.SeverityOrder {
		if n, ok := bySeverity[sev]; ok {
			summary.BySeverity = append(summary.BySeverity, models.SeverityCount{Severity: sev, Count: n})
		}
	}

	buckets := make([]string, 0, len(timeline))
	for b := range timeline {
		buckets = append(buckets, b)
	}
	sort.Strings(buckets)
	for _, b := range buckets {
		summary.Timeline = append(summary.Timeline, models.TimelineBucket{Timestamp: b, Count: timeline[b]})
	}

	n := len(records)
	if n > alarmSampleCap {
		n = alarmSampleCap
	}
	summary.Sample = make([]models.AlarmRecord, n)
	copy(summary.Sample, records)

	return summary
}

// hourBucket truncates a normalized timestamp to its hour. Timestamps
// that do not parse bucket under their raw value.
func hourBucket(ts string) string {
	t, err := time.Parse(ingest.TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Truncate(time.Hour).Format(ingest.TimestampFormat)
}
