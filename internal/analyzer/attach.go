package analyzer

import (
	"github.com/milewire/RAN-copilot/pkg/models"
)

// SummarizeAttach builds per-IMSI/APN/TAC attach statistics, the failure
// category histogram, and the dominant failure category. With no records
// the overall rate is absent rather than zero.
func SummarizeAttach(records []models.AttachRecord) models.AttachSummary {
	summary := models.AttachSummary{
		PerIMSI:           map[string]models.AttachCounts{},
		PerAPN:            map[string]models.AttachCounts{},
		PerTAC:            map[string]models.AttachCounts{},
		FailureCategories: map[string]int{},
	}
	if len(records) == 0 {
		return summary
	}

	success := 0
	var failureOrder []string

	for _, rec := range records {
		ok := !rec.Failed()
		if ok {
			success++
		}

		bump(summary.PerIMSI, rec.IMSI, ok)
		bump(summary.PerAPN, rec.APN, ok)
		bump(summary.PerTAC, rec.TAC, ok)

		if !ok {
			if _, seen := summary.FailureCategories[rec.FailureCategory]; !seen {
				failureOrder = append(failureOrder, rec.FailureCategory)
			}
			summary.FailureCategories[rec.FailureCategory]++
		}
	}

	rate := float64(success) / float64(len(records)) * 100.0
	summary.OverallSuccessRate = &rate

	finalizeRates(summary.PerIMSI)
	finalizeRates(summary.PerAPN)
	finalizeRates(summary.PerTAC)

	// Highest count wins; ties resolve to the category seen first.
	best := 0
	for _, cat := range failureOrder {
		if n := summary.FailureCategories[cat]; n > best {
			best = n
			summary.DominantFailure = cat
		}
	}

	return summary
}

func bump(m map[string]models.AttachCounts, key string, success bool) {
	c := m[key]
	if success {
		c.Success++
	} else {
		c.Fail++
	}
	m[key] = c
}

func finalizeRates(m map[string]models.AttachCounts) {
	for key, c := range m {
		total := c.Success + c.Fail
		if total > 0 {
			c.SuccessRate = float64(c.Success) / float64(total) * 100.0
		}
		m[key] = c
	}
}
