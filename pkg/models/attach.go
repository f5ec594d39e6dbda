package models

// Attach failure categories assigned by cause-text classification.
const (
	FailureSuccess    = "SUCCESS"
	FailureAPNQCI     = "APN_QCI"
	FailureTAC        = "TAC"
	FailureRF         = "RF"
	FailureCongestion = "Congestion"
	FailureOther      = "Other"
)

// AttachRecord is one attach/ERAB attempt from a CPE attach log.
type AttachRecord struct {
	IMSI              string `json:"imsi"`
	APN               string `json:"apn"`
	TAC               string `json:"tac"`
	AttachRejectCause string `json:"attach_reject_cause"`
	ERABSetupCause    string `json:"erab_setup_cause"`
	FailureCategory   string `json:"failure_category"`
}

// Failed reports whether the record represents a failed attach attempt.
func (r AttachRecord) Failed() bool {
	return r.FailureCategory != FailureSuccess
}

// AttachCounts holds success/fail tallies and the derived success rate (%)
// for one identifier value (an IMSI, APN, or TAC).
type AttachCounts struct {
	Success     int     `json:"success"`
	Fail        int     `json:"fail"`
	SuccessRate float64 `json:"success_rate"`
}

// AttachSummary aggregates attach attempts by IMSI, APN, and TAC.
type AttachSummary struct {
	// OverallSuccessRate is the attach success percentage across all
	// records, absent when no records were seen.
	OverallSuccessRate *float64 `json:"overall_attach_success_rate,omitempty"`

	PerIMSI map[string]AttachCounts `json:"per_imsi"`
	PerAPN  map[string]AttachCounts `json:"per_apn"`
	PerTAC  map[string]AttachCounts `json:"per_tac"`

	// FailureCategories counts failed attempts per category; SUCCESS never
	// appears here.
	FailureCategories map[string]int `json:"failure_categories"`

	// DominantFailure is the failure category with the highest count,
	// absent when there were no failures. Ties resolve to the category
	// seen first in the input.
	DominantFailure string `json:"dominant_failure_category,omitempty"`
}
