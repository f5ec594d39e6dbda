package models

// BackhaulSample is one row of microwave/fiber backhaul telemetry.
// Modulation carries the numeric ordinal derived from the scheme label
// (QPSK=2 ... 256QAM=8), not the label itself.
type BackhaulSample struct {
	Timestamp  string  `json:"timestamp"`
	Modulation float64 `json:"modulation"`
	RSSI       float64 `json:"rssi"`
	LatencyMS  float64 `json:"latency_ms"`
	JitterMS   float64 `json:"jitter_ms"`
	TxErrors   float64 `json:"tx_errors"`
	RxErrors   float64 `json:"rx_errors"`
}

// ModulationPoint is one point of the modulation trend series.
type ModulationPoint struct {
	Timestamp  string  `json:"timestamp"`
	Modulation float64 `json:"modulation"`
}

// RSSIPoint is one point of the received-signal-strength trend series.
type RSSIPoint struct {
	Timestamp string  `json:"timestamp"`
	RSSI      float64 `json:"rssi"`
}

// LatencyJitterPoint is one point of the latency/jitter trend series.
type LatencyJitterPoint struct {
	Timestamp string  `json:"timestamp"`
	LatencyMS float64 `json:"latency_ms"`
	JitterMS  float64 `json:"jitter_ms"`
}

// ErrorSummary totals transmit/receive error counters across all samples.
type ErrorSummary struct {
	TxErrors float64 `json:"tx_errors"`
	RxErrors float64 `json:"rx_errors"`
}

// BackhaulSummary carries the trend series plus the heuristic impairment
// score used by the RCA engine. The score is always within [0, 1].
type BackhaulSummary struct {
	TotalSamples       int                  `json:"total_samples"`
	ImpairmentScore    float64              `json:"impairment_score"`
	ModulationTrend    []ModulationPoint    `json:"modulation_trend"`
	RSSITrend          []RSSIPoint          `json:"rssi_trend"`
	LatencyJitterTrend []LatencyJitterPoint `json:"latency_jitter_trend"`
	ErrorSummary       ErrorSummary         `json:"error_summary"`
}

// Impaired reports whether the summary crosses the RCA escalation bar.
func (s *BackhaulSummary) Impaired() bool {
	return s != nil && s.ImpairmentScore > 0.5
}
