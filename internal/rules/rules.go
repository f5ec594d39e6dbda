// Package rules holds the policy tables the analyzers and the RCA engine
// consult: KPI thresholds, severity synonyms, modulation orders, and attach
// failure classification keywords. The built-in defaults can be overlaid
// from a YAML file; the catalog is loaded once at startup and treated as
// immutable afterwards.
package rules

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milewire/RAN-copilot/pkg/models"
)

// Threshold is the acceptable band for one KPI. Min and Max are optional;
// a KPI may carry either or both.
type Threshold struct {
	Min  *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max  *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Unit string   `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// FailureRule maps an attach failure category to the cause-text keywords
// that select it. Rules are evaluated in order; the first keyword hit wins.
type FailureRule struct {
	Category string   `yaml:"category" json:"category"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Catalog bundles all rule tables.
type Catalog struct {
	Thresholds       map[string]Threshold `yaml:"thresholds" json:"thresholds"`
	SeveritySynonyms map[string]string    `yaml:"severity_synonyms" json:"severity_synonyms"`
	ModulationOrders map[string]float64   `yaml:"modulation_orders" json:"modulation_orders"`
	FailureRules     []FailureRule        `yaml:"failure_rules" json:"failure_rules"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Thresholds: map[string]Threshold{
			"RRC_Setup_Success_Rate":  {Min: ptr(95.0), Unit: "%"},
			"ERAB_Setup_Success_Rate": {Min: ptr(98.0), Unit: "%"},
			"PRB_Utilization_Avg":     {Max: ptr(70.0), Unit: "%"},
			"PRB_Utilization_P95":     {Max: ptr(85.0), Unit: "%"},
			"SINR_Avg":                {Min: ptr(5.0), Unit: "dB"},
			"SINR_P10":                {Min: ptr(0.0), Unit: "dB"},
			"BLER_P95":                {Max: ptr(10.0), Unit: "%"},
			"Paging_Success_Rate":     {Min: ptr(95.0), Unit: "%"},
			"S1_Setup_Failure_Rate":   {Max: ptr(1.0), Unit: "%"},
			"Cell_Availability":       {Min: ptr(99.0), Unit: "%"},
		},
		// Common Ericsson FM severity abbreviations.
		SeveritySynonyms: map[string]string{
			"CRIT":    models.SeverityCritical,
			"MAJ":     models.SeverityMajor,
			"MIN":     models.SeverityMinor,
			"WARN":    models.SeverityWarning,
			"INDET":   models.SeverityIndeterminate,
			"CLEARED": models.SeverityCleared,
			"CLEAR":   models.SeverityCleared,
			"INFO":    models.SeverityInfo,
		},
		// Common microwave / LTE modulation schemes. Keys are upper-case.
		ModulationOrders: map[string]float64{
			"QPSK":   2.0,
			"4QAM":   2.0,
			"16QAM":  4.0,
			"32QAM":  5.0,
			"64QAM":  6.0,
			"128QAM": 7.0,
			"256QAM": 8.0,
		},
		FailureRules: []FailureRule{
			{Category: models.FailureAPNQCI, Keywords: []string{"apn", "qci", "pdn", "service not subscribed"}},
			{Category: models.FailureTAC, Keywords: []string{"tac", "tracking area", "roaming not allowed"}},
			{Category: models.FailureRF, Keywords: []string{"radio", "rf", "coverage", "signal", "sinr"}},
			{Category: models.FailureCongestion, Keywords: []string{"congestion", "resource unavailable", "no resource"}},
		},
	}
}

// Load reads a YAML rules file and overlays it on the defaults. Sections
// absent from the file keep their built-in values.
func Load(filepath string) (*Catalog, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing rules YAML: %w", err)
	}

	def := Default()
	if len(cat.Thresholds) == 0 {
		cat.Thresholds = def.Thresholds
	}
	if len(cat.SeveritySynonyms) == 0 {
		cat.SeveritySynonyms = def.SeveritySynonyms
	}
	if len(cat.ModulationOrders) == 0 {
		cat.ModulationOrders = def.ModulationOrders
	}
	if len(cat.FailureRules) == 0 {
		cat.FailureRules = def.FailureRules
	}

	return &cat, nil
}

// NormalizeSeverity maps a raw severity string onto the canonical
// enumeration. Unknown non-empty values pass through upper-cased and
// trimmed; empty values become INDETERMINATE.
func (c *Catalog) NormalizeSeverity(value string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return models.SeverityIndeterminate
	}
	if canonical, ok := c.SeveritySynonyms[v]; ok {
		return canonical
	}
	return v
}

// ModulationOrder maps a modulation scheme label to its numeric ordinal.
// Labels outside the table that end in "QAM" derive an ordinal from the
// constellation size (N/16, floored at 1.0); otherwise a direct numeric
// parse is attempted. Unparsable input yields 0.0.
func (c *Catalog) ModulationOrder(raw string) float64 {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return 0.0
	}
	if order, ok := c.ModulationOrders[s]; ok {
		return order
	}
	if prefix, found := strings.CutSuffix(s, "QAM"); found {
		if size, err := strconv.ParseFloat(prefix, 64); err == nil {
			return math.Max(1.0, size/16.0)
		}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return 0.0
}

// ClassifyFailure assigns an attach failure category from the combined
// reject/bearer cause text. Empty causes mean the attempt succeeded.
func (c *Catalog) ClassifyFailure(attachCause, erabCause string) string {
	text := strings.ToLower(attachCause + " " + erabCause)
	if strings.TrimSpace(text) == "" {
		return models.FailureSuccess
	}
	for _, rule := range c.FailureRules {
		for _, kw := range rule.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(kw)) {
				return rule.Category
			}
		}
	}
	return models.FailureOther
}

func ptr(v float64) *float64 { return &v }
