package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milewire/RAN-copilot/pkg/models"
)

func TestNormalizeSeverity(t *testing.T) {
	cat := Default()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"synonym crit", "CRIT", "CRITICAL"},
		{"synonym maj", "MAJ", "MAJOR"},
		{"synonym min", "MIN", "MINOR"},
		{"synonym warn", "WARN", "WARNING"},
		{"synonym indet", "INDET", "INDETERMINATE"},
		{"synonym clear", "CLEAR", "CLEARED"},
		{"canonical passes through", "CRITICAL", "CRITICAL"},
		{"lower case synonym", "crit", "CRITICAL"},
		{"whitespace trimmed", "  maj  ", "MAJOR"},
		{"unknown passes through upper cased", "weird", "WEIRD"},
		{"empty becomes indeterminate", "", "INDETERMINATE"},
		{"blank becomes indeterminate", "   ", "INDETERMINATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cat.NormalizeSeverity(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeSeverity(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestModulationOrder(t *testing.T) {
	cat := Default()

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"qpsk", "QPSK", 2.0},
		{"qpsk lower case", "qpsk", 2.0},
		{"4qam uses table not fallback", "4QAM", 2.0},
		{"16qam", "16QAM", 4.0},
		{"64qam", "64QAM", 6.0},
		{"256qam", "256QAM", 8.0},
		{"unknown qam derives from constellation", "1024QAM", 64.0},
		{"small qam floored at one", "8QAM", 1.0},
		{"numeric value", "6.5", 6.5},
		{"garbage", "n/a", 0.0},
		{"garbage qam suffix", "fastQAM", 0.0},
		{"empty", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cat.ModulationOrder(tt.input)
			if got != tt.want {
				t.Errorf("ModulationOrder(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyFailure(t *testing.T) {
	cat := Default()

	tests := []struct {
		name   string
		attach string
		erab   string
		want   string
	}{
		{"both empty means success", "", "", models.FailureSuccess},
		{"apn cause", "APN not provisioned", "", models.FailureAPNQCI},
		{"qci in erab cause", "", "QCI mismatch", models.FailureAPNQCI},
		{"service not subscribed", "service not subscribed", "", models.FailureAPNQCI},
		{"tracking area", "tracking area not allowed", "", models.FailureTAC},
		{"rf cause", "", "poor SINR at edge", models.FailureRF},
		{"congestion cause", "no resource available", "", models.FailureCongestion},
		{"apn wins over tac when both present", "TAC mismatch on APN gateway", "", models.FailureAPNQCI},
		{"unmatched text", "some vendor specific reason", "", models.FailureOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cat.ClassifyFailure(tt.attach, tt.erab)
			if got != tt.want {
				t.Errorf("ClassifyFailure(%q, %q) = %q, want %q", tt.attach, tt.erab, got, tt.want)
			}
		})
	}
}

func TestClassifyFailureTotality(t *testing.T) {
	cat := Default()
	known := map[string]bool{
		models.FailureSuccess:    true,
		models.FailureAPNQCI:     true,
		models.FailureTAC:        true,
		models.FailureRF:         true,
		models.FailureCongestion: true,
		models.FailureOther:      true,
	}

	inputs := []string{"", "x", "⚡ unicode", "APN", "random cause text", "143", "\t\n"}
	for _, in := range inputs {
		if got := cat.ClassifyFailure(in, in); !known[got] {
			t.Errorf("ClassifyFailure(%q, %q) = %q, not a known category", in, in, got)
		}
	}
}

func TestDefaultThresholds(t *testing.T) {
	cat := Default()

	if len(cat.Thresholds) != 10 {
		t.Fatalf("expected 10 default thresholds, got %d", len(cat.Thresholds))
	}

	rrc, ok := cat.Thresholds["RRC_Setup_Success_Rate"]
	if !ok {
		t.Fatal("missing RRC_Setup_Success_Rate threshold")
	}
	if rrc.Min == nil || *rrc.Min != 95.0 {
		t.Errorf("RRC min = %v, want 95.0", rrc.Min)
	}
	if rrc.Max != nil {
		t.Errorf("RRC max should be unset, got %v", *rrc.Max)
	}

	s1, ok := cat.Thresholds["S1_Setup_Failure_Rate"]
	if !ok {
		t.Fatal("missing S1_Setup_Failure_Rate threshold")
	}
	if s1.Max == nil || *s1.Max != 1.0 {
		t.Errorf("S1 max = %v, want 1.0", s1.Max)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")

	content := `thresholds:
  RRC_Setup_Success_Rate:
    min: 90.0
    unit: "%"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	rrc := cat.Thresholds["RRC_Setup_Success_Rate"]
	if rrc.Min == nil || *rrc.Min != 90.0 {
		t.Errorf("overridden RRC min = %v, want 90.0", rrc.Min)
	}
	if len(cat.Thresholds) != 1 {
		t.Errorf("thresholds section should be fully replaced, got %d entries", len(cat.Thresholds))
	}

	// Sections absent from the file keep their defaults.
	if got := cat.NormalizeSeverity("CRIT"); got != "CRITICAL" {
		t.Errorf("severity synonyms not defaulted: NormalizeSeverity(CRIT) = %q", got)
	}
	if got := cat.ModulationOrder("QPSK"); got != 2.0 {
		t.Errorf("modulation orders not defaulted: ModulationOrder(QPSK) = %v", got)
	}
	if got := cat.ClassifyFailure("apn fault", ""); got != models.FailureAPNQCI {
		t.Errorf("failure rules not defaulted: got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing rules file")
	}
}
