package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/milewire/RAN-copilot/pkg/models"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func resetAnalyzeFlags() {
	analyzeFlags.kpisPath = ""
	analyzeFlags.alarmsPath = ""
	analyzeFlags.backhaulPath = ""
	analyzeFlags.attachPath = ""
	analyzeFlags.outputPath = ""
	analyzeFlags.rulesPath = ""
}

func TestRunAnalyzeWritesReport(t *testing.T) {
	dir := t.TempDir()
	kpiPath := writeTestFile(t, dir, "pm.csv",
		"kpi,site,value\nS1_Setup_Failure_Rate,SITE-A,2.5\n")
	alarmPath := writeTestFile(t, dir, "alarms.csv",
		"severity,alarm_type,mo,timestamp\nCRITICAL,LINK_FAILURE,ENB-1,2026-01-10 04:00:00\nCRITICAL,TIMING_SYNC,ENB-2,2026-01-10 04:05:00\n")
	reportPath := filepath.Join(dir, "report.json")

	resetAnalyzeFlags()
	defer resetAnalyzeFlags()
	analyzeFlags.kpisPath = kpiPath
	analyzeFlags.alarmsPath = alarmPath
	analyzeFlags.outputPath = reportPath

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	if err := runAnalyze(cmd, nil); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not created: %v", err)
	}
	var report models.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("parsing report: %v", err)
	}

	if !strings.Contains(report.Assessment.RootCause, "Transport/TIMING Fault") {
		t.Errorf("expected Transport/TIMING Fault root cause, got %q", report.Assessment.RootCause)
	}
	if report.Assessment.Severity != models.AssessmentSeverityHigh {
		t.Errorf("expected high severity, got %q", report.Assessment.Severity)
	}
	if report.ID == "" {
		t.Error("expected report ID to be assigned")
	}
}

func TestRunAnalyzePrintsToStdout(t *testing.T) {
	dir := t.TempDir()
	kpiPath := writeTestFile(t, dir, "pm.csv",
		"kpi,site,value\nRRC_Setup_Success_Rate,SITE-A,99.2\n")

	resetAnalyzeFlags()
	defer resetAnalyzeFlags()
	analyzeFlags.kpisPath = kpiPath

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	if err := runAnalyze(cmd, nil); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}

	var report models.AnalysisReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("parsing stdout report: %v", err)
	}
	if report.Assessment.RootCause != "Normal Operation" {
		t.Errorf("expected Normal Operation, got %q", report.Assessment.RootCause)
	}
}

func TestRunAnalyzeRequiresKPIs(t *testing.T) {
	resetAnalyzeFlags()
	defer resetAnalyzeFlags()

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	if err := runAnalyze(cmd, nil); err == nil {
		t.Fatal("expected an error without --kpis")
	}
}

func TestRunAnalyzeMissingFile(t *testing.T) {
	resetAnalyzeFlags()
	defer resetAnalyzeFlags()
	analyzeFlags.kpisPath = filepath.Join(t.TempDir(), "absent.csv")

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	if err := runAnalyze(cmd, nil); err == nil {
		t.Fatal("expected an error for a missing KPI export")
	}
}

func TestRunRules(t *testing.T) {
	rulesFlags.rulesPath = ""

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	if err := runRules(cmd, nil); err != nil {
		t.Fatalf("runRules: %v", err)
	}

	yamlOut := out.String()
	for _, want := range []string{"thresholds:", "S1_Setup_Failure_Rate", "severity_synonyms:", "failure_rules:"} {
		if !strings.Contains(yamlOut, want) {
			t.Errorf("expected rules YAML to contain %q", want)
		}
	}
}

func TestRunRulesWithOverlay(t *testing.T) {
	dir := t.TempDir()
	overlayPath := writeTestFile(t, dir, "rules.yaml",
		"thresholds:\n  Custom_KPI:\n    min: 42.0\n")

	rulesFlags.rulesPath = overlayPath
	defer func() { rulesFlags.rulesPath = "" }()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	if err := runRules(cmd, nil); err != nil {
		t.Fatalf("runRules: %v", err)
	}
	if !strings.Contains(out.String(), "Custom_KPI") {
		t.Error("expected overlay threshold in output")
	}
}
