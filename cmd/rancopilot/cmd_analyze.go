package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/milewire/RAN-copilot/internal/analyzer"
	"github.com/milewire/RAN-copilot/internal/ingest"
	"github.com/milewire/RAN-copilot/internal/rca"
	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/pkg/models"
)

var analyzeFlags struct {
	kpisPath     string
	alarmsPath   string
	backhaulPath string
	attachPath   string
	outputPath   string
	rulesPath    string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run root-cause analysis over exported files",
	Long: `Analyze a PM counter export against the rule catalog, optionally fused
with FM alarms, backhaul telemetry, and CPE attach logs, and print or
write the resulting analysis report as JSON.

Usage:
  rancopilot analyze --kpis pm_export.csv
  rancopilot analyze --kpis pm.csv --alarms alarms.xml --backhaul bh.csv
  rancopilot analyze --kpis pm.csv --attach attach.csv -o report.json`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.kpisPath, "kpis", "", "PM counter CSV export (required)")
	f.StringVar(&analyzeFlags.alarmsPath, "alarms", "", "FM alarm export (XML, CSV, or text log)")
	f.StringVar(&analyzeFlags.backhaulPath, "backhaul", "", "Backhaul telemetry CSV")
	f.StringVar(&analyzeFlags.attachPath, "attach", "", "CPE attach log CSV")
	f.StringVarP(&analyzeFlags.outputPath, "output", "o", "", "Report output path (default: stdout)")
	f.StringVar(&analyzeFlags.rulesPath, "rules", "", "YAML rules overlay")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeFlags.kpisPath == "" {
		return fmt.Errorf("--kpis is required\n\nUsage: rancopilot analyze --kpis pm_export.csv [--alarms f] [--backhaul f] [--attach f]")
	}

	catalog := rules.Default()
	if analyzeFlags.rulesPath != "" {
		loaded, err := rules.Load(analyzeFlags.rulesPath)
		if err != nil {
			return err
		}
		catalog = loaded
	}

	kpiContent, err := os.ReadFile(analyzeFlags.kpisPath)
	if err != nil {
		return fmt.Errorf("reading KPI export: %w", err)
	}
	samples := ingest.ParseKPICSV(kpiContent)

	var opts []rca.Option
	var alarmSummary *models.AlarmSummary
	var backhaulSummary *models.BackhaulSummary
	var attachSummary *models.AttachSummary

	if analyzeFlags.alarmsPath != "" {
		content, err := os.ReadFile(analyzeFlags.alarmsPath)
		if err != nil {
			return fmt.Errorf("reading alarm export: %w", err)
		}
		summary := analyzer.SummarizeAlarms(
			ingest.ParseAlarmFile(catalog, content, filepath.Base(analyzeFlags.alarmsPath)))
		alarmSummary = &summary
		opts = append(opts, rca.WithAlarms(alarmSummary))
	}
	if analyzeFlags.backhaulPath != "" {
		content, err := os.ReadFile(analyzeFlags.backhaulPath)
		if err != nil {
			return fmt.Errorf("reading backhaul telemetry: %w", err)
		}
		summary := analyzer.SummarizeBackhaul(ingest.ParseBackhaulCSV(catalog, content))
		backhaulSummary = &summary
		opts = append(opts, rca.WithBackhaul(backhaulSummary))
	}
	if analyzeFlags.attachPath != "" {
		content, err := os.ReadFile(analyzeFlags.attachPath)
		if err != nil {
			return fmt.Errorf("reading attach log: %w", err)
		}
		summary := analyzer.SummarizeAttach(ingest.ParseAttachCSV(catalog, content))
		attachSummary = &summary
		opts = append(opts, rca.WithAttach(attachSummary))
	}

	assessment := rca.Analyze(catalog, samples, opts...)
	report := models.AnalysisReport{
		ID:           uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Assessment:   assessment,
		Correlations: rca.Correlations(assessment.Anomalies, alarmSummary, backhaulSummary, attachSummary),
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	out = append(out, '\n')

	if analyzeFlags.outputPath != "" {
		if err := os.WriteFile(analyzeFlags.outputPath, out, 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", analyzeFlags.outputPath)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
