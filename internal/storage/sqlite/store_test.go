package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/milewire/RAN-copilot/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testReport(id, workspaceID string, generatedAt time.Time) *models.AnalysisReport {
	return &models.AnalysisReport{
		ID:          id,
		WorkspaceID: workspaceID,
		GeneratedAt: generatedAt,
		Assessment: models.Assessment{
			RootCause: "Backhaul Impairment",
			Severity:  models.AssessmentSeverityHigh,
			Evidence: models.Evidence{
				"BLER_P95": {Mean: 14.2, Min: 9.1, Max: 22.0, Count: 12},
			},
			Anomalies: []models.Anomaly{
				{KPI: "BLER_P95", Type: models.AnomalyAboveThreshold, Value: 14.2, Threshold: 10.0, Severity: models.AnomalySeverityHigh},
			},
			Recommendations: []string{
				"Investigate microwave/fiber backhaul modulation drops and high jitter.",
			},
		},
		Correlations: []string{
			"Backhaul impairment detected while BLER anomalies are present; modulation drops and degraded RSSI may be contributing to high BLER.",
		},
	}
}

func TestStoreAndGetReport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := testReport("report-1", "ws-1", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	if err := store.StoreReport(ctx, want); err != nil {
		t.Fatalf("StoreReport() error: %v", err)
	}

	got, err := store.GetReport(ctx, "report-1")
	if err != nil {
		t.Fatalf("GetReport() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGetReportMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetReport(context.Background(), "absent"); !errors.Is(err, models.ErrReportNotFound) {
		t.Errorf("GetReport() error = %v, want ErrReportNotFound", err)
	}
}

func TestStoreReportOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testReport("report-1", "ws-1", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	if err := store.StoreReport(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := testReport("report-1", "ws-1", time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC))
	second.Assessment.RootCause = "Normal Operation"
	if err := store.StoreReport(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetReport(ctx, "report-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Assessment.RootCause != "Normal Operation" {
		t.Errorf("root cause = %q, want overwrite to Normal Operation", got.Assessment.RootCause)
	}

	reports, err := store.ListReports(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 {
		t.Errorf("ListReports() = %d rows, want 1 after overwrite", len(reports))
	}
}

func TestStoreReportValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.StoreReport(ctx, nil); err == nil {
		t.Error("StoreReport(nil) succeeded, want error")
	}
	if err := store.StoreReport(ctx, &models.AnalysisReport{}); err == nil {
		t.Error("StoreReport with empty ID succeeded, want error")
	}
}

func TestListReportsOrderingAndFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ws := "ws-a"
		if i%2 == 1 {
			ws = "ws-b"
		}
		report := testReport(fmt.Sprintf("report-%d", i), ws, base.Add(time.Duration(i)*time.Hour))
		if err := store.StoreReport(ctx, report); err != nil {
			t.Fatalf("StoreReport(%d) error: %v", i, err)
		}
	}

	all, err := store.ListReports(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListReports() error: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("ListReports() = %d rows, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].GeneratedAt.After(all[i-1].GeneratedAt) {
			t.Errorf("reports not newest first: %v after %v", all[i-1].GeneratedAt, all[i].GeneratedAt)
		}
	}

	wsA, err := store.ListReports(ctx, "ws-a", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(wsA) != 3 {
		t.Errorf("ListReports(ws-a) = %d rows, want 3", len(wsA))
	}
	for _, r := range wsA {
		if r.WorkspaceID != "ws-a" {
			t.Errorf("filter leaked workspace %q", r.WorkspaceID)
		}
	}

	limited, err := store.ListReports(ctx, "", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("ListReports(limit=2) = %d rows, want 2", len(limited))
	}
	if limited[0].ID != "report-4" {
		t.Errorf("newest report = %q, want report-4", limited[0].ID)
	}
}

func BenchmarkStoreReport(b *testing.B) {
	store, err := New(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	report := testReport("bench", "ws-bench", time.Now().UTC())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		report.ID = fmt.Sprintf("bench-%d", i)
		if err := store.StoreReport(ctx, report); err != nil {
			b.Fatal(err)
		}
	}
}
