package receiver

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"

	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/pkg/models"
)

func strVal(s string) *commonpb.AnyValue {
	return &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: s}}
}

func intVal(i int64) *commonpb.AnyValue {
	return &commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: i}}
}

func logsRequest(records ...*logspb.LogRecord) *collogspb.ExportLogsServiceRequest {
	return &collogspb.ExportLogsServiceRequest{
		ResourceLogs: []*logspb.ResourceLogs{{
			ScopeLogs: []*logspb.ScopeLogs{{
				LogRecords: records,
			}},
		}},
	}
}

func TestConvertLogs(t *testing.T) {
	cat := rules.Default()
	eventTime := time.Date(2026, 1, 10, 4, 0, 0, 0, time.UTC)

	req := logsRequest(&logspb.LogRecord{
		TimeUnixNano: uint64(eventTime.UnixNano()),
		SeverityText: "CRIT",
		Body:         strVal("LOS on IF-2"),
		Attributes: []*commonpb.KeyValue{
			{Key: "alarm.type", Value: strVal("PLANE_TRANSPORT_FAULT")},
			{Key: "alarm.managed_object", Value: strVal("ENB-7/TN-A")},
			{Key: "alarm.id", Value: strVal("A-99812")},
		},
	})

	got := ConvertLogs(cat, req)
	want := []models.AlarmRecord{{
		Timestamp:      "2026-01-10T04:00:00",
		Severity:       models.SeverityCritical,
		AlarmType:      "PLANE_TRANSPORT_FAULT",
		MO:             "ENB-7/TN-A",
		AlarmID:        "A-99812",
		AdditionalText: "LOS on IF-2",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConvertLogs mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertLogsAttributeSynonyms(t *testing.T) {
	cat := rules.Default()

	tests := []struct {
		name  string
		attrs []*commonpb.KeyValue
		check func(t *testing.T, rec models.AlarmRecord)
	}{
		{
			name: "probable cause maps to alarm type",
			attrs: []*commonpb.KeyValue{
				{Key: "probable_cause", Value: strVal("loss_of_signal")},
			},
			check: func(t *testing.T, rec models.AlarmRecord) {
				if rec.AlarmType != "loss_of_signal" {
					t.Errorf("expected alarm type loss_of_signal, got %q", rec.AlarmType)
				}
			},
		},
		{
			name: "camel case managed object",
			attrs: []*commonpb.KeyValue{
				{Key: "managedObject", Value: strVal("SITE-12")},
			},
			check: func(t *testing.T, rec models.AlarmRecord) {
				if rec.MO != "SITE-12" {
					t.Errorf("expected MO SITE-12, got %q", rec.MO)
				}
			},
		},
		{
			name: "notification id maps to alarm id",
			attrs: []*commonpb.KeyValue{
				{Key: "notification_id", Value: intVal(4711)},
			},
			check: func(t *testing.T, rec models.AlarmRecord) {
				if rec.AlarmID != "4711" {
					t.Errorf("expected alarm ID 4711, got %q", rec.AlarmID)
				}
			},
		},
		{
			name: "severity attribute when severity text absent",
			attrs: []*commonpb.KeyValue{
				{Key: "perceived_severity", Value: strVal("MAJ")},
			},
			check: func(t *testing.T, rec models.AlarmRecord) {
				if rec.Severity != models.SeverityMajor {
					t.Errorf("expected MAJOR, got %q", rec.Severity)
				}
			},
		},
		{
			name: "description fills additional text when body absent",
			attrs: []*commonpb.KeyValue{
				{Key: "description", Value: strVal("remote unit unreachable")},
			},
			check: func(t *testing.T, rec models.AlarmRecord) {
				if rec.AdditionalText != "remote unit unreachable" {
					t.Errorf("expected description text, got %q", rec.AdditionalText)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := logsRequest(&logspb.LogRecord{Attributes: tt.attrs})
			got := ConvertLogs(cat, req)
			if len(got) != 1 {
				t.Fatalf("expected 1 record, got %d", len(got))
			}
			tt.check(t, got[0])
		})
	}
}

func TestConvertLogsDefaults(t *testing.T) {
	got := ConvertLogs(rules.Default(), logsRequest(&logspb.LogRecord{}))
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}

	rec := got[0]
	if rec.Severity != models.SeverityIndeterminate {
		t.Errorf("expected INDETERMINATE severity, got %q", rec.Severity)
	}
	if rec.AlarmType != "UNKNOWN" {
		t.Errorf("expected UNKNOWN alarm type, got %q", rec.AlarmType)
	}
	if rec.MO != "UNKNOWN" {
		t.Errorf("expected UNKNOWN MO, got %q", rec.MO)
	}
	if rec.AlarmID != "" {
		t.Errorf("expected empty alarm ID, got %q", rec.AlarmID)
	}
	if rec.Timestamp == "" {
		t.Error("expected a timestamp to be substituted")
	}
}

func TestConvertLogsObservedTimeFallback(t *testing.T) {
	observed := time.Date(2026, 1, 10, 5, 30, 0, 0, time.UTC)
	req := logsRequest(&logspb.LogRecord{
		ObservedTimeUnixNano: uint64(observed.UnixNano()),
	})

	got := ConvertLogs(rules.Default(), req)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Timestamp != "2026-01-10T05:30:00" {
		t.Errorf("expected observed time, got %q", got[0].Timestamp)
	}
}

func TestConvertLogsNilRequest(t *testing.T) {
	if got := ConvertLogs(rules.Default(), nil); len(got) != 0 {
		t.Errorf("expected no records for nil request, got %d", len(got))
	}
}

func TestConvertLogsMultipleResources(t *testing.T) {
	req := &collogspb.ExportLogsServiceRequest{
		ResourceLogs: []*logspb.ResourceLogs{
			{ScopeLogs: []*logspb.ScopeLogs{{LogRecords: []*logspb.LogRecord{
				{SeverityText: "CRITICAL"},
				{SeverityText: "MINOR"},
			}}}},
			{ScopeLogs: []*logspb.ScopeLogs{{LogRecords: []*logspb.LogRecord{
				{SeverityText: "MAJOR"},
			}}}},
		},
	}

	got := ConvertLogs(rules.Default(), req)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}

	severities := []string{got[0].Severity, got[1].Severity, got[2].Severity}
	want := []string{models.SeverityCritical, models.SeverityMinor, models.SeverityMajor}
	if diff := cmp.Diff(want, severities); diff != "" {
		t.Errorf("severity order mismatch (-want +got):\n%s", diff)
	}
}
