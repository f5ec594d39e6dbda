package ingest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/pkg/models"
)

func TestParseAlarmXML(t *testing.T) {
	cat := rules.Default()

	content := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<alarmExport xmlns="urn:vendor:fm">
  <alarm>
    <perceivedSeverity>CRIT</perceivedSeverity>
    <alarmType>LinkDown</alarmType>
    <managedObject>ERBS-41001/Cell-1</managedObject>
    <eventTime>2025-01-01T10:00:00Z</eventTime>
    <alarmId>9001</alarmId>
    <additionalText>S1 link lost</additionalText>
  </alarm>
  <notification>
    <severityText>maj</severityText>
    <probableCause>Timing sync loss</probableCause>
    <objectOfReference>MW-LINK-7</objectOfReference>
    <raisedTime>2025-01-01 10:05:00</raisedTime>
    <notificationId>9002</notificationId>
    <description>PTP holdover entered</description>
  </notification>
  <equipment>
    <fault mo="RRU-3" id="77">
      <severity>warning</severity>
    </fault>
  </equipment>
</alarmExport>`)

	got := ParseAlarmFile(cat, content, "export.xml")

	want := []models.AlarmRecord{
		{
			Timestamp:      "2025-01-01T10:00:00",
			Severity:       "CRITICAL",
			AlarmType:      "LinkDown",
			MO:             "ERBS-41001/Cell-1",
			AlarmID:        "9001",
			AdditionalText: "S1 link lost",
		},
		{
			Timestamp:      "2025-01-01T10:05:00",
			Severity:       "MAJOR",
			AlarmType:      "Timing sync loss",
			MO:             "MW-LINK-7",
			AlarmID:        "9002",
			AdditionalText: "PTP holdover entered",
		},
		{
			Timestamp:      "", // filled with current time, checked below
			Severity:       "WARNING",
			AlarmType:      "UNKNOWN",
			MO:             "RRU-3",
			AlarmID:        "77",
			AdditionalText: "",
		},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	if got[2].Timestamp == "" {
		t.Error("fault record should carry a fallback timestamp")
	}
	want[2].Timestamp = got[2].Timestamp

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAlarmXMLNested(t *testing.T) {
	cat := rules.Default()

	// Candidate elements are found at any depth, and field values may sit
	// below intermediate wrapper elements.
	content := []byte(`<export>
  <group>
    <alarm>
      <details>
        <severity>MIN</severity>
        <specificProblem>Cell degraded</specificProblem>
      </details>
    </alarm>
  </group>
</export>`)

	got := ParseAlarmFile(cat, content, "nested.xml")
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Severity != "MINOR" {
		t.Errorf("severity = %q, want MINOR", got[0].Severity)
	}
	if got[0].AlarmType != "Cell degraded" {
		t.Errorf("alarm type = %q, want Cell degraded", got[0].AlarmType)
	}
	if got[0].MO != "UNKNOWN" {
		t.Errorf("mo = %q, want UNKNOWN", got[0].MO)
	}
}

func TestParseAlarmXMLInvalid(t *testing.T) {
	cat := rules.Default()

	for _, tt := range []struct {
		name    string
		content string
	}{
		{"not xml", "this is not xml"},
		{"truncated", "<alarmExport><alarm>"},
		{"empty", ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAlarmFile(cat, []byte(tt.content), "bad.xml"); len(got) != 0 {
				t.Errorf("got %d records, want 0", len(got))
			}
		})
	}
}

func TestParseAlarmCSV(t *testing.T) {
	cat := rules.Default()

	content := []byte(`Event Time,Perceived Severity,Alarm_Class,Managed Object,Notification_Id,Additional Information
2025-01-01 10:00:00,CRIT,LinkDown,ERBS-1,42,S1 down
2025/01/01 11:00:00,major,,AIR-2,,PRB spike`)

	got := ParseAlarmFile(cat, content, "alarms.csv")

	want := []models.AlarmRecord{
		{
			Timestamp:      "2025-01-01T10:00:00",
			Severity:       "CRITICAL",
			AlarmType:      "LinkDown",
			MO:             "ERBS-1",
			AlarmID:        "42",
			AdditionalText: "S1 down",
		},
		{
			Timestamp:      "2025-01-01T11:00:00",
			Severity:       "MAJOR",
			AlarmType:      "UNKNOWN",
			MO:             "AIR-2",
			AlarmID:        "",
			AdditionalText: "PRB spike",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAlarmCSVHeaderOnly(t *testing.T) {
	cat := rules.Default()
	if got := ParseAlarmFile(cat, []byte("severity,mo\n"), "alarms.csv"); len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}

func TestParseAlarmText(t *testing.T) {
	cat := rules.Default()

	content := strings.Join([]string{
		"2025-01-01 12:00:00 CRITICAL ERBS-41001/Cell-1 ALARM_ID=1234 S1 link down",
		"",
		"garbage line without structure",
		"2025/01/02 03:04:05 warn MW-7 id=ab12 modulation degraded",
	}, "\n")

	got := ParseAlarmFile(cat, []byte(content), "alarms.log")
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}

	matched := got[0]
	if matched.Timestamp != "2025-01-01T12:00:00" {
		t.Errorf("timestamp = %q, want 2025-01-01T12:00:00", matched.Timestamp)
	}
	if matched.Severity != "CRITICAL" {
		t.Errorf("severity = %q, want CRITICAL", matched.Severity)
	}
	if matched.MO != "ERBS-41001/Cell-1" {
		t.Errorf("mo = %q", matched.MO)
	}
	if matched.AlarmID != "1234" {
		t.Errorf("alarm id = %q, want 1234", matched.AlarmID)
	}
	if matched.AlarmType != AlarmTypeTextLog {
		t.Errorf("alarm type = %q, want %s", matched.AlarmType, AlarmTypeTextLog)
	}
	if !strings.Contains(matched.AdditionalText, "S1 link down") {
		t.Errorf("additional text = %q", matched.AdditionalText)
	}

	// Unmatched lines are preserved verbatim, not dropped.
	unmatched := got[1]
	if unmatched.Severity != models.SeverityIndeterminate {
		t.Errorf("unmatched severity = %q, want INDETERMINATE", unmatched.Severity)
	}
	if unmatched.MO != "UNKNOWN" {
		t.Errorf("unmatched mo = %q, want UNKNOWN", unmatched.MO)
	}
	if unmatched.AdditionalText != "garbage line without structure" {
		t.Errorf("unmatched text = %q", unmatched.AdditionalText)
	}
	if unmatched.Timestamp == "" {
		t.Error("unmatched record should carry a fallback timestamp")
	}

	// Lower-case id= token is still extracted.
	third := got[2]
	if third.AlarmID != "ab12" {
		t.Errorf("alarm id = %q, want ab12", third.AlarmID)
	}
	if third.Severity != "WARNING" {
		t.Errorf("severity = %q, want WARNING", third.Severity)
	}
}

func TestParseAlarmFileDispatch(t *testing.T) {
	cat := rules.Default()

	// The same severity-only content lands in different parsers depending
	// on the extension.
	if got := ParseAlarmFile(cat, []byte("<x/>"), "a.XML"); got != nil {
		t.Errorf("upper-case extension should still parse as XML, got %v", got)
	}
	got := ParseAlarmFile(cat, []byte("just one line"), "notes.txt")
	if len(got) != 1 || got[0].AlarmType != AlarmTypeTextLog {
		t.Errorf("non-xml/csv content should fall back to the text parser, got %+v", got)
	}
}
