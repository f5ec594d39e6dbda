// Package receiver implements the OTLP logs endpoints (gRPC and HTTP)
// that feed forwarded FM alarm notifications into a live workspace.
package receiver

import (
	"fmt"
	"strings"
	"time"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"

	"github.com/milewire/RAN-copilot/internal/ingest"
	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/pkg/models"
)

// Attribute-key synonyms probed in order, matched after key
// normalization. These mirror the file parsers' field ladders, extended
// with the "alarm."-namespaced spellings OTLP forwarders emit.
var (
	attrSeverityKeys  = []string{"perceivedseverity", "severity", "alarmseverity"}
	attrAlarmTypeKeys = []string{"alarmtype", "probablecause", "specificproblem"}
	attrMOKeys        = []string{"mo", "alarmmo", "managedobject", "alarmmanagedobject", "managedobjectinstance", "objectofreference"}
	attrAlarmIDKeys   = []string{"alarmid", "notificationid"}
	attrTextKeys      = []string{"additionaltext", "additionalinformation", "description"}
)

// ConvertLogs maps every OTLP log record in the request to an alarm
// record. Conversion never drops or rejects a record; fields that
// cannot be mapped take the same defaults the file parsers use.
func ConvertLogs(cat *rules.Catalog, req *collogspb.ExportLogsServiceRequest) []models.AlarmRecord {
	if req == nil {
		return nil
	}

	var records []models.AlarmRecord
	for _, resourceLogs := range req.ResourceLogs {
		for _, scopeLogs := range resourceLogs.GetScopeLogs() {
			for _, logRecord := range scopeLogs.GetLogRecords() {
				records = append(records, alarmFromRecord(cat, logRecord))
			}
		}
	}
	return records
}

func alarmFromRecord(cat *rules.Catalog, logRecord *logspb.LogRecord) models.AlarmRecord {
	attrs := normalizedAttributes(logRecord.GetAttributes())

	severity := logRecord.GetSeverityText()
	if severity == "" {
		severity = firstAttr(attrs, attrSeverityKeys...)
	}

	text := logRecord.GetBody().GetStringValue()
	if text == "" {
		text = firstAttr(attrs, attrTextKeys...)
	}

	return models.AlarmRecord{
		Timestamp:      recordTime(logRecord),
		Severity:       cat.NormalizeSeverity(severity),
		AlarmType:      orUnknown(firstAttr(attrs, attrAlarmTypeKeys...)),
		MO:             orUnknown(firstAttr(attrs, attrMOKeys...)),
		AlarmID:        firstAttr(attrs, attrAlarmIDKeys...),
		AdditionalText: text,
	}
}

// recordTime formats the record's event time, preferring the producer
// timestamp over the collector's observed time. Records without either
// get the current UTC instant.
func recordTime(logRecord *logspb.LogRecord) string {
	nanos := logRecord.GetTimeUnixNano()
	if nanos == 0 {
		nanos = logRecord.GetObservedTimeUnixNano()
	}
	if nanos == 0 {
		return time.Now().UTC().Format(ingest.TimestampFormat)
	}
	return time.Unix(0, int64(nanos)).UTC().Format(ingest.TimestampFormat)
}

// normalizedAttributes converts OTLP KeyValue attributes to a map with
// normalized keys, so "alarm.managed_object", "managedObject", and
// "managed_object" all resolve identically.
func normalizedAttributes(attrs []*commonpb.KeyValue) map[string]string {
	result := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		result[normalizeAttrKey(attr.Key)] = attributeValueToString(attr.Value)
	}
	return result
}

// normalizeAttrKey lower-cases an attribute key and strips separator
// characters.
func normalizeAttrKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, sep := range []string{".", "_", "-", " "} {
		key = strings.ReplaceAll(key, sep, "")
	}
	return key
}

// attributeValueToString converts an OTLP attribute value to string.
func attributeValueToString(value *commonpb.AnyValue) string {
	if value == nil {
		return ""
	}
	switch v := value.Value.(type) {
	case *commonpb.AnyValue_StringValue:
		return v.StringValue
	case *commonpb.AnyValue_IntValue:
		return fmt.Sprintf("%d", v.IntValue)
	case *commonpb.AnyValue_DoubleValue:
		return fmt.Sprintf("%f", v.DoubleValue)
	case *commonpb.AnyValue_BoolValue:
		return fmt.Sprintf("%t", v.BoolValue)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func firstAttr(attrs map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(attrs[k]); v != "" {
			return v
		}
	}
	return ""
}

func orUnknown(v string) string {
	if v == "" {
		return "UNKNOWN"
	}
	return v
}
