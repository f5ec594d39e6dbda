// Package ingest turns raw telecom exports into canonical records. The
// parsers are deliberately tolerant of vendor format variants: field
// names are resolved through ordered synonym lists, malformed rows
// degrade to documented defaults, and nothing here returns an error.
// Content that cannot be interpreted at all yields an empty batch.
package ingest

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/pkg/models"
)

// AlarmTypeTextLog marks records produced by the plain-text line parser.
const AlarmTypeTextLog = "TEXT_LOG"

// XML element names treated as alarm candidates, matched on the local
// tag name with any namespace stripped.
var alarmElements = map[string]bool{
	"alarm":        true,
	"notification": true,
	"fault":        true,
}

// Field-name synonyms for XML exports, probed in order; the first
// element carrying non-empty text wins.
var (
	xmlSeverityFields  = []string{"perceivedSeverity", "severity", "severityText"}
	xmlAlarmTypeFields = []string{"alarmType", "probableCause", "specificProblem"}
	xmlMOFields        = []string{"managedObject", "managedObjectInstance", "objectOfReference"}
	xmlTimestampFields = []string{"eventTime", "raisedTime", "time"}
	xmlAlarmIDFields   = []string{"alarmId", "notificationId"}
	xmlTextFields      = []string{"additionalText", "additionalInformation", "description"}
)

// Column-name synonyms for CSV exports, matched after header
// normalization.
var (
	csvSeverityColumns  = []string{"severity", "perceivedseverity"}
	csvAlarmTypeColumns = []string{"alarmtype", "alarmclass", "probablecause"}
	csvMOColumns        = []string{"mo", "managedobject", "objectofreference"}
	csvTimestampColumns = []string{"timestamp", "eventtime", "raisedtime"}
	csvAlarmIDColumns   = []string{"alarmid", "notificationid"}
	csvTextColumns      = []string{"additionaltext", "additionalinformation", "description"}
)

var (
	// One alarm per line: timestamp, severity word, MO token, free text.
	alarmLinePattern = regexp.MustCompile(`^(\d{4}[-/]\d{2}[-/]\d{2}[ T]\d{2}:\d{2}:\d{2})\s+(\w+)\s+(\S+)\s+(.+)$`)
	alarmIDPattern   = regexp.MustCompile(`(?i)(ALARM_ID|alarmId|id)=(\S+)`)
)

// ParseAlarmFile parses an FM alarm export into normalized records. The
// format is chosen from the filename extension: .xml and .csv get the
// structured parsers, anything else is treated as a plain-text log.
func ParseAlarmFile(cat *rules.Catalog, content []byte, filename string) []models.AlarmRecord {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".xml"):
		return parseAlarmXML(cat, content)
	case strings.HasSuffix(name, ".csv"):
		return parseAlarmCSV(cat, content)
	default:
		return parseAlarmText(cat, string(content))
	}
}

// xmlNode is a generic element tree used to walk exports without
// binding to any particular schema.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Chardata string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

func parseAlarmXML(cat *rules.Catalog, content []byte) []models.AlarmRecord {
	var root xmlNode
	if err := xml.Unmarshal(content, &root); err != nil {
		return nil
	}

	var records []models.AlarmRecord
	walkXML(&root, func(n *xmlNode) {
		if !alarmElements[n.XMLName.Local] {
			return
		}

		mo := probeText(n, xmlMOFields)
		if mo == "" {
			mo = attrValue(n, "mo")
		}
		alarmID := probeText(n, xmlAlarmIDFields)
		if alarmID == "" {
			alarmID = attrValue(n, "id")
		}

		records = append(records, models.AlarmRecord{
			Timestamp:      NormalizeTimestamp(probeText(n, xmlTimestampFields)),
			Severity:       cat.NormalizeSeverity(probeText(n, xmlSeverityFields)),
			AlarmType:      orUnknown(probeText(n, xmlAlarmTypeFields)),
			MO:             orUnknown(mo),
			AlarmID:        alarmID,
			AdditionalText: probeText(n, xmlTextFields),
		})
	})
	return records
}

func parseAlarmCSV(cat *rules.Catalog, content []byte) []models.AlarmRecord {
	var records []models.AlarmRecord
	for _, row := range rowMaps(content) {
		records = append(records, models.AlarmRecord{
			Timestamp:      NormalizeTimestamp(first(row, csvTimestampColumns...)),
			Severity:       cat.NormalizeSeverity(first(row, csvSeverityColumns...)),
			AlarmType:      orUnknown(first(row, csvAlarmTypeColumns...)),
			MO:             orUnknown(first(row, csvMOColumns...)),
			AlarmID:        first(row, csvAlarmIDColumns...),
			AdditionalText: first(row, csvTextColumns...),
		})
	}
	return records
}

func parseAlarmText(cat *rules.Catalog, text string) []models.AlarmRecord {
	var records []models.AlarmRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := alarmLinePattern.FindStringSubmatch(line)
		if m == nil {
			// Keep unmatched lines instead of dropping them.
			records = append(records, models.AlarmRecord{
				Timestamp:      nowUTC(),
				Severity:       models.SeverityIndeterminate,
				AlarmType:      AlarmTypeTextLog,
				MO:             "UNKNOWN",
				AdditionalText: line,
			})
			continue
		}

		rest := m[4]
		var alarmID string
		if idMatch := alarmIDPattern.FindStringSubmatch(rest); idMatch != nil {
			alarmID = idMatch[2]
		}

		records = append(records, models.AlarmRecord{
			Timestamp:      NormalizeTimestamp(m[1]),
			Severity:       cat.NormalizeSeverity(m[2]),
			AlarmType:      AlarmTypeTextLog,
			MO:             m[3],
			AlarmID:        alarmID,
			AdditionalText: rest,
		})
	}
	return records
}

func walkXML(n *xmlNode, visit func(*xmlNode)) {
	visit(n)
	for i := range n.Children {
		walkXML(&n.Children[i], visit)
	}
}

// probeText tries each field name in order and returns the text of the
// first matching descendant that carries any. A match with empty text
// falls through to the next synonym.
func probeText(n *xmlNode, fields []string) string {
	for _, f := range fields {
		if c := findDescendant(n, f); c != nil {
			if text := strings.TrimSpace(c.Chardata); text != "" {
				return text
			}
		}
	}
	return ""
}

// findDescendant returns the first descendant (document order) whose
// local name matches, or nil.
func findDescendant(n *xmlNode, local string) *xmlNode {
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == local {
			return c
		}
		if found := findDescendant(c, local); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *xmlNode, local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
