package ingest

import (
	"strings"

	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/pkg/models"
)

var (
	attachCauseColumns = []string{"attachrejectcause", "attachcause"}
	erabCauseColumns   = []string{"erabsetupcause", "erabcause"}
)

// ParseAttachCSV parses a CPE attach/ERAB log. Records without an
// explicit failure category get one assigned from the combined cause
// text; identifiers missing from a row default to UNKNOWN.
func ParseAttachCSV(cat *rules.Catalog, content []byte) []models.AttachRecord {
	var records []models.AttachRecord
	for _, row := range rowMaps(content) {
		attachCause := strings.TrimSpace(first(row, attachCauseColumns...))
		erabCause := strings.TrimSpace(first(row, erabCauseColumns...))

		category := strings.TrimSpace(row["failurecategory"])
		if category == "" {
			category = cat.ClassifyFailure(attachCause, erabCause)
		}

		records = append(records, models.AttachRecord{
			IMSI:              orUnknown(strings.TrimSpace(row["imsi"])),
			APN:               orUnknown(strings.TrimSpace(row["apn"])),
			TAC:               orUnknown(strings.TrimSpace(row["tac"])),
			AttachRejectCause: attachCause,
			ERABSetupCause:    erabCause,
			FailureCategory:   category,
		})
	}
	return records
}
