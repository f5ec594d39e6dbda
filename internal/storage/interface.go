// Package storage defines the assessment archive interface and its
// backend factory.
package storage

import (
	"context"

	"github.com/milewire/RAN-copilot/pkg/models"
)

// Archive persists completed analysis reports across restarts.
// Implementations must be safe for concurrent use.
type Archive interface {
	// StoreReport writes a report. Storing an existing ID overwrites it.
	StoreReport(ctx context.Context, report *models.AnalysisReport) error

	// GetReport fetches a report by ID. Unknown IDs return
	// models.ErrReportNotFound.
	GetReport(ctx context.Context, id string) (*models.AnalysisReport, error)

	// ListReports returns reports newest first. An empty workspaceID
	// matches all workspaces; limit <= 0 means no limit.
	ListReports(ctx context.Context, workspaceID string, limit int) ([]*models.AnalysisReport, error)

	// Close releases backend resources.
	Close() error
}
