// Package clickhouse provides a ClickHouse-backed assessment archive
// for deployments that keep long analysis histories.
package clickhouse

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/milewire/RAN-copilot/pkg/models"
)

// Store is a ClickHouse-backed archive for analysis reports.
type Store struct {
	conn   driver.Conn
	logger *slog.Logger
}

// NewStore connects to ClickHouse and prepares the archive schema.
func NewStore(ctx context.Context, config *ConnectionConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := Connect(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connecting to ClickHouse: %w", err)
	}

	if err := InitializeSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	logger.Info("ClickHouse archive ready", "addr", config.Addr, "database", config.Database)
	return &Store{conn: conn, logger: logger}, nil
}

// StoreReport writes a report. Re-storing an ID inserts a newer row
// version that replaces the old one on merge.
func (s *Store) StoreReport(ctx context.Context, report *models.AnalysisReport) error {
	if report == nil {
		return errors.New("report cannot be nil")
	}
	if report.ID == "" {
		return errors.New("report ID cannot be empty")
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	err = s.conn.Exec(ctx, `
		INSERT INTO rca_reports (id, workspace_id, generated_at, root_cause, severity, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		report.ID,
		report.WorkspaceID,
		report.GeneratedAt.UTC(),
		report.Assessment.RootCause,
		report.Assessment.Severity,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

// GetReport fetches a report by ID.
func (s *Store) GetReport(ctx context.Context, id string) (*models.AnalysisReport, error) {
	var payload string
	row := s.conn.QueryRow(ctx, `SELECT payload FROM rca_reports FINAL WHERE id = ? LIMIT 1`, id)
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrReportNotFound
		}
		return nil, fmt.Errorf("querying report: %w", err)
	}

	var report models.AnalysisReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("unmarshaling report: %w", err)
	}
	return &report, nil
}

// ListReports returns reports newest first, optionally filtered by
// workspace. limit <= 0 means no limit.
func (s *Store) ListReports(ctx context.Context, workspaceID string, limit int) ([]*models.AnalysisReport, error) {
	query := `SELECT payload FROM rca_reports FINAL`
	var args []any
	if workspaceID != "" {
		query += ` WHERE workspace_id = ?`
		args = append(args, workspaceID)
	}
	query += ` ORDER BY generated_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.AnalysisReport
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		var report models.AnalysisReport
		if err := json.Unmarshal([]byte(payload), &report); err != nil {
			return nil, fmt.Errorf("unmarshaling report: %w", err)
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}

// Close closes the ClickHouse connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
