package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/milewire/RAN-copilot/internal/storage/clickhouse"
	"github.com/milewire/RAN-copilot/internal/storage/sqlite"
	"github.com/milewire/RAN-copilot/pkg/models"
)

// Config holds archive configuration.
type Config struct {
	// Backend selects the archive backend: "none", "sqlite" or
	// "clickhouse".
	Backend string

	// SQLitePath is the database file path for the sqlite backend.
	SQLitePath string

	// ClickHouseAddr is the server address for the clickhouse backend.
	ClickHouseAddr string
}

// DefaultConfig returns default archive configuration. Archiving is
// opt-in: the default backend discards reports.
func DefaultConfig() Config {
	return Config{
		Backend:        "none",
		SQLitePath:     "./data/assessments.db",
		ClickHouseAddr: "localhost:9000",
	}
}

// NewArchive creates an archive based on configuration.
func NewArchive(ctx context.Context, cfg Config, logger *slog.Logger) (Archive, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case "", "none":
		logger.Info("assessment archive disabled")
		return NopArchive{}, nil

	case "sqlite":
		logger.Info("using SQLite assessment archive", "path", cfg.SQLitePath)
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("creating SQLite archive: %w", err)
		}
		return store, nil

	case "clickhouse":
		logger.Info("using ClickHouse assessment archive", "addr", cfg.ClickHouseAddr)
		chCfg := clickhouse.DefaultConfig()
		chCfg.Addr = cfg.ClickHouseAddr
		store, err := clickhouse.NewStore(ctx, chCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("creating ClickHouse archive: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown archive backend: %s (supported: none, sqlite, clickhouse)", cfg.Backend)
	}
}

// NopArchive discards reports. It backs the "none" configuration.
type NopArchive struct{}

// StoreReport discards the report.
func (NopArchive) StoreReport(ctx context.Context, report *models.AnalysisReport) error {
	return nil
}

// GetReport always reports not found.
func (NopArchive) GetReport(ctx context.Context, id string) (*models.AnalysisReport, error) {
	return nil, models.ErrReportNotFound
}

// ListReports always returns an empty history.
func (NopArchive) ListReports(ctx context.Context, workspaceID string, limit int) ([]*models.AnalysisReport, error) {
	return nil, nil
}

// Close is a no-op.
func (NopArchive) Close() error {
	return nil
}
