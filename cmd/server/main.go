// Package main is the entry point for the RAN copilot service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/milewire/RAN-copilot/internal/api"
	"github.com/milewire/RAN-copilot/internal/logging"
	"github.com/milewire/RAN-copilot/internal/receiver"
	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/internal/storage"
	"github.com/milewire/RAN-copilot/internal/storage/memory"
	"github.com/milewire/RAN-copilot/internal/storage/snapshots"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logging.Init(getEnv("LOG_LEVEL", "info"), getEnv("LOG_FORMAT", "text"))
	logger := logging.New("server")

	catalog := rules.Default()
	if path := getEnv("RULES_PATH", ""); path != "" {
		loaded, err := rules.Load(path)
		if err != nil {
			logger.Error("failed to load rules overlay", "path", path, "error", err)
			os.Exit(1)
		}
		catalog = loaded
		logger.Info("rules overlay loaded", "path", path)
	}

	workspaces := memory.New()
	live := workspaces.Create("otlp-live")
	logger.Info("live OTLP workspace created", "workspace_id", live.ID)

	snapStore, err := snapshots.New()
	if err != nil {
		logger.Error("failed to initialize snapshot store", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	archiveCfg := storage.Config{
		Backend:        getEnv("ARCHIVE_BACKEND", "none"),
		SQLitePath:     getEnv("ARCHIVE_DB_PATH", "./data/assessments.db"),
		ClickHouseAddr: getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
	}
	archive, err := storage.NewArchive(ctx, archiveCfg, logging.New("archive"))
	if err != nil {
		logger.Error("failed to initialize assessment archive", "backend", archiveCfg.Backend, "error", err)
		os.Exit(1)
	}
	defer archive.Close()

	apiAddr := getEnv("API_ADDR", ":8080")
	grpcAddr := getEnv("OTLP_GRPC_ADDR", ":4317")
	httpAddr := getEnv("OTLP_HTTP_ADDR", ":4318")

	apiServer := api.NewServer(apiAddr, catalog, workspaces, snapStore, archive, logging.New("api"))
	grpcReceiver := receiver.NewGRPCReceiver(grpcAddr, catalog, workspaces, live.ID, logging.New("otlp-grpc"))
	httpReceiver := receiver.NewHTTPReceiver(httpAddr, catalog, workspaces, live.ID, logging.New("otlp-http"))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting REST API server", "addr", apiAddr)
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("API server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := grpcReceiver.Start(); err != nil {
			return fmt.Errorf("OTLP gRPC receiver: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := httpReceiver.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("OTLP HTTP receiver: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("API server shutdown", "error", err)
		}
		if err := grpcReceiver.Shutdown(shutdownCtx); err != nil {
			logger.Error("OTLP gRPC receiver shutdown", "error", err)
		}
		if err := httpReceiver.Shutdown(shutdownCtx); err != nil {
			logger.Error("OTLP HTTP receiver shutdown", "error", err)
		}
		return nil
	})

	logger.Info("RAN copilot service up",
		"api", apiAddr, "otlp_grpc", grpcAddr, "otlp_http", httpAddr,
		"archive", archiveCfg.Backend)

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// getEnv gets an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
