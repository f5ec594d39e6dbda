package receiver

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/internal/storage/memory"
)

// GRPCReceiver serves the OTLP LogsService and appends converted alarm
// records to the live workspace.
type GRPCReceiver struct {
	collogspb.UnimplementedLogsServiceServer

	catalog     *rules.Catalog
	workspaces  *memory.Store
	workspaceID string
	logger      *slog.Logger
	server      *grpc.Server
	addr        string
}

// NewGRPCReceiver creates a new gRPC receiver feeding the given
// workspace.
func NewGRPCReceiver(addr string, cat *rules.Catalog, workspaces *memory.Store, workspaceID string, logger *slog.Logger) *GRPCReceiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &GRPCReceiver{
		catalog:     cat,
		workspaces:  workspaces,
		workspaceID: workspaceID,
		logger:      logger,
		addr:        addr,
	}
}

// Start starts the gRPC server. It blocks until Shutdown is called or
// the listener fails.
func (r *GRPCReceiver) Start() error {
	lis, err := net.Listen("tcp", r.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	r.server = grpc.NewServer()
	collogspb.RegisterLogsServiceServer(r.server, r)

	// Reflection lets grpcurl poke the service during debugging.
	reflection.Register(r.server)

	r.logger.Info("OTLP gRPC receiver listening", "addr", r.addr)
	return r.server.Serve(lis)
}

// Shutdown gracefully stops the gRPC server.
func (r *GRPCReceiver) Shutdown(ctx context.Context) error {
	if r.server != nil {
		r.server.GracefulStop()
	}
	return nil
}

// Export implements the LogsService Export RPC. Conversion never
// rejects a record; only a failed workspace append reports rejected
// records in the partial-success block.
func (r *GRPCReceiver) Export(ctx context.Context, req *collogspb.ExportLogsServiceRequest) (*collogspb.ExportLogsServiceResponse, error) {
	records := ConvertLogs(r.catalog, req)

	resp := &collogspb.ExportLogsServiceResponse{
		PartialSuccess: &collogspb.ExportLogsPartialSuccess{},
	}
	if len(records) == 0 {
		return resp, nil
	}

	total, err := r.workspaces.AppendAlarms(r.workspaceID, records)
	if err != nil {
		r.logger.Warn("dropping OTLP alarms",
			"count", len(records), "workspace_id", r.workspaceID, "error", err)
		resp.PartialSuccess.RejectedLogRecords = int64(len(records))
		resp.PartialSuccess.ErrorMessage = err.Error()
		return resp, nil
	}

	r.logger.Debug("OTLP alarms ingested",
		"transport", "grpc", "count", len(records), "total", total)
	return resp, nil
}
