package receiver

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/internal/storage/memory"
)

// HTTPReceiver serves the OTLP/HTTP logs endpoint and appends converted
// alarm records to the live workspace.
type HTTPReceiver struct {
	catalog     *rules.Catalog
	workspaces  *memory.Store
	workspaceID string
	logger      *slog.Logger
	server      *http.Server
}

// NewHTTPReceiver creates a new HTTP receiver feeding the given
// workspace.
func NewHTTPReceiver(addr string, cat *rules.Catalog, workspaces *memory.Store, workspaceID string, logger *slog.Logger) *HTTPReceiver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &HTTPReceiver{
		catalog:     cat,
		workspaces:  workspaces,
		workspaceID: workspaceID,
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/logs", r.handleLogs)
	mux.HandleFunc("/health", r.handleHealth)

	r.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return r
}

// Start starts the HTTP server.
func (r *HTTPReceiver) Start() error {
	r.logger.Info("OTLP HTTP receiver listening", "addr", r.server.Addr)
	return r.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (r *HTTPReceiver) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

// handleLogs handles OTLP logs export requests. Bodies may be protobuf
// or protojson, optionally gzip-compressed.
func (r *HTTPReceiver) handleLogs(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reader := io.Reader(req.Body)
	if req.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(req.Body)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to decompress: %v", err), http.StatusBadRequest)
			return
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read body: %v", err), http.StatusBadRequest)
		return
	}
	defer req.Body.Close()

	// Protobuf is the OTLP default; fall back to protojson.
	var exportReq collogspb.ExportLogsServiceRequest
	if err := proto.Unmarshal(body, &exportReq); err != nil {
		unmarshaler := protojson.UnmarshalOptions{DiscardUnknown: true}
		if jsonErr := unmarshaler.Unmarshal(body, &exportReq); jsonErr != nil {
			r.logger.Warn("failed to parse logs request",
				"protobuf_error", err, "json_error", jsonErr)
			http.Error(w, fmt.Sprintf("Failed to parse request: protobuf error: %v, json error: %v", err, jsonErr), http.StatusBadRequest)
			return
		}
	}

	records := ConvertLogs(r.catalog, &exportReq)
	resp := &collogspb.ExportLogsServiceResponse{
		PartialSuccess: &collogspb.ExportLogsPartialSuccess{},
	}

	if len(records) > 0 {
		total, err := r.workspaces.AppendAlarms(r.workspaceID, records)
		if err != nil {
			r.logger.Warn("dropping OTLP alarms",
				"count", len(records), "workspace_id", r.workspaceID, "error", err)
			resp.PartialSuccess.RejectedLogRecords = int64(len(records))
			resp.PartialSuccess.ErrorMessage = err.Error()
		} else {
			r.logger.Debug("OTLP alarms ingested",
				"transport", "http", "count", len(records), "total", total)
		}
	}

	r.writeResponse(w, resp)
}

// handleHealth handles health check requests.
func (r *HTTPReceiver) handleHealth(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// writeResponse writes a protobuf response. OTLP always uses protobuf
// for responses.
func (r *HTTPReceiver) writeResponse(w http.ResponseWriter, resp proto.Message) {
	respBytes, err := proto.Marshal(resp)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to marshal response: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-protobuf")
	w.WriteHeader(http.StatusOK)
	w.Write(respBytes)
}
