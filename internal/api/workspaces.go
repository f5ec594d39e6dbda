package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/milewire/RAN-copilot/internal/analyzer"
	"github.com/milewire/RAN-copilot/internal/ingest"
	"github.com/milewire/RAN-copilot/pkg/models"
)

// createWorkspaceRequest is the body for POST /workspaces.
type createWorkspaceRequest struct {
	Name string `json:"name"`
}

// uploadResponse reports the outcome of a signal upload.
type uploadResponse struct {
	Signal string `json:"signal"`
	Added  int    `json:"added"`
	Total  int    `json:"total"`
}

// kpiSummaryResponse is the payload for the KPI summary endpoint.
type kpiSummaryResponse struct {
	Evidence  models.Evidence  `json:"evidence"`
	Anomalies []models.Anomaly `json:"anomalies"`
}

// createWorkspace creates an empty workspace.
// POST /api/v1/workspaces
func (s *Server) createWorkspace(w http.ResponseWriter, r *http.Request) {
	var req createWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Name == "" {
		req.Name = "workspace"
	}

	info := s.workspaces.Create(req.Name)
	s.logger.Info("workspace created", "workspace_id", info.ID, "name", info.Name)
	respondJSON(w, http.StatusCreated, info)
}

// listWorkspaces returns metadata for all workspaces, newest first.
// GET /api/v1/workspaces
func (s *Server) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.workspaces.List())
}

// getWorkspace returns metadata for one workspace.
// GET /api/v1/workspaces/{id}
func (s *Server) getWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspaces.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrWorkspaceNotFound) {
			respondError(w, http.StatusNotFound, "workspace not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ws.Info())
}

// deleteWorkspace removes a workspace.
// DELETE /api/v1/workspaces/{id}
func (s *Server) deleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.workspaces.Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrWorkspaceNotFound) {
			respondError(w, http.StatusNotFound, "workspace not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadSignal parses one uploaded file into a workspace signal. The
// parsers never fail; an unreadable file simply yields zero records.
// POST /api/v1/workspaces/{id}/uploads/{signal}
func (s *Server) uploadSignal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	signal := chi.URLParam(r, "signal")

	content, filename, err := readUpload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var added, total int
	switch signal {
	case "alarms":
		records := ingest.ParseAlarmFile(s.catalog, content, filename)
		added = len(records)
		total, err = s.workspaces.AppendAlarms(id, records)
	case "attach":
		records := ingest.ParseAttachCSV(s.catalog, content)
		added = len(records)
		total, err = s.workspaces.AppendAttach(id, records)
	case "backhaul":
		samples := ingest.ParseBackhaulCSV(s.catalog, content)
		added = len(samples)
		total, err = s.workspaces.AppendBackhaul(id, samples)
	case "kpis":
		samples := ingest.ParseKPICSV(content)
		added = len(samples)
		total, err = s.workspaces.AppendKPIs(id, samples)
	default:
		respondError(w, http.StatusBadRequest, "unknown signal: "+signal)
		return
	}

	if err != nil {
		if errors.Is(err, models.ErrWorkspaceNotFound) {
			respondError(w, http.StatusNotFound, "workspace not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("signal uploaded",
		"workspace_id", id, "signal", signal, "filename", filename, "added", added, "total", total)
	respondJSON(w, http.StatusOK, uploadResponse{Signal: signal, Added: added, Total: total})
}

// summarizeSignal returns the per-domain summary for one signal.
// GET /api/v1/workspaces/{id}/summary/{signal}
func (s *Server) summarizeSignal(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspaces.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrWorkspaceNotFound) {
			respondError(w, http.StatusNotFound, "workspace not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch signal := chi.URLParam(r, "signal"); signal {
	case "alarms":
		respondJSON(w, http.StatusOK, analyzer.SummarizeAlarms(ws.Alarms))
	case "attach":
		respondJSON(w, http.StatusOK, analyzer.SummarizeAttach(ws.Attach))
	case "backhaul":
		respondJSON(w, http.StatusOK, analyzer.SummarizeBackhaul(ws.Backhaul))
	case "kpis":
		evidence, anomalies, _ := analyzer.SummarizeKPIs(s.catalog, ws.KPIs)
		if anomalies == nil {
			anomalies = []models.Anomaly{}
		}
		respondJSON(w, http.StatusOK, kpiSummaryResponse{Evidence: evidence, Anomalies: anomalies})
	default:
		respondError(w, http.StatusBadRequest, "unknown signal: "+signal)
	}
}

// readUpload extracts the uploaded file content and its name from
// either a multipart "file" field or the raw request body (with an
// optional ?filename= hint).
func readUpload(r *http.Request) ([]byte, string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, "", fmt.Errorf("parsing multipart form: %w", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("missing file field: %w", err)
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("reading upload: %w", err)
		}
		return content, header.Filename, nil
	}

	content, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		return nil, "", fmt.Errorf("reading request body: %w", err)
	}
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = "upload.csv"
	}
	return content, filename, nil
}
