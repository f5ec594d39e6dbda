package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/milewire/RAN-copilot/internal/analyzer"
	"github.com/milewire/RAN-copilot/internal/ingest"
	"github.com/milewire/RAN-copilot/internal/rca"
	"github.com/milewire/RAN-copilot/pkg/models"
)

// analyzeOneShot runs a full analysis from files in a single multipart
// request. The "kpis" part is required; "alarms", "backhaul", and
// "attach" are optional context.
// POST /api/v1/analyze
func (s *Server) analyzeOneShot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "parsing multipart form: "+err.Error())
		return
	}

	kpiContent, _, err := formFile(r, "kpis")
	if err != nil {
		respondError(w, http.StatusBadRequest, "kpis file is required: "+err.Error())
		return
	}
	samples := ingest.ParseKPICSV(kpiContent)

	var opts []rca.Option
	var alarmSummary *models.AlarmSummary
	var backhaulSummary *models.BackhaulSummary
	var attachSummary *models.AttachSummary

	if content, filename, err := formFile(r, "alarms"); err == nil {
		summary := analyzer.SummarizeAlarms(ingest.ParseAlarmFile(s.catalog, content, filename))
		alarmSummary = &summary
		opts = append(opts, rca.WithAlarms(alarmSummary))
	}
	if content, _, err := formFile(r, "backhaul"); err == nil {
		summary := analyzer.SummarizeBackhaul(ingest.ParseBackhaulCSV(s.catalog, content))
		backhaulSummary = &summary
		opts = append(opts, rca.WithBackhaul(backhaulSummary))
	}
	if content, _, err := formFile(r, "attach"); err == nil {
		summary := analyzer.SummarizeAttach(ingest.ParseAttachCSV(s.catalog, content))
		attachSummary = &summary
		opts = append(opts, rca.WithAttach(attachSummary))
	}

	report := s.buildReport(r.Context(), "", samples, opts, alarmSummary, backhaulSummary, attachSummary)
	respondJSON(w, http.StatusOK, report)
}

// analyzeWorkspace runs a full analysis over everything a workspace has
// accumulated. A workspace without KPI data produces a No Data report.
// POST /api/v1/workspaces/{id}/analyze
func (s *Server) analyzeWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspaces.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrWorkspaceNotFound) {
			respondError(w, http.StatusNotFound, "workspace not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var opts []rca.Option
	var alarmSummary *models.AlarmSummary
	var backhaulSummary *models.BackhaulSummary
	var attachSummary *models.AttachSummary

	if len(ws.Alarms) > 0 {
		summary := analyzer.SummarizeAlarms(ws.Alarms)
		alarmSummary = &summary
		opts = append(opts, rca.WithAlarms(alarmSummary))
	}
	if len(ws.Backhaul) > 0 {
		summary := analyzer.SummarizeBackhaul(ws.Backhaul)
		backhaulSummary = &summary
		opts = append(opts, rca.WithBackhaul(backhaulSummary))
	}
	if len(ws.Attach) > 0 {
		summary := analyzer.SummarizeAttach(ws.Attach)
		attachSummary = &summary
		opts = append(opts, rca.WithAttach(attachSummary))
	}

	report := s.buildReport(r.Context(), ws.ID, ws.KPIs, opts, alarmSummary, backhaulSummary, attachSummary)
	respondJSON(w, http.StatusOK, report)
}

// buildReport runs the RCA engine, wraps the assessment in a report,
// and archives it. Archive failures are logged but never fail the
// analysis itself.
func (s *Server) buildReport(
	ctx context.Context,
	workspaceID string,
	samples []models.KPISample,
	opts []rca.Option,
	alarms *models.AlarmSummary,
	backhaul *models.BackhaulSummary,
	attach *models.AttachSummary,
) *models.AnalysisReport {
	assessment := rca.Analyze(s.catalog, samples, opts...)

	report := &models.AnalysisReport{
		ID:           uuid.NewString(),
		WorkspaceID:  workspaceID,
		GeneratedAt:  time.Now().UTC(),
		Assessment:   assessment,
		Correlations: rca.Correlations(assessment.Anomalies, alarms, backhaul, attach),
	}

	if err := s.archive.StoreReport(ctx, report); err != nil {
		s.logger.Warn("failed to archive report", "report_id", report.ID, "error", err)
	}

	s.logger.Info("analysis complete",
		"report_id", report.ID,
		"workspace_id", workspaceID,
		"root_cause", assessment.RootCause,
		"severity", assessment.Severity,
		"anomalies", len(assessment.Anomalies))
	return report
}

// listAssessments returns archived reports, newest first. Supports
// ?workspace_id= and ?limit= (default 100).
// GET /api/v1/assessments
func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = n
	}

	reports, err := s.archive.ListReports(r.Context(), r.URL.Query().Get("workspace_id"), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if reports == nil {
		reports = []*models.AnalysisReport{}
	}
	respondJSON(w, http.StatusOK, reports)
}

// getAssessment returns one archived report by ID.
// GET /api/v1/assessments/{id}
func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	report, err := s.archive.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrReportNotFound) {
			respondError(w, http.StatusNotFound, "report not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// formFile reads one named multipart file part in full.
func formFile(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s part: %w", field, err)
	}
	return content, header.Filename, nil
}
