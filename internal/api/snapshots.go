package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/milewire/RAN-copilot/pkg/models"
)

// saveSnapshotRequest is the body for POST /workspaces/{id}/snapshot.
type saveSnapshotRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// saveSnapshot persists a workspace to disk under a snapshot name.
// Saving an existing name overwrites it.
// POST /api/v1/workspaces/{id}/snapshot
func (s *Server) saveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req saveSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	ws, err := s.workspaces.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrWorkspaceNotFound) {
			respondError(w, http.StatusNotFound, "workspace not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	exists, err := s.snapshots.Exists(r.Context(), req.Name)
	if err != nil {
		respondError(w, snapshotErrStatus(err), err.Error())
		return
	}

	snapshot := &models.Snapshot{
		Name:        req.Name,
		Description: req.Description,
		Created:     time.Now().UTC(),
		Workspace:   ws,
	}
	if err := s.snapshots.Save(r.Context(), snapshot); err != nil {
		respondError(w, snapshotErrStatus(err), err.Error())
		return
	}

	status := http.StatusCreated
	if exists {
		status = http.StatusOK
	}
	s.logger.Info("snapshot saved", "name", req.Name, "workspace_id", ws.ID, "overwrite", exists)
	respondJSON(w, status, map[string]any{
		"name":       snapshot.Name,
		"created_at": snapshot.Created,
		"counts":     ws.Info().Counts,
	})
}

// listSnapshots returns metadata for all saved snapshots, newest first.
// GET /api/v1/snapshots
func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request) {
	metas, err := s.snapshots.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if metas == nil {
		metas = []*models.SnapshotMetadata{}
	}
	respondJSON(w, http.StatusOK, metas)
}

// restoreSnapshot loads a snapshot into a fresh workspace. The restored
// workspace gets a new ID so restoring twice never collides.
// POST /api/v1/snapshots/{name}/restore
func (s *Server) restoreSnapshot(w http.ResponseWriter, r *http.Request) {
	name, err := url.QueryUnescape(chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid snapshot name encoding")
		return
	}

	snapshot, err := s.snapshots.Load(r.Context(), name)
	if err != nil {
		respondError(w, snapshotErrStatus(err), err.Error())
		return
	}
	if snapshot.Workspace == nil {
		respondError(w, http.StatusInternalServerError, "snapshot has no workspace payload")
		return
	}

	ws := snapshot.Workspace
	ws.ID = ""
	ws.Created = time.Time{}
	info := s.workspaces.Restore(ws)

	s.logger.Info("snapshot restored", "name", name, "workspace_id", info.ID)
	respondJSON(w, http.StatusCreated, info)
}

// deleteSnapshot removes a snapshot from disk.
// DELETE /api/v1/snapshots/{name}
func (s *Server) deleteSnapshot(w http.ResponseWriter, r *http.Request) {
	name, err := url.QueryUnescape(chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid snapshot name encoding")
		return
	}

	if err := s.snapshots.Delete(r.Context(), name); err != nil {
		respondError(w, snapshotErrStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// snapshotErrStatus maps snapshot store errors to HTTP status codes.
func snapshotErrStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidSnapshotName):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrSnapshotTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrTooManySnapshots):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
