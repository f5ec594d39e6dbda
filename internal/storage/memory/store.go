// Package memory provides the in-memory workspace store.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/milewire/RAN-copilot/pkg/models"
)

// Store holds workspaces in memory. Uploads append under the write
// lock; read paths hand out isolated copies so analysis never races a
// concurrent upload.
type Store struct {
	mu         sync.RWMutex
	workspaces map[string]*models.Workspace
}

// New creates an empty workspace store.
func New() *Store {
	return &Store{workspaces: make(map[string]*models.Workspace)}
}

// Create adds a new workspace and returns its metadata view.
func (s *Store) Create(name string) models.WorkspaceInfo {
	ws := &models.Workspace{
		ID:      uuid.NewString(),
		Name:    name,
		Created: time.Now().UTC(),
	}

	s.mu.Lock()
	s.workspaces[ws.ID] = ws
	s.mu.Unlock()

	return ws.Info()
}

// Get returns a copy of the workspace with the given ID.
func (s *Store) Get(id string) (*models.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return nil, models.ErrWorkspaceNotFound
	}
	return copyWorkspace(ws), nil
}

// List returns metadata for all workspaces, newest first.
func (s *Store) List() []models.WorkspaceInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]models.WorkspaceInfo, 0, len(s.workspaces))
	for _, ws := range s.workspaces {
		infos = append(infos, ws.Info())
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Created.After(infos[j].Created)
	})
	return infos
}

// Delete removes a workspace.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workspaces[id]; !ok {
		return models.ErrWorkspaceNotFound
	}
	delete(s.workspaces, id)
	return nil
}

// Restore inserts a workspace wholesale, replacing any existing
// workspace with the same ID. Snapshot restores go through here.
func (s *Store) Restore(ws *models.Workspace) models.WorkspaceInfo {
	cp := copyWorkspace(ws)
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if cp.Created.IsZero() {
		cp.Created = time.Now().UTC()
	}

	s.mu.Lock()
	s.workspaces[cp.ID] = cp
	s.mu.Unlock()

	return cp.Info()
}

// AppendAlarms adds alarm records to a workspace and returns the new
// total for that signal.
func (s *Store) AppendAlarms(id string, records []models.AlarmRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return 0, models.ErrWorkspaceNotFound
	}
	ws.Alarms = append(ws.Alarms, records...)
	return len(ws.Alarms), nil
}

// AppendAttach adds attach records to a workspace and returns the new
// total for that signal.
func (s *Store) AppendAttach(id string, records []models.AttachRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return 0, models.ErrWorkspaceNotFound
	}
	ws.Attach = append(ws.Attach, records...)
	return len(ws.Attach), nil
}

// AppendBackhaul adds backhaul samples to a workspace and returns the
// new total for that signal.
func (s *Store) AppendBackhaul(id string, samples []models.BackhaulSample) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return 0, models.ErrWorkspaceNotFound
	}
	ws.Backhaul = append(ws.Backhaul, samples...)
	return len(ws.Backhaul), nil
}

// AppendKPIs adds KPI samples to a workspace and returns the new total
// for that signal.
func (s *Store) AppendKPIs(id string, samples []models.KPISample) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return 0, models.ErrWorkspaceNotFound
	}
	ws.KPIs = append(ws.KPIs, samples...)
	return len(ws.KPIs), nil
}

// copyWorkspace deep-copies a workspace. The record types are plain
// values, so copying the slices is enough.
func copyWorkspace(ws *models.Workspace) *models.Workspace {
	cp := *ws
	cp.Alarms = append([]models.AlarmRecord(nil), ws.Alarms...)
	cp.Attach = append([]models.AttachRecord(nil), ws.Attach...)
	cp.Backhaul = append([]models.BackhaulSample(nil), ws.Backhaul...)
	cp.KPIs = append([]models.KPISample(nil), ws.KPIs...)
	return &cp
}
