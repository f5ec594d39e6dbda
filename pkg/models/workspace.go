package models

import (
	"errors"
	"time"
)

// ErrWorkspaceNotFound is returned when a workspace ID is unknown.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// Workspace accumulates uploaded records between analysis calls. The RCA
// core never sees workspaces; handlers read the records out and hand them
// to the pure analysis functions.
type Workspace struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Created time.Time `json:"created_at"`

	Alarms   []AlarmRecord    `json:"alarms,omitempty"`
	Attach   []AttachRecord   `json:"attach,omitempty"`
	Backhaul []BackhaulSample `json:"backhaul,omitempty"`
	KPIs     []KPISample      `json:"kpis,omitempty"`
}

// SignalCounts reports how many records of each signal a workspace holds.
type SignalCounts struct {
	Alarms   int `json:"alarms"`
	Attach   int `json:"attach"`
	Backhaul int `json:"backhaul"`
	KPIs     int `json:"kpis"`
}

// WorkspaceInfo is the metadata view returned by list endpoints.
type WorkspaceInfo struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Created time.Time    `json:"created_at"`
	Counts  SignalCounts `json:"counts"`
}

// Info builds the metadata view of the workspace.
func (w *Workspace) Info() WorkspaceInfo {
	return WorkspaceInfo{
		ID:      w.ID,
		Name:    w.Name,
		Created: w.Created,
		Counts: SignalCounts{
			Alarms:   len(w.Alarms),
			Attach:   len(w.Attach),
			Backhaul: len(w.Backhaul),
			KPIs:     len(w.KPIs),
		},
	}
}
