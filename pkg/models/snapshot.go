package models

import (
	"errors"
	"regexp"
	"time"
)

var snapshotNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]*[a-z0-9]$|^[a-z0-9]$`)

// Snapshot errors
var (
	ErrSnapshotNotFound    = errors.New("snapshot not found")
	ErrInvalidSnapshotName = errors.New("invalid snapshot name: must be lowercase alphanumeric with hyphens")
	ErrSnapshotTooLarge    = errors.New("snapshot exceeds size limit")
	ErrTooManySnapshots    = errors.New("maximum number of snapshots reached")
)

// ValidateSnapshotName checks if a snapshot name is usable as a file
// name: lowercase alphanumeric with interior hyphens, at most 128 chars.
func ValidateSnapshotName(name string) error {
	if name == "" || len(name) > 128 {
		return ErrInvalidSnapshotName
	}
	if !snapshotNameRegex.MatchString(name) {
		return ErrInvalidSnapshotName
	}
	return nil
}

// Snapshot is a complete saved copy of a workspace.
type Snapshot struct {
	// Version is the snapshot format version for future compatibility.
	Version int `json:"version"`

	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Created     time.Time `json:"created"`

	Workspace *Workspace `json:"workspace"`
}

// SnapshotMetadata describes a saved snapshot without its payload.
type SnapshotMetadata struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Created     time.Time    `json:"created"`
	SizeBytes   int64        `json:"size_bytes"`
	Counts      SignalCounts `json:"counts"`
}
