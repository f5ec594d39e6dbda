// Package snapshots provides file-based storage for saving and
// restoring workspace snapshots.
package snapshots

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/milewire/RAN-copilot/pkg/models"
)

// Default configuration values
const (
	DefaultSnapshotDir     = "./data/snapshots"
	DefaultMaxSnapshotSize = 100 * 1024 * 1024 // 100MB
	DefaultMaxSnapshots    = 50
	SnapshotFileExtension  = ".json.gz"
	CurrentVersion         = 1
)

// Config contains snapshot storage configuration.
type Config struct {
	// Dir is the directory where snapshots are stored.
	Dir string

	// MaxSnapshotSize is the maximum uncompressed size of a single
	// snapshot in bytes.
	MaxSnapshotSize int64

	// MaxSnapshots is the maximum number of snapshots to keep.
	MaxSnapshots int
}

// DefaultConfig returns the default snapshot storage configuration.
func DefaultConfig() Config {
	return Config{
		Dir:             getEnv("SNAPSHOT_DIR", DefaultSnapshotDir),
		MaxSnapshotSize: getEnvInt64("SNAPSHOT_MAX_BYTES", DefaultMaxSnapshotSize),
		MaxSnapshots:    getEnvInt("SNAPSHOT_MAX_COUNT", DefaultMaxSnapshots),
	}
}

// Store is a file-based snapshot store.
type Store struct {
	config Config
	mu     sync.RWMutex
}

// New creates a snapshot store with default configuration.
func New() (*Store, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a snapshot store with the given configuration.
func NewWithConfig(config Config) (*Store, error) {
	if err := os.MkdirAll(config.Dir, 0755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &Store{config: config}, nil
}

// Save writes a snapshot to disk. Saving an existing name overwrites it.
func (s *Store) Save(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return errors.New("snapshot cannot be nil")
	}
	if err := models.ValidateSnapshotName(snapshot.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.listMetadataLocked()
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	overwrite := false
	for _, meta := range existing {
		if meta.Name == snapshot.Name {
			overwrite = true
			break
		}
	}
	if !overwrite && len(existing) >= s.config.MaxSnapshots {
		return models.ErrTooManySnapshots
	}

	snapshot.Version = CurrentVersion
	if snapshot.Created.IsZero() {
		snapshot.Created = time.Now().UTC()
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if int64(len(data)) > s.config.MaxSnapshotSize {
		return models.ErrSnapshotTooLarge
	}

	if err := s.writeGzip(s.snapshotPath(snapshot.Name), data); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	return nil
}

// Load reads a snapshot from disk.
func (s *Store) Load(ctx context.Context, name string) (*models.Snapshot, error) {
	if err := models.ValidateSnapshotName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.snapshotPath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, models.ErrSnapshotNotFound
	}

	data, err := s.readGzip(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return &snapshot, nil
}

// Delete removes a snapshot from disk.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := models.ValidateSnapshotName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.snapshotPath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return models.ErrSnapshotNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing snapshot file: %w", err)
	}
	return nil
}

// List returns metadata for all saved snapshots, newest first.
func (s *Store) List(ctx context.Context) ([]*models.SnapshotMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listMetadataLocked()
}

// Exists checks if a snapshot with the given name is on disk.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := models.ValidateSnapshotName(name); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.snapshotPath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) snapshotPath(name string) string {
	return filepath.Join(s.config.Dir, name+SnapshotFileExtension)
}

// listMetadataLocked lists all snapshot metadata (must hold lock).
func (s *Store) listMetadataLocked() ([]*models.SnapshotMetadata, error) {
	entries, err := os.ReadDir(s.config.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot directory: %w", err)
	}

	var metas []*models.SnapshotMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SnapshotFileExtension) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		data, err := s.readGzip(filepath.Join(s.config.Dir, entry.Name()))
		if err != nil {
			continue // skip corrupted files
		}
		var snapshot models.Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			continue // skip corrupted files
		}

		metas = append(metas, metadataFor(&snapshot, info.Size()))
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].Created.After(metas[j].Created)
	})
	return metas, nil
}

func metadataFor(snapshot *models.Snapshot, sizeBytes int64) *models.SnapshotMetadata {
	meta := &models.SnapshotMetadata{
		Name:        snapshot.Name,
		Description: snapshot.Description,
		Created:     snapshot.Created,
		SizeBytes:   sizeBytes,
	}
	if snapshot.Workspace != nil {
		meta.Counts = snapshot.Workspace.Info().Counts
	}
	return meta
}

// writeGzip writes data to a gzip-compressed file.
func (s *Store) writeGzip(path string, data []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gw := gzip.NewWriter(file)
	defer gw.Close()

	if _, err := gw.Write(data); err != nil {
		return err
	}
	return gw.Close()
}

// readGzip reads data from a gzip-compressed file.
func (s *Store) readGzip(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	gr, err := gzip.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		var i int64
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}
