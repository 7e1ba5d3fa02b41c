package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/indaco/vprop/internal/core"
)

var (
	// ErrRecordNotFound is returned when the canonical record file is
	// absent. Fatal to the run.
	ErrRecordNotFound = errors.New("version record not found")

	// ErrRecordCorrupt is returned when the record file exists but cannot
	// be parsed. Fatal to the run.
	ErrRecordCorrupt = errors.New("version record corrupt")
)

// Store loads and persists the canonical VersionRecord.
type Store struct {
	fsys core.FileSystem
	path string
}

// NewStore creates a Store for the record at path.
// A nil filesystem defaults to the OS implementation.
func NewStore(fsys core.FileSystem, path string) *Store {
	if fsys == nil {
		fsys = core.NewOSFileSystem()
	}
	return &Store{fsys: fsys, path: path}
}

// Path returns the record file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted record. It returns ErrRecordNotFound (wrapped)
// if the file is absent and ErrRecordCorrupt (wrapped) if it cannot be
// parsed.
func (s *Store) Load(ctx context.Context) (*VersionRecord, error) {
	data, err := s.fsys.ReadFile(ctx, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read record %q: %w", s.path, err)
	}

	var record VersionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRecordCorrupt, s.path, err)
	}

	if _, err := record.Semver(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRecordCorrupt, s.path, err)
	}

	// Derived versions are never authoritative on disk.
	record.recomputeDerived()

	return &record, nil
}

// Save persists the record with stable formatting and a trailing newline,
// creating the parent directory when needed.
func (s *Store) Save(ctx context.Context, record *VersionRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record for %q: %w", s.path, err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fsys.MkdirAll(ctx, dir, core.PermDirDefault); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	if err := s.fsys.WriteFile(ctx, s.path, data, core.PermFileDefault); err != nil {
		return fmt.Errorf("failed to write record to %q: %w", s.path, err)
	}

	return nil
}
