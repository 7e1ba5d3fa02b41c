package core

import (
	"context"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
// Directories are inferred from the paths of the files set on it.
type MockFileSystem struct {
	files map[string][]byte
	// unreadable holds directory paths whose ReadDir fails, to simulate
	// permission errors during traversal.
	unreadable map[string]bool
	// writeErrs holds paths whose WriteFile fails.
	writeErrs map[string]error
	// readErrs holds paths whose ReadFile fails.
	readErrs map[string]error
	// Writes records every successful WriteFile in order.
	Writes []string
}

// NewMockFileSystem creates an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string][]byte),
		unreadable: make(map[string]bool),
		writeErrs:  make(map[string]error),
		readErrs:   make(map[string]error),
	}
}

// Verify MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)

// SetFile stores file content, creating implicit parent directories.
func (m *MockFileSystem) SetFile(p string, data []byte) {
	m.files[path.Clean(p)] = data
}

// SetUnreadableDir makes ReadDir fail for the given directory.
func (m *MockFileSystem) SetUnreadableDir(p string) {
	m.unreadable[path.Clean(p)] = true
}

// SetWriteError makes WriteFile fail for the given path.
func (m *MockFileSystem) SetWriteError(p string, err error) {
	m.writeErrs[path.Clean(p)] = err
}

// SetReadError makes ReadFile fail for the given path.
func (m *MockFileSystem) SetReadError(p string, err error) {
	m.readErrs[path.Clean(p)] = err
}

// GetFile returns the stored content for a path.
func (m *MockFileSystem) GetFile(p string) ([]byte, bool) {
	data, ok := m.files[path.Clean(p)]
	return data, ok
}

func (m *MockFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean(p)
	if err, ok := m.readErrs[clean]; ok {
		return nil, err
	}
	data, ok := m.files[clean]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, p string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := path.Clean(p)
	if err, ok := m.writeErrs[clean]; ok {
		return err
	}
	m.files[clean] = data
	m.Writes = append(m.Writes, clean)
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, p string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean(p)
	if data, ok := m.files[clean]; ok {
		return mockFileInfo{name: path.Base(clean), size: int64(len(data))}, nil
	}
	if m.isDir(clean) {
		return mockFileInfo{name: path.Base(clean), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

func (m *MockFileSystem) ReadDir(ctx context.Context, p string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean(p)
	if m.unreadable[clean] {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrPermission}
	}
	if !m.isDir(clean) {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}

	seen := make(map[string]bool)
	var entries []fs.DirEntry
	prefix := clean + "/"
	if clean == "/" {
		prefix = "/"
	}
	for f := range m.files {
		if !strings.HasPrefix(f, prefix) {
			continue
		}
		rest := strings.TrimPrefix(f, prefix)
		name, _, nested := strings.Cut(rest, "/")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, mockDirEntry{name: name, dir: nested})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MockFileSystem) MkdirAll(ctx context.Context, p string, perm os.FileMode) error {
	return ctx.Err()
}

// isDir reports whether any stored file lives under the given path.
func (m *MockFileSystem) isDir(clean string) bool {
	if clean == "/" || clean == "." {
		return true
	}
	prefix := clean + "/"
	for f := range m.files {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) Mode() fs.FileMode  { return 0o644 }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return i.dir }
func (i mockFileInfo) Sys() any           { return nil }

type mockDirEntry struct {
	name string
	dir  bool
}

func (e mockDirEntry) Name() string               { return e.name }
func (e mockDirEntry) IsDir() bool                { return e.dir }
func (e mockDirEntry) Type() fs.FileMode          { return 0 }
func (e mockDirEntry) Info() (fs.FileInfo, error) { return mockFileInfo{name: e.name, dir: e.dir}, nil }
