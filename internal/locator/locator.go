// Package locator enumerates files in a directory tree that match
// name, suffix, or pattern predicates, pruning excluded directories.
package locator

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/indaco/vprop/internal/core"
)

// Predicates selects files during traversal. A file is included when it
// matches any of the configured predicates.
type Predicates struct {
	// Names are exact base-name matches (e.g., "package.json").
	Names []string

	// Suffixes are path-suffix matches (e.g., "AssemblyInfo.cs").
	Suffixes []string

	// Globs are filepath.Match patterns applied to the base name
	// (e.g., "*.csproj").
	Globs []string
}

// Matches reports whether the given path satisfies any predicate.
func (p Predicates) Matches(path string) bool {
	base := filepath.Base(path)

	if slices.Contains(p.Names, base) {
		return true
	}

	for _, suffix := range p.Suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}

	for _, glob := range p.Globs {
		if matched, _ := filepath.Match(glob, base); matched {
			return true
		}
	}

	return false
}

// defaultExcludedDirs are directory base names pruned entirely during
// traversal: build output, dependency caches, and version control.
var defaultExcludedDirs = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"bower_components",
	"vendor",
	"packages",
	"bin",
	"obj",
	"dist",
	"build",
	"out",
	"target",
	"__pycache__",
}

// DefaultExcludedDirs returns a copy of the default excluded directory set.
func DefaultExcludedDirs() []string {
	return slices.Clone(defaultExcludedDirs)
}

// Locator walks a directory tree through the filesystem seam.
type Locator struct {
	fsys core.FileSystem

	// Warn receives non-fatal traversal problems (unreadable directories).
	// Nil means warnings are dropped.
	Warn func(path string, err error)
}

// New creates a Locator. A nil filesystem defaults to the OS
// implementation.
func New(fsys core.FileSystem) *Locator {
	if fsys == nil {
		fsys = core.NewOSFileSystem()
	}
	return &Locator{fsys: fsys}
}

// Find returns all files under root matching the predicates, in directory
// traversal order (not sorted). Directories whose base name is in
// excludedNames are pruned entirely; the default excluded set applies in
// addition to the caller's. Unreadable directories are reported through
// Warn and skipped; the walk continues.
func (l *Locator) Find(ctx context.Context, root string, preds Predicates, excludedNames []string) ([]string, error) {
	excluded := make(map[string]bool, len(defaultExcludedDirs)+len(excludedNames))
	for _, name := range defaultExcludedDirs {
		excluded[name] = true
	}
	for _, name := range excludedNames {
		excluded[name] = true
	}

	var found []string
	err := l.walk(ctx, root, preds, excluded, &found)
	return found, err
}

func (l *Locator) walk(ctx context.Context, dir string, preds Predicates, excluded map[string]bool, found *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := l.fsys.ReadDir(ctx, dir)
	if err != nil {
		// Unreadable directories are non-fatal.
		if l.Warn != nil {
			l.Warn(dir, err)
		}
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if excluded[name] {
				continue
			}
			if err := l.walk(ctx, path, preds, excluded, found); err != nil {
				return err
			}
			continue
		}

		if preds.Matches(path) {
			*found = append(*found, path)
		}
	}

	return nil
}
