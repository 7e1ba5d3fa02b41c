package updater

import (
	"context"

	"github.com/indaco/vprop/internal/core"
	"github.com/indaco/vprop/internal/locator"
	"github.com/indaco/vprop/internal/store"
)

// DefaultKinds returns the manifest kinds in match order. The first kind
// whose predicates claim a path owns it; later kinds never see the file,
// keeping kinds mutually exclusive by file identity.
func DefaultKinds() []Kind {
	return []Kind{
		&AssemblyInfoKind{},
		&ProjectKind{},
		&PackageJSONKind{},
		&DependencyJSONKind{},
		&ChartYAMLKind{},
		&CrateTOMLKind{},
	}
}

// Engine locates and patches manifest files for every kind.
type Engine struct {
	fsys  core.FileSystem
	loc   *locator.Locator
	kinds []Kind

	// Preview suppresses all writes while still reporting intended
	// changes.
	Preview bool

	// Warn receives non-fatal per-file problems. Nil drops them.
	Warn func(path string, err error)
}

// NewEngine creates an Engine. A nil filesystem defaults to the OS
// implementation; nil kinds default to DefaultKinds.
func NewEngine(fsys core.FileSystem, kinds []Kind) *Engine {
	if fsys == nil {
		fsys = core.NewOSFileSystem()
	}
	if kinds == nil {
		kinds = DefaultKinds()
	}
	loc := locator.New(fsys)
	return &Engine{fsys: fsys, loc: loc, kinds: kinds}
}

// Kinds returns the engine's manifest kinds in match order.
func (e *Engine) Kinds() []Kind {
	return e.kinds
}

// Locate returns, per kind, the files its predicates claim under root.
// A file claimed by an earlier kind is invisible to later ones.
func (e *Engine) Locate(ctx context.Context, root string, excludedDirs []string) (map[string][]string, error) {
	e.loc.Warn = e.Warn

	claimed := make(map[string]bool)
	byKind := make(map[string][]string, len(e.kinds))

	for _, kind := range e.kinds {
		paths, err := e.loc.Find(ctx, root, kind.Predicates(), excludedDirs)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if claimed[p] {
				continue
			}
			claimed[p] = true
			byKind[kind.ID()] = append(byKind[kind.ID()], p)
		}
	}

	return byKind, nil
}

// Apply patches every located file with the record's derived version for
// its kind and returns one FileRecord per file. An error on one file
// never aborts processing of the remaining files.
func (e *Engine) Apply(ctx context.Context, root string, record *store.VersionRecord, excludedDirs []string) ([]FileRecord, error) {
	byKind, err := e.Locate(ctx, root, excludedDirs)
	if err != nil {
		return nil, err
	}

	var records []FileRecord
	for _, kind := range e.kinds {
		newVersion := record.Derived(kind.DerivedKind())
		for _, path := range byKind[kind.ID()] {
			records = append(records, e.applyOne(ctx, kind, path, newVersion))
		}
	}

	return records, nil
}

// applyOne patches a single file and classifies the outcome.
func (e *Engine) applyOne(ctx context.Context, kind Kind, path, newVersion string) FileRecord {
	rec := FileRecord{Path: path, Kind: kind.ID(), NewValue: newVersion}

	content, err := e.fsys.ReadFile(ctx, path)
	if err != nil {
		rec.Outcome = OutcomeError
		rec.Err = err
		e.warn(path, err)
		return rec
	}

	if prior, ok := kind.Current(content); ok {
		rec.PriorValue = prior
	}

	if !kind.Detect(content) {
		rec.Outcome = OutcomeSkipped
		rec.NewValue = ""
		return rec
	}

	updated, changed, err := kind.Apply(content, newVersion)
	if err != nil {
		rec.Outcome = OutcomeError
		rec.Err = err
		e.warn(path, err)
		return rec
	}

	if !changed {
		rec.Outcome = OutcomeUnchanged
		return rec
	}

	if !e.Preview {
		if err := e.fsys.WriteFile(ctx, path, updated, core.PermFileDefault); err != nil {
			rec.Outcome = OutcomeError
			rec.Err = err
			e.warn(path, err)
			return rec
		}
	}

	rec.Outcome = OutcomeApplied
	return rec
}

func (e *Engine) warn(path string, err error) {
	if e.Warn != nil {
		e.Warn(path, err)
	}
}

// CountByOutcome tallies records per outcome.
func CountByOutcome(records []FileRecord) map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, r := range records {
		counts[r.Outcome]++
	}
	return counts
}
