// Package validator is the read-only consistency pass: it re-scans the
// manifest tree and compares every detectable version marker against the
// canonical record's expected values. It performs no writes.
package validator

import (
	"context"
	"fmt"
	"sort"

	"github.com/indaco/vprop/internal/core"
	"github.com/indaco/vprop/internal/store"
	"github.com/indaco/vprop/internal/updater"
)

// Check is the result for a single manifest file.
type Check struct {
	// Path is the file path.
	Path string

	// Kind is the manifest-kind identifier.
	Kind string

	// Expected is the derived version the file should carry.
	Expected string

	// Actual is the version found in the file ("" when no marker was
	// detectable).
	Actual string

	// OK reports whether the file agrees with the record.
	OK bool
}

// Describe renders a human-readable mismatch description.
func (c Check) Describe() string {
	if c.OK {
		return fmt.Sprintf("%s: ok (%s)", c.Path, c.Actual)
	}
	return fmt.Sprintf("%s: expected %s, found %s", c.Path, c.Expected, c.Actual)
}

// Report aggregates a validation run.
type Report struct {
	// Checks holds one entry per file with a detectable marker, sorted
	// by path.
	Checks []Check

	// Checked is the number of files compared.
	Checked int

	// MismatchCount is the number of failing files.
	MismatchCount int
}

// Mismatches returns the failing checks.
func (r *Report) Mismatches() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}

// SuccessRatio returns the fraction of checked files that passed,
// 1.0 when nothing was checked.
func (r *Report) SuccessRatio() float64 {
	if r.Checked == 0 {
		return 1.0
	}
	return float64(r.Checked-r.MismatchCount) / float64(r.Checked)
}

// OK reports overall success: zero mismatches across all checked files.
func (r *Report) OK() bool {
	return r.MismatchCount == 0
}

// Validator re-derives expected values from the record and compares them
// against the tree. It shares no mutable state with the write path.
type Validator struct {
	fsys   core.FileSystem
	engine *updater.Engine

	// Warn receives non-fatal per-file problems. Nil drops them.
	Warn func(path string, err error)
}

// New creates a Validator. A nil filesystem defaults to the OS
// implementation; nil kinds default to the engine's.
func New(fsys core.FileSystem, kinds []updater.Kind) *Validator {
	if fsys == nil {
		fsys = core.NewOSFileSystem()
	}
	return &Validator{
		fsys:   fsys,
		engine: updater.NewEngine(fsys, kinds),
	}
}

// Validate re-runs discovery over the same manifest kinds and compares
// every detectable marker to the record's expected derived value.
func (v *Validator) Validate(ctx context.Context, root string, record *store.VersionRecord, excludedDirs []string) (*Report, error) {
	v.engine.Warn = v.Warn

	byKind, err := v.engine.Locate(ctx, root, excludedDirs)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, kind := range v.engine.Kinds() {
		expected := record.Derived(kind.DerivedKind())
		for _, path := range byKind[kind.ID()] {
			content, err := v.fsys.ReadFile(ctx, path)
			if err != nil {
				if v.Warn != nil {
					v.Warn(path, err)
				}
				continue
			}

			actual, ok := kind.Current(content)
			if !ok {
				// No detectable marker; nothing to compare.
				continue
			}

			report.Checks = append(report.Checks, Check{
				Path:     path,
				Kind:     kind.ID(),
				Expected: expected,
				Actual:   actual,
				OK:       actual == expected,
			})
		}
	}

	sort.Slice(report.Checks, func(i, j int) bool {
		return report.Checks[i].Path < report.Checks[j].Path
	})

	report.Checked = len(report.Checks)
	for _, c := range report.Checks {
		if !c.OK {
			report.MismatchCount++
		}
	}

	return report, nil
}
