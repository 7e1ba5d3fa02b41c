// Package updater applies a new version to matching markers in manifest
// files, one patcher per manifest kind.
package updater

import (
	"github.com/indaco/vprop/internal/locator"
)

// Outcome classifies the result of patching one file.
type Outcome string

const (
	// OutcomeApplied means the file contained a marker and was rewritten.
	OutcomeApplied Outcome = "applied"

	// OutcomeUnchanged means the file already carried the target value.
	OutcomeUnchanged Outcome = "unchanged"

	// OutcomeSkipped means no marker was found; the file was left alone.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeError means reading, patching, or writing this file failed.
	// Errors are isolated per file and never abort the batch.
	OutcomeError Outcome = "error"
)

// FileRecord is the transient per-file result of a patch run.
type FileRecord struct {
	// Path is the file path.
	Path string

	// Kind is the manifest-kind identifier that claimed the file.
	Kind string

	// PriorValue is the version found before patching, if detectable.
	PriorValue string

	// NewValue is the version applied, if any.
	NewValue string

	// Outcome classifies the result.
	Outcome Outcome

	// Err carries the failure for OutcomeError.
	Err error
}

// Kind is one manifest-kind variant: a predicate set for locating its
// files plus a uniform detect/apply capability pair over raw content.
// Adding a new manifest kind means adding one Kind, not editing a
// dispatch chain.
type Kind interface {
	// ID identifies the kind (also used as the FileRecord.Kind value).
	ID() string

	// Description is a human-readable kind description.
	Description() string

	// Predicates selects candidate files for this kind.
	Predicates() locator.Predicates

	// DerivedKind names the derived-version form this kind consumes
	// (see the store package's derived kind identifiers).
	DerivedKind() string

	// Detect reports whether the content carries a marker this kind
	// knows how to patch.
	Detect(content []byte) bool

	// Current extracts the version currently recorded in the content,
	// if detectable.
	Current(content []byte) (string, bool)

	// Apply patches the content to carry newVersion. It returns the new
	// content and whether anything changed. Applying the same version
	// twice is idempotent: the second call reports changed=false.
	Apply(content []byte, newVersion string) ([]byte, bool, error)
}
