// Package operations wires the propagation pipeline: strategy detection,
// record update, manifest patching, delegate invocation, persistence.
package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/indaco/vprop/internal/store"
	"github.com/indaco/vprop/internal/strategy"
	"github.com/indaco/vprop/internal/updater"
)

// PropagateOptions configures a propagation run.
type PropagateOptions struct {
	// Strategy is the increment strategy to apply.
	Strategy strategy.Strategy

	// Root is the directory tree scanned for manifests.
	Root string

	// ExcludedDirs extends the default pruned directory set.
	ExcludedDirs []string

	// Preview suppresses every write while still reporting intended
	// changes.
	Preview bool

	// Delegates are third-party updaters invoked after patching, only
	// when the version actually changed.
	Delegates []updater.Delegate

	// Changes supplies the changed-file set for the skip decision.
	// Nil disables the skip check entirely.
	Changes strategy.ChangeLister

	// Detector computes the skip decision. Required when Changes is set.
	Detector *strategy.Detector

	// Warn receives non-fatal per-item problems. Nil drops them.
	Warn func(item string, err error)
}

// PropagateResult reports a propagation run.
type PropagateResult struct {
	// Skipped is true for documentation-only no-op runs: no increment,
	// no patches, no persistence.
	Skipped bool

	// Strategy is the applied strategy.
	Strategy strategy.Strategy

	// OldVersion and NewVersion bracket the canonical update.
	OldVersion string
	NewVersion string

	// BuildNumber is the record's counter after the update.
	BuildNumber int

	// Files holds one record per located manifest file.
	Files []updater.FileRecord

	// Record is the updated record (the one persisted, or the one that
	// would have been persisted in preview mode).
	Record *store.VersionRecord
}

// AppliedCount returns how many files were actually patched.
func (r *PropagateResult) AppliedCount() int {
	return updater.CountByOutcome(r.Files)[updater.OutcomeApplied]
}

// ErrorCount returns how many files failed.
func (r *PropagateResult) ErrorCount() int {
	return updater.CountByOutcome(r.Files)[updater.OutcomeError]
}

// Propagate runs the pipeline against the given store and engine. The
// record flows through as an explicit value: loaded once, mutated in
// memory, persisted once at the end (or not at all in preview mode).
func Propagate(ctx context.Context, st *store.Store, engine *updater.Engine, opts PropagateOptions) (*PropagateResult, error) {
	result := &PropagateResult{Strategy: opts.Strategy}

	// Skip decision: documentation-only change sets make the whole run
	// a no-op before anything is loaded or touched.
	if opts.Changes != nil && opts.Detector != nil {
		if changed, ok := opts.Changes.ChangedFiles(); ok && opts.Detector.ShouldSkip(changed) {
			result.Skipped = true
			return result, nil
		}
	}

	record, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	result.OldVersion = record.Version

	newVersion, buildNumber, err := record.ApplyUpdate(opts.Strategy, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s update: %w", opts.Strategy, err)
	}
	result.NewVersion = newVersion.String()
	result.BuildNumber = buildNumber
	result.Record = record

	engine.Preview = opts.Preview
	engine.Warn = opts.Warn
	files, err := engine.Apply(ctx, opts.Root, record, opts.ExcludedDirs)
	if err != nil {
		return nil, err
	}
	result.Files = files

	if !opts.Preview {
		updater.RunDelegates(ctx, opts.Delegates, result.OldVersion, result.NewVersion, opts.Warn)

		if err := st.Save(ctx, record); err != nil {
			return nil, err
		}
	}

	return result, nil
}
