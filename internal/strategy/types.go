// Package strategy selects the version-increment strategy from
// build-trigger context and decides whether a run is a documentation-only
// no-op.
package strategy

import "fmt"

// Strategy selects which component of the semantic version advances.
type Strategy string

const (
	Major Strategy = "major"
	Minor Strategy = "minor"
	Patch Strategy = "patch"
)

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	return string(s)
}

// IsValid reports whether the strategy is one of major, minor, patch.
func (s Strategy) IsValid() bool {
	switch s {
	case Major, Minor, Patch:
		return true
	default:
		return false
	}
}

// Parse converts a string to a Strategy.
// Returns an error if s is not one of: major, minor, patch.
func Parse(s string) (Strategy, error) {
	st := Strategy(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid strategy %q (expected major, minor, or patch)", s)
	}
	return st, nil
}

// TriggerKind classifies the build trigger.
type TriggerKind string

const (
	// TriggerRelease is a release/tag publication event.
	TriggerRelease TriggerKind = "release"

	// TriggerPush is a branch push event.
	TriggerPush TriggerKind = "push"

	// TriggerManual is an explicitly dispatched run.
	TriggerManual TriggerKind = "manual"

	// TriggerUnknown is any unrecognized trigger.
	TriggerUnknown TriggerKind = "unknown"
)

// BuildContext is the explicit build-trigger context, constructed once at
// the boundary from whichever CI signals are present and then passed as a
// plain value into the detector.
type BuildContext struct {
	// Trigger is the classified trigger kind.
	Trigger TriggerKind

	// Ref is the full ref string (e.g., "refs/tags/v1.2.3").
	Ref string

	// Branch is the short branch name, when known.
	Branch string

	// ManualIntent is the operator-supplied intent for manual triggers
	// (e.g., "release").
	ManualIntent string
}
