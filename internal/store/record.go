// Package store owns the canonical version record: the single source of
// truth every manifest is kept consistent with.
package store

import (
	"fmt"
	"time"

	"github.com/indaco/vprop/internal/semver"
	"github.com/indaco/vprop/internal/strategy"
)

// Derived version kind identifiers.
const (
	// DerivedAssembly is the four-component form ("M.m.p.B") embedded in
	// build attribute files.
	DerivedAssembly = "assembly"

	// DerivedPackage is the plain three-component form used by package
	// and project manifests.
	DerivedPackage = "package"

	// DerivedInformational carries the build counter as metadata
	// ("M.m.p+B") for display surfaces.
	DerivedInformational = "informational"
)

// maxHistoryEntries bounds the record history; the oldest entry is
// evicted first.
const maxHistoryEntries = 10

// HistoryEntry records one applied update.
type HistoryEntry struct {
	Version     string    `json:"version"`
	BuildNumber int       `json:"buildNumber"`
	Timestamp   time.Time `json:"timestamp"`
	Strategy    string    `json:"strategy"`
}

// VersionRecord is the canonical, persisted entity.
type VersionRecord struct {
	// Version is the canonical semantic version ("M.m.p").
	Version string `json:"version"`

	// BuildNumber increases by exactly 1 per applied update.
	BuildNumber int `json:"buildNumber"`

	// DerivedVersions maps manifest-kind identifiers to kind-specific
	// version strings. Always recomputed from Version and BuildNumber,
	// never edited independently.
	DerivedVersions map[string]string `json:"derivedVersions"`

	// LastUpdated is the timestamp of the last applied update.
	LastUpdated time.Time `json:"lastUpdated"`

	// History holds the last applied updates, capped at 10, oldest
	// evicted first.
	History []HistoryEntry `json:"history"`
}

// NewVersionRecord creates a record at the given starting version with a
// zero build counter and freshly derived versions.
func NewVersionRecord(version semver.SemVersion) *VersionRecord {
	r := &VersionRecord{
		Version:     version.String(),
		BuildNumber: 0,
		History:     []HistoryEntry{},
	}
	r.recomputeDerived()
	return r
}

// Semver parses the record's canonical version.
func (r *VersionRecord) Semver() (semver.SemVersion, error) {
	return semver.ParseVersion(r.Version)
}

// Derived returns the derived version for a kind, falling back to the
// canonical version when the kind has no specific form.
func (r *VersionRecord) Derived(kind string) string {
	if v, ok := r.DerivedVersions[kind]; ok {
		return v
	}
	return r.Version
}

// recomputeDerived rebuilds DerivedVersions from Version and BuildNumber.
func (r *VersionRecord) recomputeDerived() {
	r.DerivedVersions = map[string]string{
		DerivedAssembly:      fmt.Sprintf("%s.%d", r.Version, r.BuildNumber),
		DerivedPackage:       r.Version,
		DerivedInformational: fmt.Sprintf("%s+%d", r.Version, r.BuildNumber),
	}
}

// Increment is the pure version-increment rule:
//   - major: (M+1).0.0
//   - minor: M.(m+1).0
//   - patch (and any unrecognized strategy): M.m.(p+1)
func Increment(v semver.SemVersion, s strategy.Strategy) semver.SemVersion {
	switch s {
	case strategy.Major:
		return semver.SemVersion{Major: v.Major + 1, Minor: 0, Patch: 0}
	case strategy.Minor:
		return semver.SemVersion{Major: v.Major, Minor: v.Minor + 1, Patch: 0}
	default:
		return semver.SemVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// ApplyUpdate computes the next version for the strategy, advances the
// build counter by exactly 1, recomputes derived versions, stamps
// LastUpdated, and appends a history entry (trimming to the newest 10).
// Returns the new version and build number.
func (r *VersionRecord) ApplyUpdate(s strategy.Strategy, now time.Time) (semver.SemVersion, int, error) {
	current, err := r.Semver()
	if err != nil {
		return semver.SemVersion{}, 0, fmt.Errorf("record holds invalid version %q: %w", r.Version, err)
	}

	next := Increment(current, s)

	r.Version = next.String()
	r.BuildNumber++
	r.recomputeDerived()
	r.LastUpdated = now

	r.History = append(r.History, HistoryEntry{
		Version:     r.Version,
		BuildNumber: r.BuildNumber,
		Timestamp:   now,
		Strategy:    s.String(),
	})
	if len(r.History) > maxHistoryEntries {
		r.History = r.History[len(r.History)-maxHistoryEntries:]
	}

	return next, r.BuildNumber, nil
}
