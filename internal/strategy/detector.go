package strategy

import (
	"regexp"
	"slices"
	"strings"
)

// Detector maps a BuildContext to an increment strategy and computes the
// documentation-only skip decision. It is pure: every input arrives as an
// explicit value.
type Detector struct {
	primaryBranches []string
	releaseBranches []string
	docPatterns     []*regexp.Regexp
}

// versionTagRegex matches refs that resemble a version tag,
// e.g. "refs/tags/v1.2.3", "v1.2.3", or "1.2.3".
var versionTagRegex = regexp.MustCompile(`^(refs/tags/)?v?\d+\.\d+\.\d+$`)

// defaultDocPatterns is the documentation allowlist: a changed-file set
// fully covered by these patterns makes the run a no-op.
var defaultDocPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(^|/)readme(\.[^/]*)?$`),
	regexp.MustCompile(`(?i)(^|/)license(\.[^/]*)?$`),
	regexp.MustCompile(`(?i)(^|/)changelog(\.[^/]*)?$`),
	regexp.MustCompile(`(?i)\.(md|markdown|txt|rst)$`),
	regexp.MustCompile(`(?i)^docs?/`),
}

// NewDetector creates a Detector. Extra doc patterns extend the default
// allowlist; invalid patterns are ignored.
func NewDetector(primaryBranches, releaseBranches, extraDocPatterns []string) *Detector {
	patterns := slices.Clone(defaultDocPatterns)
	for _, p := range extraDocPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		patterns = append(patterns, re)
	}

	if len(primaryBranches) == 0 {
		primaryBranches = []string{"main", "master"}
	}
	if len(releaseBranches) == 0 {
		releaseBranches = []string{"release"}
	}

	return &Detector{
		primaryBranches: primaryBranches,
		releaseBranches: releaseBranches,
		docPatterns:     patterns,
	}
}

// Detect chooses the increment strategy for the given build context:
//   - release event, or a ref resembling a version tag -> major
//   - push to a primary branch -> minor
//   - manual trigger marked "release" on a release branch -> major
//   - anything else -> patch (safe default)
func (d *Detector) Detect(bc BuildContext) Strategy {
	if bc.Trigger == TriggerRelease || versionTagRegex.MatchString(bc.Ref) {
		return Major
	}

	if bc.Trigger == TriggerPush && slices.Contains(d.primaryBranches, bc.Branch) {
		return Minor
	}

	if bc.Trigger == TriggerManual && bc.ManualIntent == "release" && d.isReleaseBranch(bc.Branch) {
		return Major
	}

	return Patch
}

// ShouldSkip reports whether the run is a documentation-only no-op:
// the changed-file set is non-empty and every path matches the
// documentation allowlist. An empty set means the changes could not be
// determined, so the detector conservatively proceeds.
func (d *Detector) ShouldSkip(changed []string) bool {
	if len(changed) == 0 {
		return false
	}

	for _, path := range changed {
		if !d.isDocPath(strings.TrimSpace(path)) {
			return false
		}
	}

	return true
}

func (d *Detector) isDocPath(path string) bool {
	if path == "" {
		return false
	}
	for _, re := range d.docPatterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

func (d *Detector) isReleaseBranch(branch string) bool {
	for _, rb := range d.releaseBranches {
		if branch == rb || strings.HasPrefix(branch, rb+"/") {
			return true
		}
	}
	return false
}
