package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SemVersion represents a plain semantic version (major.minor.patch).
// The canonical record never carries pre-release or build metadata;
// kind-specific forms are derived elsewhere from the version and the
// build counter.
type SemVersion struct {
	Major int
	Minor int
	Patch int
}

var (
	// versionRegex matches semantic version strings with an optional "v"
	// prefix. It captures major, minor, and patch.
	versionRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)$`)

	// errInvalidVersion is returned when a version string does not conform
	// to the expected major.minor.patch format.
	errInvalidVersion = errors.New("invalid version format")
)

// String returns the string representation of the semantic version.
func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(12)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	return sb.String()
}

// maxVersionLength is the maximum allowed length for a version string.
// This prevents potential ReDoS attacks on the regex parser.
const maxVersionLength = 64

// ParseVersion parses a semantic version string ("1.2.3" or "v1.2.3")
// and returns a SemVersion. It returns errInvalidVersion (wrapped) when
// the input is too long, does not match the major.minor.patch pattern,
// or any component cannot be parsed as an integer.
func ParseVersion(s string) (SemVersion, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return SemVersion{}, fmt.Errorf("%w: version string exceeds maximum length of %d", errInvalidVersion, maxVersionLength)
	}

	matches := versionRegex.FindStringSubmatch(trimmed)
	if len(matches) < 4 {
		return SemVersion{}, errInvalidVersion
	}

	major, err := strconv.Atoi(matches[1])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid major version: %s", errInvalidVersion, err.Error())
	}
	minor, err := strconv.Atoi(matches[2])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid minor version: %s", errInvalidVersion, err.Error())
	}
	patch, err := strconv.Atoi(matches[3])
	if err != nil {
		return SemVersion{}, fmt.Errorf("%w: invalid patch version: %s", errInvalidVersion, err.Error())
	}

	return SemVersion{Major: major, Minor: minor, Patch: patch}, nil
}

// IsValid reports whether s parses as a semantic version.
func IsValid(s string) bool {
	_, err := ParseVersion(s)
	return err == nil
}

// Compare compares two semantic versions.
// It returns -1 if v < other, 0 if v == other, and +1 if v > other.
func (v SemVersion) Compare(other SemVersion) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	return compareInt(v.Patch, other.Patch)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
