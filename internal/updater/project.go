package updater

import (
	"bytes"
	"regexp"

	"github.com/indaco/vprop/internal/locator"
	"github.com/indaco/vprop/internal/store"
)

// Element regexes for the structured project descriptor. Patching is
// textual on purpose: a DOM round-trip would reformat the whole
// descriptor and break the idempotence contract.
var (
	versionElementRegex        = regexp.MustCompile(`(<Version>)([^<]*)(</Version>)`)
	packageVersionElementRegex = regexp.MustCompile(`(<PackageVersion>)([^<]*)(</PackageVersion>)`)
)

// ProjectKind patches the Version and PackageVersion elements of an
// XML project descriptor. Each element present is replaced; absent
// elements are ignored.
type ProjectKind struct{}

// Verify ProjectKind implements Kind.
var _ Kind = (*ProjectKind)(nil)

func (k *ProjectKind) ID() string          { return "project" }
func (k *ProjectKind) Description() string { return "Project descriptor (*.csproj)" }
func (k *ProjectKind) DerivedKind() string { return store.DerivedPackage }

func (k *ProjectKind) Predicates() locator.Predicates {
	return locator.Predicates{
		Globs: []string{"*.csproj", "*.fsproj", "*.vbproj"},
	}
}

func (k *ProjectKind) Detect(content []byte) bool {
	return versionElementRegex.Match(content) || packageVersionElementRegex.Match(content)
}

func (k *ProjectKind) Current(content []byte) (string, bool) {
	if m := versionElementRegex.FindSubmatch(content); len(m) > 2 {
		return string(m[2]), true
	}
	if m := packageVersionElementRegex.FindSubmatch(content); len(m) > 2 {
		return string(m[2]), true
	}
	return "", false
}

func (k *ProjectKind) Apply(content []byte, newVersion string) ([]byte, bool, error) {
	if !k.Detect(content) {
		return content, false, nil
	}

	replacement := []byte("${1}" + newVersion + "${3}")
	updated := versionElementRegex.ReplaceAll(content, replacement)
	updated = packageVersionElementRegex.ReplaceAll(updated, replacement)

	return updated, !bytes.Equal(content, updated), nil
}
