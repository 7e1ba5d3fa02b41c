package updater

import (
	"bytes"
	"regexp"

	"github.com/indaco/vprop/internal/locator"
	"github.com/indaco/vprop/internal/store"
)

// Attribute regexes for the paired build attributes. The word boundary
// keeps AssemblyVersion from matching inside AssemblyFileVersion.
var (
	assemblyVersionRegex     = regexp.MustCompile(`\bAssemblyVersion\s*\(\s*"([^"]*)"\s*\)`)
	assemblyFileVersionRegex = regexp.MustCompile(`\bAssemblyFileVersion\s*\(\s*"([^"]*)"\s*\)`)
)

// AssemblyInfoKind patches the paired build attributes
// (AssemblyVersion / AssemblyFileVersion) in attribute source files.
// Each attribute present is replaced in place; absent attributes are
// left untouched; the file is rewritten only if at least one attribute
// was found.
type AssemblyInfoKind struct{}

// Verify AssemblyInfoKind implements Kind.
var _ Kind = (*AssemblyInfoKind)(nil)

func (k *AssemblyInfoKind) ID() string          { return "assemblyinfo" }
func (k *AssemblyInfoKind) Description() string { return "Build attributes (AssemblyInfo.cs)" }
func (k *AssemblyInfoKind) DerivedKind() string { return store.DerivedAssembly }

func (k *AssemblyInfoKind) Predicates() locator.Predicates {
	return locator.Predicates{
		Names:    []string{"AssemblyInfo.cs"},
		Suffixes: []string{"Properties/AssemblyInfo.cs"},
	}
}

func (k *AssemblyInfoKind) Detect(content []byte) bool {
	return assemblyVersionRegex.Match(content) || assemblyFileVersionRegex.Match(content)
}

func (k *AssemblyInfoKind) Current(content []byte) (string, bool) {
	if m := assemblyVersionRegex.FindSubmatch(content); len(m) > 1 {
		return string(m[1]), true
	}
	if m := assemblyFileVersionRegex.FindSubmatch(content); len(m) > 1 {
		return string(m[1]), true
	}
	return "", false
}

func (k *AssemblyInfoKind) Apply(content []byte, newVersion string) ([]byte, bool, error) {
	if !k.Detect(content) {
		return content, false, nil
	}

	updated := replaceQuotedValue(content, assemblyVersionRegex, newVersion)
	updated = replaceQuotedValue(updated, assemblyFileVersionRegex, newVersion)

	return updated, !bytes.Equal(content, updated), nil
}

// replaceQuotedValue rewrites the quoted capture of every match of re in
// content with newValue, preserving the surrounding attribute text.
func replaceQuotedValue(content []byte, re *regexp.Regexp, newValue string) []byte {
	return re.ReplaceAllFunc(content, func(match []byte) []byte {
		sub := re.FindSubmatchIndex(match)
		if len(sub) < 4 {
			return match
		}
		var out []byte
		out = append(out, match[:sub[2]]...)
		out = append(out, newValue...)
		out = append(out, match[sub[3]:]...)
		return out
	})
}
