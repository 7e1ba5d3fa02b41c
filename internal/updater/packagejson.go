package updater

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/indaco/vprop/internal/locator"
	"github.com/indaco/vprop/internal/store"
)

// PackageJSONKind overwrites the top-level version field of a package
// manifest. The document's own formatting is preserved (sjson patches the
// field in place) and a trailing newline is guaranteed.
type PackageJSONKind struct{}

// Verify PackageJSONKind implements Kind.
var _ Kind = (*PackageJSONKind)(nil)

func (k *PackageJSONKind) ID() string          { return "package" }
func (k *PackageJSONKind) Description() string { return "Package manifest (package.json)" }
func (k *PackageJSONKind) DerivedKind() string { return store.DerivedPackage }

func (k *PackageJSONKind) Predicates() locator.Predicates {
	return locator.Predicates{
		Names: []string{"package.json"},
	}
}

func (k *PackageJSONKind) Detect(content []byte) bool {
	return gjson.GetBytes(content, "version").Exists()
}

func (k *PackageJSONKind) Current(content []byte) (string, bool) {
	result := gjson.GetBytes(content, "version")
	if !result.Exists() {
		return "", false
	}
	return result.String(), true
}

func (k *PackageJSONKind) Apply(content []byte, newVersion string) ([]byte, bool, error) {
	if !gjson.ValidBytes(content) {
		return content, false, fmt.Errorf("invalid JSON document")
	}

	if !k.Detect(content) {
		return content, false, nil
	}

	updated, err := sjson.SetBytes(content, "version", newVersion)
	if err != nil {
		return content, false, fmt.Errorf("failed to set version: %w", err)
	}

	updated = ensureTrailingNewline(updated)

	return updated, !bytes.Equal(content, updated), nil
}

// ensureTrailingNewline appends a newline when the content lacks one.
func ensureTrailingNewline(content []byte) []byte {
	if len(content) > 0 && content[len(content)-1] != '\n' {
		return append(content, '\n')
	}
	return content
}
