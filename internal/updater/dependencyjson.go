package updater

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/indaco/vprop/internal/locator"
	"github.com/indaco/vprop/internal/store"
)

// DependencyJSONKind adds a version field to a dependency manifest only
// when one is absent. This kind never overwrites an existing version:
// the manifest is not the authoritative record for its ecosystem.
type DependencyJSONKind struct{}

// Verify DependencyJSONKind implements Kind.
var _ Kind = (*DependencyJSONKind)(nil)

func (k *DependencyJSONKind) ID() string          { return "dependency" }
func (k *DependencyJSONKind) Description() string { return "Dependency manifest (bower.json)" }
func (k *DependencyJSONKind) DerivedKind() string { return store.DerivedPackage }

func (k *DependencyJSONKind) Predicates() locator.Predicates {
	return locator.Predicates{
		Names: []string{"bower.json"},
	}
}

func (k *DependencyJSONKind) Detect(content []byte) bool {
	// The kind acts on any valid JSON document; whether it changes
	// anything depends on the version field being absent.
	return gjson.ValidBytes(content)
}

func (k *DependencyJSONKind) Current(content []byte) (string, bool) {
	result := gjson.GetBytes(content, "version")
	if !result.Exists() {
		return "", false
	}
	return result.String(), true
}

func (k *DependencyJSONKind) Apply(content []byte, newVersion string) ([]byte, bool, error) {
	if !gjson.ValidBytes(content) {
		return content, false, fmt.Errorf("invalid JSON document")
	}

	if gjson.GetBytes(content, "version").Exists() {
		return content, false, nil
	}

	updated, err := sjson.SetBytes(content, "version", newVersion)
	if err != nil {
		return content, false, fmt.Errorf("failed to add version: %w", err)
	}

	return ensureTrailingNewline(updated), true, nil
}
