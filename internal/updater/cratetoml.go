package updater

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/indaco/vprop/internal/locator"
	"github.com/indaco/vprop/internal/store"
)

// CrateTOMLKind overwrites the package.version field of a crate manifest
// when one is present.
type CrateTOMLKind struct{}

// Verify CrateTOMLKind implements Kind.
var _ Kind = (*CrateTOMLKind)(nil)

func (k *CrateTOMLKind) ID() string          { return "crate" }
func (k *CrateTOMLKind) Description() string { return "Crate manifest (Cargo.toml)" }
func (k *CrateTOMLKind) DerivedKind() string { return store.DerivedPackage }

func (k *CrateTOMLKind) Predicates() locator.Predicates {
	return locator.Predicates{
		Names: []string{"Cargo.toml"},
	}
}

func (k *CrateTOMLKind) Detect(content []byte) bool {
	_, ok := k.Current(content)
	return ok
}

func (k *CrateTOMLKind) Current(content []byte) (string, bool) {
	var obj map[string]any
	if err := toml.Unmarshal(content, &obj); err != nil {
		return "", false
	}
	pkg, ok := obj["package"].(map[string]any)
	if !ok {
		return "", false
	}
	version, ok := pkg["version"].(string)
	return version, ok
}

func (k *CrateTOMLKind) Apply(content []byte, newVersion string) ([]byte, bool, error) {
	var obj map[string]any
	if err := toml.Unmarshal(content, &obj); err != nil {
		return content, false, fmt.Errorf("failed to parse TOML: %w", err)
	}

	pkg, ok := obj["package"].(map[string]any)
	if !ok {
		return content, false, nil
	}
	if _, ok := pkg["version"].(string); !ok {
		return content, false, nil
	}

	pkg["version"] = newVersion

	updated, err := toml.Marshal(obj)
	if err != nil {
		return content, false, fmt.Errorf("failed to marshal TOML: %w", err)
	}

	return updated, !bytes.Equal(content, updated), nil
}
