package updater

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/indaco/vprop/internal/locator"
	"github.com/indaco/vprop/internal/store"
)

// ChartYAMLKind overwrites the top-level version field of a Helm chart
// manifest when one is present.
type ChartYAMLKind struct{}

// Verify ChartYAMLKind implements Kind.
var _ Kind = (*ChartYAMLKind)(nil)

func (k *ChartYAMLKind) ID() string          { return "chart" }
func (k *ChartYAMLKind) Description() string { return "Helm chart (Chart.yaml)" }
func (k *ChartYAMLKind) DerivedKind() string { return store.DerivedPackage }

func (k *ChartYAMLKind) Predicates() locator.Predicates {
	return locator.Predicates{
		Names: []string{"Chart.yaml", "Chart.yml"},
	}
}

func (k *ChartYAMLKind) Detect(content []byte) bool {
	_, ok := k.Current(content)
	return ok
}

func (k *ChartYAMLKind) Current(content []byte) (string, bool) {
	var obj map[string]any
	if err := yaml.Unmarshal(content, &obj); err != nil {
		return "", false
	}
	version, ok := obj["version"].(string)
	return version, ok
}

func (k *ChartYAMLKind) Apply(content []byte, newVersion string) ([]byte, bool, error) {
	var obj map[string]any
	if err := yaml.Unmarshal(content, &obj); err != nil {
		return content, false, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if _, ok := obj["version"].(string); !ok {
		return content, false, nil
	}

	obj["version"] = newVersion

	updated, err := yaml.Marshal(obj)
	if err != nil {
		return content, false, fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return updated, !bytes.Equal(content, updated), nil
}
