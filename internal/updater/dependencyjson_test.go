package updater

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestDependencyJSONKind_Apply_AddsWhenAbsent(t *testing.T) {
	k := &DependencyJSONKind{}
	content := `{"name": "sample", "dependencies": {}}`

	updated, changed, err := k.Apply([]byte(content), "1.5.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected changed = true")
	}
	if got := gjson.GetBytes(updated, "version").String(); got != "1.5.0" {
		t.Errorf("version = %q, want 1.5.0", got)
	}
}

func TestDependencyJSONKind_Apply_NeverOverwrites(t *testing.T) {
	k := &DependencyJSONKind{}
	content := `{"name": "sample", "version": "0.0.1"}`

	updated, changed, err := k.Apply([]byte(content), "9.9.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("expected changed = false for existing version")
	}
	if got := gjson.GetBytes(updated, "version").String(); got != "0.0.1" {
		t.Errorf("existing version overwritten: %q", got)
	}
}

func TestDependencyJSONKind_Apply_Idempotent(t *testing.T) {
	k := &DependencyJSONKind{}
	content := `{"name": "sample"}`

	first, changed, err := k.Apply([]byte(content), "1.0.0")
	if err != nil || !changed {
		t.Fatalf("first apply: changed=%v err=%v", changed, err)
	}

	_, changed, err = k.Apply(first, "1.0.0")
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if changed {
		t.Error("second apply reported changed = true")
	}
}

func TestDependencyJSONKind_Apply_InvalidJSON(t *testing.T) {
	k := &DependencyJSONKind{}

	_, _, err := k.Apply([]byte("not json"), "1.0.0")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
