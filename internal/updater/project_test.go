package updater

import (
	"strings"
	"testing"
)

const csprojFixture = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
    <Version>1.2.3</Version>
    <PackageVersion>1.2.3</PackageVersion>
  </PropertyGroup>
</Project>
`

func TestProjectKind_Apply_BothElements(t *testing.T) {
	k := &ProjectKind{}

	updated, changed, err := k.Apply([]byte(csprojFixture), "2.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected changed = true")
	}

	got := string(updated)
	if !strings.Contains(got, "<Version>2.0.0</Version>") {
		t.Errorf("Version element not updated:\n%s", got)
	}
	if !strings.Contains(got, "<PackageVersion>2.0.0</PackageVersion>") {
		t.Errorf("PackageVersion element not updated:\n%s", got)
	}
	if !strings.Contains(got, "<TargetFramework>net8.0</TargetFramework>") {
		t.Errorf("unrelated element touched:\n%s", got)
	}
}

func TestProjectKind_Apply_VersionOnly(t *testing.T) {
	k := &ProjectKind{}
	content := "<Project>\n  <Version>0.1.0</Version>\n</Project>\n"

	updated, changed, err := k.Apply([]byte(content), "0.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected changed = true")
	}
	if strings.Contains(string(updated), "PackageVersion") {
		t.Errorf("absent element was introduced:\n%s", updated)
	}
}

func TestProjectKind_Apply_NoElements(t *testing.T) {
	k := &ProjectKind{}
	content := "<Project></Project>\n"

	_, changed, err := k.Apply([]byte(content), "1.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("expected changed = false")
	}
}

func TestProjectKind_Apply_Idempotent(t *testing.T) {
	k := &ProjectKind{}

	first, _, err := k.Apply([]byte(csprojFixture), "3.0.0")
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}

	_, changed, err := k.Apply(first, "3.0.0")
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if changed {
		t.Error("second apply reported changed = true")
	}
}

func TestProjectKind_Current(t *testing.T) {
	k := &ProjectKind{}

	got, ok := k.Current([]byte(csprojFixture))
	if !ok || got != "1.2.3" {
		t.Errorf("Current = %q (%v), want 1.2.3", got, ok)
	}
}
