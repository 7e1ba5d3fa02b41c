package updater

import (
	"strings"
	"testing"
)

const assemblyInfoFixture = `using System.Reflection;

[assembly: AssemblyTitle("Sample")]
[assembly: AssemblyVersion("1.0.0.0")]
[assembly: AssemblyFileVersion("1.0.0.0")]
`

func TestAssemblyInfoKind_Apply_BothAttributes(t *testing.T) {
	k := &AssemblyInfoKind{}

	updated, changed, err := k.Apply([]byte(assemblyInfoFixture), "2.0.0.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected changed = true")
	}

	got := string(updated)
	if !strings.Contains(got, `AssemblyVersion("2.0.0.5")`) {
		t.Errorf("AssemblyVersion not updated:\n%s", got)
	}
	if !strings.Contains(got, `AssemblyFileVersion("2.0.0.5")`) {
		t.Errorf("AssemblyFileVersion not updated:\n%s", got)
	}
	if !strings.Contains(got, `AssemblyTitle("Sample")`) {
		t.Errorf("unrelated attribute touched:\n%s", got)
	}
}

func TestAssemblyInfoKind_Apply_SingleAttribute(t *testing.T) {
	k := &AssemblyInfoKind{}
	content := `[assembly: AssemblyFileVersion("0.9.0.1")]` + "\n"

	updated, changed, err := k.Apply([]byte(content), "1.0.0.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected changed = true")
	}
	if !strings.Contains(string(updated), `AssemblyFileVersion("1.0.0.2")`) {
		t.Errorf("attribute not updated: %s", updated)
	}
	if strings.Contains(string(updated), "AssemblyVersion(\"1.0.0.2\")]") {
		t.Errorf("absent attribute was introduced: %s", updated)
	}
}

func TestAssemblyInfoKind_Apply_NoAttributes(t *testing.T) {
	k := &AssemblyInfoKind{}
	content := "using System;\n"

	updated, changed, err := k.Apply([]byte(content), "1.0.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("expected changed = false for content without attributes")
	}
	if string(updated) != content {
		t.Error("content was modified")
	}
}

func TestAssemblyInfoKind_Apply_Idempotent(t *testing.T) {
	k := &AssemblyInfoKind{}

	first, changed, err := k.Apply([]byte(assemblyInfoFixture), "2.0.0.0")
	if err != nil || !changed {
		t.Fatalf("first apply: changed=%v err=%v", changed, err)
	}

	second, changed, err := k.Apply(first, "2.0.0.0")
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if changed {
		t.Error("second apply reported changed = true")
	}
	if string(second) != string(first) {
		t.Error("second apply altered content")
	}
}

func TestAssemblyInfoKind_Current(t *testing.T) {
	k := &AssemblyInfoKind{}

	got, ok := k.Current([]byte(assemblyInfoFixture))
	if !ok {
		t.Fatal("expected a detectable value")
	}
	if got != "1.0.0.0" {
		t.Errorf("Current = %q, want 1.0.0.0", got)
	}

	if _, ok := k.Current([]byte("nothing here")); ok {
		t.Error("expected no value for unrelated content")
	}
}
