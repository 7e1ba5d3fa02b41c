package updater

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/indaco/vprop/internal/core"
	"github.com/indaco/vprop/internal/store"
)

func fixtureTree(t *testing.T) *core.MockFileSystem {
	t.Helper()
	fs := core.NewMockFileSystem()
	fs.SetFile("/p/app/Properties/AssemblyInfo.cs",
		[]byte(`[assembly: AssemblyVersion("1.0.0.0")]`+"\n"+`[assembly: AssemblyFileVersion("1.0.0.0")]`+"\n"))
	fs.SetFile("/p/app/App.csproj",
		[]byte("<Project>\n  <Version>1.0.0</Version>\n</Project>\n"))
	fs.SetFile("/p/web/package.json", []byte(`{"name": "web", "version": "1.0.0"}`+"\n"))
	fs.SetFile("/p/web/bower.json", []byte(`{"name": "web"}`+"\n"))
	return fs
}

// recordAt builds a record pinned to an exact version and build counter.
func recordAt(version string, build int) *store.VersionRecord {
	return &store.VersionRecord{
		Version:     version,
		BuildNumber: build,
		DerivedVersions: map[string]string{
			store.DerivedAssembly:      fmt.Sprintf("%s.%d", version, build),
			store.DerivedPackage:       version,
			store.DerivedInformational: fmt.Sprintf("%s+%d", version, build),
		},
	}
}

func TestEngine_Apply_PatchesAllKinds(t *testing.T) {
	fs := fixtureTree(t)
	engine := NewEngine(fs, nil)

	records, err := engine.Apply(context.Background(), "/p", recordAt("2.0.0", 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := CountByOutcome(records)
	if counts[OutcomeApplied] != 4 {
		t.Errorf("applied = %d, want 4 (%+v)", counts[OutcomeApplied], records)
	}

	data, _ := fs.GetFile("/p/app/Properties/AssemblyInfo.cs")
	if !strings.Contains(string(data), `AssemblyVersion("2.0.0.1")`) {
		t.Errorf("assembly attribute not patched:\n%s", data)
	}
	data, _ = fs.GetFile("/p/app/App.csproj")
	if !strings.Contains(string(data), "<Version>2.0.0</Version>") {
		t.Errorf("project element not patched:\n%s", data)
	}
	data, _ = fs.GetFile("/p/web/package.json")
	if got := gjson.GetBytes(data, "version").String(); got != "2.0.0" {
		t.Errorf("package.json version = %q, want 2.0.0", got)
	}
	data, _ = fs.GetFile("/p/web/bower.json")
	if got := gjson.GetBytes(data, "version").String(); got != "2.0.0" {
		t.Errorf("bower.json version = %q, want 2.0.0 (added)", got)
	}
}

func TestEngine_Apply_SecondRunUnchanged(t *testing.T) {
	fs := fixtureTree(t)
	engine := NewEngine(fs, nil)
	record := recordAt("2.0.0", 1)
	ctx := context.Background()

	first, err := engine.Apply(ctx, "/p", record, nil)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if CountByOutcome(first)[OutcomeApplied] == 0 {
		t.Fatal("first apply changed nothing")
	}

	second, err := engine.Apply(ctx, "/p", record, nil)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	counts := CountByOutcome(second)
	if counts[OutcomeApplied] != 0 {
		t.Errorf("second apply reported %d changed files, want 0", counts[OutcomeApplied])
	}
	if counts[OutcomeUnchanged] != len(second) {
		t.Errorf("outcomes = %+v, want all unchanged", counts)
	}
}

func TestEngine_Apply_ErrorIsolatedPerFile(t *testing.T) {
	fs := fixtureTree(t)
	fs.SetWriteError("/p/web/package.json", errors.New("read-only filesystem"))

	var warned []string
	engine := NewEngine(fs, nil)
	engine.Warn = func(path string, err error) {
		warned = append(warned, path)
	}

	records, err := engine.Apply(context.Background(), "/p", recordAt("2.0.0", 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := CountByOutcome(records)
	if counts[OutcomeError] != 1 {
		t.Fatalf("errors = %d, want 1 (%+v)", counts[OutcomeError], records)
	}
	if counts[OutcomeApplied] != 3 {
		t.Errorf("applied = %d, want 3 despite one failure", counts[OutcomeApplied])
	}
	if len(warned) != 1 || warned[0] != "/p/web/package.json" {
		t.Errorf("warned = %v", warned)
	}
}

func TestEngine_Apply_PreviewWritesNothing(t *testing.T) {
	fs := fixtureTree(t)
	engine := NewEngine(fs, nil)
	engine.Preview = true

	records, err := engine.Apply(context.Background(), "/p", recordAt("2.0.0", 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if CountByOutcome(records)[OutcomeApplied] == 0 {
		t.Error("preview should still report intended changes")
	}
	if len(fs.Writes) != 0 {
		t.Errorf("preview performed %d writes: %v", len(fs.Writes), fs.Writes)
	}
}

func TestEngine_Apply_SkippedWithoutMarker(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/p/App.csproj", []byte("<Project></Project>\n"))

	engine := NewEngine(fs, nil)
	records, err := engine.Apply(context.Background(), "/p", recordAt("1.0.0", 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 || records[0].Outcome != OutcomeSkipped {
		t.Errorf("records = %+v, want one skipped", records)
	}
}

func TestEngine_Locate_KindsClaimExclusively(t *testing.T) {
	fs := fixtureTree(t)
	engine := NewEngine(fs, nil)

	byKind, err := engine.Locate(context.Background(), "/p", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]string)
	for kind, paths := range byKind {
		for _, p := range paths {
			if prev, ok := seen[p]; ok {
				t.Errorf("path %s claimed by both %s and %s", p, prev, kind)
			}
			seen[p] = kind
		}
	}
	if len(seen) != 4 {
		t.Errorf("located %d files, want 4", len(seen))
	}
}
