package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/indaco/vprop/internal/core"
)

func TestStore_Load_NotFound(t *testing.T) {
	fs := core.NewMockFileSystem()
	st := NewStore(fs, "/project/version.json")

	_, err := st.Load(context.Background())
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("error = %v, want ErrRecordNotFound", err)
	}
}

func TestStore_Load_Corrupt(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/project/version.json", []byte("{not json"))
	st := NewStore(fs, "/project/version.json")

	_, err := st.Load(context.Background())
	if !errors.Is(err, ErrRecordCorrupt) {
		t.Fatalf("error = %v, want ErrRecordCorrupt", err)
	}
}

func TestStore_Load_InvalidVersion(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/project/version.json", []byte(`{"version": "nope"}`))
	st := NewStore(fs, "/project/version.json")

	_, err := st.Load(context.Background())
	if !errors.Is(err, ErrRecordCorrupt) {
		t.Fatalf("error = %v, want ErrRecordCorrupt", err)
	}
}

func TestStore_Load_RecomputesDerived(t *testing.T) {
	fs := core.NewMockFileSystem()
	// Derived versions on disk are stale on purpose; they must never win.
	fs.SetFile("/project/version.json", []byte(`{
		"version": "1.2.3",
		"buildNumber": 7,
		"derivedVersions": {"assembly": "9.9.9.9"}
	}`))
	st := NewStore(fs, "/project/version.json")

	record, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := record.Derived(DerivedAssembly); got != "1.2.3.7" {
		t.Errorf("Derived(assembly) = %q, want %q", got, "1.2.3.7")
	}
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	fs := core.NewMockFileSystem()
	st := NewStore(fs, "/project/version.json")
	ctx := context.Background()

	record := NewVersionRecord(mustParse(t, "3.1.4"))
	record.BuildNumber = 15
	record.recomputeDerived()

	if err := st.Save(ctx, record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, ok := fs.GetFile("/project/version.json")
	if !ok {
		t.Fatal("record file not written")
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("persisted record missing trailing newline")
	}

	loaded, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Version != "3.1.4" || loaded.BuildNumber != 15 {
		t.Errorf("round trip = %s build %d, want 3.1.4 build 15", loaded.Version, loaded.BuildNumber)
	}
}
