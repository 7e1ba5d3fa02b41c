package strategy

import "testing"

func TestDetector_Detect(t *testing.T) {
	d := NewDetector(nil, nil, nil)

	tests := []struct {
		name string
		bc   BuildContext
		want Strategy
	}{
		{
			name: "release event",
			bc:   BuildContext{Trigger: TriggerRelease},
			want: Major,
		},
		{
			name: "version tag ref",
			bc:   BuildContext{Trigger: TriggerPush, Ref: "refs/tags/v1.2.3"},
			want: Major,
		},
		{
			name: "bare version tag",
			bc:   BuildContext{Trigger: TriggerUnknown, Ref: "v2.0.0"},
			want: Major,
		},
		{
			name: "push to main",
			bc:   BuildContext{Trigger: TriggerPush, Ref: "refs/heads/main", Branch: "main"},
			want: Minor,
		},
		{
			name: "push to master",
			bc:   BuildContext{Trigger: TriggerPush, Branch: "master"},
			want: Minor,
		},
		{
			name: "push to feature branch",
			bc:   BuildContext{Trigger: TriggerPush, Branch: "feature/login"},
			want: Patch,
		},
		{
			name: "manual release on release branch",
			bc:   BuildContext{Trigger: TriggerManual, Branch: "release", ManualIntent: "release"},
			want: Major,
		},
		{
			name: "manual release on release sub-branch",
			bc:   BuildContext{Trigger: TriggerManual, Branch: "release/2024-q3", ManualIntent: "release"},
			want: Major,
		},
		{
			name: "manual release on other branch",
			bc:   BuildContext{Trigger: TriggerManual, Branch: "main", ManualIntent: "release"},
			want: Patch,
		},
		{
			name: "manual without intent",
			bc:   BuildContext{Trigger: TriggerManual, Branch: "release"},
			want: Patch,
		},
		{
			name: "unknown trigger",
			bc:   BuildContext{Trigger: TriggerUnknown},
			want: Patch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.bc); got != tt.want {
				t.Errorf("Detect(%+v) = %s, want %s", tt.bc, got, tt.want)
			}
		})
	}
}

func TestDetector_Detect_CustomPrimaryBranches(t *testing.T) {
	d := NewDetector([]string{"trunk"}, nil, nil)

	if got := d.Detect(BuildContext{Trigger: TriggerPush, Branch: "trunk"}); got != Minor {
		t.Errorf("push to custom primary = %s, want minor", got)
	}
	if got := d.Detect(BuildContext{Trigger: TriggerPush, Branch: "main"}); got != Patch {
		t.Errorf("push to non-primary = %s, want patch", got)
	}
}

func TestDetector_ShouldSkip(t *testing.T) {
	d := NewDetector(nil, nil, nil)

	tests := []struct {
		name    string
		changed []string
		want    bool
	}{
		{
			name:    "docs only",
			changed: []string{"README.md", "docs/guide.md"},
			want:    true,
		},
		{
			name:    "mixed docs and source",
			changed: []string{"README.md", "src/app.ext"},
			want:    false,
		},
		{
			name:    "source only",
			changed: []string{"internal/store/store.go"},
			want:    false,
		},
		{
			name:    "license and changelog",
			changed: []string{"LICENSE", "CHANGELOG.md"},
			want:    true,
		},
		{
			name:    "nested readme",
			changed: []string{"examples/README"},
			want:    true,
		},
		{
			name:    "unknown change set proceeds",
			changed: nil,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.ShouldSkip(tt.changed); got != tt.want {
				t.Errorf("ShouldSkip(%v) = %v, want %v", tt.changed, got, tt.want)
			}
		})
	}
}

func TestDetector_ShouldSkip_ExtraPatterns(t *testing.T) {
	d := NewDetector(nil, nil, []string{`^assets/`})

	if !d.ShouldSkip([]string{"assets/logo.svg", "README.md"}) {
		t.Error("extra pattern not honored")
	}
	if d.ShouldSkip([]string{"assets/logo.svg", "main.go"}) {
		t.Error("non-doc path slipped through")
	}
}

func TestParse(t *testing.T) {
	for _, valid := range []string{"major", "minor", "patch"} {
		if _, err := Parse(valid); err != nil {
			t.Errorf("Parse(%q) failed: %v", valid, err)
		}
	}
	if _, err := Parse("hotfix"); err == nil {
		t.Error("Parse accepted an unknown strategy")
	}
}
