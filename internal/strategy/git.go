package strategy

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// ChangeLister reports the set of file paths changed since the prior
// revision. Implementations returning ok=false signal that the set could
// not be determined, in which case callers proceed with an update rather
// than skipping.
type ChangeLister interface {
	ChangedFiles() (paths []string, ok bool)
}

// OSGitChanges implements ChangeLister using actual git commands.
type OSGitChanges struct {
	execCommand func(name string, arg ...string) *exec.Cmd
}

// NewOSGitChanges creates a new OSGitChanges with the default exec.Command.
func NewOSGitChanges() *OSGitChanges {
	return &OSGitChanges{
		execCommand: exec.Command,
	}
}

// Verify OSGitChanges implements ChangeLister.
var _ ChangeLister = (*OSGitChanges)(nil)

// ChangedFiles runs "git diff --name-only HEAD~1 HEAD". Any failure
// (no git, shallow clone, first commit) yields ok=false.
func (g *OSGitChanges) ChangedFiles() ([]string, bool) {
	cmd := g.execCommand("git", "diff", "--name-only", "HEAD~1", "HEAD")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return nil, false
	}

	output := strings.TrimSpace(stdout.String())
	if output == "" {
		return nil, true
	}

	return strings.Split(output, "\n"), true
}

// StaticChanges is a ChangeLister over a fixed path set, for tests and
// for callers that already know the changed files.
type StaticChanges struct {
	Paths []string
	Known bool
}

func (s StaticChanges) ChangedFiles() ([]string, bool) {
	return s.Paths, s.Known
}

// DescribeDecision renders a short human-readable explanation of a
// strategy decision for console output.
func DescribeDecision(bc BuildContext, s Strategy) string {
	switch {
	case bc.Trigger == TriggerRelease:
		return fmt.Sprintf("release event -> %s", s)
	case versionTagRegex.MatchString(bc.Ref):
		return fmt.Sprintf("version tag %q -> %s", bc.Ref, s)
	case bc.Trigger == TriggerPush:
		return fmt.Sprintf("push to %q -> %s", bc.Branch, s)
	case bc.Trigger == TriggerManual:
		return fmt.Sprintf("manual trigger (%s) on %q -> %s", bc.ManualIntent, bc.Branch, s)
	default:
		return fmt.Sprintf("unrecognized trigger -> %s (default)", s)
	}
}
