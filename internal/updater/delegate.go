package updater

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Delegate is a third-party updater: a vendored library that ships its
// own version-rewrite procedure. The engine invokes it as a blocking call
// with the old and new version, only when the two differ. Invocation
// failures are logged and never abort the run.
type Delegate interface {
	// Name identifies the delegate for reporting.
	Name() string

	// Update rewrites the delegate's own files from oldVersion to
	// newVersion.
	Update(ctx context.Context, oldVersion, newVersion string) error
}

// ExecDelegate runs an external command as a Delegate.
type ExecDelegate struct {
	name        string
	dir         string
	command     string
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewExecDelegate creates an ExecDelegate that runs command in dir with
// the old and new version appended as arguments.
func NewExecDelegate(name, dir, command string) *ExecDelegate {
	return &ExecDelegate{
		name:        name,
		dir:         dir,
		command:     command,
		execCommand: exec.CommandContext,
	}
}

// Verify ExecDelegate implements Delegate.
var _ Delegate = (*ExecDelegate)(nil)

func (d *ExecDelegate) Name() string {
	return d.name
}

func (d *ExecDelegate) Update(ctx context.Context, oldVersion, newVersion string) error {
	parts := strings.Fields(d.command)
	if len(parts) == 0 {
		return fmt.Errorf("delegate %q has no command", d.name)
	}

	args := append(parts[1:], oldVersion, newVersion)
	cmd := d.execCommand(ctx, parts[0], args...)
	cmd.Dir = d.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return fmt.Errorf("delegate %q failed: %w", d.name, err)
	}

	return nil
}

// RunDelegates invokes each delegate when the versions differ. Every
// failure is reported through warn and isolated to that delegate.
func RunDelegates(ctx context.Context, delegates []Delegate, oldVersion, newVersion string, warn func(name string, err error)) {
	if oldVersion == newVersion {
		return
	}

	for _, d := range delegates {
		if err := d.Update(ctx, oldVersion, newVersion); err != nil {
			if warn != nil {
				warn(d.Name(), err)
			}
		}
	}
}
