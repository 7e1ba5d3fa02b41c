// Package validate implements the "validate" command: the read-only
// consistency pass over the manifest tree.
package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/urfave/cli/v3"

	"github.com/indaco/vprop/internal/config"
	"github.com/indaco/vprop/internal/printer"
	"github.com/indaco/vprop/internal/store"
	"github.com/indaco/vprop/internal/tui"
	"github.com/indaco/vprop/internal/validator"
)

// Run returns the "validate" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Verify every manifest agrees with the canonical record",
		UsageText: "vprop validate [--flags]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit the report as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runValidate(ctx, cmd, cfg)
		},
	}
}

func runValidate(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	st := store.NewStore(nil, cfg.RecordPath)
	record, err := st.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) || errors.Is(err, store.ErrRecordCorrupt) {
			return cli.Exit(printer.Error(err.Error()), 1)
		}
		return cli.Exit(printer.Error(fmt.Sprintf("validate failed: %v", err)), 1)
	}

	v := validator.New(nil, nil)
	v.Warn = func(path string, err error) {
		printer.PrintWarning(fmt.Sprintf("warning: %s: %v", path, err))
	}

	var report *validator.Report
	scan := func() {
		report, err = v.Validate(ctx, cfg.Root, record, cfg.ExcludeDirs)
	}

	if tui.IsInteractive() && !cmd.Bool("json") {
		_ = spinner.New().Title("Scanning manifests...").Action(scan).Run()
	} else {
		scan()
	}
	if err != nil {
		return cli.Exit(printer.Error(fmt.Sprintf("validate failed: %v", err)), 1)
	}

	if cmd.Bool("json") {
		printJSON(report)
	} else {
		printText(report)
	}

	if !report.OK() {
		return cli.Exit("", 1)
	}
	return nil
}

func printText(report *validator.Report) {
	for _, c := range report.Checks {
		if c.OK {
			printer.PrintFaint(fmt.Sprintf("  ✓ %s", c.Describe()))
		} else {
			printer.PrintError(fmt.Sprintf("  ✗ %s", c.Describe()))
		}
	}

	summary := fmt.Sprintf("checked %d file(s), %d mismatch(es), %.0f%% consistent",
		report.Checked, report.MismatchCount, report.SuccessRatio()*100)
	if report.OK() {
		printer.PrintSuccess(summary)
	} else {
		printer.PrintError(summary)
	}
}

func printJSON(report *validator.Report) {
	type jsonCheck struct {
		Path     string `json:"path"`
		Kind     string `json:"kind"`
		Expected string `json:"expected"`
		Actual   string `json:"actual"`
		OK       bool   `json:"ok"`
	}

	output := struct {
		Checks        []jsonCheck `json:"checks"`
		Checked       int         `json:"checked"`
		MismatchCount int         `json:"mismatch_count"`
		SuccessRatio  float64     `json:"success_ratio"`
		OK            bool        `json:"ok"`
	}{
		Checks:        make([]jsonCheck, len(report.Checks)),
		Checked:       report.Checked,
		MismatchCount: report.MismatchCount,
		SuccessRatio:  report.SuccessRatio(),
		OK:            report.OK(),
	}

	for i, c := range report.Checks {
		output.Checks[i] = jsonCheck{
			Path:     c.Path,
			Kind:     c.Kind,
			Expected: c.Expected,
			Actual:   c.Actual,
			OK:       c.OK,
		}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
		return
	}

	fmt.Println(string(data))
}
