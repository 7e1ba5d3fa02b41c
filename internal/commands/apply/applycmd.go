// Package apply implements the "apply" command: select a strategy,
// advance the canonical record, and propagate the new version to every
// manifest in the tree.
package apply

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/indaco/vprop/internal/config"
	"github.com/indaco/vprop/internal/operations"
	"github.com/indaco/vprop/internal/printer"
	"github.com/indaco/vprop/internal/store"
	"github.com/indaco/vprop/internal/strategy"
	"github.com/indaco/vprop/internal/updater"
)

// Run returns the "apply" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "Propagate the next version to all manifests",
		UsageText: "vprop apply [major|minor|patch] [--flags]",
		ArgsUsage: "[major|minor|patch]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "auto",
				Usage: "Derive the strategy and skip decision from CI context",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Report intended changes without writing anything",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Print a line per manifest file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runApply(ctx, cmd, cfg)
		},
	}
}

func runApply(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	detector := strategy.NewDetector(cfg.PrimaryBranches, cfg.ReleaseBranches, cfg.DocPatterns)

	opts := operations.PropagateOptions{
		Root:         cfg.Root,
		ExcludedDirs: cfg.ExcludeDirs,
		Preview:      cmd.Bool("dry-run"),
		Delegates:    buildDelegates(cfg),
		Warn: func(item string, err error) {
			printer.PrintWarning(fmt.Sprintf("warning: %s: %v", item, err))
		},
	}

	if cmd.Bool("auto") {
		bc := strategy.ContextFromEnv()
		opts.Strategy = detector.Detect(bc)
		opts.Changes = strategy.NewOSGitChanges()
		opts.Detector = detector
		printer.PrintFaint(strategy.DescribeDecision(bc, opts.Strategy))
	} else {
		arg := cmd.Args().First()
		if arg == "" {
			opts.Strategy = strategy.Patch
		} else {
			s, err := strategy.Parse(arg)
			if err != nil {
				return cli.Exit(printer.Error(err.Error()), 1)
			}
			opts.Strategy = s
		}
	}

	st := store.NewStore(nil, cfg.RecordPath)
	engine := updater.NewEngine(nil, nil)

	result, err := operations.Propagate(ctx, st, engine, opts)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) || errors.Is(err, store.ErrRecordCorrupt) {
			return cli.Exit(printer.Error(err.Error()), 1)
		}
		return cli.Exit(printer.Error(fmt.Sprintf("apply failed: %v", err)), 1)
	}

	printResult(result, cmd.Bool("verbose"))
	return nil
}

func printResult(result *operations.PropagateResult, verbose bool) {
	if result.Skipped {
		printer.PrintInfo("documentation-only changes detected; nothing to do")
		return
	}

	if verbose {
		for _, f := range result.Files {
			switch f.Outcome {
			case updater.OutcomeApplied:
				printer.PrintSuccess(fmt.Sprintf("  ✓ %s (%s -> %s)", f.Path, f.PriorValue, f.NewValue))
			case updater.OutcomeUnchanged:
				printer.PrintFaint(fmt.Sprintf("  = %s (%s)", f.Path, f.PriorValue))
			case updater.OutcomeSkipped:
				printer.PrintFaint(fmt.Sprintf("  - %s (no marker)", f.Path))
			case updater.OutcomeError:
				printer.PrintError(fmt.Sprintf("  ✗ %s: %v", f.Path, f.Err))
			}
		}
	}

	counts := updater.CountByOutcome(result.Files)
	summary := fmt.Sprintf("%s -> %s (build %d): %d applied, %d unchanged",
		result.OldVersion, printer.Bold(result.NewVersion), result.BuildNumber,
		counts[updater.OutcomeApplied], counts[updater.OutcomeUnchanged])
	if n := counts[updater.OutcomeError]; n > 0 {
		summary += printer.Warning(fmt.Sprintf(", %d failed", n))
	}
	if len(result.Files) == 0 {
		printer.PrintInfo("no manifest files found")
	}
	fmt.Println(summary)
}

// buildDelegates turns the configured delegated updaters into callables.
func buildDelegates(cfg *config.Config) []updater.Delegate {
	delegates := make([]updater.Delegate, 0, len(cfg.Delegates))
	for _, d := range cfg.Delegates {
		delegates = append(delegates, updater.NewExecDelegate(d.Name, d.Dir, d.Command))
	}
	return delegates
}
