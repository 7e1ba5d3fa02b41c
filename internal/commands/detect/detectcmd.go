// Package detect implements the "detect" command: print the strategy and
// skip decision derived from the current environment, without writing.
package detect

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/indaco/vprop/internal/config"
	"github.com/indaco/vprop/internal/printer"
	"github.com/indaco/vprop/internal/strategy"
)

// Run returns the "detect" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "detect",
		Usage:     "Show the strategy derived from the current CI context",
		UsageText: "vprop detect",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDetect(cfg)
		},
	}
}

func runDetect(cfg *config.Config) error {
	detector := strategy.NewDetector(cfg.PrimaryBranches, cfg.ReleaseBranches, cfg.DocPatterns)

	bc := strategy.ContextFromEnv()
	s := detector.Detect(bc)

	fmt.Printf("Trigger: %s\n", bc.Trigger)
	if bc.Ref != "" {
		fmt.Printf("Ref:     %s\n", bc.Ref)
	}
	if bc.Branch != "" {
		fmt.Printf("Branch:  %s\n", bc.Branch)
	}
	fmt.Printf("Strategy: %s\n", printer.Bold(s.String()))

	changed, ok := strategy.NewOSGitChanges().ChangedFiles()
	switch {
	case !ok:
		printer.PrintFaint("Changed files: unknown (would proceed with update)")
	case detector.ShouldSkip(changed):
		printer.PrintInfo(fmt.Sprintf("Documentation-only change set (%s); run would be skipped",
			strings.Join(changed, ", ")))
	default:
		printer.PrintFaint(fmt.Sprintf("Changed files: %d; run would proceed", len(changed)))
	}

	return nil
}
