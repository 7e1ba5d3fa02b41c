package cli

import (
	"context"
	"fmt"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/indaco/vprop/internal/commands/apply"
	"github.com/indaco/vprop/internal/commands/detect"
	"github.com/indaco/vprop/internal/commands/initialize"
	"github.com/indaco/vprop/internal/commands/show"
	"github.com/indaco/vprop/internal/commands/validate"
	"github.com/indaco/vprop/internal/config"
	"github.com/indaco/vprop/internal/printer"
	"github.com/indaco/vprop/internal/version"
)

var noColorFlag bool

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the vprop cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "vprop",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Propagate one canonical version across project manifests",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "path",
				Aliases:     []string{"p"},
				Usage:       "Path to the version record",
				Value:       cfg.RecordPath,
				DefaultText: config.DefaultRecordFile,
				Destination: &cfg.RecordPath,
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(cfg),
			show.Run(cfg),
			apply.Run(cfg),
			detect.Run(cfg),
			validate.Run(cfg),
		},
	}
}
