// Package initialize implements the "init" command: create the canonical
// record and the settings file.
package initialize

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/indaco/vprop/internal/config"
	"github.com/indaco/vprop/internal/printer"
	"github.com/indaco/vprop/internal/semver"
	"github.com/indaco/vprop/internal/store"
	"github.com/indaco/vprop/internal/tui"
)

// Run returns the "init" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create the version record and settings file",
		UsageText: "vprop init [--flags]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "version",
				Usage: "Initial version",
				Value: "0.1.0",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing record",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInit(ctx, cmd, cfg)
		},
	}
}

func runInit(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	initialVersion := cmd.String("version")
	writeConfig := true

	if _, err := os.Stat(cfg.RecordPath); err == nil && !cmd.Bool("force") {
		return cli.Exit(printer.Error(fmt.Sprintf("record %q already exists (use --force to overwrite)", cfg.RecordPath)), 1)
	}

	if tui.IsInteractive() && !cmd.IsSet("version") {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Initial version").
					Value(&initialVersion).
					Validate(func(s string) error {
						if !semver.IsValid(s) {
							return errors.New("expected major.minor.patch")
						}
						return nil
					}),
				huh.NewConfirm().
					Title(fmt.Sprintf("Also write %s?", config.DefaultConfigFile)).
					Value(&writeConfig),
			),
		)
		if err := form.Run(); err != nil {
			return cli.Exit(printer.Error(fmt.Sprintf("init aborted: %v", err)), 1)
		}
	}

	v, err := semver.ParseVersion(initialVersion)
	if err != nil {
		return cli.Exit(printer.Error(fmt.Sprintf("invalid initial version %q: %v", initialVersion, err)), 1)
	}

	st := store.NewStore(nil, cfg.RecordPath)
	if err := st.Save(ctx, store.NewVersionRecord(v)); err != nil {
		return cli.Exit(printer.Error(fmt.Sprintf("init failed: %v", err)), 1)
	}
	printer.PrintSuccess(fmt.Sprintf("created %s at version %s", cfg.RecordPath, v))

	if writeConfig {
		if _, err := os.Stat(config.DefaultConfigFile); os.IsNotExist(err) {
			if err := cfg.Save(); err != nil {
				return cli.Exit(printer.Error(fmt.Sprintf("init failed: %v", err)), 1)
			}
			printer.PrintSuccess(fmt.Sprintf("created %s", config.DefaultConfigFile))
		}
	}

	return nil
}
