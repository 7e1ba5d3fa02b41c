// Package show implements the "show" command: print the canonical record.
package show

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/indaco/vprop/internal/config"
	"github.com/indaco/vprop/internal/printer"
	"github.com/indaco/vprop/internal/store"
)

// Run returns the "show" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the canonical version record",
		UsageText: "vprop show [--flags]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit the record as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShow(ctx, cmd, cfg)
		},
	}
}

func runShow(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	st := store.NewStore(nil, cfg.RecordPath)
	record, err := st.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) || errors.Is(err, store.ErrRecordCorrupt) {
			return cli.Exit(printer.Error(err.Error()), 1)
		}
		return cli.Exit(printer.Error(fmt.Sprintf("show failed: %v", err)), 1)
	}

	if cmd.Bool("json") {
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return cli.Exit(printer.Error(fmt.Sprintf("show failed: %v", err)), 1)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Version:      %s\n", printer.Bold(record.Version))
	fmt.Printf("Build number: %d\n", record.BuildNumber)
	if !record.LastUpdated.IsZero() {
		fmt.Printf("Last updated: %s\n", record.LastUpdated.Format("2006-01-02 15:04:05 MST"))
	}

	kinds := make([]string, 0, len(record.DerivedVersions))
	for k := range record.DerivedVersions {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  %s: %s\n", k, printer.Faint(record.DerivedVersions[k]))
	}

	if len(record.History) > 0 {
		printer.PrintInfo("History:")
		for i := len(record.History) - 1; i >= 0; i-- {
			h := record.History[i]
			fmt.Printf("  %s (build %d, %s, %s)\n",
				h.Version, h.BuildNumber, h.Strategy, h.Timestamp.Format("2006-01-02"))
		}
	}

	return nil
}
