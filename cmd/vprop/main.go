package main

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/vprop/internal/cli"
	"github.com/indaco/vprop/internal/config"
)

func main() {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vprop: %v\n", err)
		os.Exit(1)
	}

	cmd := cli.New(cfg)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "vprop: %v\n", err)
		os.Exit(1)
	}
}
