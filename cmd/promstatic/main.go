package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/neox5/promstatic/internal/config"
	"github.com/neox5/promstatic/internal/generator"
	"github.com/neox5/promstatic/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "promstatic",
		Usage:   "Generate typed static metric accessors from a metrics DSL",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML manifest describing multiple targets",
			},
			&cli.StringFlag{
				Name:    "in",
				Aliases: []string{"i"},
				Usage:   "path to a single DSL input file",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output path for the generated Go file",
			},
			&cli.StringFlag{
				Name:  "pkg",
				Usage: "package name of the generated file",
			},
			&cli.DurationFlag{
				Name:  "flush-interval",
				Value: config.DefaultFlushInterval,
				Usage: "auto-flush threshold emitted into Local* metrics",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// Configure logging level
	logLevel := slog.LevelInfo
	if cmd.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	targets, err := resolveTargets(cmd)
	if err != nil {
		return err
	}

	gen := generator.New()
	for _, target := range targets {
		if err := gen.GenerateFile(target.Input, target.Output, generator.Options{
			Package:       target.Package,
			FlushInterval: target.FlushInterval,
		}); err != nil {
			return err
		}
		slog.Info("generated", "input", target.Input, "output", target.Output, "package", target.Package)
	}
	return nil
}

// resolveTargets builds the target list from either the manifest or the
// single-file flags; the two forms are mutually exclusive.
func resolveTargets(cmd *cli.Command) ([]config.Target, error) {
	manifestPath := cmd.String("config")
	inPath := cmd.String("in")

	switch {
	case manifestPath != "" && inPath != "":
		return nil, fmt.Errorf("--config and --in are mutually exclusive")
	case manifestPath != "":
		cfg, err := config.Load(manifestPath)
		if err != nil {
			return nil, err
		}
		return cfg.Targets, nil
	case inPath != "":
		pkg := cmd.String("pkg")
		if pkg == "" {
			return nil, fmt.Errorf("--pkg is required with --in")
		}
		raw := &config.RawConfig{
			FlushInterval: toleratedInterval(cmd.Duration("flush-interval")),
			Targets: []config.RawTarget{{
				Input:   inPath,
				Output:  cmd.String("out"),
				Package: pkg,
			}},
		}
		if err := config.Validate(raw); err != nil {
			return nil, err
		}
		return config.Resolve(raw).Targets, nil
	}
	return nil, fmt.Errorf("either --config or --in is required")
}

func toleratedInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return config.DefaultFlushInterval
	}
	return d
}
