package generator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/neox5/promstatic/internal/dsl"
	"github.com/neox5/promstatic/internal/emit"
	"github.com/neox5/promstatic/internal/plan"
)

// Options configure one generated output file.
type Options struct {
	Package       string
	FlushInterval time.Duration
}

// Generator drives the Parse -> Validate -> Plan -> Emit pipeline. One
// Generator carries one plan.Context, so every metric generated through it
// gets a unique scope number; a multi-target run therefore never produces
// colliding type names even across output files in the same package.
type Generator struct {
	ctx *plan.Context
}

// New creates a generator with a fresh generation-order counter.
func New() *Generator {
	return &Generator{ctx: plan.NewContext()}
}

// Generate compiles DSL source into formatted Go source. The pipeline is
// strictly sequential and all-or-nothing: any stage failure aborts with no
// partial output.
func (g *Generator) Generate(src []byte, opts Options) ([]byte, error) {
	file, err := dsl.Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing DSL: %w", err)
	}

	enums, err := dsl.Validate(file)
	if err != nil {
		return nil, fmt.Errorf("validating DSL: %w", err)
	}

	out, err := emit.Emit(file, enums, g.ctx, emit.Options{
		Package:       opts.Package,
		FlushInterval: opts.FlushInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("emitting source: %w", err)
	}
	return out, nil
}

// GenerateFile reads a DSL file and writes the generated source to outPath.
// The output is written to a temp file and renamed into place so a failed
// generation never leaves a truncated artifact behind.
func (g *Generator) GenerateFile(inPath, outPath string, opts Options) error {
	src, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}

	out, err := g.Generate(src, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), filepath.Base(outPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp output: %w", err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	slog.Debug("generated", "input", inPath, "output", outPath, "bytes", len(out))
	return nil
}
