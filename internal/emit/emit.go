package emit

import (
	"fmt"
	"time"

	"github.com/neox5/promstatic/internal/dsl"
	"github.com/neox5/promstatic/internal/plan"
)

// DefaultFlushInterval is the auto-flush gating threshold emitted when the
// caller does not configure one.
const DefaultFlushInterval = 1 * time.Second

// Options control one emitted source file.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// FlushInterval gates implicit flushing in generated Local* metrics;
	// zero means DefaultFlushInterval.
	FlushInterval time.Duration
}

// Emit plans and materializes Go source for a validated DSL file. Items are
// emitted in declaration order; any planning failure aborts the whole file
// so no partial artifact can leak out.
func Emit(f *dsl.File, enums map[string]*dsl.EnumDef, ctx *plan.Context, opts Options) ([]byte, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("output package name is required")
	}
	interval := opts.FlushInterval
	if interval == 0 {
		interval = DefaultFlushInterval
	}

	body := &buf{}
	var needProm, needLocal, needTime bool
	for _, item := range f.Items {
		if item.Enum != nil {
			emitEnum(body, item.Enum)
			continue
		}

		p, err := plan.Build(ctx, item.Metric, enums)
		if err != nil {
			return nil, err
		}
		needProm = true
		if p.Kind.Local {
			needLocal = true
			needTime = true
			emitAutoFlush(body, p, interval)
		} else {
			emitStatic(body, p)
		}
	}

	out := &buf{}
	out.p("// Code generated by promstatic. DO NOT EDIT.\n\n")
	out.pf("package %s\n\n", opts.Package)
	if needProm || needTime {
		out.p("import (\n")
		if needTime {
			out.p("\t\"time\"\n\n")
		}
		if needLocal {
			out.p("\t\"github.com/neox5/promstatic/localmetric\"\n")
		}
		if needProm {
			out.p("\t\"github.com/prometheus/client_golang/prometheus\"\n")
		}
		out.p(")\n\n")
	}
	out.Write(body.Bytes())

	return gofmt(out.Bytes())
}
