package config

import "strings"

// Resolve applies top-level defaults to every target of a validated raw
// manifest.
func Resolve(raw *RawConfig) *Config {
	cfg := &Config{}
	for _, rt := range raw.Targets {
		target := Target{
			Input:         rt.Input,
			Output:        rt.Output,
			Package:       rt.Package,
			FlushInterval: rt.FlushInterval,
		}
		if target.Output == "" {
			target.Output = defaultOutput(rt.Input)
		}
		if target.Package == "" {
			target.Package = raw.Package
		}
		if target.FlushInterval == 0 {
			target.FlushInterval = raw.FlushInterval
		}
		if target.FlushInterval == 0 {
			target.FlushInterval = DefaultFlushInterval
		}
		cfg.Targets = append(cfg.Targets, target)
	}
	return cfg
}

// defaultOutput derives "metrics_gen.go" from "metrics.dsl".
func defaultOutput(input string) string {
	base := input
	if i := strings.LastIndex(base, "."); i > strings.LastIndex(base, "/") {
		base = base[:i]
	}
	return base + "_gen.go"
}
