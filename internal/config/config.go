package config

import "time"

// DefaultFlushInterval is used for targets that configure no explicit
// auto-flush threshold.
const DefaultFlushInterval = 1 * time.Second

// Config is the resolved generation manifest: every target has its
// defaults applied and is ready to hand to the generator.
type Config struct {
	Targets []Target
}

// Target is one DSL input compiled into one Go output file.
type Target struct {
	Input         string
	Output        string
	Package       string
	FlushInterval time.Duration
}
