package config

import "time"

// RawConfig mirrors the YAML manifest before defaults are applied. The
// top-level package and flush_interval act as defaults for every target.
type RawConfig struct {
	Package       string        `yaml:"package,omitempty"`
	FlushInterval time.Duration `yaml:"flush_interval,omitempty"`
	Targets       []RawTarget   `yaml:"targets"`
}

// RawTarget is one generation target as written in the manifest.
type RawTarget struct {
	Input         string        `yaml:"input"`
	Output        string        `yaml:"output,omitempty"`
	Package       string        `yaml:"package,omitempty"`
	FlushInterval time.Duration `yaml:"flush_interval,omitempty"`
}
