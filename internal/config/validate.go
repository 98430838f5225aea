package config

import "fmt"

// Validate performs syntactic validation on a raw manifest.
func Validate(raw *RawConfig) error {
	if len(raw.Targets) == 0 {
		return fmt.Errorf("at least one target must be defined")
	}
	if raw.FlushInterval < 0 {
		return fmt.Errorf("flush_interval cannot be negative")
	}

	for i, target := range raw.Targets {
		if target.Input == "" {
			return fmt.Errorf("target at index %d: input cannot be empty", i)
		}
		if target.Package == "" && raw.Package == "" {
			return fmt.Errorf("target %q: package cannot be empty", target.Input)
		}
		if target.FlushInterval < 0 {
			return fmt.Errorf("target %q: flush_interval cannot be negative", target.Input)
		}
	}

	return nil
}
