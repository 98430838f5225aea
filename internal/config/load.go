package config

import "fmt"

// Load reads and resolves a YAML manifest file.
func Load(path string) (*Config, error) {
	raw, err := Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return Resolve(raw), nil
}
