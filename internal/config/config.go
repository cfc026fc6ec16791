// Package config loads optional semdiff configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory when no
// explicit path is given.
const DefaultFile = ".semdiff.yaml"

// Config holds tool-level settings. All fields are optional; zero values
// mean "use the built-in default".
type Config struct {
	// Threshold is the rename-inference similarity threshold.
	Threshold *float64 `yaml:"threshold"`
	// Limit is the maximum number of explanation insights.
	Limit *int `yaml:"limit"`
	// Ignore lists gitignore-style patterns excluded from corpus walks.
	Ignore []string `yaml:"ignore"`
	// Languages maps file extensions to language tags, overriding the
	// built-in classification table.
	Languages map[string]string `yaml:"languages"`
}

// Load reads a config file. A missing file is not an error when the path is
// the default lookup; an explicitly named file must exist.
func Load(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Threshold != nil && (*cfg.Threshold < 0 || *cfg.Threshold > 1) {
		return nil, fmt.Errorf("threshold %v out of range [0,1]", *cfg.Threshold)
	}
	return &cfg, nil
}
