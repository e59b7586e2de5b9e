package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the optional defaults loaded from a YAML file. Flags given on
// the command line win over the file.
type Config struct {
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	Format         string `yaml:"format"`
}

func loadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func applyConfig(cmd *cobra.Command, cfg *Config) {
	if cfg.TimeoutSeconds > 0 && !cmd.Flags().Changed("timeout") {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.Format != "" && !cmd.Flags().Changed("format") {
		queryFormat = cfg.Format
	}
}
