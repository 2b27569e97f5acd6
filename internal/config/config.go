package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds the persistent defaults a user would otherwise pass as flags
// every run. Flags always win over the file.
type Config struct {
	OutputDir string `yaml:"output_dir,omitempty"`
	Format    string `yaml:"format,omitempty"`
	Workers   int    `yaml:"workers,omitempty"`
	ProxyURL  string `yaml:"proxy,omitempty"`
	UserAgent string `yaml:"user_agent,omitempty"`
}

func Default() Config {
	return Config{
		Format:  "decent",
		Workers: 1,
	}
}

// DefaultPath returns the config file location in the user config dir.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error resolving config dir: %v", err)
	}
	return filepath.Join(configDir, "vidgrab", "config.yaml"), nil
}

// Load reads the config file at path, filling unset fields with defaults. A
// missing file is not an error, it just means all defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error reading config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("error parsing config file: %v", err)
	}
	if cfg.Format == "" {
		cfg.Format = Default().Format
	}
	if cfg.Workers < 1 {
		cfg.Workers = Default().Workers
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory on first use.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config dir: %v", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}
	return os.WriteFile(path, data, 0644)
}
