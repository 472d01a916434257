// Package config holds the recipedump settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the recipedump configuration.
type Config struct {
	// Palette is the gzip NBT block palette. Empty or unreadable means
	// items are exported without block states.
	Palette string `yaml:"palette"`
	// LegacyIDs is the identifier to numeric ID JSON table. Required.
	LegacyIDs string `yaml:"legacy_ids"`
	// OutputDir receives one recipes_<version>.json per exported packet.
	OutputDir string `yaml:"output_dir"`
	// Indent for the JSON output; empty writes compact JSON.
	Indent string `yaml:"indent"`
	// ProtocolVersion overrides the version recorded in packet dumps when
	// non-zero.
	ProtocolVersion int32 `yaml:"protocol_version"`
	// Parallelism bounds how many packets are exported at once.
	Parallelism int `yaml:"parallelism"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Palette:     "data/block_palette.nbt",
		LegacyIDs:   "data/legacy_item_ids.json",
		OutputDir:   "out",
		Indent:      "    ",
		Parallelism: runtime.GOMAXPROCS(0),
	}
}

// Load reads path over the defaults and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides file settings with RECIPEDUMP_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("RECIPEDUMP_PALETTE"); v != "" {
		c.Palette = v
	}
	if v := os.Getenv("RECIPEDUMP_LEGACY_IDS"); v != "" {
		c.LegacyIDs = v
	}
	if v := os.Getenv("RECIPEDUMP_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
}

// Save writes c to path as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.LegacyIDs == "" {
		errs = append(errs, errors.New("legacy_ids is required"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is required"))
	}
	if c.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism))
	}
	if c.ProtocolVersion < 0 {
		errs = append(errs, fmt.Errorf("protocol_version must not be negative, got %d", c.ProtocolVersion))
	}
	return errors.Join(errs...)
}
