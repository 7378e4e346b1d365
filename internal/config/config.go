// Package config loads the optional portwho configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/pranshuparmar/portwho/internal/logging"
	"github.com/pranshuparmar/portwho/internal/probe"
	"github.com/pranshuparmar/portwho/pkg/model"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "PORTWHO_CONFIG"

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	// Color is auto, always or never
	Color string `yaml:"color" json:"color"`

	// Runtimes is the container probe order; a runtime left out is not probed
	Runtimes []string `yaml:"runtimes" json:"runtimes"`

	// Disable names process probes to skip (procfs, lsof, netstat)
	Disable []string `yaml:"disable" json:"disable"`

	Log logging.Config `yaml:"log" json:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	runtimes := make([]string, len(model.Runtimes))
	for i, rt := range model.Runtimes {
		runtimes[i] = string(rt)
	}
	return Config{
		Color:    model.ColorAuto,
		Runtimes: runtimes,
		Log:      logging.DefaultConfig(),
	}
}

// Validate checks every field against the known values.
func (c Config) Validate() error {
	switch c.Color {
	case model.ColorAuto, model.ColorAlways, model.ColorNever:
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}

	seen := make(map[string]bool)
	for _, rt := range c.Runtimes {
		if _, err := model.ParseRuntime(rt); err != nil {
			return err
		}
		if seen[rt] {
			return fmt.Errorf("runtime %q listed twice", rt)
		}
		seen[rt] = true
	}

	for _, name := range c.Disable {
		if !slices.Contains(probe.ProcessOrder, name) {
			return fmt.Errorf("unknown probe %q in disable list", name)
		}
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// RuntimeOrder returns the configured runtimes as typed values.
func (c Config) RuntimeOrder() []model.Runtime {
	out := make([]model.Runtime, 0, len(c.Runtimes))
	for _, s := range c.Runtimes {
		if rt, err := model.ParseRuntime(s); err == nil {
			out = append(out, rt)
		}
	}
	return out
}

// Disabled reports whether the named process probe is switched off.
func (c Config) Disabled(name string) bool {
	return slices.Contains(c.Disable, name)
}

// NoProcessProbes reports whether every process probe is disabled.
func (c Config) NoProcessProbes() bool {
	for _, name := range probe.ProcessOrder {
		if !c.Disabled(name) {
			return false
		}
	}
	return true
}

// Load reads and validates the file at path on top of Default. Environment
// variables in the file are expanded.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve picks the config file to use and loads it. An explicit path (flag
// or $PORTWHO_CONFIG) must exist; the default location may be absent.
func Resolve(flagPath string, getenv func(string) string) (Config, error) {
	if flagPath != "" {
		return Load(flagPath)
	}
	if p := getenv(EnvPath); p != "" {
		return Load(p)
	}

	p := DefaultPath(getenv)
	if p == "" {
		return Default(), nil
	}
	cfg, err := Load(p)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// DefaultPath is $XDG_CONFIG_HOME/portwho/config.yaml, or the same under
// ~/.config. It returns "" when neither base is known.
func DefaultPath(getenv func(string) string) string {
	base := getenv("XDG_CONFIG_HOME")
	if base == "" {
		home := getenv("HOME")
		if home == "" {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "portwho", "config.yaml")
}
