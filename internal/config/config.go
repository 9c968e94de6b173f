// Package config loads the lint configuration: embedded defaults, then an
// optional override file, then command-line overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultFile is the override file looked up in the working directory.
const DefaultFile = ".swautomaterc"

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is returned for configuration that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Options controls where configuration is read from.
type Options struct {
	// Path is an explicit override file. It must exist when set.
	Path string
	// Dir is searched for DefaultFile when Path is empty. No file is read
	// when both are empty.
	Dir string
	// Sets are key=value overrides with dotted keys, applied last.
	Sets []string
}

// Defaults returns the embedded default configuration document.
func Defaults() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Default returns the configuration with no overrides applied.
func Default() *Config {
	cfg, err := Load(Options{})
	if err != nil {
		panic(fmt.Sprintf("embedded default configuration: %v", err))
	}
	return cfg
}

// Load merges the configuration sources. Maps merge key by key; scalars and
// lists in a later source replace earlier ones.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path, err := overridePath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		// JSON documents are valid YAML, so one parser reads both.
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
		}
	}

	sets, err := parseSets(opts.Sets)
	if err != nil {
		return nil, err
	}
	if len(sets) > 0 {
		if err := k.Load(confmap.Provider(sets, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cfg.k = k

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &cfg, nil
}

func overridePath(opts Options) (string, error) {
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return opts.Path, nil
	}
	if opts.Dir == "" {
		return "", nil
	}
	path := filepath.Join(opts.Dir, DefaultFile)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", nil
	}
	return path, nil
}

func parseSets(sets []string) (map[string]any, error) {
	out := make(map[string]any, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: override %q is not key=value", ErrInvalid, s)
		}
		if b, err := strconv.ParseBool(value); err == nil {
			out[key] = b
			continue
		}
		out[key] = value
	}
	return out, nil
}

// Field returns the merged value at a dotted path, or "" when the path is
// not set.
func (c *Config) Field(path string) any {
	if c == nil || c.k == nil || !c.k.Exists(path) {
		return ""
	}
	return c.k.Get(path)
}

// Raw returns the merged configuration as a nested map.
func (c *Config) Raw() map[string]any {
	if c == nil || c.k == nil {
		return map[string]any{}
	}
	return c.k.Raw()
}
