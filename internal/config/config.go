// Package config loads gapedit settings from layered sources.
//
// Layers are applied in order: built-in defaults, configuration files
// (TOML or YAML), then GAPEDIT_ environment variables. The merged result
// is held as a JSON document and read by dotted path:
//
//	c := config.New(config.WithFile("gapedit.toml"))
//	if err := c.Load(ctx); err != nil { ... }
//	width := c.Int("editor.tabWidth")
//	s, err := c.Settings()
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/gapedit/internal/config/loader"
)

// DefaultEnvPrefix is the prefix of environment overrides.
const DefaultEnvPrefix = "GAPEDIT_"

// Config provides read access to the merged configuration.
type Config struct {
	mu  sync.RWMutex
	doc []byte

	fs        loader.FileSystem
	files     []string
	envPrefix string
	environ   func() []string
	sources   []string
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile adds a configuration file. Files are applied in the order
// given; a missing file is skipped.
func WithFile(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.files = append(c.files, path)
		}
	}
}

// WithFS sets the file system configuration files are read from.
func WithFS(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables environment overrides.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// New creates a Config holding only the defaults.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.doc = mustJSON(defaults())
	c.sources = []string{"defaults"}
	return c
}

// Load reads all sources and replaces the current configuration.
func (c *Config) Load(ctx context.Context) error {
	merged := defaults()
	sources := []string{"defaults"}

	for _, path := range c.files {
		if err := ctx.Err(); err != nil {
			return err
		}
		l, err := loader.ForPath(c.fs, path)
		if err != nil {
			return err
		}
		m, err := l.Load()
		if err != nil {
			return err
		}
		if m != nil {
			merged = loader.DeepMerge(merged, m)
			sources = append(sources, path)
		}
	}

	if c.envPrefix != "" {
		env := loader.NewEnvLoader(c.envPrefix)
		if c.environ != nil {
			env.SetEnviron(c.environ)
		}
		m, err := env.Load()
		if err != nil {
			return err
		}
		if len(m) > 0 {
			merged = loader.DeepMerge(merged, m)
			sources = append(sources, "env")
		}
	}

	doc, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = doc
	c.sources = sources
	return nil
}

// Sources returns the layers that contributed to the configuration.
func (c *Config) Sources() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.sources...)
}

// Get returns the raw value at path.
func (c *Config) Get(path string) gjson.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return gjson.GetBytes(c.doc, path)
}

// String returns the setting at path as a string.
func (c *Config) String(path string) string {
	return c.Get(path).String()
}

// Int returns the setting at path as an int.
func (c *Config) Int(path string) int {
	return int(c.Get(path).Int())
}

// Bool returns the setting at path as a bool.
func (c *Config) Bool(path string) bool {
	return c.Get(path).Bool()
}

// Float returns the setting at path as a float64.
func (c *Config) Float(path string) float64 {
	return c.Get(path).Float()
}

// Duration returns the setting at path parsed as a duration. Plain
// numbers are read as seconds.
func (c *Config) Duration(path string) (time.Duration, error) {
	return duration(path, c.Get(path))
}

// Set overrides the setting at path.
func (c *Config) Set(path string, value any) error {
	if !validPath(path) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	doc, err := sjson.SetBytes(c.doc, path, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	c.doc = doc
	return nil
}

// SetString parses an override of the form path=value, as given on the
// command line, and applies it. The value is typed like an environment
// variable.
func (c *Config) SetString(override string) error {
	path, value, ok := strings.Cut(override, "=")
	if !ok {
		return fmt.Errorf("%w: %q has no '='", ErrInvalidPath, override)
	}
	return c.Set(strings.TrimSpace(path), loader.ParseValue(strings.TrimSpace(value)))
}

// JSON returns the merged configuration document.
func (c *Config) JSON() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]byte(nil), c.doc...)
}

// validPath reports whether path is a plain dotted path. gjson/sjson
// wildcard and modifier syntax is rejected.
func validPath(path string) bool {
	if path == "" || strings.ContainsAny(path, "*?#@|\\") {
		return false
	}
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func duration(path string, r gjson.Result) (time.Duration, error) {
	switch r.Type {
	case gjson.Number:
		return time.Duration(r.Float() * float64(time.Second)), nil
	case gjson.String:
		d, err := time.ParseDuration(r.Str)
		if err != nil {
			return 0, &ValidationError{Path: path, Value: r.Raw, Message: "not a duration"}
		}
		return d, nil
	default:
		return 0, &ValidationError{Path: path, Value: r.Raw, Message: "not a duration"}
	}
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
