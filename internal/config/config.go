// Package config provides configuration management for wiring.
//
// Config file locations (priority order):
//  1. $WIRING_CONFIG
//  2. ./wiring.yaml
//  3. $XDG_CONFIG_HOME/wiring/config.yaml
//  4. ~/.config/wiring/config.yaml
//  5. /etc/wiring/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"wiring/internal/domain"
	"wiring/internal/ofn"
	"wiring/internal/service"
	"wiring/internal/thick"
)

// Defaults
const (
	DefaultAddr         = ":3000"
	DefaultDatabasePath = "./wiring.db"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Translation.MaxDepth <= 0 {
		c.Translation.MaxDepth = ofn.DefaultMaxDepth
	}
	if c.Translation.PredicateStyle == "" {
		c.Translation.PredicateStyle = thick.StyleCURIE.String()
	}
	if c.Translation.Flavor == "" {
		c.Translation.Flavor = thick.FlavorThick.String()
	}
	if c.Translation.Graph == "" {
		c.Translation.Graph = service.DefaultGraph
	}
	if c.Watch.Path != "" && c.Watch.Format == "" {
		c.Watch.Format = "json"
	}
	if len(c.Labeling.Predicates) == 0 {
		c.Labeling.Predicates = []string{domain.RDFSLabel}
	}
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	if _, ok := thick.ParseStyle(c.Translation.PredicateStyle); !ok {
		return fmt.Errorf("unknown predicate_style %q", c.Translation.PredicateStyle)
	}
	if _, ok := thick.ParseFlavor(c.Translation.Flavor); !ok {
		return fmt.Errorf("unknown flavor %q", c.Translation.Flavor)
	}
	return nil
}

// Options converts the translation settings to engine options
func (c *Config) Options() ([]service.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	style, _ := thick.ParseStyle(c.Translation.PredicateStyle)
	flavor, _ := thick.ParseFlavor(c.Translation.Flavor)

	thickOpts := []thick.Option{
		thick.WithStyle(style),
		thick.WithFlavor(flavor),
	}
	if len(c.Translation.AnnotationProperties) > 0 {
		thickOpts = append(thickOpts, thick.WithAnnotationProperties(c.Translation.AnnotationProperties...))
	}

	return []service.Option{
		service.WithThickOptions(thickOpts...),
		service.WithMaxDepth(c.Translation.MaxDepth),
		service.WithLabelPredicates(c.Labeling.Predicates...),
		service.WithPrefixes(domain.Prefixes(c.Prefixes)),
		service.WithGraph(c.Translation.Graph),
	}, nil
}

// ReadTimeout returns the configured server read timeout
func (c *Config) ReadTimeout() time.Duration {
	if c.Server.ReadTimeout == nil {
		return DefaultReadTimeout
	}
	return c.Server.ReadTimeout.Duration()
}

// WriteTimeout returns the configured server write timeout
func (c *Config) WriteTimeout() time.Duration {
	if c.Server.WriteTimeout == nil {
		return DefaultWriteTimeout
	}
	return c.Server.WriteTimeout.Duration()
}
