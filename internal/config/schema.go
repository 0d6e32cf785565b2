package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version     int               `yaml:"version"`
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Translation TranslationConfig `yaml:"translation"`
	Labeling    LabelingConfig    `yaml:"labeling"`
	Watch       WatchConfig       `yaml:"watch,omitempty"`
	// Prefixes compact full IRIs read from N-Triples; keys are prefix names
	Prefixes map[string]string `yaml:"prefixes,omitempty"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr         string    `yaml:"addr"`
	ReadTimeout  *Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout *Duration `yaml:"write_timeout,omitempty"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// TranslationConfig holds thick-triple codec settings
type TranslationConfig struct {
	MaxDepth             int      `yaml:"max_depth"`
	PredicateStyle       string   `yaml:"predicate_style"` // curie, local, iri
	Flavor               string   `yaml:"flavor"`          // thick, ldtab
	Graph                string   `yaml:"graph"`
	AnnotationProperties []string `yaml:"annotation_properties,omitempty"`
}

// LabelingConfig holds labeling pass settings
type LabelingConfig struct {
	Predicates []string `yaml:"predicates,omitempty"`
}

// WatchConfig names an ontology file the server reloads on change
type WatchConfig struct {
	Path   string `yaml:"path,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
