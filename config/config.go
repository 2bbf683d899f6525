package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/fxc/glsl"
)

// EnvVar names the environment variable holding a config file path.
const EnvVar = "FXC_CONFIG"

// FileName is the config file looked up next to the input file.
const FileName = "fxc.toml"

// Config holds the complete compiler configuration
type Config struct {
	GLSL     GLSLConfig     `toml:"glsl" yaml:"glsl"`
	Compiler CompilerConfig `toml:"compiler" yaml:"compiler"`
	Meta     MetaConfig     `toml:"meta" yaml:"meta"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
	Log      LogConfig      `toml:"log" yaml:"log"`
	Watch    WatchConfig    `toml:"watch" yaml:"watch"`
}

// GLSLConfig holds shader source generation settings
type GLSLConfig struct {
	Version string `toml:"version" yaml:"version"`
}

// CompilerConfig holds parser and stage selection settings
type CompilerConfig struct {
	StrictStages bool `toml:"strict_stages" yaml:"strict_stages"`
	MaxBodyBytes int  `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// MetaConfig holds metadata file settings
type MetaConfig struct {
	EmitCounts bool `toml:"emit_counts" yaml:"emit_counts"`
}

// OutputConfig holds artifact placement settings
type OutputConfig struct {
	Dir string `toml:"dir" yaml:"dir"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// WatchConfig holds watch mode settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for config parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q: %s", ext, path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Discover finds the configuration for compiling input. An explicit path
// wins, then the FXC_CONFIG environment variable, then fxc.toml in the
// input's directory. Without any of these the defaults are returned and
// the path is empty.
func Discover(explicit, input string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" && input != "" {
		candidate := filepath.Join(filepath.Dir(input), FileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path == "" {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.GLSL.Version == "" {
		c.GLSL.Version = glsl.Version330.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if _, err := glsl.ParseVersion(c.GLSL.Version); err != nil {
		return err
	}
	if c.Compiler.MaxBodyBytes < 0 {
		return fmt.Errorf("compiler.max_body_bytes must not be negative, got %d", c.Compiler.MaxBodyBytes)
	}
	switch c.Log.Level {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Watch.Debounce.Duration < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// LangVersion returns the configured GLSL version.
func (c *Config) LangVersion() (glsl.Version, error) {
	return glsl.ParseVersion(c.GLSL.Version)
}
