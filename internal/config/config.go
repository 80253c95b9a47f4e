// Package config loads CLI settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	errors "gopkg.in/src-d/go-errors.v1"
	yaml "gopkg.in/yaml.v2"

	"github.com/asura-lang/asura/go/internal/regex"
	"github.com/asura-lang/asura/go/pkg/lexer"
)

var (
	// ErrReadConfig is returned when the config file cannot be read.
	ErrReadConfig = errors.NewKind("cannot read config %s: %s")
	// ErrParseConfig is returned when the config file is not valid YAML.
	ErrParseConfig = errors.NewKind("cannot parse config %s: %s")
	// ErrInvalidEnv is returned when an environment variable has the wrong type.
	ErrInvalidEnv = errors.NewKind("invalid value %q for %s: %s")
	// ErrInvalidLogLevel is returned for a log level logrus does not know.
	ErrInvalidLogLevel = errors.NewKind("invalid log level %q")
	// ErrInvalidFormat is returned for an output format other than json or text.
	ErrInvalidFormat = errors.NewKind("invalid format %q, expected json or text")
	// ErrInvalidCacheSize is returned for a cache size below one.
	ErrInvalidCacheSize = errors.NewKind("invalid cache size %d")
	// ErrUnknownEngine is returned for a regex engine that is not registered.
	ErrUnknownEngine = errors.NewKind("unknown regex engine %q, available: %v")
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel   = "ASURA_LOG_LEVEL"
	EnvDebugLexer = "ASURA_DEBUG_LEXER"
	EnvTrivia     = "ASURA_TRIVIA"
	EnvFormat     = "ASURA_FORMAT"
	EnvCacheSize  = "ASURA_CACHE_SIZE"
	EnvEngine     = "ASURA_REGEX_ENGINE"
)

// Config holds the settings of the asura command.
type Config struct {
	LogLevel string `yaml:"log_level"`
	// Debug traces every token match; it implies the debug log level.
	Debug bool `yaml:"debug"`
	// Trivia keeps whitespace and comments in the output.
	Trivia    bool   `yaml:"trivia"`
	Format    string `yaml:"format"`
	CacheSize int    `yaml:"cache_size"`
	Engine    string `yaml:"engine"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "info",
		Format:    lexer.FormatJSON,
		CacheSize: 128,
		Engine:    regex.Default(),
	}
}

// Lookup reads one environment variable.
type Lookup func(key string) (string, bool)

// Load returns the defaults overridden by the file at path (when not empty)
// and then by the process environment.
func Load(path string) (Config, error) {
	return LoadWith(path, os.LookupEnv)
}

// LoadWith is Load with an explicit environment.
func LoadWith(path string, env Lookup) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, ErrReadConfig.New(path, err)
		}
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return cfg, ErrParseConfig.New(path, err)
		}
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields with the ASURA_* variables that are set.
func (c *Config) ApplyEnv(env Lookup) error {
	if v, ok := env(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := env(EnvFormat); ok {
		c.Format = v
	}
	if v, ok := env(EnvEngine); ok {
		c.Engine = v
	}

	for _, b := range []struct {
		key string
		dst *bool
	}{
		{EnvDebugLexer, &c.Debug},
		{EnvTrivia, &c.Trivia},
	} {
		v, ok := env(b.key)
		if !ok {
			continue
		}
		parsed, err := cast.ToBoolE(v)
		if err != nil {
			return ErrInvalidEnv.New(v, b.key, err)
		}
		*b.dst = parsed
	}

	if v, ok := env(EnvCacheSize); ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return ErrInvalidEnv.New(v, EnvCacheSize, err)
		}
		c.CacheSize = n
	}
	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return ErrInvalidLogLevel.New(c.LogLevel)
	}
	if c.Format != lexer.FormatJSON && c.Format != lexer.FormatText {
		return ErrInvalidFormat.New(c.Format)
	}
	if c.CacheSize < 1 {
		return ErrInvalidCacheSize.New(c.CacheSize)
	}
	for _, e := range regex.Engines() {
		if e == c.Engine {
			return nil
		}
	}
	return ErrUnknownEngine.New(c.Engine, regex.Engines())
}

// Level returns the logrus level to run at. Debug wins over LogLevel.
func (c Config) Level() logrus.Level {
	if c.Debug {
		return logrus.DebugLevel
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func (c Config) String() string {
	return fmt.Sprintf("log_level=%s debug=%t trivia=%t format=%s cache_size=%d engine=%s",
		c.LogLevel, c.Debug, c.Trivia, c.Format, c.CacheSize, c.Engine)
}
