// Package config loads the transporter settings file
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

// Cache backends
const (
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
)

// Config is the root of the settings file
type Config struct {
	// LogLevel is one of debug, info, warn or error
	LogLevel string `yaml:"log_level"`
	// ASCII folds console output to plain ASCII
	ASCII bool `yaml:"ascii"`
	// OutputDir holds the record files
	OutputDir string `yaml:"output_dir"`
	// HyphensFile maps collapsed species and ability names back to their
	// hyphenated display form
	HyphensFile string `yaml:"hyphens_file"`

	Grid      Grid      `yaml:"grid"`
	Cache     Cache     `yaml:"cache"`
	Mojang    Service   `yaml:"mojang"`
	PokeAPI   Service   `yaml:"pokeapi"`
	Converter Converter `yaml:"converter"`
	Sort      Sort      `yaml:"sort"`
}

// Grid is the box and slot address space of the record store
type Grid struct {
	Boxes       int `yaml:"boxes"`
	SlotsPerBox int `yaml:"slots_per_box"`
}

// Cache selects where resolved usernames are kept
type Cache struct {
	Backend    string `yaml:"backend"`
	Dir        string `yaml:"dir"`
	RedisAddr  string `yaml:"redis_addr"`
	RedisKey   string `yaml:"redis_key"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Service configures an HTTP lookup service
type Service struct {
	BaseURL        string        `yaml:"base_url"`
	Attempts       int           `yaml:"attempts"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
	Disabled       bool          `yaml:"disabled"`
}

// Converter locates the external conversion tools
type Converter struct {
	ToJSON   string        `yaml:"to_json"`
	ToNative string        `yaml:"to_native"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Sort configures the generation sort
type Sort struct {
	Concurrency int `yaml:"concurrency"`
}

// Default returns a config with every default filled in
func Default() *Config {
	cfg := &Config{}
	// defaults never fail validation
	_ = cfg.Validate()
	return cfg
}

// Load reads path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path) // #nosec G304
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NotFoundf("config file %s not found", path)
			}
			return nil, errors.Wrap(err, "failed to read config file").WithMeta("path", path)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed config file").WithMeta("path", path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Validate fills defaults and checks the values that have no default
func (c *Config) Validate() error {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.OutputDir == "" {
		c.OutputDir = "cobblemon"
	}
	if c.HyphensFile == "" {
		c.HyphensFile = "hyphens.json"
	}
	if c.Grid.Boxes == 0 {
		c.Grid.Boxes = 30
	}
	if c.Grid.SlotsPerBox == 0 {
		c.Grid.SlotsPerBox = 30
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheFile
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = "cache"
	}
	if c.Cache.SQLitePath == "" {
		c.Cache.SQLitePath = filepath.Join(c.Cache.Dir, "usernames.db")
	}
	if c.Converter.ToJSON == "" {
		c.Converter.ToJSON = "PB8ToJson"
	}
	if c.Converter.ToNative == "" {
		c.Converter.ToNative = "JsonToPB8"
	}
	if c.Converter.Timeout == 0 {
		c.Converter.Timeout = 2 * time.Minute
	}
	if c.Sort.Concurrency == 0 {
		c.Sort.Concurrency = 4
	}

	vb := errors.NewValidationBuilder()
	if _, err := c.Level(); err != nil {
		vb.InvalidField("log_level", err.Error())
	}
	errors.ValidateEnum("cache.backend", c.Cache.Backend, []string{CacheFile, CacheRedis, CacheSQLite}, vb)
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		vb.RequiredField("cache.redis_addr")
	}
	if c.Grid.Boxes < 1 || c.Grid.SlotsPerBox < 1 {
		vb.InvalidField("grid", "boxes and slots_per_box must be positive")
	}
	if c.Sort.Concurrency < 1 {
		vb.InvalidField("sort.concurrency", "must be positive")
	}
	errors.ValidatePositive("converter.timeout", c.Converter.Timeout, vb)
	return vb.Build()
}

// Level parses LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel)))
	return level, err
}
