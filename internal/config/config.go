package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cpucorecore/datelabel/internal/format"
)

const (
	DefaultPort            = 8080
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBatch        = 100
	DefaultLogLevel        = "info"
	DefaultLogBufferSize   = FileSize(256 * 1024)
	DefaultFlushInterval   = time.Second
)

type Config struct {
	Log struct {
		Level         string        `yaml:"level"`
		Async         bool          `yaml:"async"`
		BufferSize    FileSize      `yaml:"buffer_size"`
		FlushInterval time.Duration `yaml:"flush_interval"`
	} `yaml:"log"`
	HTTP struct {
		Port            int           `yaml:"port"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"http"`
	Pprof struct {
		Port int `yaml:"port"`
	} `yaml:"pprof"`
	Format struct {
		// Timezone is an IANA name; empty renders in the host zone.
		Timezone     string `yaml:"timezone"`
		InvalidLabel string `yaml:"invalid_label"`
		MaxBatch     int    `yaml:"max_batch"`
	} `yaml:"format"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(name string) (*Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if _, err = cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.BufferSize <= 0 {
		c.Log.BufferSize = DefaultLogBufferSize
	}
	if c.Log.FlushInterval <= 0 {
		c.Log.FlushInterval = DefaultFlushInterval
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = DefaultPort
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Format.InvalidLabel == "" {
		c.Format.InvalidLabel = format.DefaultInvalidLabel
	}
	if c.Format.MaxBatch <= 0 {
		c.Format.MaxBatch = DefaultMaxBatch
	}
}

func (c *Config) Location() (*time.Location, error) {
	return format.ResolveTimezone(c.Format.Timezone)
}

// DateLabel builds the formatter described by the format section.
func (c *Config) DateLabel() (*format.DateLabel, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return format.NewDateLabel(
		format.WithLocation(loc),
		format.WithInvalidLabel(c.Format.InvalidLabel),
	), nil
}
