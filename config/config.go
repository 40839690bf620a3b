// Package config loads clustering defaults from YAML.
//
// A file only needs the keys it changes; everything else keeps the value from
// Default. Example:
//
//	threshold: 0.9
//	method: levenshtein
//	fields: [name, description]
//	log:
//	  level: debug
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/katalvlaran/simcluster/divide"
	"github.com/katalvlaran/simcluster/engine"
	"github.com/katalvlaran/simcluster/metric"
	"github.com/katalvlaran/simcluster/record"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds request defaults and logging settings.
type Config struct {
	Threshold   float64   `yaml:"threshold"`
	Method      string    `yaml:"method"`
	Fields      []string  `yaml:"fields"`
	Mode        string    `yaml:"mode"`
	Count       int       `yaml:"count"`
	SearchDepth int       `yaml:"searchDepth"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Threshold:   0.95,
		Method:      metric.Sentence.String(),
		Fields:      append([]string(nil), metric.DefaultFields...),
		Mode:        string(engine.ModeSimilar),
		Count:       2,
		SearchDepth: divide.DefaultSearchDepth,
		Log:         LogConfig{Level: zerolog.LevelInfoValue, Pretty: true},
	}
}

// Load reads path over Default. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if math.IsNaN(c.Threshold) || c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0, 1]", ErrInvalid, c.Threshold)
	}
	if _, err := engine.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("%w: fields must not be empty", ErrInvalid)
	}
	if c.Count < 1 {
		return fmt.Errorf("%w: count %d must be at least 1", ErrInvalid, c.Count)
	}
	if c.SearchDepth < 1 {
		return fmt.Errorf("%w: searchDepth %d must be positive", ErrInvalid, c.SearchDepth)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}

	return nil
}

// Request builds an engine request for records from c.
func (c *Config) Request(records []record.Record) engine.Request {
	return engine.Request{
		Threshold:   c.Threshold,
		Characters:  records,
		Method:      c.Method,
		Fields:      append([]string(nil), c.Fields...),
		Mode:        c.Mode,
		Count:       c.Count,
		SearchDepth: c.SearchDepth,
	}
}

// LogLevel returns the parsed log level, info when unparsable.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
