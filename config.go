package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jcorbin/putt/internal/codec"
	"github.com/jcorbin/putt/internal/logio"
)

// Config holds the command line host's settings, as read from an optional
// YAML file; command line flags override it.
type Config struct {
	Codec    string `yaml:"codec"`     // compression codec name
	Trace    bool   `yaml:"trace"`     // log every dispatched token
	MaxSteps int    `yaml:"max_steps"` // 0 means unlimited
	MaxRange int    `yaml:"max_range"` // longest list range may build
	Persist  bool   `yaml:"persist"`   // keep one VM across REPL lines
	History  string `yaml:"history"`   // REPL history file, "" disables
	Prompt   string `yaml:"prompt"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		Codec:    codec.DefaultName,
		MaxRange: defaultRangeLimit,
		History:  filepath.Join(os.TempDir(), ".putt_history"),
		Prompt:   ">> ",
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "putt", "config.yaml")
}

// loadConfig reads settings from path over DefaultConfig. An empty path reads
// the per-user default file, which need not exist.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		if path = defaultConfigPath(); path == "" {
			return cfg, nil
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%v: %w", path, err)
	}
	return cfg, nil
}

// options converts settings into VM and Tokenizer options; trace logs go to
// log at the TRACE level.
func (cfg Config) options(log *logio.Logger) (Option, error) {
	c, err := codec.New(cfg.Codec)
	if err != nil {
		return nil, err
	}
	opts := []Option{
		WithCodec(c),
		WithStepLimit(cfg.MaxSteps),
		WithRangeLimit(cfg.MaxRange),
	}
	if cfg.Trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	return Options(opts...), nil
}
