package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/putt/internal/logio"
)

func writeConfig(t *testing.T, dir, body string) string {
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("default file missing", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("default file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "putt"), 0755))
		writeConfig(t, filepath.Join(dir, "putt"), "trace: true\n")

		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.True(t, cfg.Trace)
	})

	t.Run("explicit file missing", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		cfg, err := loadConfig(writeConfig(t, t.TempDir(), ""))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := loadConfig(writeConfig(t, t.TempDir(), strings.Join([]string{
			"codec: zstd",
			"trace: true",
			"max_steps: 1000",
			"max_range: 50",
			"persist: true",
			`history: ""`,
			`prompt: "putt> "`,
		}, "\n")))
		require.NoError(t, err)
		assert.Equal(t, Config{
			Codec:    "zstd",
			Trace:    true,
			MaxSteps: 1000,
			MaxRange: 50,
			Persist:  true,
			History:  "",
			Prompt:   "putt> ",
		}, cfg)
	})

	t.Run("partial", func(t *testing.T) {
		cfg, err := loadConfig(writeConfig(t, t.TempDir(), "max_steps: 5\n"))
		require.NoError(t, err)
		want := DefaultConfig()
		want.MaxSteps = 5
		assert.Equal(t, want, cfg)
	})

	t.Run("unknown field", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bogus: 1\n")
		_, err := loadConfig(path)
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), path)
			assert.Contains(t, err.Error(), "field bogus not found")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := loadConfig(writeConfig(t, t.TempDir(), "max_steps: [\n"))
		assert.Error(t, err)
	})
}

func TestConfig_options(t *testing.T) {
	var log logio.Logger

	cfg := DefaultConfig()
	opt, err := cfg.options(&log)
	require.NoError(t, err)
	assert.Len(t, opt, 3)

	cfg.Trace = true
	opt, err = cfg.options(&log)
	require.NoError(t, err)
	assert.Len(t, opt, 4)

	cfg.Codec = "bogus"
	_, err = cfg.options(&log)
	assert.EqualError(t, err, `unknown codec "bogus", want one of ["flate" "zstd"]`)
}

func TestConfig_options_apply(t *testing.T) {
	var out strings.Builder
	var log logio.Logger
	log.SetOutput(&out)

	cfg := DefaultConfig()
	cfg.Codec = "zstd"
	cfg.Trace = true
	cfg.MaxSteps = 7
	cfg.MaxRange = 3
	opt, err := cfg.options(&log)
	require.NoError(t, err)

	vm := New(opt)
	assert.Equal(t, "zstd", vm.codec.Name())
	assert.Equal(t, 7, vm.stepLimit)
	assert.Equal(t, 3, vm.rangeLimit)

	vm.logf("#", "hello %v", "world")
	assert.Equal(t, "TRACE: # hello world\n", out.String())
}
