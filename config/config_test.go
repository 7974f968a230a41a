package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByteMirror/cmdsys/log"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvColor, "")
	t.Setenv(EnvLogLevel, "")
	return home
}

func TestLoadConfig(t *testing.T) {
	t.Run("creates default config when missing", func(t *testing.T) {
		home := setHome(t)

		cfg := LoadConfig()

		assert.Equal(t, DefaultConfig(), cfg)
		_, err := os.Stat(filepath.Join(home, ".cmdsys", ConfigFileName))
		assert.NoError(t, err)
	})

	t.Run("reads existing config", func(t *testing.T) {
		home := setHome(t)
		dir := filepath.Join(home, ".cmdsys")
		require.NoError(t, os.MkdirAll(dir, 0755))
		data, err := json.Marshal(&Config{Color: "never", LogLevel: "info", MaxParallel: 9, Diagnostics: true})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644))

		cfg := LoadConfig()

		assert.Equal(t, ColorNever, cfg.Color)
		assert.Equal(t, log.LevelInformation, cfg.MinLevel())
		assert.Equal(t, 9, cfg.MaxParallel)
		assert.True(t, cfg.Diagnostics)
	})

	t.Run("falls back to defaults on invalid json", func(t *testing.T) {
		home := setHome(t)
		dir := filepath.Join(home, ".cmdsys")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0644))

		assert.Equal(t, DefaultConfig(), LoadConfig())
	})

	t.Run("normalizes invalid values", func(t *testing.T) {
		home := setHome(t)
		dir := filepath.Join(home, ".cmdsys")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
			[]byte(`{"color":"rainbow","log_level":"loud","max_parallel":-1}`), 0644))

		cfg := LoadConfig()

		assert.Equal(t, ColorAuto, cfg.Color)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 4, cfg.MaxParallel)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		setHome(t)
		t.Setenv(EnvColor, "ALWAYS")
		t.Setenv(EnvLogLevel, "exception")

		cfg := LoadConfig()

		assert.Equal(t, ColorAlways, cfg.Color)
		assert.Equal(t, log.LevelException, cfg.MinLevel())
	})
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	setHome(t)
	want := &Config{Color: ColorNever, LogLevel: "normal", MaxParallel: 2}

	require.NoError(t, SaveConfig(want))

	assert.Equal(t, want, LoadConfig())
}

func TestConfig_ColorProfile(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, termenv.ANSI, (&Config{Color: ColorAlways}).ColorProfile(&buf))
	assert.Equal(t, termenv.Ascii, (&Config{Color: ColorNever}).ColorProfile(&buf))
	assert.Equal(t, termenv.Ascii, (&Config{Color: ColorAuto}).ColorProfile(&buf), "non-terminal writers get no color")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"auto", ColorAuto, false},
		{"ALWAYS", ColorAlways, false},
		{" Never ", ColorNever, false},
		{"rainbow", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
