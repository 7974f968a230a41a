package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/ByteMirror/cmdsys/log"
)

const ConfigFileName = "config.json"

// Color modes accepted in Config.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment variables that override the file.
const (
	EnvColor    = "CMDSYS_COLOR"
	EnvLogLevel = "CMDSYS_LOG_LEVEL"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cmdsys"), nil
}

// Config represents the application configuration
type Config struct {
	// Color selects console coloring: auto, always or never.
	Color string `json:"color"`
	// LogLevel is the minimum level written to the console.
	LogLevel string `json:"log_level"`
	// MaxParallel bounds how many commands run at once when several are requested.
	MaxParallel int `json:"max_parallel"`
	// Diagnostics enables the diagnostic log file in the temp directory.
	Diagnostics bool `json:"diagnostics"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Color:       ColorAuto,
		LogLevel:    "warn",
		MaxParallel: 4,
		Diagnostics: false,
	}
}

// LoadConfig loads the configuration from disk and applies environment overrides.
// If the file cannot be read, the default configuration is used.
func LoadConfig() *Config {
	cfg := loadFile()
	cfg.applyEnv()
	cfg.normalize()
	return cfg
}

func loadFile() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.DiagnosticLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := SaveConfig(defaultCfg); saveErr != nil {
				log.DiagnosticLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.DiagnosticLog.Printf("failed to read config file: %v", err)
		return DefaultConfig()
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		log.DiagnosticLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	return config
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvColor)); v != "" {
		c.Color = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// ParseColor validates a color mode, ignoring case and surrounding space.
func ParseColor(s string) (string, error) {
	switch mode := strings.ToLower(strings.TrimSpace(s)); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown color mode %q", s)
	}
}

func (c *Config) normalize() {
	mode, err := ParseColor(c.Color)
	if err != nil {
		log.DiagnosticLog.Printf("ignoring color: %v", err)
		mode = ColorAuto
	}
	c.Color = mode
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		log.DiagnosticLog.Printf("ignoring log level: %v", err)
		c.LogLevel = DefaultConfig().LogLevel
	}
	if c.MaxParallel <= 0 {
		c.MaxParallel = DefaultConfig().MaxParallel
	}
}

// SaveConfig writes the configuration to disk.
func SaveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return writeFileAtomic(filepath.Join(configDir, ConfigFileName), data, 0644)
}

// MinLevel returns the configured minimum console level.
func (c *Config) MinLevel() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.LevelNormal
	}
	return level
}

// ColorProfile resolves the color profile for output written to w.
func (c *Config) ColorProfile(w io.Writer) termenv.Profile {
	switch c.Color {
	case ColorAlways:
		return termenv.ANSI
	case ColorNever:
		return termenv.Ascii
	}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}
