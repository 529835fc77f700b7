package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"door-import/log"
)

const (
	ConfigFileName = "config.yaml"
	OrdersDirName  = "orders"
	EnvPrefix      = "DOOR_IMPORT_"

	configDirName = ".door-import"
)

// Defaults
const (
	DefaultCardHeight    = 600.0
	DefaultHoleDepth     = 6.0
	DefaultUndoTimeoutMs = 5000
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// Config represents the application configuration
type Config struct {
	// WatchDir is a drop folder watched for new panel files. Empty disables it.
	WatchDir string `koanf:"watch_dir" yaml:"watch_dir"`
	// OutputDir is where SVG and STL exports are written.
	OutputDir string `koanf:"output_dir" yaml:"output_dir"`
	// CardHeight is the pixel size of the longer panel side in card SVGs.
	CardHeight float64 `koanf:"card_height" yaml:"card_height"`
	// DefaultDepth is the cylinder length for holes without a depth in the 3D preview.
	DefaultDepth float64 `koanf:"default_depth" yaml:"default_depth"`
	// UndoTimeoutMs is how long a removed panel can be restored.
	UndoTimeoutMs int `koanf:"undo_timeout_ms" yaml:"undo_timeout_ms"`
	// StartDir is where the file browser opens when no directory was browsed before.
	StartDir string `koanf:"start_dir" yaml:"start_dir"`
}

// UndoTimeout returns UndoTimeoutMs as a duration.
func (c *Config) UndoTimeout() time.Duration {
	return time.Duration(c.UndoTimeoutMs) * time.Millisecond
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	outputDir := "."
	if wd, err := os.Getwd(); err == nil {
		outputDir = wd
	}
	startDir := outputDir
	if home, err := os.UserHomeDir(); err == nil {
		startDir = home
	}

	return &Config{
		OutputDir:     outputDir,
		CardHeight:    DefaultCardHeight,
		DefaultDepth:  DefaultHoleDepth,
		UndoTimeoutMs: DefaultUndoTimeoutMs,
		StartDir:      startDir,
	}
}

func (c *Config) toMap() map[string]interface{} {
	return map[string]interface{}{
		"watch_dir":       c.WatchDir,
		"output_dir":      c.OutputDir,
		"card_height":     c.CardHeight,
		"default_depth":   c.DefaultDepth,
		"undo_timeout_ms": c.UndoTimeoutMs,
		"start_dir":       c.StartDir,
	}
}

// LoadConfig layers defaults, the config file, DOOR_IMPORT_* environment
// variables and explicitly set flags, in that order. A missing config file is
// created with the defaults. A corrupt one is backed up and ignored.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	defaults := DefaultConfig()
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults.toMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
	} else {
		loadConfigFile(k, filepath.Join(configDir, ConfigFileName), defaults)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if key == "watch" {
				key = "watch_dir"
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.sanitize()
	return &cfg, nil
}

func loadConfigFile(k *koanf.Koanf, configPath string, defaults *Config) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			if saveErr := SaveConfig(defaults); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return
		}
		log.WarningLog.Printf("failed to read config file: %v", err)
		return
	}

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}
	}
}

// sanitize replaces values that would break rendering with the defaults.
func (c *Config) sanitize() {
	if c.CardHeight <= 0 {
		log.WarningLog.Printf("card_height %v is not positive, using %v", c.CardHeight, DefaultCardHeight)
		c.CardHeight = DefaultCardHeight
	}
	if c.DefaultDepth <= 0 {
		c.DefaultDepth = DefaultHoleDepth
	}
	if c.UndoTimeoutMs <= 0 {
		c.UndoTimeoutMs = DefaultUndoTimeoutMs
	}
}

// SaveConfig writes the configuration as YAML into the config directory.
func SaveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(configDir, ConfigFileName), buf.Bytes(), 0644)
}

// OrdersDir returns the directory holding completed order receipts.
func OrdersDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, OrdersDirName), nil
}
