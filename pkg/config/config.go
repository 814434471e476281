/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entity names used to look up data files
const (
	Vehicles     = "vehicles"
	Vessels      = "vessels"
	Sailings     = "sailings"
	Reservations = "reservations"
)

// Config represents the sealink configuration
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Files   Files   `yaml:"files"`
	Storage Storage `yaml:"storage"`
	Logging Logging `yaml:"logging"`
	Metrics Metrics `yaml:"metrics"`
}

// Files names the record file for each entity, relative to DataDir unless
// absolute
type Files struct {
	Vehicles     string `yaml:"vehicles"`
	Vessels      string `yaml:"vessels"`
	Sailings     string `yaml:"sailings"`
	Reservations string `yaml:"reservations"`
}

// Storage contains record file settings
type Storage struct {
	SyncWrites bool `yaml:"sync_writes"`
	// FileMode is the octal permission string used when a record file is
	// created, e.g. "0640"
	FileMode string `yaml:"file_mode"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// Metrics contains metrics configuration
type Metrics struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Files: Files{
			Vehicles:     "vehicles.dat",
			Vessels:      "vessels.dat",
			Sailings:     "sailings.dat",
			Reservations: "reservations.dat",
		},
		Storage: Storage{
			SyncWrites: true,
			FileMode:   "0600",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path. Fields missing from
// the file keep their defaults. The result is not validated; callers apply
// their overrides first and then call Validate.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	seen := make(map[string]string)
	for _, entity := range []string{Vehicles, Vessels, Sailings, Reservations} {
		name := c.fileName(entity)
		if name == "" {
			return fmt.Errorf("files.%s is required", entity)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("files.%s and files.%s both use %q", other, entity, name)
		}
		seen[name] = entity
	}

	if _, err := c.Storage.Mode(); err != nil {
		return err
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}

	return nil
}

// Mode parses FileMode. The owner must be able to read and write the file.
func (s Storage) Mode() (os.FileMode, error) {
	mode, err := strconv.ParseUint(s.FileMode, 8, 32)
	if err != nil || mode > 0777 {
		return 0, fmt.Errorf("invalid storage.file_mode %q: want octal permission bits", s.FileMode)
	}
	if mode&0600 != 0600 {
		return 0, fmt.Errorf("invalid storage.file_mode %q: owner needs read and write", s.FileMode)
	}
	return os.FileMode(mode), nil
}

// Path returns the data file path for an entity
func (c *Config) Path(entity string) string {
	name := c.fileName(entity)
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func (c *Config) fileName(entity string) string {
	switch entity {
	case Vehicles:
		return c.Files.Vehicles
	case Vessels:
		return c.Files.Vessels
	case Sailings:
		return c.Files.Sailings
	case Reservations:
		return c.Files.Reservations
	default:
		return ""
	}
}

// BootstrapConfig writes a default configuration for dataDir to configPath
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./sealink.yaml"
	}

	// For Linux/macOS, use ~/.config/sealink/config.yaml
	configDir := filepath.Join(homeDir, ".config", "sealink")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
