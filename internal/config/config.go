// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"phonegen/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Server contains HTTP server settings
	Server ServerConfig `yaml:"server"`

	// Login contains session authentication settings
	Login LoginConfig `yaml:"login"`

	// Generator contains number generation limits
	Generator GeneratorConfig `yaml:"generator"`

	// Database contains lookup store settings
	Database DatabaseConfig `yaml:"database"`

	// Download contains artifact store settings
	Download DownloadConfig `yaml:"download"`

	// Logging contains logging configuration
	Logging logging.Config `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Host is the listen address
	Host string `yaml:"host"`

	// Port is the listen port
	Port int `yaml:"port"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `yaml:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds response writes; generation of large
	// artifacts happens before the response, so this stays generous
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
}

// LoginConfig contains session authentication settings
type LoginConfig struct {
	// Enabled toggles login enforcement for all routes
	Enabled bool `yaml:"enabled"`

	// Users is the list of accepted credentials
	Users []User `yaml:"users"`

	// SessionTTLMinutes is how long an issued session stays valid
	SessionTTLMinutes int `yaml:"session_ttl_minutes"`
}

// User is a single configured credential pair
type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// GeneratorConfig contains number generation limits
type GeneratorConfig struct {
	// MaxCount is the generation ceiling after deduplication
	MaxCount int `yaml:"max_count"`

	// FileSizeLimitMB is the partition size budget
	FileSizeLimitMB int `yaml:"file_size_limit_mb"`

	// Workers bounds the per-segment expansion pool (0 = GOMAXPROCS)
	Workers int `yaml:"workers"`
}

// DatabaseConfig contains lookup store settings
type DatabaseConfig struct {
	// Path is the SQLite database file
	Path string `yaml:"path"`

	// CSVPath is the source file for imports
	CSVPath string `yaml:"csv_path"`
}

// DownloadConfig contains artifact store settings
type DownloadConfig struct {
	// Dir is the artifact store directory
	Dir string `yaml:"dir"`

	// ExpireHours is the retention age for generated files
	ExpireHours int `yaml:"expire_hours"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                5000,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 300,
		},
		Login: LoginConfig{
			Enabled:           false,
			Users:             []User{{Username: "admin", Password: "admin123"}},
			SessionTTLMinutes: 720,
		},
		Generator: GeneratorConfig{
			MaxCount:        10000000,
			FileSizeLimitMB: 20,
			Workers:         0,
		},
		Database: DatabaseConfig{
			Path:    "data/phone_location.db",
			CSVPath: "data/phone_location.csv",
		},
		Download: DownloadConfig{
			Dir:         "downloads",
			ExpireHours: 24,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	config.applyEnvOverrides()
	return config, nil
}

// applyEnvOverrides applies the recognized PHONEGEN_* environment variables.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PHONEGEN_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if enabled := os.Getenv("PHONEGEN_LOGIN_ENABLED"); enabled != "" {
		c.Login.Enabled = isTruthy(enabled)
	}
	if debug := os.Getenv("PHONEGEN_DEBUG"); debug != "" && isTruthy(debug) {
		c.Logging.Level = "debug"
	}
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// ValidateLogin checks credentials against the configured user list
func (c *Config) ValidateLogin(username, password string) bool {
	for _, u := range c.Login.Users {
		if u.Username == username && u.Password == password {
			return true
		}
	}
	return false
}

// PartitionSizeLimit returns the partition budget in bytes
func (c *Config) PartitionSizeLimit() int64 {
	return int64(c.Generator.FileSizeLimitMB) * 1024 * 1024
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
