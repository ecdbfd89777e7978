package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// InodeReportConfig configures the hard-link consistency report. The report
// stats the live filesystem, so it ships disabled.
type InodeReportConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config represents the application configuration.
type Config struct {
	Format      string            `mapstructure:"format"`
	Root        string            `mapstructure:"root"`
	InodeReport InodeReportConfig `mapstructure:"inode_report"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// knownFormats lists the output formats Validate accepts. Kept in sync with
// the formatters registered in the output package.
var knownFormats = map[string]bool{
	"plain":  true,
	"pretty": true,
	"json":   true,
	"yaml":   true,
}

// ErrUnknownFormat indicates a format name with no registered formatter.
var ErrUnknownFormat = errors.New("unknown output format")

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if !knownFormats[c.Format] {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
	if c.Root == "" {
		return errors.New("root directory cannot be empty")
	}
	return nil
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/metachk/config.yaml
//   - $HOME/.config/metachk/config.yaml
//
// Environment variables are prefixed with METACHK_ (e.g., METACHK_FORMAT).
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "metachk"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "metachk"))

	// Set environment variable prefix and enable auto env binding
	v.SetEnvPrefix("METACHK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	SetDefaults(v)

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults registers the default values on a viper instance. Shared by
// Load and the root command's global viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("inode_report.enabled", false)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.path", "") // Empty means log to stderr only
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	// Check XDG_CONFIG_HOME first
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "metachk"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "metachk"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
