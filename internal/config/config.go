package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Organization    string   `mapstructure:"organization" yaml:"organization"`
	Projects        []string `mapstructure:"projects" yaml:"projects"`
	TeamProject     string   `mapstructure:"team_project" yaml:"team_project"`
	Definitions     []string `mapstructure:"definitions" yaml:"definitions,omitempty"`
	MaxDays         int      `mapstructure:"max_days" yaml:"max_days"`
	MaxRuns         int      `mapstructure:"max_runs" yaml:"max_runs"`
	PollingInterval int      `mapstructure:"polling_interval" yaml:"polling_interval"`
	Theme           string   `mapstructure:"theme" yaml:"theme"`
	RetryMax        int      `mapstructure:"retry_max" yaml:"retry_max"`
	LogLevel        string   `mapstructure:"log_level" yaml:"log_level"`

	// path is the file the config was loaded from, used by Save.
	path string
}

// Default configuration values
const (
	DefaultTeamProject     = "*"
	DefaultMaxDays         = 5
	DefaultMaxRuns         = 10
	DefaultPollingInterval = 60 // seconds
	DefaultTheme           = "dark"
	DefaultRetryMax        = 3
	DefaultLogLevel        = "info"

	// EnvPrefix prefixes environment overrides, e.g. AZDO_ORGANIZATION.
	EnvPrefix = "AZDO"
)

var keys = []string{
	"organization",
	"projects",
	"team_project",
	"definitions",
	"max_days",
	"max_runs",
	"polling_interval",
	"theme",
	"retry_max",
	"log_level",
}

// ErrConfigNotFound is returned when no config file exists at the expected path.
var ErrConfigNotFound = errors.New("config file not found")

// GetPath returns the path to the config file
func GetPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "azdo-buildstats", "config.yaml"), nil
}

// Load reads the configuration from ~/.config/azdo-buildstats/config.yaml
// Returns an error if the file doesn't exist, showing the expected path
func Load() (*Config, error) {
	configPath, err := GetPath()
	if err != nil {
		return nil, err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from the given file. Environment variables
// with the AZDO_ prefix override values from the file.
func LoadFrom(configPath string) (*Config, error) {
	// Create a new viper instance to avoid state pollution
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	// Read config file - return error if not found
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at: %s\nPlease create a config.yaml file with 'organization' and 'projects' settings", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal config into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.path = configPath

	// Older configs name a single "project" instead of a list.
	if len(cfg.Projects) == 0 {
		if legacy := v.GetString("project"); legacy != "" {
			cfg.Projects = []string{legacy}
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("team_project", DefaultTeamProject)
	v.SetDefault("max_days", DefaultMaxDays)
	v.SetDefault("max_runs", DefaultMaxRuns)
	v.SetDefault("polling_interval", DefaultPollingInterval)
	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("retry_max", DefaultRetryMax)
	v.SetDefault("log_level", DefaultLogLevel)
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if c.Organization == "" {
		return fmt.Errorf("organization cannot be empty")
	}

	if len(c.Projects) == 0 {
		return fmt.Errorf("at least one project must be configured")
	}
	for i, p := range c.Projects {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("projects[%d] cannot be empty", i)
		}
	}

	if c.MaxDays < 0 {
		return fmt.Errorf("max_days must not be negative, got %d", c.MaxDays)
	}

	if c.MaxRuns < 0 {
		return fmt.Errorf("max_runs must not be negative, got %d", c.MaxRuns)
	}

	if c.PollingInterval <= 0 {
		return fmt.Errorf("polling_interval must be greater than 0, got %d", c.PollingInterval)
	}

	if c.RetryMax < 0 {
		return fmt.Errorf("retry_max must not be negative, got %d", c.RetryMax)
	}

	if c.Theme == "" {
		return fmt.Errorf("theme cannot be empty")
	}

	if _, err := logrus.ParseLevel(c.GetLogLevel()); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	return nil
}

// GetTheme returns the configured theme name.
// Returns the default theme if the theme is empty.
func (c *Config) GetTheme() string {
	if c.Theme == "" {
		return DefaultTheme
	}
	return c.Theme
}

// GetTeamProject returns the team project filter, "*" when unset.
func (c *Config) GetTeamProject() string {
	if c.TeamProject == "" {
		return DefaultTeamProject
	}
	return c.TeamProject
}

// GetLogLevel returns the configured log level, "info" when unset.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// IsMultiProject returns true if more than one project is configured.
func (c *Config) IsMultiProject() bool {
	return len(c.Projects) > 1
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no file path; load it with Load or LoadFrom first")
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// UpdateTheme sets the theme and persists the config.
func (c *Config) UpdateTheme(theme string) error {
	if theme == "" {
		return fmt.Errorf("theme cannot be empty")
	}
	previous := c.Theme
	c.Theme = theme
	if err := c.Save(); err != nil {
		c.Theme = previous
		return err
	}
	return nil
}
