package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFormat is the output format used when none is configured.
	DefaultFormat = "table"
	// DefaultFilter is the task filter used when none is configured.
	DefaultFilter = "all"
	// DefaultBackend is the storage backend used when none is configured.
	DefaultBackend = "file"
)

// ErrInvalidValue is returned when a config value is not one of its allowed values.
var ErrInvalidValue = errors.New("invalid config value")

// Config represents the application configuration
type Config struct {
	DefaultFormat string `yaml:"default_format,omitempty" json:"default_format,omitempty"`
	DefaultFilter string `yaml:"default_filter,omitempty" json:"default_filter,omitempty"`

	Storage *StorageConfig `yaml:"storage,omitempty" json:"storage,omitempty"`
}

// StorageConfig selects where tasks are kept.
type StorageConfig struct {
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".todo"
	}
	return filepath.Join(configDir, "todo")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".todo.yaml"
}

// ConfigFileExists returns true if the config file exists on disk
func ConfigFileExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Load loads the configuration from disk.
// It first loads the global config from XDG config directory, then merges
// any local .todo.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), LocalConfigPath())
}

// LoadFrom loads and merges the config files at globalPath and localPath.
// Missing files are skipped.
func LoadFrom(globalPath, localPath string) (*Config, error) {
	cfg := &Config{}

	global, err := readFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load global config file: %w", err)
	}
	if global != nil {
		cfg = global
	}

	local, err := readFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load local config file: %w", err)
	}
	if local != nil {
		cfg = mergeConfig(cfg, local)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile reads a single config file without defaults or merging. A missing
// file reads as an empty config.
func ReadFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return &Config{}, nil
	}
	return cfg, nil
}

// readFile returns nil, nil when path does not exist.
func readFile(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{
		DefaultFormat: firstNonEmpty(local.DefaultFormat, global.DefaultFormat),
		DefaultFilter: firstNonEmpty(local.DefaultFilter, global.DefaultFilter),
	}
	result.Storage = mergeStorage(global.Storage, local.Storage)
	return result
}

func mergeStorage(global, local *StorageConfig) *StorageConfig {
	if global == nil && local == nil {
		return nil
	}
	result := &StorageConfig{}
	if global != nil {
		*result = *global
	}
	if local != nil {
		result.Backend = firstNonEmpty(local.Backend, result.Backend)
		result.Path = firstNonEmpty(local.Path, result.Path)
	}
	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) applyDefaults() {
	if c.DefaultFormat == "" {
		c.DefaultFormat = DefaultFormat
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = DefaultFilter
	}
	if c.Storage == nil {
		c.Storage = &StorageConfig{}
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultBackend
	}
}

// Validate checks every value against its allowed set.
func (c *Config) Validate() error {
	if err := oneOf("default_format", c.DefaultFormat, "table", "json", "markdown"); err != nil {
		return err
	}
	if err := oneOf("default_filter", c.DefaultFilter, "all", "active", "completed", "done"); err != nil {
		return err
	}
	if c.Storage != nil {
		if err := oneOf("storage.backend", c.Storage.Backend, "file", "sqlite"); err != nil {
			return err
		}
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s=%q (must be one of %s)", ErrInvalidValue, key, value, strings.Join(allowed, ", "))
}

// Keys lists the keys accepted by Set.
func Keys() []string {
	return []string{"format", "filter", "storage.backend", "storage.path"}
}

// Set assigns value to key and validates the result. The config is not saved.
func (c *Config) Set(key, value string) error {
	switch key {
	case "format", "default_format":
		c.DefaultFormat = value
	case "filter", "default_filter":
		c.DefaultFilter = value
	case "storage.backend", "backend":
		if c.Storage == nil {
			c.Storage = &StorageConfig{}
		}
		c.Storage.Backend = value
	case "storage.path", "path":
		if c.Storage == nil {
			c.Storage = &StorageConfig{}
		}
		c.Storage.Path = value
	default:
		return fmt.Errorf("unknown config key: %s (available: %s)", key, strings.Join(Keys(), ", "))
	}
	return c.Validate()
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

// SaveFile writes the configuration as YAML to path.
func (c *Config) SaveFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return SaveTo(path, string(data))
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	return &Config{
		DefaultFormat: DefaultFormat,
		DefaultFilter: DefaultFilter,
		Storage: &StorageConfig{
			Backend: DefaultBackend,
		},
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	// Get absolute path for local config
	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# Todo configuration file
# See: todo config defaults  (for all available options)

# Output format for 'todo list': table, json or markdown
default_format: table

# Filter the list opens with: all, active or completed
default_filter: all

# Where tasks are kept (optional)
# storage:
#   backend: file        # file or sqlite
#   path: /path/to/tasks.json   # defaults to $XDG_DATA_HOME/todo
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
