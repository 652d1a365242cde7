package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	serr "codextract/internal/errors"
)

// FilterConfig holds the rules deciding which entries are skipped.
type FilterConfig struct {
	IgnoredDirectories []string `yaml:"ignored_directories"` // Exact directory names never descended into
	IgnoredFiles       []string `yaml:"ignored_files"`       // Exact file names never collected
	IgnoredExtensions  []string `yaml:"ignored_extensions"`  // Extensions with leading dot, case-insensitive
	IgnoredPatterns    []string `yaml:"ignored_patterns"`    // Glob patterns matched against entry names
}

// OutputConfig controls the generated artifact.
type OutputConfig struct {
	FileName    string `yaml:"file_name"`    // Artifact name, created in the base directory
	IndexHeader string `yaml:"index_header"` // First line of the index section
	RuleLine    string `yaml:"rule_line"`    // Line framing each file header
}

// SelectionConfig controls interactive folder selection.
type SelectionConfig struct {
	MaxDepth         int `yaml:"max_depth"`          // Ceiling on folder descents
	DefaultWalkDepth int `yaml:"default_walk_depth"` // Offered depth for folder extraction
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // logrus level name
	JSON  bool   `yaml:"json"`  // Emit JSON lines
	File  string `yaml:"file"`  // Optional file to append logs to
}

// Config represents the application configuration structure.
type Config struct {
	Filter    FilterConfig    `yaml:"filter"`
	Output    OutputConfig    `yaml:"output"`
	Selection SelectionConfig `yaml:"selection"`
	Log       LogConfig       `yaml:"log"`
}

// DefaultPath returns ~/.config/codextract/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "codextract", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, serr.NewConfigError("cannot locate home directory", "", serr.ConfigNotFound, err)
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
// Keys present in the file replace the corresponding defaults wholesale,
// so a listed ignored_files replaces the built-in list.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.normalize()
			return cfg, nil
		}
		return nil, serr.NewConfigError("error reading config file", path, serr.ConfigNotFound, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, serr.NewConfigError("error parsing config file", path, serr.InvalidConfig, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig returns the compiled-in configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Filter.IgnoredDirectories = []string{"node_modules", "dist", ".git", "coverage"}
	cfg.Filter.IgnoredFiles = []string{
		".DS_Store",
		"package-lock.json",
		"README.md",
		"extractFiles.ts",
		"backend.txt",
		"codigo.txt",
		"LICENSE.txt",
	}
	// ". ttf" is kept as shipped; it never matches a real extension.
	cfg.Filter.IgnoredExtensions = []string{".png", ".jpg", ".jpeg", ".svg", ".avif", ".webp", ". ttf"}
	cfg.Filter.IgnoredPatterns = []string{}

	cfg.Output.FileName = "backend.txt"
	cfg.Output.IndexHeader = "Índice de archivos:"
	cfg.Output.RuleLine = strings.Repeat("-", 20)

	cfg.Selection.MaxDepth = 5
	cfg.Selection.DefaultWalkDepth = 5

	cfg.Log.Level = "warn"

	return cfg
}

// normalize makes sure a run never collects its own artifact or log file.
func (c *Config) normalize() {
	c.ignoreFile(c.Output.FileName)
	if c.Log.File != "" {
		c.ignoreFile(filepath.Base(c.Log.File))
	}
}

func (c *Config) ignoreFile(name string) {
	if name == "" {
		return
	}
	for _, ignored := range c.Filter.IgnoredFiles {
		if ignored == name {
			return
		}
	}
	c.Filter.IgnoredFiles = append(c.Filter.IgnoredFiles, name)
}

// SetOutputName overrides the artifact file name and keeps it ignored.
func (c *Config) SetOutputName(name string) error {
	c.Output.FileName = name
	if err := c.validateOutput(); err != nil {
		return err
	}
	c.normalize()
	return nil
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return serr.ErrInvalidConfig
	}

	if err := c.validateOutput(); err != nil {
		return err
	}

	if c.Selection.MaxDepth < 1 {
		return serr.NewConfigError("must be at least 1", "selection.max_depth", serr.InvalidConfig, nil)
	}
	if c.Selection.DefaultWalkDepth < 0 {
		return serr.NewConfigError("must not be negative", "selection.default_walk_depth", serr.InvalidConfig, nil)
	}

	for i, pattern := range c.Filter.IgnoredPatterns {
		if _, err := glob.Compile(pattern); err != nil {
			return serr.NewConfigError("invalid glob pattern", fmt.Sprintf("filter.ignored_patterns[%d]", i), serr.InvalidConfig, err)
		}
	}

	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return serr.NewConfigError("unknown log level", "log.level", serr.InvalidConfig, err)
		}
	}

	return nil
}

func (c *Config) validateOutput() error {
	name := c.Output.FileName
	if name == "" {
		return serr.NewConfigError("artifact name is required", "output.file_name", serr.InvalidConfig, nil)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return serr.NewConfigError("artifact name must be a plain file name", "output.file_name", serr.InvalidConfig, nil)
	}
	return nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	cfg := defaultConfig()
	cfg.normalize()
	return cfg
}
