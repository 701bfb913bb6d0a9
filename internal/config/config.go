package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when no --config flag is given.
const DefaultPath = "portfolio.yaml"

// Config represents the application configuration.
type Config struct {
	Content  ContentConfig  `yaml:"content"`
	Build    BuildConfig    `yaml:"build"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Logging  LoggingConfig  `yaml:"logging"`
	Output   OutputConfig   `yaml:"output"`
	Profile  Profile        `yaml:"profile"`
}

// ContentConfig describes where content lives and how it is listed.
type ContentConfig struct {
	BlogDir     string   `yaml:"blog_dir"`     // Root of the blog tree (content/)
	ProjectsDir string   `yaml:"projects_dir"` // Root of project categories (projects/)
	Categories  []string `yaml:"categories"`   // Allowed project categories
	Locale      string   `yaml:"locale"`       // Active locale for suffixed files
	Locales     []string `yaml:"locales"`      // Suffixes recognized as locale tags
	PageSize    int      `yaml:"page_size"`
}

// BuildConfig controls how the index is assembled.
type BuildConfig struct {
	Workers         int  `yaml:"workers"` // 0 means GOMAXPROCS
	DisableGitDates bool `yaml:"disable_git_dates"`
}

// MarkdownConfig controls the HTML renderer.
type MarkdownConfig struct {
	HighlightStyle string `yaml:"highlight_style"`
}

// OutputConfig controls the JSON export written by the index command.
type OutputConfig struct {
	Directory   string `yaml:"directory"`
	MetricsFile string `yaml:"metrics_file,omitempty"` // Prometheus text file, empty disables
}

// Load reads configuration from configPath. A missing file yields the defaults so a
// bare checkout with content/ and projects/ works without any configuration.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg after expanding ${VAR} references from the environment.
func Parse(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
