package config

import (
	"slices"
	"strings"
)

// Project categories shipped with the site.
const (
	CategoryPersonals     = "personals"
	CategoryProfessionals = "professionals"
	CategorySchools       = "schools"
)

const (
	DefaultBlogDir        = "content"
	DefaultProjectsDir    = "projects"
	DefaultLocale         = "ko"
	DefaultPageSize       = 10
	DefaultHighlightStyle = "monokai"
	DefaultOutputDir      = "out"
)

func applyDefaults(cfg *Config) {
	c := &cfg.Content
	if c.BlogDir == "" {
		c.BlogDir = DefaultBlogDir
	}
	if c.ProjectsDir == "" {
		c.ProjectsDir = DefaultProjectsDir
	}
	if len(c.Categories) == 0 {
		c.Categories = []string{CategoryPersonals, CategoryProfessionals, CategorySchools}
	}
	c.Locale = strings.ToLower(strings.TrimSpace(c.Locale))
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if !slices.Contains(c.Locales, c.Locale) {
		c.Locales = append(c.Locales, c.Locale)
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}

	if cfg.Build.Workers < 0 {
		cfg.Build.Workers = 0
	}
	if cfg.Markdown.HighlightStyle == "" {
		cfg.Markdown.HighlightStyle = DefaultHighlightStyle
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}

	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}
