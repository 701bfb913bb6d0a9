package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	derrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

var localePattern = regexp.MustCompile(`^[a-z]{2,3}(-[a-z0-9]{2,8})?$`)

// Validate checks the configuration after defaults were applied.
func Validate(cfg *Config) error {
	if cfg.Content.PageSize < 1 {
		return invalid("content.page_size must be positive, got %d", cfg.Content.PageSize)
	}
	for _, loc := range cfg.Content.Locales {
		if !localePattern.MatchString(loc) {
			return invalid("content.locales: invalid locale tag %q", loc)
		}
	}
	seen := make(map[string]struct{}, len(cfg.Content.Categories))
	for _, cat := range cfg.Content.Categories {
		if strings.TrimSpace(cat) == "" || strings.ContainsAny(cat, `/\`) || cat == "." || cat == ".." {
			return invalid("content.categories: invalid category %q", cat)
		}
		if _, dup := seen[cat]; dup {
			return invalid("content.categories: duplicate category %q", cat)
		}
		seen[cat] = struct{}{}
	}
	if cfg.Content.BlogDir == cfg.Content.ProjectsDir {
		return invalid("content.blog_dir and content.projects_dir must differ")
	}
	return nil
}

// HasCategory reports whether name is a configured project category.
func (c ContentConfig) HasCategory(name string) bool {
	return slices.Contains(c.Categories, name)
}

func invalid(format string, args ...any) error {
	return derrors.ConfigError(fmt.Sprintf(format, args...)).Build()
}
