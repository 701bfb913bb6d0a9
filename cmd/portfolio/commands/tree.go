package commands

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/portfolio/internal/content"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	Locale string `short:"l" help:"Locale to select (overrides content.locale)"`
}

func (c *TreeCmd) Run(g *Global, root *CLI) error {
	s, err := root.open(g)
	if err != nil {
		return err
	}

	locale := s.cfg.Content.Locale
	locales := s.cfg.Content.Locales
	if c.Locale != "" {
		locale = strings.ToLower(c.Locale)
		if !slices.Contains(locales, locale) {
			locales = append(slices.Clone(locales), locale)
		}
	}

	s.logger.Debug("Building content tree", logfields.Path(s.cfg.Content.BlogDir), logfields.Locale(locale))
	return s.print(content.BuildTree(s.cfg.Content.BlogDir, locale, locales, s.logger))
}
