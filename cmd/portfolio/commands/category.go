package commands

import (
	"git.home.luguber.info/inful/portfolio/internal/content"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
)

// CategoryCmd implements the 'category' command.
type CategoryCmd struct {
	Prefix string `arg:"" help:"Category folder path, e.g. python or dev/go"`
	Page   int    `short:"n" help:"Page number (1-based)" default:"1"`
}

func (c *CategoryCmd) Run(g *Global, root *CLI) error {
	s, err := root.open(g)
	if err != nil {
		return err
	}

	posts, err := s.index(nil).Posts(s.ctx)
	if err != nil {
		return classify(err, "scope", "posts")
	}

	listing, err := content.CategoryListing(posts, c.Prefix, c.Page, s.cfg.Content.PageSize)
	if err != nil {
		return classify(err, "slug", c.Prefix)
	}
	s.logger.Debug("Category listed",
		logfields.Category(listing.Category),
		logfields.Count(len(listing.Items)))
	return s.print(listing)
}
