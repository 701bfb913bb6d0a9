package commands

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Slug    string `arg:"" help:"Post slug or category prefix, or a project id with --project"`
	Project string `short:"p" help:"Resolve the slug inside this project category"`
}

func (c *ShowCmd) Run(g *Global, root *CLI) error {
	s, err := root.open(g)
	if err != nil {
		return err
	}
	idx := s.index(nil)

	if c.Project != "" {
		rec, err := idx.Project(s.ctx, c.Project, c.Slug)
		if err != nil {
			return classify(err, "slug", c.Project+"/"+c.Slug)
		}
		return s.print(rec)
	}

	res, err := idx.Lookup(s.ctx, c.Slug)
	if err != nil {
		return classify(err, "slug", c.Slug)
	}
	return s.print(res)
}
