package commands

import (
	"bytes"
	"path/filepath"
	"strconv"
	"time"

	"git.home.luguber.info/inful/portfolio/internal/content"
	derrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/metrics"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	Out string `short:"o" help:"Output directory (overrides output.directory)"`
}

func (i *IndexCmd) Run(g *Global, root *CLI) error {
	s, err := root.open(g)
	if err != nil {
		return err
	}
	start := time.Now()

	out := s.cfg.Output.Directory
	if i.Out != "" {
		out = i.Out
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if s.cfg.Output.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}
	idx := s.index(recorder)

	posts, err := idx.Posts(s.ctx)
	if err != nil {
		return classify(err, "scope", "posts")
	}
	if posts == nil {
		posts = []content.Record{}
	}
	if err := writeJSON(filepath.Join(out, "posts.json"), posts); err != nil {
		return err
	}
	size := s.cfg.Content.PageSize
	err = writePages(filepath.Join(out, "pages"), content.TotalPages(len(posts), size), func(n int) (any, error) {
		return content.Paginate(posts, n, size)
	})
	if err != nil {
		return err
	}

	categories := content.Categories(posts)
	for _, cat := range categories {
		dir := filepath.Join(out, "categories", filepath.FromSlash(cat), "pages")
		total := content.TotalPages(len(content.FilterByCategory(posts, cat)), size)
		err := writePages(dir, total, func(n int) (any, error) {
			return content.CategoryListing(posts, cat, n, size)
		})
		if err != nil {
			return err
		}
	}
	if err := writeJSON(filepath.Join(out, "categories.json"), categories); err != nil {
		return err
	}

	projectCount := 0
	for _, cat := range s.cfg.Content.Categories {
		projects, err := idx.Projects(s.ctx, cat)
		if err != nil {
			return classify(err, "category", cat)
		}
		if projects == nil {
			projects = []content.Record{}
		}
		projectCount += len(projects)
		if err := writeJSON(filepath.Join(out, "projects", cat+".json"), projects); err != nil {
			return err
		}
	}

	tree := content.BuildTree(s.cfg.Content.BlogDir, s.cfg.Content.Locale, s.cfg.Content.Locales, s.logger)
	if err := writeJSON(filepath.Join(out, "tree.json"), tree); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(out, "profile.json"), s.cfg.Profile); err != nil {
		return err
	}

	var css bytes.Buffer
	if err := s.renderer.WriteCSS(&css); err != nil {
		return derrors.InternalError("failed to render highlight stylesheet").WithCause(err).Build()
	}
	if err := writeFile(filepath.Join(out, "chroma.css"), css.Bytes()); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(out, ".nojekyll"), nil); err != nil {
		return err
	}

	elapsed := time.Since(start)
	if prom != nil {
		prom.ObserveBuildDuration(elapsed)
		if err := prom.WriteTextfile(s.cfg.Output.MetricsFile); err != nil {
			return derrors.FileSystemError("failed to write metrics file").
				WithCause(err).
				WithContext("path", s.cfg.Output.MetricsFile).
				Build()
		}
	}

	s.logger.Info("Index written",
		logfields.Path(out),
		logfields.Count(len(posts)),
		"projects", projectCount,
		"categories", len(categories),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return nil
}

// writePages writes dir/<n>.json for pages 1..total as built by page. An empty
// listing still gets its first page.
func writePages(dir string, total int, page func(n int) (any, error)) error {
	for n := 1; n <= max(total, 1); n++ {
		v, err := page(n)
		if err != nil {
			return classify(err, "page", strconv.Itoa(n))
		}
		if err := writeJSON(filepath.Join(dir, strconv.Itoa(n)+".json"), v); err != nil {
			return err
		}
	}
	return nil
}
