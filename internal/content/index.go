package content

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/portfolio/internal/config"
	"git.home.luguber.info/inful/portfolio/internal/git"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/markdown"
	"git.home.luguber.info/inful/portfolio/internal/metrics"
)

const scopePosts = "posts"

// Index builds records from the blog and project trees.
type Index struct {
	cfg     config.ContentConfig
	workers int
	dirFS   func(root string) fs.FS
	loader  *loader
}

// Option configures an Index.
type Option func(*Index)

// WithDateLookup sets the commit date source (NoopLookup by default).
func WithDateLookup(d git.DateLookup) Option {
	return func(i *Index) { i.loader.dates = d }
}

// WithRecorder sets the metrics recorder (NoopRecorder by default).
func WithRecorder(r metrics.Recorder) Option {
	return func(i *Index) { i.loader.recorder = r }
}

// WithLogger sets the logger (slog.Default by default).
func WithLogger(l *slog.Logger) Option {
	return func(i *Index) { i.loader.logger = l }
}

// WithRenderer sets the markdown renderer.
func WithRenderer(r *markdown.Renderer) Option {
	return func(i *Index) { i.loader.renderer = r }
}

// WithWorkers bounds concurrent file loads; n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(i *Index) { i.workers = n }
}

// WithDirFS replaces os.DirFS as the view of a content root used for walking.
func WithDirFS(open func(root string) fs.FS) Option {
	return func(i *Index) { i.dirFS = open }
}

// WithClock replaces time.Now for the midnight date fallback.
func WithClock(now func() time.Time) Option {
	return func(i *Index) { i.loader.now = now }
}

// NewIndex returns an Index over the configured content directories.
func NewIndex(cfg *config.Config, opts ...Option) *Index {
	idx := &Index{
		cfg:     cfg.Content,
		workers: cfg.Build.Workers,
		dirFS:   os.DirFS,
		loader: &loader{
			dates:    git.NoopLookup{},
			recorder: metrics.NoopRecorder{},
			logger:   slog.Default(),
			now:      time.Now,
		},
	}
	for _, opt := range opts {
		opt(idx)
	}
	if idx.loader.renderer == nil {
		idx.loader.renderer = markdown.New(markdown.Options{HighlightStyle: cfg.Markdown.HighlightStyle})
	}
	if idx.workers <= 0 {
		idx.workers = runtime.GOMAXPROCS(0)
	}
	return idx
}

// Posts returns every blog record, newest first.
func (i *Index) Posts(ctx context.Context) ([]Record, error) {
	recs, err := i.build(ctx, scopePosts, i.cfg.BlogDir, "", true)
	if err != nil {
		return nil, err
	}
	SortPosts(recs)
	return recs, nil
}

// Post resolves and loads a single blog record.
func (i *Index) Post(ctx context.Context, slug string) (*Record, error) {
	res, err := NewResolver(i.cfg.BlogDir, i.cfg.Locale).Resolve(slug)
	if err != nil {
		return nil, err
	}
	return i.loadResolved(ctx, res, "")
}

// Projects returns the records of one project category in listing order.
func (i *Index) Projects(ctx context.Context, category string) ([]Record, error) {
	if !i.cfg.HasCategory(category) {
		return nil, notFound("project category %q", category)
	}
	scope := "projects/" + category
	recs, err := i.build(ctx, scope, filepath.Join(i.cfg.ProjectsDir, category), category, false)
	if err != nil {
		return nil, err
	}
	SortProjects(recs)
	return recs, nil
}

// Project resolves and loads a single project.
func (i *Index) Project(ctx context.Context, category, id string) (*Record, error) {
	if !i.cfg.HasCategory(category) {
		return nil, notFound("project category %q", category)
	}
	res, err := NewResolver(filepath.Join(i.cfg.ProjectsDir, category), i.cfg.Locale).Resolve(id)
	if err != nil {
		return nil, err
	}
	return i.loadResolved(ctx, res, category)
}

// Lookup is what a blog path points at: one post, or a category listing.
type Lookup struct {
	Post        *Record  `json:"post,omitempty"`
	Category    string   `json:"category,omitempty"`
	Posts       []Record `json:"posts,omitempty"`
	Breadcrumbs []Crumb  `json:"breadcrumbs"`
}

// Lookup resolves path as a post first and as a category prefix second.
func (i *Index) Lookup(ctx context.Context, path string) (Lookup, error) {
	post, err := i.Post(ctx, path)
	if err == nil {
		return Lookup{Post: post, Breadcrumbs: Breadcrumbs(post.Slug)}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Lookup{}, err
	}

	posts, err := i.Posts(ctx)
	if err != nil {
		return Lookup{}, err
	}
	prefix := strings.Trim(DecodePath(path), "/")
	matched := FilterByCategory(posts, prefix)
	if prefix == "" || len(matched) == 0 {
		return Lookup{}, notFound("slug or category %q", path)
	}
	return Lookup{Category: prefix, Posts: matched, Breadcrumbs: Breadcrumbs(prefix)}, nil
}

func (i *Index) loadResolved(ctx context.Context, res Resolved, category string) (*Record, error) {
	rec, err := i.loader.load(ctx, source{
		Path:     res.Path,
		FileName: res.FileName,
		Slug:     res.Slug,
		Kind:     res.Kind,
		Locale:   res.Locale,
		Category: category,
	})
	if err != nil {
		i.loader.logger.Warn("Skipping unreadable content", logfields.Path(res.Path), logfields.Error(err))
		return nil, notFound("slug %q", res.Slug)
	}
	return rec, nil
}

// build collects, de-duplicates and loads the files of one scope.
func (i *Index) build(ctx context.Context, scope, root, category string, recursive bool) ([]Record, error) {
	start := time.Now()
	logger := i.loader.logger.With(logfields.Stage(scope))

	files, err := i.collect(root, recursive)
	if err != nil {
		return nil, err
	}
	files = i.dedupe(scope, files, logger)

	slots := make([]*Record, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)
	for n, f := range files {
		f.Category = category
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := i.loader.load(gctx, f)
			if err != nil {
				logger.Warn("Skipping unreadable content", logfields.Path(f.Path), logfields.Error(err))
				return nil
			}
			i.loader.recorder.IncFilesIndexed(scope, string(rec.Kind))
			slots[n] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recs := make([]Record, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			recs = append(recs, *r)
		}
	}

	elapsed := time.Since(start)
	i.loader.recorder.ObserveIndexDuration(scope, elapsed)
	logger.Debug("Indexed content",
		logfields.Path(root),
		logfields.Count(len(recs)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return recs, nil
}

// collect walks root in lexical order and returns the content files visible for the
// active locale. A missing root yields no files; unreadable entries are logged and
// skipped.
func (i *Index) collect(root string, recursive bool) ([]source, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		i.loader.logger.Debug("Content directory missing", logfields.Path(root))
		return nil, nil
	}

	var out []source
	err := fs.WalkDir(i.dirFS(root), ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			i.loader.logger.Warn("Skipping unreadable content path",
				logfields.Path(filepath.Join(root, filepath.FromSlash(name))),
				logfields.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if name == "." {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		p, ok := parseFileName(d.Name(), i.cfg.Locales)
		if !ok {
			return nil
		}
		if p.Locale != "" && p.Locale != i.cfg.Locale {
			i.loader.logger.Debug("Skipping other-locale file", logfields.Path(name), logfields.Locale(p.Locale))
			return nil
		}

		out = append(out, source{
			Path:     filepath.Join(root, filepath.FromSlash(name)),
			FileName: d.Name(),
			Slug:     joinSlug(norm.NFC.String(path.Dir(name)), p.Bare),
			Kind:     p.Kind,
			Locale:   p.Locale,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return out, nil
}

// dedupe keeps the first file for each slug.
func (i *Index) dedupe(scope string, files []source, logger *slog.Logger) []source {
	seen := make(map[string]string, len(files))
	out := files[:0]
	for _, f := range files {
		if first, dup := seen[f.Slug]; dup {
			i.loader.recorder.IncDuplicate(scope)
			logger.Info("Duplicate slug, keeping first file",
				logfields.Slug(f.Slug),
				logfields.File(f.FileName),
				slog.String("kept", first))
			continue
		}
		seen[f.Slug] = f.FileName
		out = append(out, f)
	}
	return out
}

// SortPosts orders records by creation date, newest first; ties by slug.
func SortPosts(recs []Record) {
	slices.SortStableFunc(recs, func(a, b Record) int {
		if c := b.Metadata.CreatedAt.Compare(a.Metadata.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}

// SortProjects orders records by numeric file name prefix, highest first. When either
// file lacks a prefix the file names are compared in reverse collation order.
func SortProjects(recs []Record) {
	col := collate.New(language.Und)
	slices.SortStableFunc(recs, func(a, b Record) int {
		pa, okA := NumericPrefix(a.SourceFileName)
		pb, okB := NumericPrefix(b.SourceFileName)
		if okA && okB {
			return cmp.Compare(pb, pa)
		}
		return col.CompareString(b.SourceFileName, a.SourceFileName)
	})
}
