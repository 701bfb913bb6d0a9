package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/portfolio/internal/frontmatter"
	"git.home.luguber.info/inful/portfolio/internal/git"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/markdown"
	"git.home.luguber.info/inful/portfolio/internal/metrics"
	"git.home.luguber.info/inful/portfolio/internal/notebook"
)

// source is a file selected for loading.
type source struct {
	Path     string
	FileName string
	Slug     string
	Kind     Kind
	Locale   string
	Category string
}

type loader struct {
	renderer *markdown.Renderer
	dates    git.DateLookup
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// load reads, parses and renders one file. Front matter problems are logged and
// treated as empty metadata; unreadable files and invalid notebooks are errors.
func (l *loader) load(ctx context.Context, src source) (*Record, error) {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Path, err)
	}

	rec := &Record{
		Slug:           src.Slug,
		Category:       src.Category,
		Kind:           src.Kind,
		Locale:         src.Locale,
		SourceFileName: src.FileName,
		Path:           src.Path,
	}

	var fields map[string]any
	switch src.Kind {
	case KindNotebook:
		doc, err := notebook.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", src.Path, err)
		}
		if doc.FrontMatterErr != nil {
			l.warnFrontMatter(src, doc.FrontMatterErr)
		}
		rec.Notebook = doc
		fields = doc.Metadata
		rec.Fingerprint = Fingerprint(doc.FrontMatter, data)
	default:
		fm, err := frontmatter.Parse(data)
		if err != nil {
			l.warnFrontMatter(src, err)
		}
		html, err := l.renderer.Render(fm.Body)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", src.Path, err)
		}
		rec.HTML = html
		fields = fm.Fields
		rec.Fingerprint = Fingerprint(fm.Fields, fm.Body)
	}

	rec.Metadata = MetadataFromFields(fields)
	if rec.Metadata.Title == "" {
		rec.Metadata.Title = lastSegment(src.Slug)
	}
	if rec.Metadata.Title == "" {
		rec.Metadata.Title = "Untitled"
	}
	rec.Metadata.CreatedAt = l.date(ctx, src, "created", rec.Metadata.CreatedAt)
	rec.Metadata.UpdatedAt = l.date(ctx, src, "updated", rec.Metadata.UpdatedAt)
	return rec, nil
}

// date picks git history first, then today's midnight. Projects fall back to their
// front matter value before midnight.
func (l *loader) date(ctx context.Context, src source, field string, declared time.Time) time.Time {
	lookup := l.dates.Created
	if field == "updated" {
		lookup = l.dates.Updated
	}

	t, err := lookup(ctx, src.Path)
	if err != nil {
		l.logger.Debug("Git date lookup failed", logfields.Path(src.Path), slog.String("field", field), logfields.Error(err))
	}
	if err == nil && t != nil && !t.IsZero() {
		return *t
	}

	if src.Category != "" && !declared.IsZero() {
		l.recorder.IncDateFallback(field, metrics.FallbackFrontMatter)
		return declared
	}
	l.recorder.IncDateFallback(field, metrics.FallbackMidnight)
	return Midnight(l.now())
}

func (l *loader) warnFrontMatter(src source, err error) {
	l.recorder.IncFrontMatterWarning(string(src.Kind))
	l.logger.Warn("Malformed front matter, using empty metadata",
		logfields.Path(src.Path),
		logfields.Kind(string(src.Kind)),
		logfields.Error(err))
}
