package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/portfolio/internal/metrics"
	"git.home.luguber.info/inful/portfolio/internal/notebook"
)

func day(d int) time.Time { return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC) }

func TestPosts_SortedByCreatedAtNotFileName(t *testing.T) {
	cfg, _ := testConfig(t)
	intro := writeFile(t, filepath.Join(cfg.Content.BlogDir, "python", "00.intro.md"), md("Intro"))
	setup := writeFile(t, filepath.Join(cfg.Content.BlogDir, "python", "01.setup.md"), md("Setup"))
	top := writeFile(t, filepath.Join(cfg.Content.BlogDir, "hello.md"), md("Hello"))

	dates := fakeDates{
		created: map[string]time.Time{intro: day(20), setup: day(3), top: day(10)},
		updated: map[string]time.Time{intro: day(21), setup: day(4), top: day(10)},
	}
	idx := NewIndex(cfg, WithDateLookup(dates), WithClock(func() time.Time { return fixedNow }))

	posts, err := idx.Posts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"python/intro", "hello", "python/setup"}, slugs(posts))
	require.True(t, posts[0].Metadata.UpdatedAt.Equal(day(21)))
	require.Equal(t, "00.intro.md", posts[0].SourceFileName)
	require.Contains(t, posts[0].HTML, `<h1 id="body">`)
	require.NotEmpty(t, posts[0].Fingerprint)
}

func TestProjects_SortedByPrefixDescending(t *testing.T) {
	cfg, _ := testConfig(t)
	dir := filepath.Join(cfg.Content.ProjectsDir, "personals")
	writeFile(t, filepath.Join(dir, "00.alpha.md"), md("Alpha"))
	writeFile(t, filepath.Join(dir, "01.beta.md"), "---\ntitle: Beta\nskills: Go, SQL\nemployer: ACME\n---\nx\n")
	writeFile(t, filepath.Join(dir, "nested", "02.ignored.md"), md("Nested"))

	idx := NewIndex(cfg)
	projects, err := idx.Projects(context.Background(), "personals")
	require.NoError(t, err)
	require.Equal(t, []string{"beta", "alpha"}, slugs(projects))
	require.Equal(t, "beta", projects[0].ID())
	require.Equal(t, "personals", projects[0].Category)
	require.Equal(t, []string{"Go", "SQL"}, projects[0].Metadata.Skills)
	require.Equal(t, "ACME", projects[0].Metadata.Work)
}

func TestSortProjects_WithoutPrefix(t *testing.T) {
	list := []Record{
		{Slug: "apple", SourceFileName: "apple.md"},
		{Slug: "cherry", SourceFileName: "cherry.md"},
		{Slug: "banana", SourceFileName: "banana.md"},
	}
	SortProjects(list)
	require.Equal(t, []string{"cherry", "banana", "apple"}, slugs(list))
}

func TestProjects_TitleFallbackAndUnknownCategory(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.ProjectsDir, "schools", "03.thesis.md"), "no front matter\n")

	idx := NewIndex(cfg)
	projects, err := idx.Projects(context.Background(), "schools")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "thesis", projects[0].Metadata.Title)
	require.Empty(t, projects[0].Metadata.Summary)

	_, err = idx.Projects(context.Background(), "hobbies")
	require.ErrorIs(t, err, ErrNotFound)

	empty, err := idx.Projects(context.Background(), "professionals")
	require.NoError(t, err)
	require.Empty(t, empty)

	p, err := idx.Project(context.Background(), "schools", "thesis")
	require.NoError(t, err)
	require.Equal(t, "thesis", p.Slug)

	_, err = idx.Project(context.Background(), "schools", "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPosts_DuplicateSlugsKeepFirst(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "go", "01.intro.md"), md("First"))
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "go", "02.intro.md"), md("Second"))
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "go", "intro.ko.md"), md("Third"))
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "go", "other.md"), md("Other"))

	rec := newCountingRecorder()
	posts, err := NewIndex(cfg, WithRecorder(rec)).Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	bySlug := map[string]Record{}
	for _, p := range posts {
		_, dup := bySlug[p.Slug]
		require.False(t, dup, p.Slug)
		bySlug[p.Slug] = p
	}
	require.Equal(t, "First", bySlug["go/intro"].Metadata.Title)
	require.Equal(t, 2, rec.duplicates)
	require.Equal(t, 2, rec.indexed["posts/markdown"])
	require.Equal(t, []string{"posts"}, rec.indexScopes)
}

func TestPosts_LocaleAndHiddenFiltering(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "01.hello.ko.md"), md("Korean"))
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "02.bye.en.md"), md("English"))
	writeFile(t, filepath.Join(cfg.Content.BlogDir, ".hidden.md"), md("Hidden"))
	writeFile(t, filepath.Join(cfg.Content.BlogDir, ".git", "x.md"), md("Git"))
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "image.png"), "png")

	posts, err := NewIndex(cfg).Posts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"hello"}, slugs(posts))
	require.Equal(t, "ko", posts[0].Locale)

	cfg.Content.Locale = "en"
	posts, err = NewIndex(cfg).Posts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"bye"}, slugs(posts))
}

func TestPosts_NotebookFrontMatterRoundTrip(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "ai", "57.model.ipynb"), `{
  "metadata": {"title": "Meta title", "summary": "from metadata"},
  "cells": [
    {"cell_type": "code", "source": "x = 1", "outputs": [], "execution_count": 1},
    {"cell_type": "markdown", "source": ["---\n", "title: Model Measurement\n", "---\n", "Intro text\n"]}
  ]
}`)

	posts, err := NewIndex(cfg).Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)

	p := posts[0]
	require.Equal(t, "ai/model", p.Slug)
	require.Equal(t, KindNotebook, p.Kind)
	require.Empty(t, p.HTML)
	require.Equal(t, "Model Measurement", p.Metadata.Title)
	require.Equal(t, "from metadata", p.Metadata.Summary)
	require.NotNil(t, p.Notebook)
	require.Equal(t, "Intro text\n", p.Notebook.Cells[1].Source.String())
	require.False(t, strings.Contains(p.Notebook.Cells[1].Source.String(), "---"))
}

func TestPosts_InvalidNotebookSkipped(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "broken.ipynb"), "{not json")
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "ok.md"), md("OK"))

	idx := NewIndex(cfg)
	posts, err := idx.Posts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"ok"}, slugs(posts))

	_, err = idx.Post(context.Background(), "broken")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPosts_NotebookWithMalformedOutputsIsListed(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "nb.ipynb"), `{
  "metadata": {},
  "cells": [
    {"cell_type": "markdown", "source": "---\ntitle: Notebook\n---\n"},
    {"cell_type": "code", "source": "1/0", "outputs": [{"output_type": "error", "traceback": "str"}, "garbage"]}
  ]
}`)

	idx := NewIndex(cfg)
	posts, err := idx.Posts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"nb"}, slugs(posts))

	rec, err := idx.Post(context.Background(), "nb")
	require.NoError(t, err)
	require.Equal(t, "Notebook", rec.Metadata.Title)
	require.Len(t, rec.Notebook.Cells[1].Outputs, 2)
	for _, o := range rec.Notebook.Cells[1].Outputs {
		require.Equal(t, notebook.RenderNone, o.Rendering.Kind)
	}
}

func TestPosts_MalformedFrontMatterIsWarning(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "bad.md"), "---\ntitle: [oops\n---\nbody\n")

	rec := newCountingRecorder()
	posts, err := NewIndex(cfg, WithRecorder(rec)).Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "bad", posts[0].Metadata.Title)
	require.Contains(t, posts[0].HTML, "body")
	require.Equal(t, 1, rec.fmWarnings)
}

func TestPosts_DateFallbacks(t *testing.T) {
	cfg, _ := testConfig(t)
	declared := writeFile(t, filepath.Join(cfg.Content.BlogDir, "declared.md"), "---\ntitle: D\ncreatedAt: 2001-01-01\n---\n")
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "plain.md"), md("P"))

	rec := newCountingRecorder()
	dates := fakeDates{updated: map[string]time.Time{declared: day(5)}}
	idx := NewIndex(cfg, WithDateLookup(dates), WithRecorder(rec), WithClock(func() time.Time { return fixedNow }))

	posts, err := idx.Posts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"declared", "plain"}, slugs(posts))

	decl, plain := posts[0], posts[1]
	require.True(t, decl.Metadata.CreatedAt.Equal(Midnight(fixedNow)), "front matter date is ignored for posts")
	require.True(t, decl.Metadata.UpdatedAt.Equal(day(5)))
	require.True(t, plain.Metadata.CreatedAt.Equal(Midnight(fixedNow)))
	require.True(t, plain.Metadata.UpdatedAt.Equal(Midnight(fixedNow)))

	require.Zero(t, rec.fallbacks["created/"+metrics.FallbackFrontMatter])
	require.Equal(t, 2, rec.fallbacks["created/"+metrics.FallbackMidnight])
	require.Equal(t, 1, rec.fallbacks["updated/"+metrics.FallbackMidnight])
}

func TestProjects_DateFallbacks(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.ProjectsDir, "personals", "site.md"), "---\ntitle: S\ncreatedAt: 2021-06-01\n---\n")
	writeFile(t, filepath.Join(cfg.Content.ProjectsDir, "personals", "tool.md"), md("T"))

	rec := newCountingRecorder()
	idx := NewIndex(cfg, WithRecorder(rec), WithClock(func() time.Time { return fixedNow }))

	projects, err := idx.Projects(context.Background(), "personals")
	require.NoError(t, err)
	byslug := map[string]Record{}
	for _, p := range projects {
		byslug[p.Slug] = p
	}
	require.Equal(t, "2021-06-01", FormatDate(byslug["site"].Metadata.CreatedAt))
	require.True(t, byslug["tool"].Metadata.CreatedAt.Equal(Midnight(fixedNow)))
	require.Equal(t, 1, rec.fallbacks["created/"+metrics.FallbackFrontMatter])
	require.Equal(t, 1, rec.fallbacks["created/"+metrics.FallbackMidnight])
}

func TestPosts_UnreadableFolderIsSkipped(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "python", "intro.md"), md("Intro"))
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "locked", "secret.md"), md("Secret"))

	idx := NewIndex(cfg, WithLogger(discardLogger()), WithDirFS(func(root string) fs.FS {
		return unreadableDirFS{FS: os.DirFS(root), dir: "locked"}
	}))
	posts, err := idx.Posts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"python/intro"}, slugs(posts))

	idx = NewIndex(cfg, WithLogger(discardLogger()), WithDirFS(func(root string) fs.FS {
		return unreadableDirFS{FS: os.DirFS(root), dir: "."}
	}))
	posts, err = idx.Posts(context.Background())
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestPosts_GitFailureFallsBack(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "a.md"), md("A"))

	idx := NewIndex(cfg, WithDateLookup(fakeDates{err: errors.New("boom")}), WithClock(func() time.Time { return fixedNow }))
	posts, err := idx.Posts(context.Background())
	require.NoError(t, err)
	require.True(t, posts[0].Metadata.CreatedAt.Equal(Midnight(fixedNow)))
}

func TestPost_PrefixedAndUnprefixedAgree(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "python", "00.intro.md"), md("Intro"))

	idx := NewIndex(cfg)
	a, err := idx.Post(context.Background(), "python/intro")
	require.NoError(t, err)
	b, err := idx.Post(context.Background(), "python/00.intro")
	require.NoError(t, err)
	require.Equal(t, "python/intro", a.Slug)
	require.Equal(t, a.Slug, b.Slug)
	require.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestLookup(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "ai", "intro.md"), md("AI"))
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "aiml", "post.md"), md("ML"))

	idx := NewIndex(cfg)
	ctx := context.Background()

	l, err := idx.Lookup(ctx, "ai/intro")
	require.NoError(t, err)
	require.NotNil(t, l.Post)
	require.Equal(t, []Crumb{{Name: "ai", Path: "ai"}, {Name: "intro", Path: "ai/intro"}}, l.Breadcrumbs)

	l, err = idx.Lookup(ctx, "ai")
	require.NoError(t, err)
	require.Nil(t, l.Post)
	require.Equal(t, "ai", l.Category)
	require.Equal(t, []string{"ai/intro"}, slugs(l.Posts))
	require.Equal(t, []Crumb{{Name: "ai", Path: "ai"}}, l.Breadcrumbs)

	_, err = idx.Lookup(ctx, "nothing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPosts_CanceledContext(t *testing.T) {
	cfg, _ := testConfig(t)
	writeFile(t, filepath.Join(cfg.Content.BlogDir, "a.md"), md("A"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewIndex(cfg).Posts(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPosts_MissingBlogDir(t *testing.T) {
	cfg, _ := testConfig(t)
	posts, err := NewIndex(cfg).Posts(context.Background())
	require.NoError(t, err)
	require.Empty(t, posts)
}
