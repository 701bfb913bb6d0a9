package git

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/portfolio/internal/logfields"
)

// DateLookup reports the first and latest commit dates of a file. A nil time with a
// nil error means the file has no history.
type DateLookup interface {
	Created(ctx context.Context, path string) (*time.Time, error)
	Updated(ctx context.Context, path string) (*time.Time, error)
}

// NoopLookup never finds any history.
type NoopLookup struct{}

func (NoopLookup) Created(context.Context, string) (*time.Time, error) { return nil, nil }
func (NoopLookup) Updated(context.Context, string) (*time.Time, error) { return nil, nil }

type fileDates struct {
	created, updated *time.Time
}

// History answers DateLookup queries from a repository's commit log. Results are
// cached per path; queries are serialized.
type History struct {
	repo *git.Repository
	root string

	mu    sync.Mutex
	cache map[string]fileDates
}

// OpenHistory opens the repository containing dir, searching parent directories.
func OpenHistory(dir string) (*History, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, classify(err, "open", dir)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, classify(err, "worktree", dir)
	}
	root, err := canonical(wt.Filesystem.Root())
	if err != nil {
		return nil, classify(err, "worktree", dir)
	}
	return &History{repo: repo, root: root, cache: map[string]fileDates{}}, nil
}

// NewLookup returns the commit date source for files below dirs. Each dir is opened
// separately so content roots living in different repositories (or outside any) keep
// working. Dirs that are not inside a repository are skipped; with none left, or when
// disabled, NoopLookup is returned.
func NewLookup(enabled bool, dirs ...string) DateLookup {
	if !enabled {
		return NoopLookup{}
	}
	var hs Histories
	seen := map[string]bool{}
	for _, dir := range dirs {
		h, err := OpenHistory(dir)
		if err != nil {
			slog.Debug("Git history unavailable, using fallback dates", logfields.Path(dir), logfields.Error(err))
			continue
		}
		if seen[h.root] {
			continue
		}
		seen[h.root] = true
		hs = append(hs, h)
	}
	switch len(hs) {
	case 0:
		return NoopLookup{}
	case 1:
		return hs[0]
	}
	// innermost worktree first
	slices.SortFunc(hs, func(a, b *History) int { return cmp.Compare(len(b.root), len(a.root)) })
	return hs
}

// Histories routes each path to the innermost repository containing it. Paths outside
// every repository have no dates.
type Histories []*History

func (hs Histories) Created(ctx context.Context, path string) (*time.Time, error) {
	if h := hs.owner(path); h != nil {
		return h.Created(ctx, path)
	}
	return nil, nil
}

func (hs Histories) Updated(ctx context.Context, path string) (*time.Time, error) {
	if h := hs.owner(path); h != nil {
		return h.Updated(ctx, path)
	}
	return nil, nil
}

func (hs Histories) owner(path string) *History {
	for _, h := range hs {
		if _, err := h.relative(path); err == nil {
			return h
		}
	}
	return nil
}

// Root is the worktree root.
func (h *History) Root() string { return h.root }

func (h *History) Created(ctx context.Context, path string) (*time.Time, error) {
	d, err := h.dates(ctx, path)
	return d.created, err
}

func (h *History) Updated(ctx context.Context, path string) (*time.Time, error) {
	d, err := h.dates(ctx, path)
	return d.updated, err
}

func (h *History) dates(ctx context.Context, path string) (fileDates, error) {
	rel, err := h.relative(path)
	if err != nil {
		return fileDates{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if d, ok := h.cache[rel]; ok {
		return d, nil
	}
	if err := ctx.Err(); err != nil {
		return fileDates{}, err
	}

	iter, err := h.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		return fileDates{}, classify(err, "log", rel)
	}
	defer iter.Close()

	var d fileDates
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		when := c.Author.When
		if d.created == nil || when.Before(*d.created) {
			t := when
			d.created = &t
		}
		if d.updated == nil || when.After(*d.updated) {
			t := when
			d.updated = &t
		}
		return nil
	})
	if err != nil {
		return fileDates{}, classify(err, "log", rel)
	}

	h.cache[rel] = d
	return d, nil
}

func (h *History) relative(path string) (string, error) {
	abs, err := canonical(path)
	if err != nil {
		return "", classify(err, "resolve", path)
	}
	rel, err := filepath.Rel(h.root, abs)
	if err != nil || rel == ".." || filepath.IsAbs(rel) || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRepository, path)
	}
	return filepath.ToSlash(rel), nil
}

// canonical returns an absolute path with symlinks resolved where possible.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
