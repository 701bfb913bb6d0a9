package content

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/portfolio/internal/config"
)

var fixedNow = time.Date(2025, 5, 17, 15, 4, 5, 0, time.Local)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Content.BlogDir = filepath.Join(dir, "content")
	cfg.Content.ProjectsDir = filepath.Join(dir, "projects")
	cfg.Content.Locales = []string{"ko", "en"}
	cfg.Build.Workers = 4
	return cfg, dir
}

func md(title string) string {
	if title == "" {
		return "# Body\n"
	}
	return "---\ntitle: " + title + "\n---\n# Body\n"
}

// fakeDates serves fixed dates per absolute path.
type fakeDates struct {
	created map[string]time.Time
	updated map[string]time.Time
	err     error
}

func (f fakeDates) Created(_ context.Context, path string) (*time.Time, error) {
	return f.lookup(f.created, path)
}

func (f fakeDates) Updated(_ context.Context, path string) (*time.Time, error) {
	return f.lookup(f.updated, path)
}

func (f fakeDates) lookup(m map[string]time.Time, path string) (*time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := m[path]; ok {
		return &t, nil
	}
	return nil, nil
}

// countingRecorder captures metric calls.
type countingRecorder struct {
	mu          sync.Mutex
	indexed     map[string]int
	duplicates  int
	fallbacks   map[string]int
	fmWarnings  int
	indexScopes []string
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{indexed: map[string]int{}, fallbacks: map[string]int{}}
}

func (c *countingRecorder) IncFilesIndexed(scope, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexed[scope+"/"+kind]++
}

func (c *countingRecorder) IncDuplicate(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duplicates++
}

func (c *countingRecorder) IncDateFallback(field, source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallbacks[field+"/"+source]++
}

func (c *countingRecorder) IncFrontMatterWarning(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fmWarnings++
}

func (c *countingRecorder) ObserveIndexDuration(scope string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexScopes = append(c.indexScopes, scope)
}

func (c *countingRecorder) ObserveBuildDuration(time.Duration) {}

func slugs(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Slug
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// unreadableDirFS fails ReadDir for one directory of the wrapped file system.
type unreadableDirFS struct {
	fs.FS
	dir string
}

func (u unreadableDirFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name == u.dir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrPermission}
	}
	return fs.ReadDir(u.FS, name)
}
