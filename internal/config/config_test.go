package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultBlogDir, cfg.Content.BlogDir)
	require.Equal(t, DefaultProjectsDir, cfg.Content.ProjectsDir)
	require.Equal(t, DefaultLocale, cfg.Content.Locale)
	require.Equal(t, []string{DefaultLocale}, cfg.Content.Locales)
	require.Equal(t, DefaultPageSize, cfg.Content.PageSize)
	require.Equal(t, []string{CategoryPersonals, CategoryProfessionals, CategorySchools}, cfg.Content.Categories)
	require.Equal(t, DefaultHighlightStyle, cfg.Markdown.HighlightStyle)
	require.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
}

func TestLoad_ParsesFileAndExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORTFOLIO_OUT", "public")

	path := filepath.Join(dir, "portfolio.yaml")
	data := `
content:
  blog_dir: posts
  locale: EN
  locales: [ko]
  page_size: 5
output:
  directory: ${PORTFOLIO_OUT}
logging:
  level: WARNING
  format: json
profile:
  name: Jane Doe
  skills: [Go, Python]
  contact:
    social:
      - name: GitHub
        url: https://github.com/jane
        navbar: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "posts", cfg.Content.BlogDir)
	require.Equal(t, "en", cfg.Content.Locale)
	require.Equal(t, []string{"ko", "en"}, cfg.Content.Locales)
	require.Equal(t, 5, cfg.Content.PageSize)
	require.Equal(t, "public", cfg.Output.Directory)
	require.Equal(t, LogLevelWarn, cfg.Logging.Level)
	require.Equal(t, LogFormatJSON, cfg.Logging.Format)
	require.Equal(t, "Jane Doe", cfg.Profile.Name)
	require.Equal(t, []string{"Go", "Python"}, cfg.Profile.Skills)
	require.Len(t, cfg.Profile.Contact.Social, 1)
	require.True(t, cfg.Profile.Contact.Social[0].Navbar)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORTFOLIO_STYLE", "dracula")
	require.NoError(t, os.WriteFile(".env", []byte("PORTFOLIO_STYLE=github\nPORTFOLIO_DIR=notes\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PORTFOLIO_DIR") })

	path := filepath.Join(dir, "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("markdown:\n  highlight_style: ${PORTFOLIO_STYLE}\ncontent:\n  blog_dir: ${PORTFOLIO_DIR}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dracula", cfg.Markdown.HighlightStyle)
	require.Equal(t, "notes", cfg.Content.BlogDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content: [unterminated"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative page size", func(c *Config) { c.Content.PageSize = -1 }, "page_size"},
		{"bad locale", func(c *Config) { c.Content.Locales = append(c.Content.Locales, "Korean!") }, "invalid locale"},
		{"slash in category", func(c *Config) { c.Content.Categories = []string{"a/b"} }, "invalid category"},
		{"empty category", func(c *Config) { c.Content.Categories = []string{" "} }, "invalid category"},
		{"duplicate category", func(c *Config) { c.Content.Categories = []string{"x", "x"} }, "duplicate category"},
		{"same dirs", func(c *Config) { c.Content.ProjectsDir = c.Content.BlogDir }, "must differ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
			require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
		})
	}

	require.NoError(t, Validate(Default()))
}

func TestContentConfig_HasCategory(t *testing.T) {
	cfg := Default()
	require.True(t, cfg.Content.HasCategory(CategorySchools))
	require.False(t, cfg.Content.HasCategory("hobbies"))
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := LoggingConfig{Level: LogLevelError, Format: LogFormatJSON}
	require.Equal(t, slog.LevelDebug, l.SlogLevel(true))
	require.Equal(t, slog.LevelError, l.SlogLevel(false))

	logger := l.NewLogger(&buf, false)
	logger.Info("hidden")
	logger.Error("shown", "k", "v")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
}
