// Package commands implements the portfolio CLI subcommands.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/portfolio/internal/config"
	"git.home.luguber.info/inful/portfolio/internal/content"
	derrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/git"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/markdown"
	"git.home.luguber.info/inful/portfolio/internal/metrics"
)

// Global holds values shared by every command.
type Global struct {
	Ctx    context.Context
	Logger *slog.Logger
	Stdout io.Writer
}

// CLI is the root command.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"portfolio.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Index    IndexCmd    `cmd:"" help:"Build the content index and export it as JSON"`
	Show     ShowCmd     `cmd:"" help:"Print one post, category or project as JSON"`
	Tree     TreeCmd     `cmd:"" help:"Print the blog content tree as JSON"`
	Category CategoryCmd `cmd:"" help:"Print one page of a blog category listing"`
}

// AfterApply installs a stderr logger before any command runs.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// session is the per-run state a command works with.
type session struct {
	ctx      context.Context
	cfg      *config.Config
	logger   *slog.Logger
	stdout   io.Writer
	renderer *markdown.Renderer
}

func (c *CLI) open(g *Global) (*session, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		if derrors.IsClassified(err) {
			return nil, err
		}
		return nil, derrors.ConfigError("failed to load configuration").
			WithCause(err).
			WithContext("path", c.Config).
			Build()
	}

	logger := cfg.Logging.NewLogger(os.Stderr, c.Verbose)
	if g != nil && g.Logger != nil {
		logger = g.Logger
	}
	logger = logger.With(logfields.BuildID(uuid.NewString()))

	s := &session{
		ctx:      context.Background(),
		cfg:      cfg,
		logger:   logger,
		stdout:   os.Stdout,
		renderer: markdown.New(markdown.Options{HighlightStyle: cfg.Markdown.HighlightStyle}),
	}
	if g != nil && g.Ctx != nil {
		s.ctx = g.Ctx
	}
	if g != nil && g.Stdout != nil {
		s.stdout = g.Stdout
	}
	return s, nil
}

func (s *session) index(recorder metrics.Recorder) *content.Index {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return content.NewIndex(s.cfg,
		content.WithDateLookup(git.NewLookup(!s.cfg.Build.DisableGitDates,
			s.cfg.Content.BlogDir, s.cfg.Content.ProjectsDir, ".")),
		content.WithRenderer(s.renderer),
		content.WithRecorder(recorder),
		content.WithLogger(s.logger),
	)
}

func (s *session) print(v any) error {
	enc := json.NewEncoder(s.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// classify maps content lookups that found nothing onto the NotFound exit code.
func classify(err error, key, value string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, content.ErrNotFound) {
		return derrors.NotFoundError(err.Error()).
			WithCause(err).
			WithContext(key, value).
			Build()
	}
	if derrors.IsClassified(err) {
		return err
	}
	return derrors.ContentError("content pipeline failed").WithCause(err).Build()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return derrors.FileSystemError("failed to create output directory").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return derrors.FileSystemError("failed to write output file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
