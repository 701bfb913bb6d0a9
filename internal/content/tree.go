package content

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/portfolio/internal/frontmatter"
	"git.home.luguber.info/inful/portfolio/internal/logfields"
	"git.home.luguber.info/inful/portfolio/internal/notebook"
)

// NodeType distinguishes tree folders from files.
type NodeType string

const (
	NodeFolder NodeType = "folder"
	NodeFile   NodeType = "file"
)

// TreeNode is a folder or file of the content tree.
type TreeNode struct {
	Type     NodeType   `json:"type"`
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Slug     string     `json:"slug,omitempty"`
	Title    string     `json:"title,omitempty"`
	Locale   string     `json:"locale,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// BuildTree returns the content tree below root for the active locale. Files with a
// different locale suffix are left out, and so are folders left without files.
// A missing root yields an empty tree.
func BuildTree(root, locale string, locales []string, logger *slog.Logger) []TreeNode {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return []TreeNode{}
	}
	return BuildTreeFS(os.DirFS(root), locale, locales, logger)
}

// BuildTreeFS builds the tree over fsys. Folders that cannot be read are logged and
// left out.
func BuildTreeFS(fsys fs.FS, locale string, locales []string, logger *slog.Logger) []TreeNode {
	if logger == nil {
		logger = slog.Default()
	}
	b := &treeBuilder{
		fsys:    fsys,
		locale:  locale,
		locales: locales,
		logger:  logger,
		col:     collate.New(language.Und),
		caser:   cases.Title(language.Und),
	}
	return b.build(".")
}

type treeBuilder struct {
	fsys    fs.FS
	locale  string
	locales []string
	logger  *slog.Logger
	col     *collate.Collator
	caser   cases.Caser
}

func (b *treeBuilder) build(dir string) []TreeNode {
	nodes := []TreeNode{}
	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		b.logger.Warn("Skipping unreadable folder", logfields.Path(dir), logfields.Error(err))
		return nodes
	}

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		itemPath := path.Join(dir, name)

		if e.IsDir() {
			if children := b.build(itemPath); len(children) > 0 {
				nodes = append(nodes, TreeNode{Type: NodeFolder, Name: name, Path: itemPath, Children: children})
			}
			continue
		}
		if !e.Type().IsRegular() {
			continue
		}

		p, ok := parseFileName(name, b.locales)
		if !ok || (p.Locale != "" && p.Locale != b.locale) {
			continue
		}
		title := b.readTitle(itemPath, p.Kind)
		if title == "" {
			title = b.deriveTitle(p.Bare)
		}
		nodes = append(nodes, TreeNode{
			Type:   NodeFile,
			Name:   name,
			Path:   itemPath,
			Slug:   joinSlug(norm.NFC.String(dir), p.Bare),
			Title:  title,
			Locale: p.Locale,
		})
	}

	slices.SortStableFunc(nodes, func(x, y TreeNode) int {
		if x.Type != y.Type {
			if x.Type == NodeFolder {
				return -1
			}
			return 1
		}
		return b.col.CompareString(x.Name, y.Name)
	})
	return nodes
}

// deriveTitle turns a bare file name into a display title.
func (b *treeBuilder) deriveTitle(bare string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(bare)
	return b.caser.String(strings.Join(strings.Fields(words), " "))
}

// readTitle returns the front matter title of a file, or "" when absent or unreadable.
func (b *treeBuilder) readTitle(name string, kind Kind) string {
	data, err := fs.ReadFile(b.fsys, name)
	if err != nil {
		return ""
	}
	if kind == KindNotebook {
		doc, err := notebook.Parse(data)
		if err != nil {
			return ""
		}
		return doc.Title()
	}
	fm, _ := frontmatter.Parse(data)
	return stringField(fm.Fields["title"])
}
