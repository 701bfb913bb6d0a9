package content

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Resolved is a file found for a slug.
type Resolved struct {
	Path     string
	FileName string
	Kind     Kind
	Locale   string
	Slug     string // canonical slug: folder path plus bare name
}

// Resolver maps slugs to files below a root directory.
type Resolver struct {
	root   string
	locale string
}

// NewResolver returns a Resolver over root. Files carrying the active locale suffix
// resolve under their bare name.
func NewResolver(root, locale string) *Resolver {
	return &Resolver{root: root, locale: locale}
}

// Resolve finds the file for id. For each extension in order (.md, .ipynb) it tries
// `<bare><ext>` first, then scans the directory for a file whose name without numeric
// prefix, active locale and extension equals the bare name.
func (r *Resolver) Resolve(id string) (Resolved, error) {
	id = strings.Trim(DecodePath(id), "/")
	if id == "" {
		return Resolved{}, notFound("empty slug")
	}
	segments := strings.Split(id, "/")
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsRune(seg, '\\') {
			return Resolved{}, notFound("slug %q", id)
		}
	}

	dirParts := segments[:len(segments)-1]
	dir := filepath.Join(append([]string{r.root}, dirParts...)...)
	bare := norm.NFC.String(StripNumericPrefix(segments[len(segments)-1]))
	slug := joinSlug(strings.Join(dirParts, "/"), bare)

	entries, _ := os.ReadDir(dir)

	for _, ext := range extensions {
		kind, _ := kindForExt(ext)

		exact := filepath.Join(dir, bare+ext)
		if info, err := os.Stat(exact); err == nil && info.Mode().IsRegular() {
			return Resolved{Path: exact, FileName: bare + ext, Kind: kind, Slug: slug}, nil
		}

		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != ext {
				continue
			}
			p, ok := parseFileName(e.Name(), r.activeLocales())
			if !ok || p.Bare != bare {
				continue
			}
			return Resolved{
				Path:     filepath.Join(dir, e.Name()),
				FileName: e.Name(),
				Kind:     kind,
				Locale:   p.Locale,
				Slug:     slug,
			}, nil
		}
	}
	return Resolved{}, notFound("slug %q", id)
}

func (r *Resolver) activeLocales() []string {
	if r.locale == "" {
		return nil
	}
	return []string{r.locale}
}
