package content

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Supported file extensions, in resolution order.
const (
	ExtMarkdown = ".md"
	ExtNotebook = ".ipynb"
)

var extensions = []string{ExtMarkdown, ExtNotebook}

var numericPrefix = regexp.MustCompile(`^(\d+)\.`)

// StripNumericPrefix removes a leading `<digits>.` from name.
func StripNumericPrefix(name string) string {
	return numericPrefix.ReplaceAllString(name, "")
}

// NumericPrefix returns the value of a leading `<digits>.` in name.
func NumericPrefix(name string) (int, bool) {
	m := numericPrefix.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DecodePath percent-decodes s, returning s unchanged when it is not valid escaping.
func DecodePath(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func kindForExt(ext string) (Kind, bool) {
	switch ext {
	case ExtMarkdown:
		return KindMarkdown, true
	case ExtNotebook:
		return KindNotebook, true
	}
	return "", false
}

// parsedName is a content file name split into its parts.
type parsedName struct {
	Bare   string // numeric prefix, locale and extension removed
	Locale string
	Ext    string
	Kind   Kind
}

// parseFileName splits a file name. ok is false for unsupported extensions.
func parseFileName(name string, locales []string) (parsedName, bool) {
	for _, ext := range extensions {
		stem, found := strings.CutSuffix(name, ext)
		if !found || stem == "" {
			continue
		}
		kind, _ := kindForExt(ext)
		p := parsedName{Ext: ext, Kind: kind}
		stem, p.Locale = splitLocale(stem, locales)
		p.Bare = norm.NFC.String(StripNumericPrefix(stem))
		return p, true
	}
	return parsedName{}, false
}

// splitLocale removes a trailing `.<locale>` for any of the known locales.
func splitLocale(stem string, locales []string) (string, string) {
	for _, loc := range locales {
		if base, ok := strings.CutSuffix(stem, "."+loc); ok && base != "" {
			return base, loc
		}
	}
	return stem, ""
}

// joinSlug builds a slug from a slash-separated folder path and a bare name.
func joinSlug(dir, bare string) string {
	if dir == "" || dir == "." {
		return bare
	}
	return dir + "/" + bare
}

// lastSegment returns the part of slug after its final slash.
func lastSegment(slug string) string {
	if i := strings.LastIndexByte(slug, '/'); i >= 0 {
		return slug[i+1:]
	}
	return slug
}
