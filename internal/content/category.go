package content

import (
	"slices"
	"strings"
)

// FilterByCategory returns the records whose slug equals prefix or lies below it.
// The prefix may be percent-encoded; an empty prefix matches everything.
func FilterByCategory(recs []Record, prefix string) []Record {
	prefix = strings.Trim(DecodePath(prefix), "/")
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if prefix == "" || r.Slug == prefix || strings.HasPrefix(r.Slug, prefix+"/") {
			out = append(out, r)
		}
	}
	return out
}

// Categories lists every folder path that contains at least one record, sorted.
func Categories(recs []Record) []string {
	seen := map[string]struct{}{}
	for _, r := range recs {
		parts := strings.Split(r.Slug, "/")
		for n := 1; n < len(parts); n++ {
			seen[strings.Join(parts[:n], "/")] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Crumb is one level of a breadcrumb trail.
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Breadcrumbs returns one crumb per slug segment with its cumulative path.
func Breadcrumbs(slug string) []Crumb {
	slug = strings.Trim(DecodePath(slug), "/")
	if slug == "" {
		return nil
	}
	parts := strings.Split(slug, "/")
	out := make([]Crumb, len(parts))
	for n, p := range parts {
		out[n] = Crumb{Name: p, Path: strings.Join(parts[:n+1], "/")}
	}
	return out
}

// CategoryPage is one page of a category listing.
type CategoryPage struct {
	Category    string  `json:"category"`
	Breadcrumbs []Crumb `json:"breadcrumbs"`
	Page[Record]
}

// CategoryListing returns page of the records below prefix. A prefix matching no
// record is ErrNotFound, and so is a page out of range.
func CategoryListing(recs []Record, prefix string, page, size int) (CategoryPage, error) {
	prefix = strings.Trim(DecodePath(prefix), "/")
	matched := FilterByCategory(recs, prefix)
	if prefix == "" || len(matched) == 0 {
		return CategoryPage{}, notFound("category %q", prefix)
	}
	p, err := Paginate(matched, page, size)
	if err != nil {
		return CategoryPage{}, err
	}
	return CategoryPage{Category: prefix, Breadcrumbs: Breadcrumbs(prefix), Page: p}, nil
}
