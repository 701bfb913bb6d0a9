package content

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the display format for record dates.
const DateLayout = "2006-01-02"

var knownKeys = map[string]struct{}{
	"title": {}, "summary": {}, "image": {}, "createdAt": {}, "updatedAt": {},
	"school": {}, "work": {}, "employer": {}, "github": {}, "website": {}, "skills": {},
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// MetadataFromFields maps decoded front matter onto Metadata.
func MetadataFromFields(fields map[string]any) Metadata {
	m := Metadata{
		Title:   stringField(fields["title"]),
		Summary: stringField(fields["summary"]),
		Image:   stringField(fields["image"]),
		School:  stringField(fields["school"]),
		Work:    stringField(fields["work"]),
		GitHub:  stringField(fields["github"]),
		Website: stringField(fields["website"]),
		Skills:  ParseSkills(fields["skills"]),
		Extra:   map[string]any{},
	}
	if m.Work == "" {
		m.Work = stringField(fields["employer"])
	}
	if t, ok := ParseDate(fields["createdAt"]); ok {
		m.CreatedAt = t
	}
	if t, ok := ParseDate(fields["updatedAt"]); ok {
		m.UpdatedAt = t
	}
	for k, v := range fields {
		if _, known := knownKeys[k]; !known {
			m.Extra[k] = v
		}
	}
	return m
}

// ParseSkills accepts a comma separated string or a list and returns the trimmed,
// non-empty entries.
func ParseSkills(v any) []string {
	var parts []string
	switch s := v.(type) {
	case string:
		parts = strings.Split(s, ",")
	case []string:
		parts = s
	case []any:
		for _, item := range s {
			parts = append(parts, stringField(item))
		}
	default:
		return nil
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseDate accepts a time.Time (as decoded by YAML) or a string in one of the
// common date layouts.
func ParseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, !d.IsZero()
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// FormatDate renders t for display.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Midnight returns the start of the local day containing t.
func Midnight(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

func stringField(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}
