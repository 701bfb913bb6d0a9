package content

import (
	"encoding/json"
	"maps"
	"time"

	"git.home.luguber.info/inful/portfolio/internal/notebook"
)

// Kind is the source format of a record.
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindNotebook Kind = "notebook"
)

// Record is a post or project. HTML is set for markdown, Notebook for notebooks.
type Record struct {
	Slug        string             `json:"slug"`
	Category    string             `json:"category,omitempty"`
	Kind        Kind               `json:"kind"`
	Locale      string             `json:"locale,omitempty"`
	Metadata    Metadata           `json:"metadata"`
	HTML        string             `json:"html,omitempty"`
	Notebook    *notebook.Document `json:"notebook,omitempty"`
	Fingerprint string             `json:"fingerprint"`

	SourceFileName string `json:"-"`
	Path           string `json:"-"`
}

// ID is the project identifier, identical to the slug.
func (r Record) ID() string { return r.Slug }

// Metadata holds the well-known front matter fields. Anything else is kept in Extra.
type Metadata struct {
	Title     string
	Summary   string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
	School    string
	Work      string
	GitHub    string
	Website   string
	Skills    []string
	Extra     map[string]any
}

// MarshalJSON flattens Extra next to the well-known keys.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+11)
	maps.Copy(out, m.Extra)

	out["title"] = m.Title
	out["summary"] = m.Summary
	if !m.CreatedAt.IsZero() {
		out["createdAt"] = m.CreatedAt.Format(time.RFC3339)
	}
	if !m.UpdatedAt.IsZero() {
		out["updatedAt"] = m.UpdatedAt.Format(time.RFC3339)
	}
	optional := map[string]string{
		"image":   m.Image,
		"school":  m.School,
		"work":    m.Work,
		"github":  m.GitHub,
		"website": m.Website,
	}
	for k, v := range optional {
		if v != "" {
			out[k] = v
		}
	}
	if len(m.Skills) > 0 {
		out["skills"] = m.Skills
	}
	return json.Marshal(out)
}
