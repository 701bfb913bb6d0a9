package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/portfolio/internal/frontmatter"
)

// ErrInvalidNotebook is returned when the input is not notebook JSON.
var ErrInvalidNotebook = errors.New("invalid notebook")

type rawNotebook struct {
	Cells    []json.RawMessage `json:"cells"`
	Metadata json.RawMessage   `json:"metadata"`
}

type rawCell struct {
	Type           string            `json:"cell_type"`
	Source         MultilineString   `json:"source"`
	Outputs        []json.RawMessage `json:"outputs"`
	ExecutionCount json.RawMessage   `json:"execution_count"`
	Metadata       json.RawMessage   `json:"metadata"`
}

// Parse decodes notebook JSON.
//
// Only the top level has to be well formed. A cell that cannot be decoded is dropped,
// an output record that cannot be decoded becomes an empty output classified as
// RenderNone, and malformed metadata objects are treated as empty. Every output gets
// its Rendering. The first markdown cell is checked for a front matter block; when
// present it is stripped from that cell and overlaid onto the notebook metadata. A
// malformed block leaves the cell untouched and is reported through FrontMatterErr.
func Parse(data []byte) (*Document, error) {
	var raw rawNotebook
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNotebook, err)
	}

	doc := &Document{
		Cells:    make([]Cell, 0, len(raw.Cells)),
		Metadata: map[string]any{},
	}
	maps.Copy(doc.Metadata, decodeObject(raw.Metadata))

	for _, rc := range raw.Cells {
		var c rawCell
		if err := json.Unmarshal(rc, &c); err != nil {
			continue
		}
		cell := Cell{
			Type:           c.Type,
			Source:         c.Source,
			Outputs:        make([]Output, 0, len(c.Outputs)),
			ExecutionCount: decodeCount(c.ExecutionCount),
			Metadata:       decodeObject(c.Metadata),
		}
		for _, ro := range c.Outputs {
			var o Output
			if err := json.Unmarshal(ro, &o); err != nil {
				o = Output{}
			}
			o.Rendering = Classify(o)
			cell.Outputs = append(cell.Outputs, o)
		}
		doc.Cells = append(doc.Cells, cell)
	}

	doc.extractFrontMatter()
	maps.Copy(doc.Metadata, doc.FrontMatter)
	return doc, nil
}

func decodeObject(raw json.RawMessage) map[string]any {
	var m map[string]any
	if len(raw) == 0 || json.Unmarshal(raw, &m) != nil {
		return nil
	}
	return m
}

func decodeCount(raw json.RawMessage) *int {
	var n int
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, &n) != nil {
		return nil
	}
	return &n
}

func (d *Document) extractFrontMatter() {
	d.FrontMatter = map[string]any{}
	for i := range d.Cells {
		if d.Cells[i].Type != CellMarkdown {
			continue
		}
		src := strings.TrimLeftFunc(string(d.Cells[i].Source), unicode.IsSpace)
		if !strings.HasPrefix(src, "---") {
			return
		}
		fm, err := frontmatter.Parse([]byte(src))
		if err != nil {
			d.FrontMatterErr = err
			return
		}
		if fm.Had {
			d.FrontMatter = fm.Fields
			d.Cells[i].Source = MultilineString(fm.Body)
		}
		return
	}
}

// Title returns the merged metadata title, or "".
func (d *Document) Title() string {
	if s, ok := d.Metadata["title"].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
