package notebook

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Cell types.
const (
	CellCode     = "code"
	CellMarkdown = "markdown"
	CellRaw      = "raw"
)

// Output types.
const (
	OutputStream        = "stream"
	OutputError         = "error"
	OutputExecuteResult = "execute_result"
	OutputDisplayData   = "display_data"
)

// Document is a notebook with normalized cells and merged metadata.
type Document struct {
	Cells    []Cell         `json:"cells"`
	Metadata map[string]any `json:"metadata"`

	// FrontMatter holds the block lifted from the first markdown cell, if any.
	FrontMatter map[string]any `json:"-"`
	// FrontMatterErr is set when that block could not be decoded.
	FrontMatterErr error `json:"-"`
}

// Cell is one notebook cell.
type Cell struct {
	Type           string          `json:"cell_type"`
	Source         MultilineString `json:"source"`
	Outputs        []Output        `json:"outputs"`
	ExecutionCount *int            `json:"execution_count"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
}

// Output is a tagged union over stream, error and rich results; OutputType selects
// which fields are meaningful.
type Output struct {
	OutputType     string                     `json:"output_type"`
	Name           string                     `json:"name,omitempty"`
	Text           MultilineString            `json:"text,omitempty"`
	EName          string                     `json:"ename,omitempty"`
	EValue         string                     `json:"evalue,omitempty"`
	Traceback      []string                   `json:"traceback,omitempty"`
	Data           map[string]MultilineString `json:"data,omitempty"`
	ExecutionCount *int                       `json:"execution_count,omitempty"`

	// Rendering is filled in by Parse from the fields above.
	Rendering Rendering `json:"rendering"`
}

// MultilineString decodes a JSON string, an array of strings joined with no
// separator, or null. Other JSON values are kept as their raw text.
type MultilineString string

func (m *MultilineString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*m = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = MultilineString(s)
		return nil
	case data[0] == '[':
		var parts []string
		if err := json.Unmarshal(data, &parts); err == nil {
			*m = MultilineString(strings.Join(parts, ""))
			return nil
		}
	}
	*m = MultilineString(data)
	return nil
}

func (m MultilineString) String() string { return string(m) }
