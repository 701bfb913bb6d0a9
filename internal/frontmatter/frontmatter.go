package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrInvalidYAML wraps YAML decoding failures of a delimited block.
var ErrInvalidYAML = errors.New("invalid yaml frontmatter")

// Document is the result of Parse.
type Document struct {
	Fields map[string]any // decoded block, never nil
	Raw    []byte         // block without delimiters
	Body   []byte
	Had    bool
}

// Split separates YAML front matter (`---` delimited) from the body.
//
// If the document does not start with a delimiter line, had is false and body is the
// full input. The closing delimiter may be the last line of the input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}
	if bytes.Equal(rest, []byte(delimiter)) {
		return []byte{}, []byte{}, true, nil
	}

	closeSeq := []byte(nl + delimiter + nl)
	if idx := bytes.Index(rest, closeSeq); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
	}

	tail := []byte(nl + delimiter)
	if bytes.HasSuffix(rest, tail) {
		return rest[:len(rest)-len(delimiter)], []byte{}, true, nil
	}
	return nil, nil, false, ErrMissingClosingDelimiter
}

// ParseYAML parses raw YAML front matter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Parse splits and decodes content in one step.
//
// On failure the returned Document still carries empty Fields and the unmodified
// content as Body, so callers may log the error and keep going.
func Parse(content []byte) (Document, error) {
	fallback := Document{Fields: map[string]any{}, Body: content}

	fm, body, had, err := Split(content)
	if err != nil {
		return fallback, err
	}
	if !had {
		return fallback, nil
	}

	fields, err := ParseYAML(fm)
	if err != nil {
		return fallback, err
	}
	return Document{Fields: fields, Raw: fm, Body: body, Had: true}, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
