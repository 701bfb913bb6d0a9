// Package markdown renders post and project bodies to HTML.
//
// The pipeline is fixed: GFM, math, heading ids with self links, and fenced code
// highlighted with chroma. Raw HTML in the source is omitted.
package markdown

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// DefaultStyle is the chroma style used when Options.HighlightStyle is empty.
const DefaultStyle = "monokai"

// Options controls the renderer.
type Options struct {
	HighlightStyle string
}

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md        goldmark.Markdown
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New builds a Renderer. Unknown style names fall back to chroma's default style.
func New(opts Options) *Renderer {
	name := opts.HighlightStyle
	if name == "" {
		name = DefaultStyle
	}
	r := &Renderer{
		style:     styles.Get(name),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
	r.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM, Math),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(&headingRenderer{}, 100),
				util.Prioritized(&codeRenderer{style: r.style, formatter: r.formatter}, 100),
			),
		),
	)
	return r
}

// Render converts body to HTML. Heading ids are unique within one call.
func (r *Renderer) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := r.md.Convert(body, &buf, parser.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// StyleName reports the chroma style in use.
func (r *Renderer) StyleName() string { return r.style.Name }

// WriteCSS writes the stylesheet matching the class names emitted for code blocks.
func (r *Renderer) WriteCSS(w io.Writer) error {
	return r.formatter.WriteCSS(w, r.style)
}
