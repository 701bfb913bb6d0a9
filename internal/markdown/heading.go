package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Slugify lower-cases s and collapses every run of characters that are neither
// letters nor digits into a single hyphen. Leading and trailing hyphens are dropped.
func Slugify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// headingIDs implements parser.IDs with a per-document collision counter.
type headingIDs struct {
	used map[string]struct{}
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: map[string]struct{}{}}
}

func (s *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	base := Slugify(string(value))
	if base == "" {
		base = "heading"
	}
	id := base
	for i := 1; ; i++ {
		if _, taken := s.used[id]; !taken {
			break
		}
		id = base + "-" + strconv.Itoa(i)
	}
	s.used[id] = struct{}{}
	return []byte(id)
}

func (s *headingIDs) Put(value []byte) {
	s.used[string(value)] = struct{}{}
}

// headingRenderer wraps heading content in a link to the heading itself.
type headingRenderer struct{}

func (r *headingRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
}

func (r *headingRenderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	id, hasID := headingID(n)
	if entering {
		_, _ = w.WriteString("<h")
		_ = w.WriteByte("0123456"[n.Level])
		if n.Attributes() != nil {
			html.RenderAttributes(w, node, html.HeadingAttributeFilter)
		}
		_ = w.WriteByte('>')
		if hasID {
			_, _ = w.WriteString(`<a class="heading-link" aria-hidden="true" href="#`)
			_, _ = w.Write(util.EscapeHTML(id))
			_, _ = w.WriteString(`">`)
		}
		return ast.WalkContinue, nil
	}
	if hasID {
		_, _ = w.WriteString("</a>")
	}
	_, _ = w.WriteString("</h")
	_ = w.WriteByte("0123456"[n.Level])
	_, _ = w.WriteString(">\n")
	return ast.WalkContinue, nil
}

func headingID(n *ast.Heading) ([]byte, bool) {
	v, ok := n.AttributeString("id")
	if !ok {
		return nil, false
	}
	id, ok := v.([]byte)
	return id, ok && len(id) > 0
}
