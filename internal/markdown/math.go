package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMathInline and KindMathBlock identify math nodes.
var (
	KindMathInline = ast.NewNodeKind("MathInline")
	KindMathBlock  = ast.NewNodeKind("MathBlock")
)

// MathInline is `$...$` (or `$$...$$` on one line) inside a paragraph.
type MathInline struct {
	ast.BaseInline
	Display bool
	Literal []byte
}

func (n *MathInline) Kind() ast.NodeKind { return KindMathInline }

func (n *MathInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Literal": string(n.Literal)}, nil)
}

// MathBlock is a `$$` fenced block.
type MathBlock struct {
	ast.BaseBlock
}

func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }
func (n *MathBlock) IsRaw() bool        { return true }

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Math is a goldmark extension typesetting `$...$` and `$$...$$` as MathML wrapped in
// math-inline / math-display elements.
var Math goldmark.Extender = &mathExtension{}

type mathExtension struct{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 650)),
		parser.WithInlineParsers(util.Prioritized(&mathInlineParser{}, 150)),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(&mathRenderer{}, 150)))
}

type mathInlineParser struct{}

func (p *mathInlineParser) Trigger() []byte { return []byte{'$'} }

func (p *mathInlineParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	open := 0
	for open < len(line) && line[open] == '$' {
		open++
	}
	if open > 2 {
		return nil
	}
	rest := line[open:]
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '\\':
			i++
		case '$':
			j := i
			for j < len(rest) && rest[j] == '$' {
				j++
			}
			if j-i != open {
				i = j - 1
				continue
			}
			if i == 0 {
				return nil
			}
			block.Advance(open + i + open)
			return &MathInline{Display: open == 2, Literal: append([]byte(nil), rest[:i]...)}
		}
	}
	return nil
}

type mathBlockParser struct{}

func (b *mathBlockParser) Trigger() []byte { return []byte{'$'} }

func (b *mathBlockParser) Open(_ ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], []byte("$$")) {
		return nil, parser.NoChildren
	}
	if !util.IsBlank(line[pos+2:]) {
		return nil, parser.NoChildren
	}
	return &MathBlock{}, parser.NoChildren
}

func (b *mathBlockParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if bytes.Equal(util.TrimRightSpace(util.TrimLeftSpace(line)), []byte("$$")) {
		reader.Advance(segment.Len())
		return parser.Close
	}
	node.Lines().Append(segment)
	if segment.Len() > 0 {
		reader.Advance(segment.Len() - 1)
	}
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(ast.Node, text.Reader, parser.Context) {}
func (b *mathBlockParser) CanInterruptParagraph() bool             { return true }
func (b *mathBlockParser) CanAcceptIndentedLine() bool             { return false }

type mathRenderer struct{}

func (r *mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMathInline, r.renderInline)
	reg.Register(KindMathBlock, r.renderBlock)
}

func (r *mathRenderer) renderInline(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MathInline)
	class := "math math-inline"
	if n.Display {
		class = "math math-display"
	}
	_, _ = w.WriteString(`<span class="` + class + `">`)
	_, _ = w.WriteString(TeXToMathML(string(n.Literal), n.Display))
	_, _ = w.WriteString("</span>")
	return ast.WalkSkipChildren, nil
}

func (r *mathRenderer) renderBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var tex bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		tex.Write(seg.Value(source))
	}
	_, _ = w.WriteString(`<div class="math math-display">`)
	_, _ = w.WriteString(TeXToMathML(string(bytes.TrimRight(tex.Bytes(), "\n")), true))
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}
