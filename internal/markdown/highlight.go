package markdown

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// codeRenderer highlights fenced code blocks with chroma.
type codeRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *codeRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	lang := ""
	if l := n.Language(source); l != nil {
		lang = string(l)
	}
	if err := r.highlight(w, lang, code.String()); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

func (r *codeRenderer) highlight(w util.BufWriter, lang, code string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return err
	}

	lines := chroma.SplitTokensIntoLines(it.Tokens())
	tokens := make([]chroma.Token, 0, len(lines)*4)
	for _, line := range lines {
		if blankLine(line) {
			tokens = append(tokens, chroma.Token{Type: chroma.Text, Value: " "})
		}
		tokens = append(tokens, line...)
	}

	if lang != "" {
		_, _ = w.WriteString(`<div class="code-block" data-language="`)
		_, _ = w.Write(util.EscapeHTML([]byte(lang)))
		_, _ = w.WriteString(`">`)
	} else {
		_, _ = w.WriteString(`<div class="code-block">`)
	}
	if err := r.formatter.Format(w, r.style, chroma.Literator(tokens...)); err != nil {
		return err
	}
	_, _ = w.WriteString("</div>\n")
	return nil
}

// blankLine reports whether a line carries no characters besides its newline.
func blankLine(line []chroma.Token) bool {
	for _, t := range line {
		if strings.TrimRight(t.Value, "\n") != "" {
			return false
		}
	}
	return true
}
