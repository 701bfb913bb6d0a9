package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"
)

const mathNS = "http://www.w3.org/1998/Math/MathML"

// TeXToMathML typesets a TeX math expression as presentation MathML. The TeX source
// is kept as an annotation; unsupported commands render inside <merror>.
func TeXToMathML(tex string, display bool) string {
	p := &texParser{src: tex, display: display}
	body := p.row(stopEOF)

	var b strings.Builder
	b.WriteString(`<math xmlns="` + mathNS + `"`)
	if display {
		b.WriteString(` display="block"`)
	}
	b.WriteString("><semantics><mrow>")
	b.WriteString(body)
	b.WriteString(`</mrow><annotation encoding="application/x-tex">`)
	b.WriteString(esc(strings.TrimSpace(tex)))
	b.WriteString("</annotation></semantics></math>")
	return b.String()
}

type stop int

const (
	stopEOF stop = iota
	stopBrace
	stopBracket
	stopRight
	stopCell
)

type texParser struct {
	src     string
	pos     int
	display bool
}

func esc(s string) string { return string(util.EscapeHTML([]byte(s))) }

func (p *texParser) eof() bool { return p.pos >= len(p.src) }

func (p *texParser) skipSpace() {
	for !p.eof() && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

// atCommand reports whether the input continues with \name as a whole command.
func (p *texParser) atCommand(name string) bool {
	rest := p.src[p.pos:]
	if !strings.HasPrefix(rest, `\`+name) {
		return false
	}
	next := len(name) + 1
	return next >= len(rest) || !isASCIILetter(rest[next])
}

func isASCIILetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// row parses a sequence of atoms until the terminator for s.
func (p *texParser) row(s stop) string {
	var b strings.Builder
	for {
		p.skipSpace()
		if p.eof() {
			return b.String()
		}
		switch c := p.src[p.pos]; {
		case c == '}':
			p.pos++
			if s == stopBrace {
				return b.String()
			}
			continue
		case c == ']' && s == stopBracket:
			p.pos++
			return b.String()
		case s == stopRight && p.atCommand("right"):
			return b.String()
		case s == stopCell && (c == '&' || strings.HasPrefix(p.src[p.pos:], `\\`) || p.atCommand("end")):
			return b.String()
		}
		base, largeOp := p.atom()
		b.WriteString(p.scripts(base, largeOp))
	}
}

// arg parses one command argument: a braced group or a single atom.
func (p *texParser) arg() string {
	p.skipSpace()
	if p.eof() {
		return "<mrow></mrow>"
	}
	switch p.src[p.pos] {
	case '{':
		p.pos++
		return "<mrow>" + p.row(stopBrace) + "</mrow>"
	case '}', ']', '^', '_', '&':
		return "<mrow></mrow>"
	}
	node, _ := p.atom()
	return node
}

func (p *texParser) scripts(base string, largeOp bool) string {
	var sub, sup string
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		c := p.src[p.pos]
		if c != '^' && c != '_' {
			break
		}
		p.pos++
		if c == '^' {
			sup = p.arg()
		} else {
			sub = p.arg()
		}
	}

	under, over, both := "msub", "msup", "msubsup"
	if largeOp && p.display {
		under, over, both = "munder", "mover", "munderover"
	}
	switch {
	case sub != "" && sup != "":
		return "<" + both + ">" + base + sub + sup + "</" + both + ">"
	case sub != "":
		return "<" + under + ">" + base + sub + "</" + under + ">"
	case sup != "":
		return "<" + over + ">" + base + sup + "</" + over + ">"
	}
	return base
}

// atom parses one element and reports whether it takes limits in display mode.
func (p *texParser) atom() (string, bool) {
	c := p.src[p.pos]
	switch {
	case c == '^' || c == '_':
		return "<mrow></mrow>", false
	case c == '{':
		p.pos++
		return "<mrow>" + p.row(stopBrace) + "</mrow>", false
	case c == '\\':
		return p.command()
	case isDigit(c) || (c == '.' && p.pos+1 < len(p.src) && isDigit(p.src[p.pos+1])):
		start := p.pos
		for !p.eof() && (isDigit(p.src[p.pos]) || (p.src[p.pos] == '.' && p.pos+1 < len(p.src) && isDigit(p.src[p.pos+1]))) {
			p.pos++
		}
		return "<mn>" + p.src[start:p.pos] + "</mn>", false
	case c == '&':
		p.pos++
		return `<mspace width="1em"/>`, false
	case c == '\'':
		p.pos++
		return "<mo>′</mo>", false
	}
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	if unicode.IsLetter(r) {
		return "<mi>" + esc(string(r)) + "</mi>", false
	}
	return "<mo>" + esc(string(r)) + "</mo>", false
}

func (p *texParser) commandName() string {
	p.pos++ // backslash
	if p.eof() {
		return ""
	}
	start := p.pos
	if !isASCIILetter(p.src[p.pos]) {
		_, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
		return p.src[start:p.pos]
	}
	for !p.eof() && isASCIILetter(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *texParser) command() (string, bool) {
	name := p.commandName()

	if s, ok := greek[name]; ok {
		return "<mi>" + s + "</mi>", false
	}
	if s, ok := operators[name]; ok {
		return "<mo>" + esc(s) + "</mo>", false
	}
	if s, ok := largeOperators[name]; ok {
		return "<mo>" + s + "</mo>", true
	}
	if s, ok := identifiers[name]; ok {
		return "<mi>" + s + "</mi>", false
	}
	if _, ok := functions[name]; ok {
		return "<mi>" + name + "</mi>", limitFunctions[name]
	}
	if w, ok := spaces[name]; ok {
		return `<mspace width="` + w + `"/>`, false
	}
	if v, ok := variants[name]; ok {
		return p.styled(v), false
	}
	if a, ok := accents[name]; ok {
		return "<mover accent=\"true\">" + p.arg() + "<mo>" + a + "</mo></mover>", false
	}

	switch name {
	case "":
		return "<mo>\\</mo>", false
	case "frac", "dfrac", "tfrac", "cfrac":
		num := p.arg()
		return "<mfrac>" + num + p.arg() + "</mfrac>", false
	case "binom":
		n := p.arg()
		return `<mrow><mo>(</mo><mfrac linethickness="0">` + n + p.arg() + `</mfrac><mo>)</mo></mrow>`, false
	case "sqrt":
		p.skipSpace()
		if !p.eof() && p.src[p.pos] == '[' {
			p.pos++
			index := "<mrow>" + p.row(stopBracket) + "</mrow>"
			return "<mroot>" + p.arg() + index + "</mroot>", false
		}
		return "<msqrt>" + p.arg() + "</msqrt>", false
	case "underline":
		return `<munder accentunder="true">` + p.arg() + "<mo>_</mo></munder>", false
	case "left":
		open := p.delimiter()
		inner := p.row(stopRight)
		closing := ""
		if p.atCommand("right") {
			p.commandName()
			closing = p.delimiter()
		}
		return "<mrow>" + fence(open) + inner + fence(closing) + "</mrow>", false
	case "right":
		return fence(p.delimiter()), false
	case "text", "textrm", "textit", "textbf", "mbox":
		return "<mtext>" + esc(p.rawGroup()) + "</mtext>", false
	case "operatorname":
		return "<mi>" + esc(p.rawGroup()) + "</mi>", false
	case "begin":
		return p.environment(p.rawGroup()), false
	case "end":
		p.rawGroup()
		return "", false
	case "\\":
		return `<mspace linebreak="newline"/>`, false
	case "{", "}", "%", "$", "#", "_", "&":
		return "<mo>" + esc(name) + "</mo>", false
	case "|":
		return "<mo>‖</mo>", false
	}
	return "<merror><mtext>" + esc(`\`+name) + "</mtext></merror>", false
}

// rawGroup returns the text of a braced group (or a single character) unparsed.
func (p *texParser) rawGroup() string {
	p.skipSpace()
	if p.eof() {
		return ""
	}
	if p.src[p.pos] != '{' {
		_, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
		return p.src[p.pos-size : p.pos]
	}
	depth := 0
	start := p.pos + 1
	for ; !p.eof(); p.pos++ {
		switch p.src[p.pos] {
		case '\\':
			p.pos++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos++
				return p.src[start : p.pos-1]
			}
		}
	}
	return p.src[start:]
}

func (p *texParser) styled(variant string) string {
	var b strings.Builder
	b.WriteString("<mrow>")
	for _, r := range p.rawGroup() {
		s := esc(string(r))
		switch {
		case unicode.IsLetter(r):
			b.WriteString(`<mi mathvariant="` + variant + `">` + s + "</mi>")
		case unicode.IsDigit(r):
			b.WriteString(`<mn mathvariant="` + variant + `">` + s + "</mn>")
		case unicode.IsSpace(r):
		default:
			b.WriteString("<mo>" + s + "</mo>")
		}
	}
	b.WriteString("</mrow>")
	return b.String()
}

func (p *texParser) delimiter() string {
	p.skipSpace()
	if p.eof() {
		return ""
	}
	if p.src[p.pos] == '\\' {
		return delimiters[p.commandName()]
	}
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	if r == '.' {
		return ""
	}
	return string(r)
}

func fence(d string) string {
	if d == "" {
		return ""
	}
	return `<mo fence="true" stretchy="true">` + esc(d) + "</mo>"
}

// environment lays out matrix-like environments as an mtable.
func (p *texParser) environment(name string) string {
	if name == "array" {
		p.rawGroup() // column alignment
	}

	var b strings.Builder
	b.WriteString("<mtable>")
	for {
		b.WriteString("<mtr>")
		for {
			b.WriteString("<mtd>" + p.row(stopCell) + "</mtd>")
			if !p.eof() && p.src[p.pos] == '&' {
				p.pos++
				continue
			}
			break
		}
		b.WriteString("</mtr>")
		if strings.HasPrefix(p.src[p.pos:], `\\`) {
			p.pos += 2
			continue
		}
		if p.atCommand("end") {
			p.commandName()
			p.rawGroup()
		}
		break
	}
	b.WriteString("</mtable>")

	open, closing := environmentFences(name)
	if open == "" && closing == "" {
		return b.String()
	}
	return "<mrow>" + fence(open) + b.String() + fence(closing) + "</mrow>"
}

func environmentFences(name string) (string, string) {
	switch name {
	case "pmatrix":
		return "(", ")"
	case "bmatrix":
		return "[", "]"
	case "Bmatrix":
		return "{", "}"
	case "vmatrix":
		return "|", "|"
	case "Vmatrix":
		return "‖", "‖"
	case "cases":
		return "{", ""
	}
	return "", ""
}

var greek = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ϵ", "varepsilon": "ε",
	"zeta": "ζ", "eta": "η", "theta": "θ", "vartheta": "ϑ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "pi": "π", "varpi": "ϖ", "rho": "ρ",
	"varrho": "ϱ", "sigma": "σ", "varsigma": "ς", "tau": "τ", "upsilon": "υ", "phi": "ϕ",
	"varphi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ", "Pi": "Π",
	"Sigma": "Σ", "Upsilon": "Υ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",
}

var operators = map[string]string{
	"times": "×", "cdot": "⋅", "pm": "±", "mp": "∓", "div": "÷", "ast": "∗", "star": "⋆",
	"circ": "∘", "bullet": "∙", "oplus": "⊕", "otimes": "⊗",
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠", "ll": "≪", "gg": "≫",
	"approx": "≈", "equiv": "≡", "sim": "∼", "simeq": "≃", "cong": "≅", "propto": "∝",
	"to": "→", "rightarrow": "→", "leftarrow": "←", "gets": "←", "leftrightarrow": "↔",
	"Rightarrow": "⇒", "Leftarrow": "⇐", "Leftrightarrow": "⇔", "implies": "⟹", "iff": "⟺",
	"mapsto": "↦", "in": "∈", "notin": "∉", "ni": "∋", "subset": "⊂", "supset": "⊃",
	"subseteq": "⊆", "supseteq": "⊇", "cup": "∪", "cap": "∩", "setminus": "∖",
	"land": "∧", "wedge": "∧", "lor": "∨", "vee": "∨", "neg": "¬", "lnot": "¬",
	"forall": "∀", "exists": "∃", "mid": "∣", "parallel": "∥", "perp": "⊥",
	"ldots": "…", "cdots": "⋯", "vdots": "⋮", "ddots": "⋱", "dots": "…",
	"langle": "⟨", "rangle": "⟩", "lfloor": "⌊", "rfloor": "⌋", "lceil": "⌈", "rceil": "⌉",
	"colon": ":", "vert": "|", "Vert": "‖",
}

var largeOperators = map[string]string{
	"sum": "∑", "prod": "∏", "coprod": "∐", "int": "∫", "iint": "∬", "iiint": "∭",
	"oint": "∮", "bigcup": "⋃", "bigcap": "⋂", "bigoplus": "⨁", "bigotimes": "⨂",
}

var identifiers = map[string]string{
	"infty": "∞", "partial": "∂", "nabla": "∇", "emptyset": "∅", "varnothing": "∅",
	"hbar": "ℏ", "ell": "ℓ", "Re": "ℜ", "Im": "ℑ", "aleph": "ℵ", "prime": "′",
}

var functions = map[string]struct{}{
	"sin": {}, "cos": {}, "tan": {}, "cot": {}, "sec": {}, "csc": {}, "arcsin": {},
	"arccos": {}, "arctan": {}, "sinh": {}, "cosh": {}, "tanh": {}, "log": {}, "ln": {},
	"lg": {}, "exp": {}, "det": {}, "dim": {}, "ker": {}, "deg": {}, "gcd": {}, "arg": {},
	"lim": {}, "liminf": {}, "limsup": {}, "max": {}, "min": {}, "sup": {}, "inf": {}, "Pr": {},
}

var limitFunctions = map[string]bool{
	"lim": true, "liminf": true, "limsup": true, "max": true, "min": true,
	"sup": true, "inf": true, "det": true, "gcd": true, "Pr": true,
}

var spaces = map[string]string{
	",": "0.1667em", ":": "0.2222em", ">": "0.2222em", ";": "0.2778em", "!": "-0.1667em",
	" ": "0.25em", "quad": "1em", "qquad": "2em",
}

var variants = map[string]string{
	"mathrm": "normal", "mathbf": "bold", "boldsymbol": "bold-italic", "mathit": "italic",
	"mathbb": "double-struck", "mathcal": "script", "mathscr": "script",
	"mathfrak": "fraktur", "mathsf": "sans-serif", "mathtt": "monospace",
}

var accents = map[string]string{
	"hat": "^", "widehat": "^", "bar": "¯", "overline": "‾", "vec": "→", "tilde": "~",
	"widetilde": "~", "dot": "˙", "ddot": "¨",
}

var delimiters = map[string]string{
	"{": "{", "}": "}", "|": "‖", "langle": "⟨", "rangle": "⟩", "lvert": "|", "rvert": "|",
	"lVert": "‖", "rVert": "‖", "lfloor": "⌊", "rfloor": "⌋", "lceil": "⌈", "rceil": "⌉",
	"vert": "|", "Vert": "‖",
}
