package markdown

import "github.com/alecthomas/chroma/v2"

func chromaTokens(values ...string) []chroma.Token {
	out := make([]chroma.Token, 0, len(values))
	for _, v := range values {
		out = append(out, chroma.Token{Type: chroma.Text, Value: v})
	}
	return out
}
