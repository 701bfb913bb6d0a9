package notebook

import "strings"

// RenderKind says how an output is presented.
type RenderKind int

const (
	RenderNone RenderKind = iota
	RenderStream
	RenderError
	RenderPNG
	RenderJPEG
	RenderSVG
	RenderHTML
	RenderLaTeX
	RenderText
)

var renderKindNames = [...]string{"none", "stream", "error", "png", "jpeg", "svg", "html", "latex", "text"}

func (k RenderKind) String() string {
	if int(k) < len(renderKindNames) {
		return renderKindNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k RenderKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name; unknown names become RenderNone.
func (k *RenderKind) UnmarshalText(b []byte) error {
	*k = RenderNone
	for i, name := range renderKindNames {
		if name == string(b) {
			*k = RenderKind(i)
		}
	}
	return nil
}

// mimePriority lists rich result types in presentation order.
var mimePriority = []struct {
	mime string
	kind RenderKind
}{
	{"image/png", RenderPNG},
	{"image/jpeg", RenderJPEG},
	{"image/svg+xml", RenderSVG},
	{"text/html", RenderHTML},
	{"text/latex", RenderLaTeX},
	{"text/plain", RenderText},
}

// Rendering is the classified form of an Output.
type Rendering struct {
	Kind    RenderKind `json:"kind"`
	MIME    string     `json:"mime,omitempty"`
	Payload string     `json:"payload,omitempty"`
}

// Classify picks the presentation of o. Unknown output types and rich results with no
// supported MIME type yield RenderNone.
func Classify(o Output) Rendering {
	switch o.OutputType {
	case OutputStream:
		return Rendering{Kind: RenderStream, Payload: string(o.Text)}
	case OutputError:
		return Rendering{Kind: RenderError, Payload: strings.Join(o.Traceback, "\n")}
	case OutputExecuteResult, OutputDisplayData:
		for _, p := range mimePriority {
			if v, ok := o.Data[p.mime]; ok {
				return Rendering{Kind: p.kind, MIME: p.mime, Payload: string(v)}
			}
		}
	}
	return Rendering{Kind: RenderNone}
}
