package diag

import (
	"github.com/jward/gdlint/internal/source"
)

// Label attaches text to a span of the source. One label per diagnostic is
// usually primary.
type Label struct {
	Span    source.Span
	Text    string
	Primary bool
}

// Diagnostic is one finding. The zero value is not useful; use a Builder.
type Diagnostic struct {
	severity Severity
	code     Code
	message  string
	labels   []Label
	help     string
	url      string
	file     *source.File
}

func (d Diagnostic) Severity() Severity { return d.severity }
func (d Diagnostic) Code() Code { return d.code }
func (d Diagnostic) Message() string { return d.message }
func (d Diagnostic) Help() string { return d.help }
func (d Diagnostic) URL() string { return d.url }
func (d Diagnostic) File() *source.File { return d.file }
func (d Diagnostic) LabelCount() int { return len(d.labels) }
func (d Diagnostic) Label(i int) Label { return d.labels[i] }
func (d Diagnostic) Labels() []Label { return append([]Label(nil), d.labels...) }

// Primary returns the first primary label, falling back to the first label.
func (d Diagnostic) Primary() (Label, bool) {
	for _, l := range d.labels {
		if l.Primary {
			return l, true
		}
	}
	if len(d.labels) > 0 {
		return d.labels[0], true
	}
	return Label{}, false
}

// Anchor returns the span a diagnostic is reported at: the primary label's,
// or an empty span at the start of the file.
func (d Diagnostic) Anchor() source.Span {
	if l, ok := d.Primary(); ok {
		return l.Span
	}
	return source.Point(0)
}

// WireLabel is the serialised form of a Label.
type WireLabel struct {
	Offset  uint32 `json:"offset" msgpack:"offset"`
	Length  uint32 `json:"length" msgpack:"length"`
	Text    string `json:"text,omitempty" msgpack:"text,omitempty"`
	Primary bool   `json:"primary,omitempty" msgpack:"primary,omitempty"`
}

// Wire is the language-agnostic shape of a diagnostic used by the JSON
// renderer and the report store.
type Wire struct {
	Severity string      `json:"severity"`
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Labels   []WireLabel `json:"labels"`
	Help     string      `json:"help,omitempty"`
	URL      string      `json:"url,omitempty"`
}

func (d Diagnostic) Wire() Wire {
	return Wire{
		Severity: d.severity.String(),
		Code:     d.code.String(),
		Message:  d.message,
		Labels:   WireLabels(d.labels),
		Help:     d.help,
		URL:      d.url,
	}
}

// WireLabels converts labels to their serialised form.
func WireLabels(labels []Label) []WireLabel {
	out := make([]WireLabel, len(labels))
	for i, l := range labels {
		out[i] = WireLabel{Offset: l.Span.Offset, Length: l.Span.Length, Text: l.Text, Primary: l.Primary}
	}
	return out
}

// LabelsFromWire is the inverse of WireLabels.
func LabelsFromWire(wire []WireLabel) []Label {
	out := make([]Label, len(wire))
	for i, w := range wire {
		out[i] = Label{Span: source.Span{Offset: w.Offset, Length: w.Length}, Text: w.Text, Primary: w.Primary}
	}
	return out
}
