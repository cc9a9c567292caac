package diag

import (
	"fmt"

	"github.com/jward/gdlint/internal/source"
)

// Builder accumulates the parts of a diagnostic.
type Builder struct {
	d Diagnostic
}

func New(sev Severity, code Code, msg string) *Builder {
	return &Builder{d: Diagnostic{severity: sev, code: code, message: msg}}
}

func Warning(code Code, msg string) *Builder {
	return New(SevWarning, code, msg)
}

func Error(code Code, msg string) *Builder {
	return New(SevError, code, msg)
}

// Label adds a secondary label.
func (b *Builder) Label(sp source.Span, text string) *Builder {
	b.d.labels = append(b.d.labels, Label{Span: sp, Text: text})
	return b
}

// Primary adds the label the diagnostic is reported at.
func (b *Builder) Primary(sp source.Span, text string) *Builder {
	b.d.labels = append(b.d.labels, Label{Span: sp, Text: text, Primary: true})
	return b
}

func (b *Builder) Help(s string) *Builder {
	b.d.help = s
	return b
}

func (b *Builder) URL(s string) *Builder {
	b.d.url = s
	return b
}

// Build binds the diagnostic to file. A label outside the file is a bug in
// the rule that produced it and panics.
func (b *Builder) Build(file *source.File) Diagnostic {
	if file == nil {
		panic(fmt.Sprintf("diag: %s built without a source file", b.d.code))
	}
	for _, l := range b.d.labels {
		if !l.Span.Within(file.Len()) {
			panic(fmt.Sprintf("diag: %s label %s outside %s (%d bytes)", b.d.code, l.Span, file.Path, file.Len()))
		}
	}
	d := b.d
	d.labels = append([]Label(nil), b.d.labels...)
	d.file = file
	return d
}
