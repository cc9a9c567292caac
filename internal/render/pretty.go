// Package render prints check results for people and for tools.
package render

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/jward/gdlint"
	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/source"
)

const defaultTabWidth = 4

// Options controls Pretty output.
type Options struct {
	Color bool
	// BaseDir, when set, makes reported paths relative to it where possible.
	BaseDir string
	// TabWidth is the display width of a tab in source excerpts. Zero means 4.
	TabWidth int
}

type palette struct {
	warning   *color.Color
	err       *color.Color
	secondary *color.Color
	gutter    *color.Color
	bold      *color.Color
	note      *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		warning:   mk(color.FgYellow, color.Bold),
		err:       mk(color.FgRed, color.Bold),
		secondary: mk(color.FgCyan),
		gutter:    mk(color.FgBlue, color.Bold),
		bold:      mk(color.Bold),
		note:      mk(color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	if s == diag.SevError {
		return p.err
	}
	return p.warning
}

// Pretty writes each diagnostic with its source excerpt, followed by a
// one-line summary.
//
//	player.gd:2:1: warning[class-name-extends]: class_name should precede extends
//	  1 | extends Node
//	    | ------------ swap this
//	  2 | class_name Player
//	    | ^^^^^^^^^^^^^^^^^ with this
//	    = see: https://docs.godotengine.org/...
func Pretty(w io.Writer, results []gdlint.FileResult, opts Options) error {
	if opts.TabWidth <= 0 {
		opts.TabWidth = defaultTabWidth
	}
	p := newPalette(opts.Color)
	bw := bufio.NewWriter(w)

	for _, r := range results {
		path := displayPath(r.Path, opts.BaseDir)
		if r.Err != nil {
			fmt.Fprintf(bw, "%s: %s %v\n", p.bold.Sprint(path), p.err.Sprint("error:"), r.Err)
			continue
		}
		for _, d := range r.Diagnostics {
			writeDiagnostic(bw, p, path, r.File, d, opts.TabWidth)
		}
	}

	fmt.Fprintln(bw, p.bold.Sprint(summaryLine(gdlint.Summarize(results))))
	return bw.Flush()
}

func displayPath(path, base string) string {
	if base == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func writeDiagnostic(w io.Writer, p palette, path string, file *source.File, d diag.Diagnostic, tabWidth int) {
	pos := file.Position(d.Anchor().Offset)
	sev := p.severity(d.Severity())
	fmt.Fprintf(w, "%s %s %s\n",
		p.bold.Sprintf("%s:%d:%d:", path, pos.Line, pos.Col),
		sev.Sprintf("%s[%s]:", d.Severity(), d.Code()),
		p.bold.Sprint(d.Message()),
	)

	labels := d.Labels()
	slices.SortStableFunc(labels, func(a, b diag.Label) int {
		return int(a.Span.Offset) - int(b.Span.Offset)
	})

	lastLine := uint32(0)
	for _, l := range labels {
		lastLine = max(lastLine, file.Position(l.Span.Offset).Line)
	}
	width := len(strconv.Itoa(int(lastLine)))
	blank := p.gutter.Sprint(strings.Repeat(" ", width+1) + " |")

	prevLine := uint32(0)
	for _, l := range labels {
		start := file.Position(l.Span.Offset)
		if start.Line != prevLine {
			if prevLine != 0 && start.Line > prevLine+1 {
				fmt.Fprintln(w, p.gutter.Sprint(strings.Repeat(" ", width+1)+"..."))
			}
			text := file.Line(start.Line)
			fmt.Fprintf(w, "%s %s\n",
				p.gutter.Sprintf(" %*d |", width, start.Line),
				expandTabs(text, tabWidth),
			)
			prevLine = start.Line
		}
		fmt.Fprintf(w, "%s %s\n", blank, underline(p, file, l, d.Severity(), tabWidth))
	}

	indent := strings.Repeat(" ", width+2)
	if h := d.Help(); h != "" {
		fmt.Fprintf(w, "%s%s %s\n", indent, p.note.Sprint("= help:"), h)
	}
	if u := d.URL(); u != "" {
		fmt.Fprintf(w, "%s%s %s\n", indent, p.note.Sprint("= see:"), u)
	}
}

// underline returns the marker row for a label. Spans that run past the end
// of their first line are marked to the end of that line; empty spans get a
// single marker.
func underline(p palette, file *source.File, l diag.Label, sev diag.Severity, tabWidth int) string {
	start := file.Position(l.Span.Offset)
	lineStart, lineEnd := file.LineBounds(start.Line)
	end := min(l.Span.End(), lineEnd)

	pad := displayWidth(string(file.Slice(source.NewSpan(lineStart, l.Span.Offset))), tabWidth)
	n := 1
	if end > l.Span.Offset {
		n = max(1, displayWidth(string(file.Slice(source.NewSpan(l.Span.Offset, end))), tabWidth))
	}

	mark, c := "-", p.secondary
	if l.Primary {
		mark, c = "^", p.severity(sev)
	}
	out := strings.Repeat(" ", pad) + c.Sprint(strings.Repeat(mark, n))
	if l.Text != "" {
		out += " " + c.Sprint(l.Text)
	}
	return out
}

func expandTabs(s string, tabWidth int) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string, tabWidth int) int {
	return runewidth.StringWidth(expandTabs(s, tabWidth))
}

func summaryLine(s gdlint.Summary) string {
	if s.Clean() {
		return fmt.Sprintf("checked %s, no issues found", plural(s.Files, "file"))
	}
	line := fmt.Sprintf("found %s in %s (%s checked",
		plural(s.Issues, "issue"), plural(s.FilesWithIssues, "file"), plural(s.Files, "file"))
	if s.Failed > 0 {
		line += fmt.Sprintf(", %d could not be checked", s.Failed)
	}
	return line + ")"
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
