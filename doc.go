// Package gdlint checks GDScript sources against the Godot style guide.
// Files are parsed with tree-sitter and handed to a fixed set of
// independent checks, each of which reports warnings with labelled source
// spans.
//
// # Checks
//
//   - class-name-extends: class_name must precede extends.
//   - declaration-order: top-level members follow the style guide's code
//     order (signals, enums, constants, variables, methods, inner classes).
//   - unknown-order: a top-level statement that has no place in that order.
//   - typed-function-signature: every parameter and the return type of a
//     top-level function are annotated.
//   - no-print: calls to print and other banned functions.
//
// # Usage
//
//	l := gdlint.New(gdlint.WithLogger(logger), gdlint.WithJobs(4))
//	results, err := l.CheckDirectory(ctx, "path/to/project")
//	if err != nil { ... }
//	for _, r := range results {
//		for _, d := range r.Diagnostics {
//			pos := r.File.Position(d.Anchor().Offset)
//			fmt.Printf("%s:%d:%d: %s\n", r.Path, pos.Line, pos.Col, d.Message())
//		}
//	}
//
// A file that cannot be read or parsed cleanly is reported through
// [FileResult.Err] and skipped; the rest of the run continues. Results are returned in discovery order even when files are
// checked in parallel.
package gdlint
