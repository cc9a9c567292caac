// Package diag holds the diagnostic model shared by the rules, the renderers
// and the report store.
//
// A Diagnostic is built once through a Builder and is immutable afterwards.
// It is bound to the source.File it describes, and every label span is
// checked against that file when the diagnostic is built.
package diag
