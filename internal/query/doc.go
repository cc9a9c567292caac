// Package query compiles declarative tree-sitter patterns and decodes their
// matches into typed records.
//
// A query is declared once, usually as a package-level variable, with a
// Builder that lists every capture the pattern exposes and whether it is
// required or optional:
//
//	var calls = query.Define[call]("call", `(call . (identifier) @callee) @call`).
//		Anchor("call").
//		Required("callee", func(r *call, n *sitter.Node) { r.Callee = n }).
//		Build()
//
// Compilation is deferred to first use and cached for the life of the process.
// Authoring mistakes are not runtime conditions: a malformed pattern panics
// with *CompileError, a capture list that disagrees with the pattern panics
// with *DefinitionError, and a required capture missing from a match panics
// with *MissingCaptureError.
//
// The anchor capture marks the pattern's outermost node. Its distance from the
// queried root is compared against a Depth bound, which distinguishes
// top-level declarations (Children) from declarations plus their direct
// contents (Grandchildren) and from the whole subtree (Unbounded).
package query
