package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/gdlint/internal/query"
)

// headerMatch is an extends statement followed by a class_name statement in
// the same scope.
type headerMatch struct {
	Scope     *sitter.Node
	Extends   *sitter.Node
	ClassName *sitter.Node
}

var headerQuery = query.Define[headerMatch]("class-name-extends",
	`(_ (extends_statement) @extends (class_name_statement) @class_name) @scope`).
	Anchor("scope").
	Required("scope", func(r *headerMatch, n *sitter.Node) { r.Scope = n }).
	Required("extends", func(r *headerMatch, n *sitter.Node) { r.Extends = n }).
	Required("class_name", func(r *headerMatch, n *sitter.Node) { r.ClassName = n }).
	Build()

// declarationMatch is one direct child of the module.
type declarationMatch struct {
	Node *sitter.Node
}

var declarationQuery = query.Define[declarationMatch]("top-level-declaration",
	`(source (_) @declaration) @source`).
	Anchor("source").
	Required("declaration", func(r *declarationMatch, n *sitter.Node) { r.Node = n }).
	Build()

// annotationMatch is one annotation inside a declaration's annotation list.
type annotationMatch struct {
	List *sitter.Node
	Name *sitter.Node
}

var annotationQuery = query.Define[annotationMatch]("declaration-annotation",
	`(annotations (annotation . (identifier) @name)) @annotations`).
	Anchor("annotations").
	Required("annotations", func(r *annotationMatch, n *sitter.Node) { r.List = n }).
	Required("name", func(r *annotationMatch, n *sitter.Node) { r.Name = n }).
	Build()

// functionMatch is a function definition with at most one of its parameters.
// A function with several parameters yields one match per parameter.
type functionMatch struct {
	Function   *sitter.Node
	Name       *sitter.Node
	Parameters *sitter.Node
	Parameter  *sitter.Node
	ReturnType *sitter.Node
}

var functionQuery = query.Define[functionMatch]("function-definition",
	`(function_definition
	  name: (name) @name
	  parameters: (parameters (_)? @parameter) @parameters
	  return_type: (type)? @return_type) @function`).
	Anchor("function").
	Required("function", func(r *functionMatch, n *sitter.Node) { r.Function = n }).
	Required("name", func(r *functionMatch, n *sitter.Node) { r.Name = n }).
	Required("parameters", func(r *functionMatch, n *sitter.Node) { r.Parameters = n }).
	Optional("parameter", func(r *functionMatch, n *sitter.Node) { r.Parameter = n }).
	Optional("return_type", func(r *functionMatch, n *sitter.Node) { r.ReturnType = n }).
	Build()

// callMatch is a call of a free function by name.
type callMatch struct {
	Call      *sitter.Node
	Callee    *sitter.Node
	Arguments *sitter.Node
}

var callQuery = query.Define[callMatch]("free-call",
	`(call . (identifier) @callee arguments: (arguments) @arguments) @call`).
	Anchor("call").
	Required("call", func(r *callMatch, n *sitter.Node) { r.Call = n }).
	Required("callee", func(r *callMatch, n *sitter.Node) { r.Callee = n }).
	Required("arguments", func(r *callMatch, n *sitter.Node) { r.Arguments = n }).
	Build()

// Verifiable is a query that can be compiled ahead of use.
type Verifiable interface {
	Name() string
	Pattern() string
	Compile() error
}

// Queries returns every query the checks use.
func Queries() []Verifiable {
	return []Verifiable{headerQuery, declarationQuery, annotationQuery, functionQuery, callQuery}
}
