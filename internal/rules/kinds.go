package rules

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/gdlint/internal/syntax"
)

// DeclarationKind classifies a direct child of the module for ordering.
type DeclarationKind int

const (
	KindUnknown DeclarationKind = iota
	KindScriptAnnotation
	KindClassName
	KindExtends
	KindDocComment
	KindSignal
	KindEnum
	KindConstant
	KindStaticVariable
	KindExportedVariable
	KindVariable
	KindOnreadyVariable
	KindStaticMethod
	KindMethod
	KindInnerClass
	KindComment
	KindAnnotation
)

// Triage says how a kind takes part in ordering.
type Triage int

const (
	// Ranked kinds have a fixed place in the order.
	Ranked Triage = iota
	// Unranked kinds may appear anywhere.
	Unranked
	// Unknown kinds have no place at all and are reported.
	Unknown
)

// Rank is a kind's position in the style guide order; lower comes first.
type Rank int

// Triage panics on a kind missing from its switch.
func (k DeclarationKind) Triage() Triage {
	switch k {
	case KindScriptAnnotation, KindClassName, KindExtends, KindDocComment,
		KindSignal, KindEnum, KindConstant, KindStaticVariable,
		KindExportedVariable, KindVariable, KindOnreadyVariable,
		KindStaticMethod, KindMethod, KindInnerClass:
		return Ranked
	case KindComment, KindAnnotation:
		return Unranked
	case KindUnknown:
		return Unknown
	}
	panic("rules: untriaged declaration kind " + k.String())
}

// Rank returns the kind's rank. It is only meaningful for Ranked kinds.
func (k DeclarationKind) Rank() Rank {
	switch k {
	case KindScriptAnnotation:
		return 100
	case KindClassName:
		return 200
	case KindExtends:
		return 300
	case KindDocComment:
		return 400
	case KindSignal:
		return 500
	case KindEnum:
		return 600
	case KindConstant:
		return 700
	case KindStaticVariable:
		return 800
	case KindExportedVariable:
		return 900
	case KindVariable:
		return 1000
	case KindOnreadyVariable:
		return 1100
	case KindStaticMethod:
		return 1200
	case KindMethod:
		return 1300
	case KindInnerClass:
		return 1400
	case KindComment, KindAnnotation, KindUnknown:
		return 0
	}
	panic("rules: unranked declaration kind " + k.String())
}

func (k DeclarationKind) String() string {
	switch k {
	case KindUnknown:
		return "unknown declaration"
	case KindScriptAnnotation:
		return "script annotation"
	case KindClassName:
		return "class_name"
	case KindExtends:
		return "extends"
	case KindDocComment:
		return "class documentation"
	case KindSignal:
		return "signal"
	case KindEnum:
		return "enum"
	case KindConstant:
		return "constant"
	case KindStaticVariable:
		return "static variable"
	case KindExportedVariable:
		return "exported variable"
	case KindVariable:
		return "variable"
	case KindOnreadyVariable:
		return "@onready variable"
	case KindStaticMethod:
		return "static method"
	case KindMethod:
		return "method"
	case KindInnerClass:
		return "inner class"
	case KindComment:
		return "comment"
	case KindAnnotation:
		return "annotation"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Annotations that configure the whole script rather than the next member.
var scriptAnnotations = map[string]bool{
	"tool":          true,
	"icon":          true,
	"static_unload": true,
}

// Standalone annotations that open a group of exported variables.
var exportGroupAnnotations = map[string]bool{
	"export_category": true,
	"export_group":    true,
	"export_subgroup": true,
}

// declaration is a classified direct child of the module.
type declaration struct {
	node *sitter.Node
	kind DeclarationKind
}

// classify assigns a kind to each top-level node. annotations holds the
// annotation names found inside each declaration, keyed by its span.
//
// Standalone annotations on the lines above a declaration belong to it: a
// run of them, possibly broken up by comments, is merged into the annotation
// names of the next declaration, and the run itself is unranked.
func classify(nodes []*sitter.Node, src []byte, annotations map[spanKey][]string) []declaration {
	out := make([]declaration, len(nodes))
	var pending []string
	for i, n := range nodes {
		out[i].node = n
		switch n.Type() {
		case "annotation":
			pending = append(pending, annotationName(n, src))
			continue
		case "comment", "region_start", "region_end":
			// pending annotations carry over to the member below the comment
			out[i].kind = kindOf(n, src, nil)
			continue
		}
		names := append(pending, annotations[keyOf(n)]...)
		pending = nil
		out[i].kind = kindOf(n, src, names)
	}

	for i, d := range out {
		switch d.node.Type() {
		case "annotation":
			out[i].kind = standaloneAnnotationKind(out, i, src)
		case "comment":
			if out[i].kind == KindDocComment && documentsNext(out, i) {
				out[i].kind = KindComment
			}
		}
	}
	return out
}

func kindOf(n *sitter.Node, src []byte, annotations []string) DeclarationKind {
	switch n.Type() {
	case "comment":
		if strings.HasPrefix(syntax.Text(n, src), "##") {
			return KindDocComment
		}
		return KindComment
	case "region_start", "region_end":
		return KindComment
	case "class_name_statement":
		return KindClassName
	case "extends_statement":
		return KindExtends
	case "signal_statement":
		return KindSignal
	case "enum_definition":
		return KindEnum
	case "const_statement":
		return KindConstant
	case "variable_statement":
		switch {
		case n.ChildByFieldName("static") != nil:
			return KindStaticVariable
		case hasAnnotation(annotations, isExport):
			return KindExportedVariable
		case hasAnnotation(annotations, isOnready):
			return KindOnreadyVariable
		}
		return KindVariable
	case "export_variable_statement":
		return KindExportedVariable
	case "onready_variable_statement":
		return KindOnreadyVariable
	case "function_definition":
		if syntax.ChildOfKind(n, "static_keyword") != nil {
			return KindStaticMethod
		}
		return KindMethod
	case "constructor_definition":
		return KindMethod
	case "class_definition":
		return KindInnerClass
	}
	return KindUnknown
}

func standaloneAnnotationKind(decls []declaration, i int, src []byte) DeclarationKind {
	name := annotationName(decls[i].node, src)
	switch {
	case scriptAnnotations[name]:
		return KindScriptAnnotation
	case exportGroupAnnotations[name]:
		return KindExportedVariable
	case name == "abstract":
		// @abstract before the class header marks the script; before a member
		// it marks that member.
		if next := nextDeclaration(decls, i); next == nil || next.kind == KindClassName || next.kind == KindExtends {
			return KindScriptAnnotation
		}
	}
	return KindAnnotation
}

// documentsNext reports whether the ## comment at i sits directly above a
// member, possibly through further ## lines or annotations, and so documents
// that member rather than the class.
func documentsNext(decls []declaration, i int) bool {
	for j := i + 1; j < len(decls); j++ {
		if syntax.Line(decls[j].node) != syntax.EndLine(decls[j-1].node)+1 {
			return false
		}
		if decls[j].node.Type() == "annotation" || decls[j].kind == KindDocComment {
			continue
		}
		return decls[j].kind != KindComment && decls[j].kind != KindUnknown
	}
	return false
}

// nextDeclaration returns the first node after i that is neither an
// annotation nor a comment.
func nextDeclaration(decls []declaration, i int) *declaration {
	for j := i + 1; j < len(decls); j++ {
		switch decls[j].node.Type() {
		case "annotation", "comment", "region_start", "region_end":
			continue
		}
		return &decls[j]
	}
	return nil
}

func annotationName(n *sitter.Node, src []byte) string {
	if id := syntax.ChildOfKind(n, "identifier"); id != nil {
		return syntax.Text(id, src)
	}
	return ""
}

func hasAnnotation(names []string, pred func(string) bool) bool {
	for _, name := range names {
		if pred(name) {
			return true
		}
	}
	return false
}

// isExport matches @export and its typed variants such as @export_range,
// but not the standalone grouping annotations.
func isExport(name string) bool {
	return (name == "export" || strings.HasPrefix(name, "export_")) && !exportGroupAnnotations[name]
}

func isOnready(name string) bool {
	return name == "onready"
}
