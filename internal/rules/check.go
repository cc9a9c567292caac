package rules

import (
	"fmt"
	"slices"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/gdlint/internal/diag"
	"github.com/jward/gdlint/internal/source"
	"github.com/jward/gdlint/internal/syntax"
)

// Diagnostic codes.
const (
	CodeClassNameExtends = diag.Code("class-name-extends")
	CodeDeclarationOrder = diag.Code("declaration-order")
	CodeUnknownOrder     = diag.Code("unknown-order")
	CodeTypedSignature   = diag.Code("typed-function-signature")
	CodeNoPrint          = diag.Code("no-print")
)

const styleGuideURL = "https://docs.godotengine.org/en/stable/tutorials/scripting/gdscript/gdscript_styleguide.html"

// DefaultBannedCalls is the banned set used when none is configured.
var DefaultBannedCalls = []string{"print"}

// Check is one independent rule. Codes lists every diagnostic code it can
// emit; the first one doubles as the check's name.
type Check struct {
	Name        string
	Codes       []diag.Code
	Description string
	Run         func(root *sitter.Node, file *source.File) []diag.Diagnostic
}

// Options tunes the registry.
type Options struct {
	// Disable lists diagnostic codes to leave out.
	Disable []string
	// BannedCalls lists the free functions the no-print check reports.
	// Empty means DefaultBannedCalls.
	BannedCalls []string
}

// Default returns every check with default options.
func Default() []Check {
	checks, _ := Registry(Options{})
	return checks
}

// Registry returns the enabled checks in their fixed order. Disable names
// diagnostic codes; a check loses the codes that are disabled and is dropped
// when none remain. Naming an unknown code is an error, so a typo in
// configuration does not silently leave everything enabled.
func Registry(opts Options) ([]Check, error) {
	banned := opts.BannedCalls
	if len(banned) == 0 {
		banned = DefaultBannedCalls
	}
	all := []Check{
		ClassNameExtends(),
		DeclarationOrder(),
		TypedFunctionSignature(),
		NoPrint(banned),
	}

	disabled := make(map[diag.Code]bool, len(opts.Disable))
	for _, name := range opts.Disable {
		code := diag.Code(name)
		if !slices.ContainsFunc(all, func(c Check) bool { return slices.Contains(c.Codes, code) }) {
			return nil, fmt.Errorf("rules: unknown diagnostic code %q", name)
		}
		disabled[code] = true
	}

	out := make([]Check, 0, len(all))
	for _, c := range all {
		if len(disabled) == 0 {
			out = append(out, c)
			continue
		}
		var kept []diag.Code
		for _, code := range c.Codes {
			if !disabled[code] {
				kept = append(kept, code)
			}
		}
		switch {
		case len(kept) == 0:
			continue
		case len(kept) < len(c.Codes):
			c = c.only(kept)
		}
		out = append(out, c)
	}
	return out, nil
}

// only narrows c to the given codes by filtering its output.
func (c Check) only(codes []diag.Code) Check {
	run := c.Run
	c.Codes = codes
	c.Run = func(root *sitter.Node, file *source.File) []diag.Diagnostic {
		ds := run(root, file)
		out := ds[:0]
		for _, d := range ds {
			if slices.Contains(codes, d.Code()) {
				out = append(out, d)
			}
		}
		return out
	}
	return c
}

// Run applies checks to a parsed module and concatenates their output.
// root must be the module node.
func Run(checks []Check, root *sitter.Node, file *source.File) []diag.Diagnostic {
	if root.Type() != syntax.RootKind {
		panic(fmt.Sprintf("rules: expected %s node, got %s", syntax.RootKind, root.Type()))
	}
	bag := diag.NewBag()
	for _, c := range checks {
		bag.Extend(c.Run(root, file))
	}
	return bag.Items()
}
