package syntax

import (
	"path/filepath"
	"strings"
	"sync"

	gdscript "github.com/prestonknopp/tree-sitter-gdscript/bindings/go"
	sitter "github.com/smacker/go-tree-sitter"
)

// Extension is the file extension of GDScript sources.
const Extension = ".gd"

// RootKind is the node kind of a parsed module.
const RootKind = "source"

// The grammar is loaded once per process on first use.
var (
	language     *sitter.Language
	languageOnce sync.Once
)

// Language returns the tree-sitter GDScript grammar.
func Language() *sitter.Language {
	languageOnce.Do(func() {
		language = sitter.NewLanguage(gdscript.Language())
	})
	return language
}

// IsSource reports whether path names a GDScript file.
func IsSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}
