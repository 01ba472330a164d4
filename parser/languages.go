// Package parser is the lowering engine: it walks the concrete syntax tree
// produced by the tree-sitter grammar adapter and emits ir Symbols, Items
// and Imports into an ir.File. Dispatch is purely a function of the node
// kind and the language; unmatched combinations lower to opaque items and
// never fail the surrounding file.
package parser

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/ocaml"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	ts "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/sycomix/rift/ir"
)

// extToLanguage maps file extensions to language tags. Files with
// unrecognized extensions are skipped by project-level scanning.
var extToLanguage = map[string]ir.Language{
	".c":    ir.LanguageC,
	".cc":   ir.LanguageCPP,
	".cpp":  ir.LanguageCPP,
	".cxx":  ir.LanguageCPP,
	".c++":  ir.LanguageCPP,
	".cs":   ir.LanguageCSharp,
	".java": ir.LanguageJava,
	".js":   ir.LanguageJavaScript,
	".ml":   ir.LanguageOCaml,
	".py":   ir.LanguagePython,
	".rb":   ir.LanguageRuby,
	".ts":   ir.LanguageTypeScript,
	".tsx":  ir.LanguageTSX,
}

// langToGrammar maps language tags to tree-sitter grammars. Lazily
// initialized on first use.
var (
	langToGrammar map[ir.Language]*sitter.Language
	grammarsOnce  sync.Once
)

func initGrammars() {
	grammarsOnce.Do(func() {
		langToGrammar = map[ir.Language]*sitter.Language{
			ir.LanguageC:          c.GetLanguage(),
			ir.LanguageCPP:        cpp.GetLanguage(),
			ir.LanguageCSharp:     csharp.GetLanguage(),
			ir.LanguageJava:       java.GetLanguage(),
			ir.LanguageJavaScript: javascript.GetLanguage(),
			ir.LanguageOCaml:      ocaml.GetLanguage(),
			ir.LanguagePython:     python.GetLanguage(),
			ir.LanguageRuby:       ruby.GetLanguage(),
			ir.LanguageTypeScript: ts.GetLanguage(),
			ir.LanguageTSX:        tsx.GetLanguage(),
		}
	})
}

// LanguageForFile returns the language tag for a file path based on its
// extension. Returns ("", false) if the extension is not recognized.
func LanguageForFile(path string) (ir.Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := extToLanguage[ext]
	return lang, ok
}

// GrammarForLanguage returns the tree-sitter grammar for a language tag.
// Returns (nil, false) if no grammar is available.
func GrammarForLanguage(lang ir.Language) (*sitter.Language, bool) {
	initGrammars()
	l, ok := langToGrammar[lang]
	return l, ok
}

// newSitterParser creates a fresh tree-sitter parser for the language.
// Parsers are not goroutine-safe; each parse gets its own.
func newSitterParser(grammar *sitter.Language) *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(grammar)
	return p
}
