package response

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sycomix/rift/ir"
)

// Replace selects how much of a matched function is rewritten.
type Replace int

const (
	// ReplaceAll substitutes the whole declaration.
	ReplaceAll Replace = iota
	// ReplaceDoc inserts the block function's docstring above or inside
	// the document function, which must not already have one.
	ReplaceDoc
	// ReplaceSignature substitutes the declaration up to, but not
	// including, the body.
	ReplaceSignature
)

// Options configures reconciliation.
type Options struct {
	Replace Replace
	// FilterIDs restricts replacement to the listed qualified ids. Nil
	// means every matched function.
	FilterIDs []ir.QualifiedID
	Log       *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Log != nil {
		return o.Log
	}
	return zap.NewNop()
}

func (o Options) allows(id ir.QualifiedID) bool {
	if o.FilterIDs == nil {
		return true
	}
	for _, want := range o.FilterIDs {
		if want == id {
			return true
		}
	}
	return false
}

var trailingWhitespace = regexp.MustCompile(`\s*$`)

// ReplaceFunctionsInDocument matches each function declaration in the
// document against the block file by name, and produces one edit per
// unambiguous match. A name matching zero or several block symbols is
// skipped. Returns the edits and the block functions that were used.
func ReplaceFunctionsInDocument(doc, blocks *ir.File, opts Options) ([]ir.CodeEdit, []*ir.Symbol) {
	log := opts.logger()

	var edits []ir.CodeEdit
	var updated []*ir.Symbol

	for _, decl := range doc.FunctionDeclarations() {
		candidates := blocks.SearchSymbol(decl.Name)
		var match *ir.Symbol
		if len(candidates) == 1 {
			if _, ok := candidates[0].FunctionKind(); ok {
				match = candidates[0]
			}
		}
		if match == nil || !opts.allows(decl.QualifiedID()) {
			continue
		}
		updated = append(updated, match)

		var edit ir.CodeEdit
		switch opts.Replace {
		case ReplaceAll:
			edit = ir.CodeEdit{Substring: decl.Substring, NewBytes: match.Text()}

		case ReplaceDoc:
			if match.Docstring() == "" {
				log.Warn("no docstring for function", zap.String("name", decl.Name))
				continue
			}
			if decl.DocstringSub != nil {
				log.Warn("docstring already exists for function", zap.String("name", decl.Name))
				continue
			}
			if decl.BodySub == nil || match.BodySub == nil {
				log.Warn("no body for function", zap.String("name", decl.Name))
				continue
			}
			var insertAt, oldIndent, newIndent int
			if decl.Language == ir.LanguagePython {
				// The docstring goes inside the body, on its own line
				// before the first statement.
				oldIndent = findIndent(decl.Code.Bytes, decl.BodySub.Start)
				newIndent = findIndent(match.Code.Bytes, match.BodySub.Start)
				insertAt = decl.BodySub.Start - oldIndent
			} else {
				// The doc comment goes on its own line before the
				// declaration.
				oldIndent = findIndent(decl.Code.Bytes, decl.Substring.Start)
				newIndent = findIndent(match.Code.Bytes, match.Substring.Start)
				insertAt = decl.Substring.Start - oldIndent
			}
			docstring := dedent(strings.Repeat(" ", newIndent) + match.Docstring())
			docstring = indent(docstring, strings.Repeat(" ", oldIndent))
			edit = ir.CodeEdit{
				Substring: ir.Substring{Start: insertAt, End: insertAt},
				NewBytes:  []byte(docstring + "\n"),
			}

		case ReplaceSignature:
			oldText := string(decl.TextWithoutBody())
			newText := strings.TrimRight(string(match.TextWithoutBody()), " \t\r\n")
			newText += trailingWhitespace.FindString(oldText)
			edit = ir.CodeEdit{
				Substring: ir.Substring{
					Start: decl.Substring.Start,
					End:   decl.Substring.Start + len(oldText),
				},
				NewBytes: []byte(newText),
			}
		}
		edits = append(edits, edit)
	}
	return edits, updated
}

// ReplaceFunctionsFromCodeBlocks lowers the code blocks and the document
// with the given parser and reconciles them.
func ReplaceFunctionsFromCodeBlocks(parse ParseFunc, blocks []*ir.Code, document *ir.Code, language ir.Language, opts Options) ([]ir.CodeEdit, []*ir.Symbol, error) {
	blockFile, err := ParseBlocks(parse, blocks, language)
	if err != nil {
		return nil, nil, err
	}
	docFile, err := ParseBlocks(parse, []*ir.Code{document}, language)
	if err != nil {
		return nil, nil, err
	}
	edits, updated := ReplaceFunctionsInDocument(docFile, blockFile, opts)
	return edits, updated, nil
}

// UpdateTypingImports returns an edit bringing the document's
// "from typing import ..." line up to date with the typing names used in
// the updated functions, or nil when nothing is missing. A new import is
// inserted at the top of the document.
func UpdateTypingImports(parse ParseFunc, code *ir.Code, language ir.Language, updated []*ir.Symbol) (*ir.CodeEdit, error) {
	file, err := ParseBlocks(parse, []*ir.Code{code}, language)
	if err != nil {
		return nil, err
	}
	typingImport := file.SearchModuleImport("typing")
	imported := map[string]bool{}
	if typingImport != nil {
		for _, name := range typingImport.Names {
			imported[name] = true
		}
	}

	missing := map[string]bool{}
	for _, fn := range updated {
		kind, ok := fn.FunctionKind()
		if !ok {
			continue
		}
		var types []*ir.Type
		for _, p := range kind.Parameters {
			if p.Type != nil {
				types = append(types, p.Type)
			}
		}
		if kind.ReturnType != nil {
			types = append(types, kind.ReturnType)
		}
		for name := range TypingNamesFromTypes(types) {
			if !imported[name] {
				missing[name] = true
			}
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	all := make([]string, 0, len(imported)+len(missing))
	for name := range imported {
		all = append(all, name)
	}
	for name := range missing {
		all = append(all, name)
	}
	sort.Strings(all)

	importLine := "from typing import " + strings.Join(all, ", ")
	sub := ir.Substring{}
	if typingImport != nil {
		sub = typingImport.Substring
	} else {
		importLine += "\n"
	}
	return &ir.CodeEdit{Substring: sub, NewBytes: []byte(importLine)}, nil
}

// findIndent counts the bytes between start and the previous newline.
func findIndent(bytes []byte, start int) int {
	for i := start; i >= 0; i-- {
		if i < len(bytes) && bytes[i] == '\n' {
			return start - i - 1
		}
	}
	return 0
}

// dedent strips the longest common leading whitespace from every
// non-blank line.
func dedent(text string) string {
	lines := strings.Split(text, "\n")
	margin := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		leading := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin = leading
			first = false
			continue
		}
		for !strings.HasPrefix(leading, margin) {
			margin = margin[:len(margin)-1]
		}
	}
	if margin == "" {
		return text
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

// indent prepends the prefix to every non-blank line.
func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
