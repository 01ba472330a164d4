package ir

import (
	"fmt"
	"strings"
)

// The symbol-table text dump is a compatibility contract: per symbol, a
// header line with the kind, name, language, range and substring, followed
// by indented optional lines for kind-specific fields, scope, docstring,
// body range, parent and the has-return flag.

// Dump appends the symbol's text-dump lines.
func (s *Symbol) Dump(lines *[]string) {
	name := s.Name
	if k, ok := s.Kind.(ClassKind); ok && k.SuperclassesText != "" {
		name += k.SuperclassesText
	}
	*lines = append(*lines, fmt.Sprintf(
		"%s: %s\n   language: %s\n   range: %s\n   substring: %s",
		s.Kind.KindName(), name, s.Language, s.Range, s.Substring))

	switch k := s.Kind.(type) {
	case FunctionKind:
		if len(k.Parameters) > 0 {
			params := make([]string, len(k.Parameters))
			for i, p := range k.Parameters {
				params[i] = p.String()
			}
			*lines = append(*lines, fmt.Sprintf("   parameters: [%s]", strings.Join(params, ", ")))
		}
		if k.ReturnType != nil {
			*lines = append(*lines, fmt.Sprintf("   return_type: %s", k.ReturnType))
		}
	case ValueKind:
		if k.Type != nil {
			*lines = append(*lines, fmt.Sprintf("   type: %s", k.Type))
		}
	case TypeDefinitionKind:
		if k.Type != nil {
			*lines = append(*lines, fmt.Sprintf("   type: %s", k.Type))
		}
	case GuardKind:
		*lines = append(*lines, fmt.Sprintf("   condition: %s", k.Condition))
	case CallKind:
		*lines = append(*lines, fmt.Sprintf("   function_name: %s", k.FunctionName))
		if len(k.Arguments) > 0 {
			*lines = append(*lines, fmt.Sprintf("   arguments: [%s]", strings.Join(k.Arguments, ", ")))
		}
	case ExpressionKind:
		*lines = append(*lines, fmt.Sprintf("   code: %s", k.Code))
	}

	if s.Scope != "" {
		*lines = append(*lines, fmt.Sprintf("   scope: %s", s.Scope))
	}
	if doc := s.Docstring(); doc != "" {
		*lines = append(*lines, fmt.Sprintf("   docstring: %s", doc))
	}
	if s.BodySub != nil {
		*lines = append(*lines, fmt.Sprintf("   body: %s", s.BodySub))
	}
	if s.Parent != nil {
		*lines = append(*lines, fmt.Sprintf("   parent: %s", s.Parent.QualifiedID()))
	}
	if k, ok := s.Kind.(FunctionKind); ok && k.HasReturn {
		*lines = append(*lines, "   has_return: true")
	}
}

// DumpSymbolTable appends the dump of every symbol in insertion order.
func (f *File) DumpSymbolTable(lines *[]string) {
	for _, qid := range f.order {
		f.symbols[qid].Dump(lines)
	}
}

// DumpMap appends an indented outline of the file's declarations without
// their bodies, recursing into container symbols.
func (f *File) DumpMap(indent int, lines *[]string) {
	var dumpSymbol func(s *Symbol, indent int)
	dumpItem := func(it Item, indent int) {
		if it.Symbol != nil {
			dumpSymbol(it.Symbol, indent)
		}
	}
	dumpSymbol = func(s *Symbol, indent int) {
		*lines = append(*lines, strings.Repeat(" ", indent)+string(s.TextWithoutBody()))
		switch s.Kind.(type) {
		case ClassKind, NamespaceKind, ModuleKind:
			for _, it := range s.Body {
				dumpItem(it, indent+2)
			}
		}
	}
	for _, it := range f.Statements {
		dumpItem(it, indent)
	}
}

// DumpElements appends each declaration's text without its body, recursing
// into class bodies.
func (f *File) DumpElements(elements *[]string) {
	var dumpSymbol func(s *Symbol)
	dumpItem := func(it Item) {
		if it.Symbol != nil {
			dumpSymbol(it.Symbol)
		}
	}
	dumpSymbol = func(s *Symbol) {
		*elements = append(*elements, string(s.TextWithoutBody()))
		if _, ok := s.Kind.(ClassKind); ok {
			for _, it := range s.Body {
				dumpItem(it)
			}
		}
	}
	for _, it := range f.Statements {
		dumpItem(it)
	}
}

// DumpMap renders the whole project's declaration outline.
func (p *Project) DumpMap(indent int) string {
	var lines []string
	for _, f := range p.Files() {
		lines = append(lines, fmt.Sprintf("%sFile: %s", strings.Repeat(" ", indent), f.Path))
		f.DumpMap(indent+2, &lines)
	}
	return strings.Join(lines, "\n")
}

// DumpElements renders every declaration in the project without bodies.
func (p *Project) DumpElements() []string {
	var elements []string
	for _, f := range p.Files() {
		f.DumpElements(&elements)
	}
	return elements
}
