package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sycomix/rift/ir"
)

func isJSFamily(lang ir.Language) bool {
	return lang == ir.LanguageJavaScript || lang == ir.LanguageTypeScript || lang == ir.LanguageTSX
}

func isCFamily(lang ir.Language) bool {
	return lang == ir.LanguageC || lang == ir.LanguageCPP
}

func isCommentType(t string) bool {
	return t == "comment" || t == "line_comment" || t == "block_comment"
}

// mkSymbol builds a symbol spanning from the first to the last node in
// parents, carrying the accumulated body, docstring and exported state.
func (s *symbolParser) mkSymbol(name string, parents []*sitter.Node, kind ir.SymbolKind) *ir.Symbol {
	first, last := parents[0], parents[len(parents)-1]
	return &ir.Symbol{
		BodySub:      s.bodySub,
		Code:         s.code,
		DocstringSub: s.docstringSub,
		Exported:     s.exported,
		Language:     s.language,
		Name:         name,
		Parent:       s.parent,
		Range:        rangeOf(first, last),
		Scope:        s.scope,
		Substring:    ir.Substring{Start: int(first.StartByte()), End: int(last.EndByte())},
		Kind:         kind,
	}
}

// mkDummy builds a placeholder symbol whose kind is filled in once the
// construct is fully lowered; containers need the symbol to exist before
// their bodies are recursed into.
func (s *symbolParser) mkDummy(name string, parents []*sitter.Node) *ir.Symbol {
	return s.mkSymbol(name, parents, ir.ValueKind{})
}

// processBody locates the current node's body, records its byte range, and
// returns the body node when the language exposes one.
func (s *symbolParser) processBody() *sitter.Node {
	switch s.language {
	case ir.LanguageOCaml:
		// handled per declaration inside a let binding
		return nil
	case ir.LanguageRuby:
		return s.processRubyBody()
	default:
		bodyNode := s.node.ChildByFieldName("body")
		if bodyNode != nil {
			sub := substringOf(bodyNode)
			s.bodySub = &sub
		}
		return bodyNode
	}
}

// processRubyBody computes the body range of a ruby def/class/module from
// the sibling after its name (or parameter list) to the node's end, since
// the grammar exposes no body field on these nodes.
func (s *symbolParser) processRubyBody() *sitter.Node {
	if nameNode := s.node.ChildByFieldName("name"); nameNode != nil {
		startNode := nameNode
		if params := s.node.ChildByFieldName("parameters"); params != nil {
			startNode = params
		}
		if next := startNode.NextSibling(); next != nil {
			startNode = next
		}
		s.bodySub = &ir.Substring{Start: int(startNode.StartByte()), End: int(s.node.EndByte())}
	}
	for i := 0; i < int(s.node.ChildCount()); i++ {
		if s.node.Child(i).Type() == "body_statement" {
			return s.node.Child(i)
		}
	}
	return s.node
}

// parseSymbols lowers the current node into zero or more symbols,
// registering each in the file's table. An unrecognized construct produces
// no symbol; it is data loss for structure, never an error.
func (s *symbolParser) parseSymbols(counter *counter) []*ir.Symbol {
	if prev := s.node.PrevSibling(); prev != nil && prev.Type() == "comment" {
		if strings.HasPrefix(s.text(prev), "/**") {
			sub := substringOf(prev)
			s.docstringSub = &sub
		}
	}

	node, language := s.node, s.language
	bodyNode := s.processBody()

	switch {
	case s.isContainerNode():
		return s.parseContainer(bodyNode)

	case node.Type() == "decorated_definition" && language == ir.LanguagePython:
		if def := node.ChildByFieldName("definition"); def != nil {
			return s.recurse(def, s.scope, s.parent).parseSymbols(counter)
		}

	case (node.Type() == "field_declaration" || node.Type() == "function_definition") && isCFamily(language):
		return s.parseCFunction()

	case s.isFunctionNode():
		return s.parseFunction(bodyNode)

	case (node.Type() == "lexical_declaration" || node.Type() == "variable_declaration") && isJSFamily(language):
		return s.parseArrowFunction()

	case node.Type() == "export_statement" && isJSFamily(language):
		if int(node.ChildCount()) >= 2 {
			inner := s.recurse(node.Child(1), s.scope, s.parent)
			inner.exported = true
			inner.docstringSub = s.docstringSub
			return inner.parseSymbols(counter)
		}

	case (node.Type() == "interface_declaration" || node.Type() == "type_alias_declaration") &&
		(isJSFamily(language) || language == ir.LanguageCSharp || language == ir.LanguageJava):
		if id := node.ChildByFieldName("name"); id != nil {
			var kind ir.SymbolKind = ir.TypeDefinitionKind{}
			if node.Type() == "interface_declaration" {
				kind = ir.InterfaceKind{}
			}
			declaration := s.mkSymbol(s.text(id), []*sitter.Node{node}, kind)
			s.file.AddSymbol(declaration)
			return []*ir.Symbol{declaration}
		}

	case node.Type() == "value_definition" && language == ir.LanguageOCaml:
		return s.parseOCamlValue()

	case node.Type() == "module_definition" && language == ir.LanguageOCaml:
		return s.parseOCamlModule()
	}

	if s.parser.metaSymbols {
		if meta := s.parseMetaSymbol(counter); meta != nil {
			return []*ir.Symbol{meta}
		}
	}
	return nil
}

func (s *symbolParser) isContainerNode() bool {
	t, lang := s.node.Type(), s.language
	switch {
	case t == "class_specifier" && isCFamily(lang):
		return true
	case t == "class_declaration" && (isJSFamily(lang) || lang == ir.LanguageCSharp || lang == ir.LanguageJava):
		return true
	case t == "class_definition" && lang == ir.LanguagePython:
		return true
	case t == "namespace_definition" && lang == ir.LanguageCPP:
		return true
	case t == "namespace_declaration" && lang == ir.LanguageCSharp:
		return true
	case (t == "class" || t == "module") && lang == ir.LanguageRuby:
		return true
	}
	return false
}

// parseContainer lowers a class/namespace/module-like construct: the
// container name extends the scope with a language-appropriate separator,
// and the body is recursively lowered with the container as parent.
func (s *symbolParser) parseContainer(bodyNode *sitter.Node) []*ir.Symbol {
	node := s.node
	isNamespace := node.Type() == "namespace_definition" || node.Type() == "namespace_declaration"
	isModule := node.Type() == "module"
	superclasses := ""
	if sc := node.ChildByFieldName("superclasses"); sc != nil {
		superclasses = s.text(sc)
	}
	name := node.ChildByFieldName("name")
	if bodyNode == nil || name == nil {
		return nil
	}

	separator := "."
	if isNamespace || s.language == ir.LanguageRuby {
		separator = "::"
	}
	newScope := s.scope + s.text(name) + separator
	symbol := s.mkDummy(s.text(name), []*sitter.Node{node})
	s.recurse(bodyNode, newScope, symbol).parseBlock()

	// A leading string literal in the body doubles as the docstring; else
	// fall back to a comment immediately before the container.
	if int(bodyNode.ChildCount()) > 0 && bodyNode.Child(0).Type() == "expression_statement" {
		stmt := bodyNode.Child(0)
		if int(stmt.ChildCount()) > 0 && stmt.Child(0).Type() == "string" {
			sub := substringOf(stmt.Child(0))
			symbol.DocstringSub = &sub
		}
	} else if prev := node.PrevSibling(); prev != nil && isCommentType(prev.Type()) {
		sub := substringOf(prev)
		symbol.DocstringSub = &sub
	}

	switch {
	case isNamespace:
		symbol.Kind = ir.NamespaceKind{}
	case isModule:
		symbol.Kind = ir.ModuleKind{}
	default:
		symbol.Kind = ir.ClassKind{SuperclassesText: superclasses}
	}
	s.file.AddSymbol(symbol)
	return []*ir.Symbol{symbol}
}

func (s *symbolParser) isFunctionNode() bool {
	t, lang := s.node.Type(), s.language
	switch {
	case (t == "function_declaration" || t == "method_definition") && isJSFamily(lang):
		return true
	case t == "function_definition" && lang == ir.LanguagePython:
		return true
	case t == "method_declaration" && (lang == ir.LanguageCSharp || lang == ir.LanguageJava):
		return true
	case t == "method" && lang == ir.LanguageRuby:
		return true
	}
	return false
}

// parseFunction lowers a function or method declaration: identifier,
// parameter list, optional return type, docstring and the has-return flag.
func (s *symbolParser) parseFunction(bodyNode *sitter.Node) []*ir.Symbol {
	node := s.node
	var id *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "identifier" || child.Type() == "property_identifier" {
			id = child
		}
	}

	var parameters []ir.Parameter
	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		parameters = s.parseParameters(paramsNode)
	}

	var returnType *ir.Type
	var returnTypeNode *sitter.Node
	if s.language == ir.LanguageCSharp || s.language == ir.LanguageJava {
		returnTypeNode = node.ChildByFieldName("type")
	} else {
		returnTypeNode = node.ChildByFieldName("return_type")
	}
	if returnTypeNode != nil {
		t := s.parseType(returnTypeNode)
		returnType = &t
	}

	if bodyNode != nil && int(bodyNode.ChildCount()) > 0 && bodyNode.Child(0).Type() == "expression_statement" {
		stmt := bodyNode.Child(0)
		if int(stmt.ChildCount()) > 0 && stmt.Child(0).Type() == "string" {
			sub := substringOf(stmt.Child(0))
			s.docstringSub = &sub
		}
	}
	if bodyNode != nil {
		s.hasReturn = containsDirectReturn(bodyNode)
	}

	if id == nil {
		return nil
	}
	symbol := s.mkDummy(s.text(id), []*sitter.Node{node})

	if bodyNode != nil && s.language == ir.LanguagePython && s.parser.metaSymbols {
		scopeBody := s.scope + s.text(id) + "."
		s.recurse(bodyNode, scopeBody, symbol).parseBlock()
	}

	symbol.Kind = ir.FunctionKind{HasReturn: s.hasReturn, Parameters: parameters, ReturnType: returnType}
	s.file.AddSymbol(symbol)
	return []*ir.Symbol{symbol}
}

// parseArrowFunction lowers `let f = x => ...` style bindings.
func (s *symbolParser) parseArrowFunction() []*ir.Symbol {
	node := s.node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		var id *sitter.Node
		isArrowFunction := false
		for j := 0; j < int(child.ChildCount()); j++ {
			grandchild := child.Child(j)
			switch grandchild.Type() {
			case "identifier":
				id = grandchild
			case "arrow_function":
				isArrowFunction = true
			}
		}
		if isArrowFunction && id != nil {
			declaration := s.mkSymbol(s.text(id), []*sitter.Node{node},
				ir.FunctionKind{HasReturn: s.hasReturn})
			s.file.AddSymbol(declaration)
			return []*ir.Symbol{declaration}
		}
	}
	return nil
}

// containsDirectReturn reports whether the body holds a return statement
// that is not inside a nested callable or class.
func containsDirectReturn(body *sitter.Node) bool {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case "arrow_function", "class_definition", "class_declaration",
			"function_declaration", "function_definition", "method_definition", "method":
			continue
		case "return_statement":
			return true
		}
		if containsDirectReturn(child) {
			return true
		}
	}
	return false
}
