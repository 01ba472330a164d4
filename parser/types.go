package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/sycomix/rift/ir"
)

// parseType classifies a type expression node into the ir.Type algebra.
// Anything unclassifiable degrades to an unknown type carrying the raw
// source text; this never fails.
func (s *symbolParser) parseType(node *sitter.Node) ir.Type {
	lang := s.language
	switch {
	case (lang == ir.LanguageTypeScript || lang == ir.LanguageTSX) &&
		node.Type() == "type_annotation" && int(node.ChildCount()) >= 2:
		// first child is ":", second is the type
		return ir.UnknownType(s.text(node.Child(1)))

	case lang == ir.LanguagePython && node.Type() == "type" && int(node.ChildCount()) >= 1:
		child := node.Child(0)
		switch child.Type() {
		case "generic_type":
			// identifier followed by a type_parameter holding the
			// bracketed argument list
			var name string
			var arguments []ir.Type
			for i := 0; i < int(child.ChildCount()); i++ {
				sub := child.Child(i)
				switch sub.Type() {
				case "identifier":
					name = s.text(sub)
				case "type_parameter":
					for j := 0; j < int(sub.ChildCount()); j++ {
						if p := sub.Child(j); p.Type() == "type" {
							arguments = append(arguments, s.parseType(p))
						}
					}
				}
			}
			if name != "" {
				return ir.ConstructorType(name, arguments...)
			}
		case "subscript":
			if value := child.ChildByFieldName("value"); value != nil {
				var arguments []ir.Type
				for _, sub := range childrenByFieldName(child, "subscript") {
					arguments = append(arguments, s.parseType(sub))
				}
				return ir.ConstructorType(s.text(value), arguments...)
			}
		case "identifier":
			return ir.ConstructorType(s.text(child))
		}
	}
	return ir.UnknownType(s.text(node))
}

// addCDeclaratorsToType folds a C/C++ declarator chain into the type.
func (s *symbolParser) addCDeclaratorsToType(t ir.Type, declarators []string) ir.Type {
	for _, d := range declarators {
		switch d {
		case "pointer_declarator":
			t = t.Pointer()
		case "array_declarator":
			t = t.Array()
		case "function_declarator":
			t = t.Function()
		case "reference_declarator":
			t = t.Reference()
		case "identifier":
		default:
			s.parser.log.Warn("unknown declarator", zap.String("declarator", d))
		}
	}
	return t
}

// extractCDeclarators walks down the declarator chain, returning the chain
// of declarator node kinds (innermost first) and the final node holding
// the declared identifier.
func extractCDeclarators(node *sitter.Node) ([]string, *sitter.Node) {
	declaratorNode := node.ChildByFieldName("declarator")
	if declaratorNode == nil {
		if node.Type() == "reference_declarator" && int(node.ChildCount()) >= 2 {
			return nil, node.Child(1)
		}
		return nil, node
	}
	declarators, finalNode := extractCDeclarators(declaratorNode)
	declarators = append(declarators, declaratorNode.Type())
	return declarators, finalNode
}

// cParameter lowers one C/C++ parameter_declaration, collapsing its
// declarator chain into the type algebra.
func (s *symbolParser) cParameter(node *sitter.Node) ir.Parameter {
	declarators, finalNode := extractCDeclarators(node)
	var t ir.Type
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		t = s.addCDeclaratorsToType(s.parseType(typeNode), declarators)
	} else {
		s.parser.log.Warn("parameter without type node", zap.String("text", s.text(node)))
		t = ir.UnknownType("unknown")
	}
	name := ""
	if finalNode.Type() == "identifier" {
		name = s.text(finalNode)
	}
	return ir.Parameter{Name: name, Type: &t}
}

// findCFunctionDeclarator descends to the function_declarator, collecting
// the declarator kinds passed through on the way.
func findCFunctionDeclarator(node *sitter.Node) ([]string, *sitter.Node, bool) {
	if node.Type() == "function_declarator" {
		return nil, node, true
	}
	declaratorNode := node.ChildByFieldName("declarator")
	if declaratorNode == nil {
		return nil, nil, false
	}
	declarators, funNode, ok := findCFunctionDeclarator(declaratorNode)
	if !ok {
		return nil, nil, false
	}
	if declaratorNode.Type() != "function_declarator" {
		declarators = append(declarators, declaratorNode.Type())
	}
	return declarators, funNode, true
}

// parseCFunction lowers a C/C++ function definition or field declaration
// whose declarator chain reaches a function declarator.
func (s *symbolParser) parseCFunction() []*ir.Symbol {
	node := s.node
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	returnType := s.parseType(typeNode)
	declarators, funNode, ok := findCFunctionDeclarator(node)
	if !ok {
		return nil
	}
	returnType = s.addCDeclaratorsToType(returnType, declarators)

	var id *sitter.Node
	var parameters []ir.Parameter
	for i := 0; i < int(funNode.ChildCount()); i++ {
		child := funNode.Child(i)
		switch child.Type() {
		case "field_identifier", "identifier":
			id = child
		case "parameter_list":
			parameters = s.parseParameters(child)
		}
	}
	if id == nil {
		return nil
	}
	declaration := s.mkSymbol(s.text(id), []*sitter.Node{node},
		ir.FunctionKind{HasReturn: s.hasReturn, Parameters: parameters, ReturnType: &returnType})
	s.file.AddSymbol(declaration)
	return []*ir.Symbol{declaration}
}
