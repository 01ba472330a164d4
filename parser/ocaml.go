package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sycomix/rift/ir"
)

// processOCamlBody records the body range of a let or module binding,
// treating the "=" before the body as part of it, and extracts the
// declared type when the binding is annotated (": t =").
func (s *symbolParser) processOCamlBody(n *sitter.Node) (*ir.Type, *sitter.Node) {
	var typ *ir.Type
	bodyNode := n.ChildByFieldName("body")
	if bodyNode == nil {
		return nil, nil
	}
	if before := bodyNode.PrevSibling(); before != nil && before.Type() == "=" {
		s.bodySub = &ir.Substring{Start: int(before.StartByte()), End: int(bodyNode.EndByte())}
		if typeNode := before.PrevSibling(); typeNode != nil {
			if colon := typeNode.PrevSibling(); colon != nil && colon.Type() == ":" {
				t := s.parseType(typeNode)
				typ = &t
			}
		}
	} else {
		sub := substringOf(bodyNode)
		s.bodySub = &sub
	}
	return typ, bodyNode
}

// parseOCamlValue lowers a value_definition. A single let group can bind
// several names, so this returns every declaration it produced.
func (s *symbolParser) parseOCamlValue() []*ir.Symbol {
	var declarations []*ir.Symbol
	for i := 0; i < int(s.node.ChildCount()); i++ {
		child := s.node.Child(i)
		if child.Type() != "let_binding" {
			continue
		}
		s.bodySub = nil
		returnType, _ := s.processOCamlBody(child)
		pattern := child.ChildByFieldName("pattern")
		if pattern == nil || pattern.Type() != "value_name" {
			continue
		}
		var parameters []ir.Parameter
		for j := 0; j < int(child.ChildCount()); j++ {
			if grandchild := child.Child(j); grandchild.Type() == "parameter" {
				s.parseOCamlParameter(grandchild, &parameters)
			}
		}
		parents := s.letBindingParents(child)
		var declaration *ir.Symbol
		if len(parameters) > 0 {
			declaration = s.mkSymbol(s.text(pattern), parents,
				ir.FunctionKind{HasReturn: s.hasReturn, Parameters: parameters, ReturnType: returnType})
		} else {
			declaration = s.mkSymbol(s.text(pattern), parents, ir.ValueKind{Type: returnType})
		}
		s.file.AddSymbol(declaration)
		declarations = append(declarations, declaration)
	}
	return declarations
}

// letBindingParents widens the declaration span to the keyword before the
// binding, and further to the "let" of a `let rec` group.
func (s *symbolParser) letBindingParents(binding *sitter.Node) []*sitter.Node {
	var parents []*sitter.Node
	if prev := binding.PrevSibling(); prev != nil {
		parents = append(parents, prev)
	}
	parents = append(parents, binding)
	if letNode := parents[0].PrevSibling(); letNode != nil && letNode.Type() == "let" {
		parents = append([]*sitter.Node{letNode}, parents...)
	}
	return parents
}

// parseOCamlParameter lowers one parameter node: plain and typed patterns,
// unit, and labeled (~) or optional (?) forms with or without annotations
// and defaults.
func (s *symbolParser) parseOCamlParameter(parameter *sitter.Node, parameters *[]ir.Parameter) {
	inner := func(n *sitter.Node) *ir.Parameter {
		switch {
		case n.Type() == "label_name" || n.Type() == "value_pattern":
			return &ir.Parameter{Name: s.text(n)}
		case n.Type() == "typed_pattern" && int(n.ChildCount()) == 5 && n.Child(2).Type() == ":":
			// "(", pattern, ":", type, ")"
			id, typeNode := n.Child(1), n.Child(3)
			if id.Type() == "value_pattern" {
				t := s.parseType(typeNode)
				return &ir.Parameter{Name: s.text(id), Type: &t}
			}
		case n.Type() == "unit":
			t := ir.ConstructorType("unit")
			return &ir.Parameter{Name: "()", Type: &t}
		}
		return nil
	}
	labeled := func(n *sitter.Node) bool {
		return n.Type() == "~" || n.Type() == "?"
	}

	switch count := int(parameter.ChildCount()); {
	case count == 1:
		if p := inner(parameter.Child(0)); p != nil {
			*parameters = append(*parameters, *p)
		}
	case count == 2 && labeled(parameter.Child(0)):
		if p := inner(parameter.Child(1)); p != nil {
			p.Name = parameter.Child(0).Type() + p.Name
			*parameters = append(*parameters, *p)
		}
	case count == 4 && labeled(parameter.Child(0)) && parameter.Child(2).Type() == ":":
		// "~", pattern, ":", name
		if p := inner(parameter.Child(1)); p != nil {
			p.Name = parameter.Child(0).Type() + p.Name
			*parameters = append(*parameters, *p)
		}
	case count == 6 && labeled(parameter.Child(0)) && parameter.Child(3).Type() == ":":
		// "~", "(", pattern, ":", type, ")"
		if p := inner(parameter.Child(2)); p != nil {
			p.Name = parameter.Child(0).Type() + p.Name
			t := s.parseType(parameter.Child(4))
			p.Type = &t
			*parameters = append(*parameters, *p)
		}
	case count == 6 && parameter.Child(0).Type() == "?" && parameter.Child(3).Type() == "=":
		// "?", "(", pattern, "=", value, ")"
		if p := inner(parameter.Child(2)); p != nil {
			p.Name = parameter.Child(0).Type() + p.Name
			t := s.parseType(parameter.Child(4)).TypeOf()
			p.Type = &t
			*parameters = append(*parameters, *p)
		}
	}
}

// parseOCamlModule lowers a module_definition into a Module symbol and
// recursively lowers its body with an extended scope.
func (s *symbolParser) parseOCamlModule() []*ir.Symbol {
	for i := 0; i < int(s.node.ChildCount()); i++ {
		child := s.node.Child(i)
		if child.Type() != "module_binding" {
			continue
		}
		_, bodyNode := s.processOCamlBody(child)
		name := child.ChildByFieldName("name")
		if name == nil {
			continue
		}
		newScope := s.scope + s.text(name) + "."
		symbol := s.mkDummy(s.text(name), []*sitter.Node{s.node})
		if bodyNode != nil {
			s.recurse(bodyNode, newScope, symbol).parseBlock()
		}
		symbol.Kind = ir.ModuleKind{}
		s.file.AddSymbol(symbol)
		return []*ir.Symbol{symbol}
	}
	return nil
}
