package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sycomix/rift/ir"
)

// parseParameters lowers a parameter list, dispatching on the per-language
// parameter node kinds. Unrecognized parameter shapes are dropped, not
// errors.
func (s *symbolParser) parseParameters(node *sitter.Node) []ir.Parameter {
	var parameters []ir.Parameter
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			parameters = append(parameters, ir.Parameter{Name: s.text(child)})

		case "typed_parameter":
			name := ""
			var typ *ir.Type
			for j := 0; j < int(child.ChildCount()); j++ {
				grandchild := child.Child(j)
				switch grandchild.Type() {
				case "identifier":
					name = s.text(grandchild)
				case "type":
					t := s.parseType(grandchild)
					typ = &t
				}
			}
			parameters = append(parameters, ir.Parameter{Name: name, Type: typ})

		case "parameter_declaration":
			if isCFamily(s.language) {
				parameters = append(parameters, s.cParameter(child))
			} else {
				var typ *ir.Type
				if typeNode := child.ChildByFieldName("type"); typeNode != nil {
					t := s.parseType(typeNode)
					typ = &t
				}
				parameters = append(parameters, ir.Parameter{Name: s.text(child), Type: typ})
			}

		case "required_parameter", "optional_parameter":
			name := ""
			if pattern := child.ChildByFieldName("pattern"); pattern != nil {
				name = s.text(pattern)
			}
			var typ *ir.Type
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				t := s.parseType(typeNode)
				typ = &t
			}
			parameters = append(parameters, ir.Parameter{
				Name:     name,
				Type:     typ,
				Optional: child.Type() == "optional_parameter",
			})

		case "formal_parameter", "parameter":
			var typ *ir.Type
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				t := s.parseType(typeNode)
				typ = &t
			}
			parameters = append(parameters, ir.Parameter{Name: s.text(child), Type: typ})
		}
	}
	return parameters
}
