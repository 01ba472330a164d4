package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sycomix/rift/ir"
)

// parseImport lowers an import statement into an ir.Import, or returns nil
// when the node is not an import.
func (s *symbolParser) parseImport(node *sitter.Node) *ir.Import {
	switch node.Type() {
	case "import_statement":
		return &ir.Import{
			Names:     s.fieldTexts(node, "name"),
			Substring: substringOf(node),
		}
	case "import_from_statement":
		imp := &ir.Import{
			Names:     s.fieldTexts(node, "name"),
			Substring: substringOf(node),
		}
		if moduleName := node.ChildByFieldName("module_name"); moduleName != nil {
			imp.ModuleName = s.text(moduleName)
		}
		return imp
	}
	return nil
}

func (s *symbolParser) fieldTexts(node *sitter.Node, field string) []string {
	var out []string
	for _, n := range childrenByFieldName(node, field) {
		out = append(out, s.text(n))
	}
	return out
}
