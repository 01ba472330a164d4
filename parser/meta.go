package parser

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/sycomix/rift/ir"
)

// Meta-symbol lowering: when enabled, statements that are not declarations
// (conditionals, expression statements, calls) become synthetic symbols
// named "<kind>$<n>", where n is a per-(scope, kind) monotonic counter.
// The synthetic name becomes the next scope segment for anything nested
// inside.

// mkDummyMetaSymbol creates a synthetic placeholder symbol and extends the
// current scope with its name.
func (s *symbolParser) mkDummyMetaSymbol(counter *counter, name string) *ir.Symbol {
	id := fmt.Sprintf("%s$%d", name, counter.next(name))
	symbol := s.mkDummy(id, []*sitter.Node{s.node})
	s.scope = s.scope + id + "."
	return symbol
}

// parseGuard lowers the condition of a conditional branch.
func (s *symbolParser) parseGuard() *ir.Symbol {
	counter := newCounter()
	guard := s.mkDummyMetaSymbol(counter, "guard")
	condition := s.parseExpression(counter)
	guard.Kind = ir.GuardKind{Condition: condition}
	s.file.AddSymbol(guard)
	return guard
}

// parseBody lowers the body of a conditional branch.
func (s *symbolParser) parseBody() *ir.Symbol {
	counter := newCounter()
	body := s.mkDummyMetaSymbol(counter, "body")
	block := s.recurse(s.node, s.scope, body).parseBlock()
	body.Kind = ir.BodyKind{Block: block}
	s.file.AddSymbol(body)
	return body
}

// parseMetaSymbol lowers a non-declaration statement into a synthetic
// symbol, or returns nil when the statement shape is not modeled.
func (s *symbolParser) parseMetaSymbol(counter *counter) *ir.Symbol {
	node := s.node

	if node.Type() == "if_statement" && s.language == ir.LanguagePython {
		guardNode := node.ChildByFieldName("condition")
		bodyNode := node.ChildByFieldName("consequence")
		if guardNode == nil || bodyNode == nil {
			return nil
		}
		ifSymbol := s.mkDummyMetaSymbol(counter, "if")
		scope := s.scope

		ifCase := ir.Case{
			Guard: s.recurse(guardNode, scope, ifSymbol).parseGuard(),
			Body:  s.recurse(bodyNode, scope, ifSymbol).parseBody(),
		}
		var elifCases []ir.Case
		var elseBody *ir.Symbol
		for _, alt := range childrenByFieldName(node, "alternative") {
			switch alt.Type() {
			case "elif_clause":
				guardNode := alt.ChildByFieldName("condition")
				bodyNode := alt.ChildByFieldName("consequence")
				if guardNode == nil || bodyNode == nil {
					continue
				}
				elifCases = append(elifCases, ir.Case{
					Guard: s.recurse(guardNode, scope, ifSymbol).parseGuard(),
					Body:  s.recurse(bodyNode, scope, ifSymbol).parseBody(),
				})
			case "else_clause":
				if elseNode := alt.ChildByFieldName("body"); elseNode != nil {
					elseBody = s.recurse(elseNode, scope, ifSymbol).parseBody()
				}
			}
		}
		ifSymbol.Kind = ir.IfKind{IfCase: ifCase, ElifCases: elifCases, ElseBody: elseBody}
		s.file.AddSymbol(ifSymbol)
		return ifSymbol
	}

	if node.Type() == "expression_statement" && s.language == ir.LanguagePython && int(node.ChildCount()) == 1 {
		child := node.Child(0)
		if expressionRequiresSymbol(child) && s.parent != nil {
			// Lowering the expression registers its own symbol under the
			// parent; reuse it instead of wrapping it again.
			s.recurse(child, s.scope, s.parent).parseExpression(counter)
			if n := len(s.parent.Body); n > 0 {
				return s.parent.Body[n-1].Symbol
			}
			return nil
		}
		symbol := s.mkDummyMetaSymbol(counter, "expression")
		code := s.recurse(child, s.scope, symbol).parseExpression(counter)
		symbol.Kind = ir.ExpressionKind{Code: code}
		s.file.AddSymbol(symbol)
		return symbol
	}

	return nil
}

// expressionRequiresSymbol reports whether lowering the expression will
// itself register a symbol (calls do; plain expressions do not).
func expressionRequiresSymbol(node *sitter.Node) bool {
	return node.Type() == "call"
}

// parseExpression lowers any calls nested in the expression and returns
// the expression's source text with each nested symbol's span substituted
// by its synthetic name. Substitution runs in descending offset order so
// earlier replacements never invalidate later spans; this reuses the edit
// engine's splice primitive.
func (s *symbolParser) parseExpression(counter *counter) string {
	s.recurse(s.node, s.scope, s.parent).walkExpression(counter)

	code := s.code.Bytes[s.node.StartByte():s.node.EndByte()]
	if s.parent == nil {
		return string(code)
	}

	base := int(s.node.StartByte())
	var edits []ir.CodeEdit
	for _, item := range s.parent.Body {
		if item.Symbol == nil {
			continue
		}
		edits = append(edits, ir.CodeEdit{
			Substring: ir.Substring{
				Start: item.Symbol.Substring.Start - base,
				End:   item.Symbol.Substring.End - base,
			},
			NewBytes: []byte(item.Symbol.Name),
		})
	}
	return string(ir.Splice(code, edits))
}

// walkExpression registers a synthetic Call symbol for each call found in
// the expression, recursively lowering its arguments as children.
func (s *symbolParser) walkExpression(counter *counter) {
	node := s.node
	if expressionRequiresSymbol(node) {
		functionNode := node.ChildByFieldName("function")
		if functionNode == nil {
			s.parser.log.Warn("call node without function child", zap.String("text", s.text(node)))
			return
		}
		functionName := s.text(functionNode)

		id := fmt.Sprintf("call$%d", counter.next("call"))
		symbol := s.mkDummy(id, []*sitter.Node{node})
		s.scope = s.scope + "call."

		var arguments []string
		if argumentsNode := node.ChildByFieldName("arguments"); argumentsNode != nil {
			argCounter := newCounter()
			for i := 0; i < int(argumentsNode.ChildCount()); i++ {
				arg := argumentsNode.Child(i)
				switch arg.Type() {
				case "(", ")", ",":
					continue
				}
				arguments = append(arguments, s.recurse(arg, s.scope, symbol).parseExpression(argCounter))
			}
		}
		symbol.Kind = ir.CallKind{FunctionName: functionName, Arguments: arguments}
		s.file.AddSymbol(symbol)
		return
	}

	if node.Type() == "assignment" || node.Type() == "binary_operator" {
		for i := 0; i < int(node.ChildCount()); i++ {
			s.node = node.Child(i)
			s.walkExpression(counter)
		}
	}
}
