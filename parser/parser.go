package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/sycomix/rift/ir"
)

// Parser lowers source code into ir values. The zero-value configuration
// lowers declarations only; meta-symbol mode additionally lowers
// control-flow and expression statements into synthetic symbols.
type Parser struct {
	metaSymbols bool
	log         *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMetaSymbols enables lowering of non-declaration statements into
// synthetic meta-symbols.
func WithMetaSymbols(enabled bool) Option {
	return func(p *Parser) { p.metaSymbols = enabled }
}

// WithLogger sets the logger used for structural-miss warnings. The
// default discards them.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseCodeBlock parses code with the language's grammar and lowers every
// top-level node into file. Unrecognized constructs become opaque items;
// only a missing grammar or a failed grammar-adapter invocation is an
// error.
func (p *Parser) ParseCodeBlock(file *ir.File, code *ir.Code, language ir.Language) error {
	grammar, ok := GrammarForLanguage(language)
	if !ok {
		return fmt.Errorf("no grammar available for language %q", language)
	}
	tree, err := newSitterParser(grammar).ParseCtx(context.Background(), nil, code.Bytes)
	if err != nil {
		return fmt.Errorf("parse %s: %w", language, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	counter := newCounter()
	for i := 0; i < int(root.ChildCount()); i++ {
		node := root.Child(i)
		sp := &symbolParser{
			parser:   p,
			code:     code,
			file:     file,
			language: language,
			node:     node,
		}
		file.Statements = append(file.Statements, sp.parseStatement(counter)...)
	}
	return nil
}

// symbolParser carries the state of lowering one node: the node itself,
// the scope and parent context, and the per-declaration accumulators for
// body, docstring, exported-ness and return detection.
type symbolParser struct {
	parser   *Parser
	code     *ir.Code
	file     *ir.File
	language ir.Language
	node     *sitter.Node
	parent   *ir.Symbol
	scope    ir.Scope

	bodySub      *ir.Substring
	docstringSub *ir.Substring
	exported     bool
	hasReturn    bool
}

// recurse starts a fresh symbolParser for a child node under the given
// scope and parent.
func (s *symbolParser) recurse(node *sitter.Node, scope ir.Scope, parent *ir.Symbol) *symbolParser {
	return &symbolParser{
		parser:   s.parser,
		code:     s.code,
		file:     s.file,
		language: s.language,
		node:     node,
		parent:   parent,
		scope:    scope,
	}
}

func (s *symbolParser) text(n *sitter.Node) string {
	return string(s.code.Bytes[n.StartByte():n.EndByte()])
}

func substringOf(n *sitter.Node) ir.Substring {
	return ir.Substring{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func rangeOf(start, end *sitter.Node) ir.Range {
	return ir.Range{
		Start: ir.Pos{Row: int(start.StartPoint().Row), Column: int(start.StartPoint().Column)},
		End:   ir.Pos{Row: int(end.EndPoint().Row), Column: int(end.EndPoint().Column)},
	}
}

// childrenByFieldName collects every child carrying the given field name.
func childrenByFieldName(n *sitter.Node, name string) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.FieldNameForChild(i) == name {
			out = append(out, n.Child(i))
		}
	}
	return out
}

// parseStatement lowers one statement node. It returns a list because a
// single statement can declare several symbols (e.g. OCaml let groups).
// Opaque statements are appended to the parent's body here; declarations
// are appended by File.AddSymbol.
func (s *symbolParser) parseStatement(counter *counter) []ir.Item {
	symbols := s.recurse(s.node, s.scope, s.parent).parseSymbols(counter)
	if imp := s.parseImport(s.node); imp != nil {
		s.file.AddImport(*imp)
	}
	if len(symbols) > 0 {
		items := make([]ir.Item, len(symbols))
		for i, sym := range symbols {
			items[i] = ir.Item{Kind: s.node.Type(), Symbol: sym}
		}
		return items
	}
	item := ir.Item{Kind: s.node.Type()}
	if s.parent != nil {
		s.parent.Body = append(s.parent.Body, item)
	}
	return []ir.Item{item}
}

// parseBlock lowers every child of the current node as a statement.
func (s *symbolParser) parseBlock() ir.Block {
	var block ir.Block
	counter := newCounter()
	var nameNode *sitter.Node
	if s.language == ir.LanguageRuby {
		// When recursing into a ruby class or module node itself, skip
		// the name constant so it does not surface as a statement.
		nameNode = s.node.ChildByFieldName("name")
	}
	for i := 0; i < int(s.node.ChildCount()); i++ {
		child := s.node.Child(i)
		if nameNode != nil && child.StartByte() == nameNode.StartByte() && child.EndByte() == nameNode.EndByte() {
			continue
		}
		block = append(block, s.recurse(child, s.scope, s.parent).parseStatement(counter)...)
	}
	return block
}

// counter hands out per-name monotonic counts for synthetic meta-symbol
// names, scoped to one lowering context so output stays deterministic.
type counter struct {
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

// next returns the current count for name and increments it.
func (c *counter) next(name string) int {
	count := c.counts[name]
	c.counts[name] = count + 1
	return count
}
