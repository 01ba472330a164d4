package ir

import (
	"fmt"
	"strings"
)

// Language tags the grammar a file or symbol was lowered from.
type Language string

const (
	LanguageC          Language = "c"
	LanguageCPP        Language = "cpp"
	LanguageCSharp     Language = "c_sharp"
	LanguageJava       Language = "java"
	LanguageJavaScript Language = "javascript"
	LanguageOCaml      Language = "ocaml"
	LanguagePython     Language = "python"
	LanguageRuby       Language = "ruby"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
)

// Scope is a dotted or ::-qualified prefix identifying lexical nesting,
// ending in a separator, or empty at top level (e.g. "Outer.Inner.").
type Scope = string

// QualifiedID is a symbol's scope prefix concatenated with its name; the
// unique key into a file's symbol table.
type QualifiedID = string

// SymbolKind is the closed variant set of symbol kinds. Implementations
// are the *Kind structs in this package; a dispatch over kinds is a type
// switch, not a method set.
type SymbolKind interface {
	// KindName is the display name used in the symbol-table dump.
	KindName() string
}

// FunctionKind marks a function-like declaration.
type FunctionKind struct {
	HasReturn  bool
	Parameters []Parameter
	ReturnType *Type
}

func (FunctionKind) KindName() string { return "Function" }

// ValueKind marks a value binding or variable declaration.
type ValueKind struct {
	Type *Type
}

func (ValueKind) KindName() string { return "Value" }

// TypeDefinitionKind marks a type alias or type declaration.
type TypeDefinitionKind struct {
	Type *Type
}

func (TypeDefinitionKind) KindName() string { return "TypeDefinition" }

// InterfaceKind marks an interface declaration.
type InterfaceKind struct{}

func (InterfaceKind) KindName() string { return "Interface" }

// ClassKind marks a class-like container. SuperclassesText keeps the raw
// source of the superclass list, when present.
type ClassKind struct {
	SuperclassesText string
}

func (ClassKind) KindName() string { return "Class" }

// NamespaceKind marks a namespace-like container.
type NamespaceKind struct{}

func (NamespaceKind) KindName() string { return "Namespace" }

// ModuleKind marks a module-like container.
type ModuleKind struct{}

func (ModuleKind) KindName() string { return "Module" }

// Meta-symbol kinds model control flow and expressions when fine-grained
// lowering is requested. Their symbols carry deterministic synthetic names
// of the form "<kind>$<n>".

// GuardKind is the condition of a conditional branch.
type GuardKind struct {
	Condition string
}

func (GuardKind) KindName() string { return "Guard" }

// BodyKind is the body of a conditional branch.
type BodyKind struct {
	Block Block
}

func (BodyKind) KindName() string { return "Body" }

// CallKind is a function call; arguments are pretty-printed expression
// strings with nested symbols substituted by their synthetic names.
type CallKind struct {
	FunctionName string
	Arguments    []string
}

func (CallKind) KindName() string { return "Call" }

// ExpressionKind is an expression statement, pretty-printed the same way.
type ExpressionKind struct {
	Code string
}

func (ExpressionKind) KindName() string { return "Expression" }

// Case pairs a guard with the body it guards.
type Case struct {
	Guard *Symbol
	Body  *Symbol
}

// IfKind is a full conditional: the if case, any elif cases, and an
// optional else body.
type IfKind struct {
	IfCase    Case
	ElifCases []Case
	ElseBody  *Symbol
}

func (IfKind) KindName() string { return "If" }

// MetaSymbolKind reports whether k is a synthesized control-flow or
// expression kind rather than a source declaration.
func MetaSymbolKind(k SymbolKind) bool {
	switch k.(type) {
	case GuardKind, BodyKind, CallKind, ExpressionKind, IfKind:
		return true
	}
	return false
}

// Item is one entry in a body: either a recognized declaration wrapping a
// Symbol, or an opaque statement identified only by its node kind.
type Item struct {
	Kind   string
	Symbol *Symbol
}

func (it Item) String() string {
	if it.Symbol != nil {
		return fmt.Sprintf("%s %s", it.Symbol.Kind.KindName(), it.Symbol.Name)
	}
	return it.Kind
}

// Block is an ordered list of items.
type Block = []Item

// Symbol is one named, scoped entity lowered from source. The symbol tree
// is a strictly-owned forest through Body; Parent is a non-owning
// back-reference used only for scope reconstruction and synthetic-name
// counters.
type Symbol struct {
	// []Item is identical to Block; spelled out because Go pre-1.22
	// rejects a type alias used inside a recursive type (go.dev/issue/50729).
	Body         []Item
	BodySub      *Substring
	Code         *Code
	DocstringSub *Substring
	Exported     bool
	Language     Language
	Name         string
	Parent       *Symbol
	Range        Range
	Scope        Scope
	Substring    Substring
	Kind         SymbolKind
}

// QualifiedID returns the scope prefix concatenated with the name.
func (s *Symbol) QualifiedID() QualifiedID {
	return s.Scope + s.Name
}

// Text returns the bytes of the whole declaration.
func (s *Symbol) Text() []byte {
	return s.Code.Bytes[s.Substring.Start:s.Substring.End]
}

// TextWithoutBody returns the declaration bytes up to the body, or the
// whole declaration when no body range was recorded.
func (s *Symbol) TextWithoutBody() []byte {
	if s.BodySub == nil {
		return s.Text()
	}
	return s.Code.Bytes[s.Substring.Start:s.BodySub.Start]
}

// Docstring decodes the recorded docstring range, or returns "".
func (s *Symbol) Docstring() string {
	if s.DocstringSub == nil {
		return ""
	}
	return string(s.Code.Bytes[s.DocstringSub.Start:s.DocstringSub.End])
}

// FunctionKind returns the symbol's kind as a FunctionKind when it is one.
func (s *Symbol) FunctionKind() (FunctionKind, bool) {
	k, ok := s.Kind.(FunctionKind)
	return k, ok
}

// Import records an import statement: the imported names, the module they
// come from (when the language distinguishes one), and the byte range of
// the statement.
type Import struct {
	Names      []string
	ModuleName string
	Substring  Substring
}

func (imp Import) String() string {
	if imp.ModuleName != "" {
		return fmt.Sprintf("from %s import %s", imp.ModuleName, strings.Join(imp.Names, ", "))
	}
	return "import " + strings.Join(imp.Names, ", ")
}
