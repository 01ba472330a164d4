package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSymbol(name string, scope Scope, kind SymbolKind) *Symbol {
	return &Symbol{
		Name:     name,
		Scope:    scope,
		Code:     NewCode([]byte("")),
		Language: LanguagePython,
		Kind:     kind,
	}
}

func TestAddSymbol_LastWriteWinsKeepsOrder(t *testing.T) {
	file := NewFile("a.py")
	file.AddSymbol(newTestSymbol("f", "", FunctionKind{}))
	file.AddSymbol(newTestSymbol("g", "", FunctionKind{}))
	redefined := newTestSymbol("f", "", FunctionKind{HasReturn: true})
	file.AddSymbol(redefined)

	symbols := file.SearchSymbol("")
	require.Len(t, symbols, 2)
	// The redefinition replaced the entry but kept its position.
	assert.Same(t, redefined, symbols[0])
	assert.Equal(t, "g", symbols[1].Name)
	assert.Same(t, redefined, file.LookupSymbol("f"))
}

func TestAddSymbol_AppendsToParentBody(t *testing.T) {
	file := NewFile("a.py")
	class := newTestSymbol("Foo", "", ClassKind{})
	file.AddSymbol(class)

	method := newTestSymbol("bar", "Foo.", FunctionKind{})
	method.Parent = class
	file.AddSymbol(method)

	require.Len(t, class.Body, 1)
	assert.Same(t, method, class.Body[0].Symbol)
	assert.Equal(t, QualifiedID("Foo.bar"), method.QualifiedID())
}

func TestSearchSymbol_ByName(t *testing.T) {
	file := NewFile("a.py")
	file.AddSymbol(newTestSymbol("f", "", FunctionKind{}))
	file.AddSymbol(newTestSymbol("f", "Foo.", FunctionKind{}))
	file.AddSymbol(newTestSymbol("g", "", FunctionKind{}))

	matches := file.SearchSymbol("f")
	require.Len(t, matches, 2)
	assert.Equal(t, QualifiedID("f"), matches[0].QualifiedID())
	assert.Equal(t, QualifiedID("Foo.f"), matches[1].QualifiedID())

	assert.Empty(t, file.SearchSymbol("missing"))
}

func TestSearchModuleImport(t *testing.T) {
	file := NewFile("a.py")
	file.AddImport(Import{Names: []string{"List"}, ModuleName: "typing", Substring: Substring{Start: 0, End: 23}})

	imp := file.SearchModuleImport("typing")
	require.NotNil(t, imp)
	assert.Equal(t, []string{"List"}, imp.Names)
	assert.Nil(t, file.SearchModuleImport("os"))
}

func TestFunctionDeclarations_FiltersKinds(t *testing.T) {
	file := NewFile("a.py")
	file.AddSymbol(newTestSymbol("Foo", "", ClassKind{}))
	file.AddSymbol(newTestSymbol("f", "", FunctionKind{}))
	file.AddSymbol(newTestSymbol("x", "", ValueKind{}))

	decls := file.FunctionDeclarations()
	require.Len(t, decls, 1)
	assert.Equal(t, "f", decls[0].Name)
}
