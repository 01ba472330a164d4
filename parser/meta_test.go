package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sycomix/rift/ir"
)

func TestMetaSymbols_IfStatement(t *testing.T) {
	source := `def f(x):
    if x:
        print(x)
`
	file := parseSource(t, source, ir.LanguagePython, WithMetaSymbols(true))

	ifSymbol := file.LookupSymbol("f.if$0")
	require.NotNil(t, ifSymbol)
	ifKind, ok := ifSymbol.Kind.(ir.IfKind)
	require.True(t, ok)
	require.NotNil(t, ifKind.IfCase.Guard)
	require.NotNil(t, ifKind.IfCase.Body)
	assert.Empty(t, ifKind.ElifCases)
	assert.Nil(t, ifKind.ElseBody)

	guard := file.LookupSymbol("f.if$0.guard$0")
	require.NotNil(t, guard)
	guardKind, ok := guard.Kind.(ir.GuardKind)
	require.True(t, ok)
	assert.Equal(t, "x", guardKind.Condition)

	body := file.LookupSymbol("f.if$0.body$0")
	require.NotNil(t, body)
	assert.IsType(t, ir.BodyKind{}, body.Kind)

	call := file.LookupSymbol("f.if$0.body$0.call$0")
	require.NotNil(t, call)
	callKind, ok := call.Kind.(ir.CallKind)
	require.True(t, ok)
	assert.Equal(t, "print", callKind.FunctionName)
	assert.Equal(t, []string{"x"}, callKind.Arguments)
}

func TestMetaSymbols_ElifAndElse(t *testing.T) {
	source := `def f(x):
    if x:
        pass
    elif not x:
        pass
    else:
        pass
`
	file := parseSource(t, source, ir.LanguagePython, WithMetaSymbols(true))

	ifSymbol := file.LookupSymbol("f.if$0")
	require.NotNil(t, ifSymbol)
	ifKind, ok := ifSymbol.Kind.(ir.IfKind)
	require.True(t, ok)
	require.Len(t, ifKind.ElifCases, 1)
	require.NotNil(t, ifKind.ElseBody)

	elifGuard := ifKind.ElifCases[0].Guard
	require.NotNil(t, elifGuard)
	guardKind, ok := elifGuard.Kind.(ir.GuardKind)
	require.True(t, ok)
	assert.Equal(t, "not x", guardKind.Condition)
}

func TestMetaSymbols_NestedCallsSubstituted(t *testing.T) {
	source := `def f(x):
    g(h(x), 1)
`
	file := parseSource(t, source, ir.LanguagePython, WithMetaSymbols(true))

	outer := file.LookupSymbol("f.call$0")
	require.NotNil(t, outer)
	outerKind, ok := outer.Kind.(ir.CallKind)
	require.True(t, ok)
	assert.Equal(t, "g", outerKind.FunctionName)
	// The nested call argument is replaced by its synthetic name.
	assert.Equal(t, []string{"call$0", "1"}, outerKind.Arguments)

	inner := file.LookupSymbol("f.call.call$0")
	require.NotNil(t, inner)
	innerKind, ok := inner.Kind.(ir.CallKind)
	require.True(t, ok)
	assert.Equal(t, "h", innerKind.FunctionName)
	assert.Equal(t, []string{"x"}, innerKind.Arguments)
}

func TestMetaSymbols_ExpressionStatement(t *testing.T) {
	source := `def f(x, y):
    x + y
`
	file := parseSource(t, source, ir.LanguagePython, WithMetaSymbols(true))

	expr := file.LookupSymbol("f.expression$0")
	require.NotNil(t, expr)
	kind, ok := expr.Kind.(ir.ExpressionKind)
	require.True(t, ok)
	assert.Equal(t, "x + y", kind.Code)
}

func TestMetaSymbols_DisabledByDefault(t *testing.T) {
	source := `def f(x):
    if x:
        print(x)
`
	file := parseSource(t, source, ir.LanguagePython)
	assert.Nil(t, file.LookupSymbol("f.if$0"))
}
