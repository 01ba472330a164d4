package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sycomix/rift/ir"
)

func parseSource(t *testing.T, source string, language ir.Language, opts ...Option) *ir.File {
	t.Helper()
	file := ir.NewFile("test")
	err := New(opts...).ParseCodeBlock(file, ir.NewCode([]byte(source)), language)
	require.NoError(t, err)
	return file
}

func TestParsePython_FunctionsAndClasses(t *testing.T) {
	source := `def f(x: int, y) -> str:
    """Doc for f."""
    return str(x)

class Foo(Base):
    def bar(self):
        pass
`
	file := parseSource(t, source, ir.LanguagePython)

	f := file.LookupSymbol("f")
	require.NotNil(t, f)
	kind, ok := f.FunctionKind()
	require.True(t, ok)
	assert.True(t, kind.HasReturn)
	require.Len(t, kind.Parameters, 2)
	assert.Equal(t, "x", kind.Parameters[0].Name)
	require.NotNil(t, kind.Parameters[0].Type)
	assert.Equal(t, "int", kind.Parameters[0].Type.String())
	assert.Equal(t, "y", kind.Parameters[1].Name)
	assert.Nil(t, kind.Parameters[1].Type)
	require.NotNil(t, kind.ReturnType)
	assert.Equal(t, "str", kind.ReturnType.String())
	assert.Contains(t, f.Docstring(), "Doc for f.")

	foo := file.LookupSymbol("Foo")
	require.NotNil(t, foo)
	classKind, ok := foo.Kind.(ir.ClassKind)
	require.True(t, ok)
	assert.Contains(t, classKind.SuperclassesText, "Base")

	bar := file.LookupSymbol("Foo.bar")
	require.NotNil(t, bar)
	assert.Equal(t, ir.Scope("Foo."), bar.Scope)
	assert.Same(t, foo, bar.Parent)
	barKind, ok := bar.FunctionKind()
	require.True(t, ok)
	assert.False(t, barKind.HasReturn)
	require.Len(t, barKind.Parameters, 1)
	assert.Equal(t, "self", barKind.Parameters[0].Name)
	assert.Empty(t, bar.Docstring())
}

func TestParsePython_GenericAnnotations(t *testing.T) {
	source := `def f(xs: List[int], m: Dict[str, List[int]]) -> Optional[int]:
    return xs[0]
`
	file := parseSource(t, source, ir.LanguagePython)

	f := file.LookupSymbol("f")
	require.NotNil(t, f)
	kind, ok := f.FunctionKind()
	require.True(t, ok)
	require.Len(t, kind.Parameters, 2)

	xs := kind.Parameters[0].Type
	require.NotNil(t, xs)
	assert.Equal(t, "List", xs.Name)
	require.Len(t, xs.Arguments, 1)
	assert.Equal(t, "int", xs.Arguments[0].Name)
	assert.Equal(t, "List[int]", xs.String())

	m := kind.Parameters[1].Type
	require.NotNil(t, m)
	assert.Equal(t, "Dict", m.Name)
	require.Len(t, m.Arguments, 2)
	assert.Equal(t, "str", m.Arguments[0].Name)
	assert.Equal(t, "List[int]", m.Arguments[1].String())
	assert.Equal(t, "Dict[str, List[int]]", m.String())

	require.NotNil(t, kind.ReturnType)
	assert.Equal(t, "Optional", kind.ReturnType.Name)
	assert.Equal(t, "Optional[int]", kind.ReturnType.String())
}

func TestParsePython_SymbolTextRoundTrip(t *testing.T) {
	source := `def f():
    pass
`
	file := parseSource(t, source, ir.LanguagePython)
	f := file.LookupSymbol("f")
	require.NotNil(t, f)
	assert.Equal(t, "def f():\n    pass", string(f.Text()))
}

func TestParsePython_Imports(t *testing.T) {
	source := `import os
from typing import List, Optional
`
	file := parseSource(t, source, ir.LanguagePython)
	require.Len(t, file.Imports, 2)
	assert.Equal(t, []string{"os"}, file.Imports[0].Names)
	assert.Equal(t, "", file.Imports[0].ModuleName)

	typing := file.SearchModuleImport("typing")
	require.NotNil(t, typing)
	assert.Equal(t, []string{"List", "Optional"}, typing.Names)
}

func TestParseTypeScript_Declarations(t *testing.T) {
	source := `/** Greets someone. */
export function greet(name: string): string {
  return "hi " + name;
}

interface Point {
  x: number;
}

type Alias = Point;

const add = (a: number, b: number) => a + b;
`
	file := parseSource(t, source, ir.LanguageTypeScript)

	greet := file.LookupSymbol("greet")
	require.NotNil(t, greet)
	assert.True(t, greet.Exported)
	assert.Contains(t, greet.Docstring(), "Greets someone.")
	kind, ok := greet.FunctionKind()
	require.True(t, ok)
	assert.True(t, kind.HasReturn)
	require.Len(t, kind.Parameters, 1)
	assert.Equal(t, "name", kind.Parameters[0].Name)
	require.NotNil(t, kind.Parameters[0].Type)
	assert.Equal(t, "string", kind.Parameters[0].Type.String())
	require.NotNil(t, kind.ReturnType)
	assert.Equal(t, "string", kind.ReturnType.String())

	point := file.LookupSymbol("Point")
	require.NotNil(t, point)
	assert.IsType(t, ir.InterfaceKind{}, point.Kind)

	alias := file.LookupSymbol("Alias")
	require.NotNil(t, alias)
	assert.IsType(t, ir.TypeDefinitionKind{}, alias.Kind)

	add := file.LookupSymbol("add")
	require.NotNil(t, add)
	_, ok = add.FunctionKind()
	assert.True(t, ok)
}

func TestParseJavaScript_ArrowAndFunction(t *testing.T) {
	source := `function hello(name) {
  return "hi " + name;
}

const twice = (x) => x * 2;
`
	file := parseSource(t, source, ir.LanguageJavaScript)

	hello := file.LookupSymbol("hello")
	require.NotNil(t, hello)
	kind, ok := hello.FunctionKind()
	require.True(t, ok)
	assert.True(t, kind.HasReturn)

	twice := file.LookupSymbol("twice")
	require.NotNil(t, twice)
	_, ok = twice.FunctionKind()
	assert.True(t, ok)
}

func TestParseC_PointerReturn(t *testing.T) {
	source := "int *next(int x) { return &x; }\n"
	file := parseSource(t, source, ir.LanguageC)

	next := file.LookupSymbol("next")
	require.NotNil(t, next)
	kind, ok := next.FunctionKind()
	require.True(t, ok)
	require.NotNil(t, kind.ReturnType)
	assert.Equal(t, "int*", kind.ReturnType.String())
	require.Len(t, kind.Parameters, 1)
	assert.Equal(t, "x", kind.Parameters[0].Name)
	require.NotNil(t, kind.Parameters[0].Type)
	assert.Equal(t, "int", kind.Parameters[0].Type.String())
}

func TestParseCPP_NamespaceScope(t *testing.T) {
	source := `namespace ns {
int add(int a, int b) { return a + b; }
}
`
	file := parseSource(t, source, ir.LanguageCPP)

	ns := file.LookupSymbol("ns")
	require.NotNil(t, ns)
	assert.IsType(t, ir.NamespaceKind{}, ns.Kind)

	add := file.LookupSymbol("ns::add")
	require.NotNil(t, add)
	assert.Equal(t, ir.Scope("ns::"), add.Scope)
	kind, ok := add.FunctionKind()
	require.True(t, ok)
	require.Len(t, kind.Parameters, 2)
	assert.Equal(t, "a", kind.Parameters[0].Name)
	assert.Equal(t, "b", kind.Parameters[1].Name)
}

func TestParseJava_ClassMethod(t *testing.T) {
	source := `public class Greeter {
    public String greet(String name) {
        return "Hello " + name;
    }
}
`
	file := parseSource(t, source, ir.LanguageJava)

	greeter := file.LookupSymbol("Greeter")
	require.NotNil(t, greeter)
	assert.IsType(t, ir.ClassKind{}, greeter.Kind)

	greet := file.LookupSymbol("Greeter.greet")
	require.NotNil(t, greet)
	kind, ok := greet.FunctionKind()
	require.True(t, ok)
	require.NotNil(t, kind.ReturnType)
	assert.Equal(t, "String", kind.ReturnType.String())
	require.Len(t, kind.Parameters, 1)
}

func TestParseCSharp_NamespaceClassMethod(t *testing.T) {
	source := `namespace App {
    class Widget {
        int Size() { return 1; }
    }
}
`
	file := parseSource(t, source, ir.LanguageCSharp)

	require.NotNil(t, file.LookupSymbol("App"))
	widget := file.LookupSymbol("App::Widget")
	require.NotNil(t, widget)
	assert.IsType(t, ir.ClassKind{}, widget.Kind)

	size := file.LookupSymbol("App::Widget.Size")
	require.NotNil(t, size)
	kind, ok := size.FunctionKind()
	require.True(t, ok)
	assert.True(t, kind.HasReturn)
}

func TestParseRuby_ClassMethod(t *testing.T) {
	source := `class Greeter
  def greet(name)
    "Hello " + name
  end
end
`
	file := parseSource(t, source, ir.LanguageRuby)

	greeter := file.LookupSymbol("Greeter")
	require.NotNil(t, greeter)
	assert.IsType(t, ir.ClassKind{}, greeter.Kind)

	greet := file.LookupSymbol("Greeter::greet")
	require.NotNil(t, greet)
	assert.Equal(t, ir.Scope("Greeter::"), greet.Scope)
	kind, ok := greet.FunctionKind()
	require.True(t, ok)
	require.Len(t, kind.Parameters, 1)
	assert.Equal(t, "name", kind.Parameters[0].Name)
}

func TestParseOCaml_LetBindingsAndModules(t *testing.T) {
	source := `let add x y = x + y

let pi = 3.14

module M = struct
  let id x = x
end
`
	file := parseSource(t, source, ir.LanguageOCaml)

	add := file.LookupSymbol("add")
	require.NotNil(t, add)
	kind, ok := add.FunctionKind()
	require.True(t, ok)
	require.Len(t, kind.Parameters, 2)
	assert.Equal(t, "x", kind.Parameters[0].Name)
	assert.Equal(t, "y", kind.Parameters[1].Name)

	pi := file.LookupSymbol("pi")
	require.NotNil(t, pi)
	assert.IsType(t, ir.ValueKind{}, pi.Kind)

	m := file.LookupSymbol("M")
	require.NotNil(t, m)
	assert.IsType(t, ir.ModuleKind{}, m.Kind)

	id := file.LookupSymbol("M.id")
	require.NotNil(t, id)
	assert.Equal(t, ir.Scope("M."), id.Scope)
}

func TestParse_DumpIsDeterministic(t *testing.T) {
	source := `class Foo:
    def bar(self):
        return 1

def baz():
    pass
`
	first := parseSource(t, source, ir.LanguagePython)
	second := parseSource(t, source, ir.LanguagePython)

	var firstDump, secondDump []string
	first.DumpSymbolTable(&firstDump)
	second.DumpSymbolTable(&secondDump)
	require.NotEmpty(t, firstDump)
	assert.Equal(t, firstDump, secondDump)
}

func TestParse_UnknownGrammar(t *testing.T) {
	file := ir.NewFile("test")
	err := New().ParseCodeBlock(file, ir.NewCode([]byte("x")), ir.Language("cobol"))
	require.Error(t, err)
}

func TestLanguageForFile(t *testing.T) {
	lang, ok := LanguageForFile("a/b.py")
	require.True(t, ok)
	assert.Equal(t, ir.LanguagePython, lang)

	lang, ok = LanguageForFile("x.tsx")
	require.True(t, ok)
	assert.Equal(t, ir.LanguageTSX, lang)

	_, ok = LanguageForFile("notes.txt")
	assert.False(t, ok)
}
