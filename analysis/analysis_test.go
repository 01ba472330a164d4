package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sycomix/rift/ir"
	"github.com/sycomix/rift/parser"
)

func parseSource(t *testing.T, source string, language ir.Language) *ir.File {
	t.Helper()
	file := ir.NewFile("test")
	err := parser.New().ParseCodeBlock(file, ir.NewCode([]byte(source)), language)
	require.NoError(t, err)
	return file
}

func TestFunctionsMissingTypes_SkipsReceiver(t *testing.T) {
	source := `class Foo:
    def f(self, x):
        pass
`
	file := parseSource(t, source, ir.LanguagePython)
	missing := FunctionsMissingTypes(file)
	require.Len(t, missing, 1)
	// self is not reported; x and the return type are.
	assert.Equal(t, []string{"x"}, missing[0].Parameters)
	assert.True(t, missing[0].ReturnType)
	assert.Equal(t, 2, missing[0].Count())
}

func TestFunctionsMissingTypes_TopLevelSelfReported(t *testing.T) {
	// Outside a class there is no receiver, so self is a plain
	// parameter.
	source := "def f(self):\n    pass\n"
	file := parseSource(t, source, ir.LanguagePython)
	missing := FunctionsMissingTypes(file)
	require.Len(t, missing, 1)
	assert.Equal(t, []string{"self"}, missing[0].Parameters)
}

func TestFunctionsMissingTypes_FullyAnnotated(t *testing.T) {
	source := "def f(x: int) -> str:\n    return str(x)\n"
	file := parseSource(t, source, ir.LanguagePython)
	assert.Empty(t, FunctionsMissingTypes(file))
}

func TestFunctionsMissingTypes_TypeScriptVoidInference(t *testing.T) {
	// No return statement and no annotation: not a gap in languages
	// that infer void.
	source := "function log(msg: string) { console.log(msg); }\n"
	file := parseSource(t, source, ir.LanguageTypeScript)
	assert.Empty(t, FunctionsMissingTypes(file))

	// With a return statement the missing annotation is a gap.
	source = "function id(x: number) { return x; }\n"
	file = parseSource(t, source, ir.LanguageTypeScript)
	missing := FunctionsMissingTypes(file)
	require.Len(t, missing, 1)
	assert.Empty(t, missing[0].Parameters)
	assert.True(t, missing[0].ReturnType)
}

func TestMissingTypeString(t *testing.T) {
	fn := &ir.Symbol{Name: "f"}

	assert.Equal(t,
		"Function `f` is missing type annotations in parameter 'x'",
		MissingType{Function: fn, Parameters: []string{"x"}}.String())
	assert.Equal(t,
		"Function `f` is missing type annotations in parameters ['x', 'y'] and in return type",
		MissingType{Function: fn, Parameters: []string{"x", "y"}, ReturnType: true}.String())
	assert.Equal(t,
		"Function `f` is missing type annotations in return type",
		MissingType{Function: fn, ReturnType: true}.String())
}

func TestFunctionsMissingDocstrings(t *testing.T) {
	source := `def documented(x):
    """Has a docstring."""
    return x

def bare(x):
    return x
`
	file := parseSource(t, source, ir.LanguagePython)
	missing := FunctionsMissingDocstrings(file)
	require.Len(t, missing, 1)
	assert.Equal(t, "bare", missing[0].Function.Name)
	assert.Equal(t, "Function `bare` is missing a doc string", missing[0].String())
}

func TestFunctionsMissingDocstrings_LanguageNotRecognized(t *testing.T) {
	// No docstring convention is recognized for java, so nothing is
	// reported.
	source := `public class A {
    public int f() { return 1; }
}
`
	file := parseSource(t, source, ir.LanguageJava)
	assert.Empty(t, FunctionsMissingDocstrings(file))
}

func TestProjectReports(t *testing.T) {
	project := ir.NewProject("/repo")

	clean := parseSource(t, "def f(x: int) -> int:\n    \"\"\"Doc.\"\"\"\n    return x\n", ir.LanguagePython)
	dirty := parseSource(t, "def g(y):\n    return y\n", ir.LanguagePython)
	project.AddFile(clean)
	project.AddFile(dirty)

	typeReports := FilesMissingTypes(project)
	require.Len(t, typeReports, 1)
	assert.Equal(t, ir.LanguagePython, typeReports[0].Language)
	require.Len(t, typeReports[0].Missing, 1)
	assert.Equal(t, "g", typeReports[0].Missing[0].Function.Name)

	docReports := FilesMissingDocstrings(project)
	require.Len(t, docReports, 1)
	require.Len(t, docReports[0].Missing, 1)
	assert.Equal(t, "g", docReports[0].Missing[0].Function.Name)
}
