package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sycomix/rift/ir"
	"github.com/sycomix/rift/parser"
)

func parseFunc() ParseFunc {
	return parser.New().ParseCodeBlock
}

func TestExtractBlocks(t *testing.T) {
	response := "Here is the code:\n" +
		"```python\n" +
		"def f():\n" +
		"    return 0\n" +
		"```\n" +
		"And another:\n" +
		"```\n" +
		"x = 1\n" +
		"```\n"
	blocks := ExtractBlocks(response)
	require.Len(t, blocks, 2)
	assert.Equal(t, "def f():\n    return 0\n", string(blocks[0].Bytes))
	assert.Equal(t, "x = 1\n", string(blocks[1].Bytes))
}

func TestExtractBlocks_UnterminatedDropped(t *testing.T) {
	response := "```python\ndef f():\n    pass\n"
	assert.Empty(t, ExtractBlocks(response))
}

func TestExtractBlocks_NoBlocks(t *testing.T) {
	assert.Empty(t, ExtractBlocks("just prose, no code"))
}

func applyEdits(t *testing.T, code *ir.Code, edits []ir.CodeEdit) string {
	t.Helper()
	edited, err := code.ApplyEdits(edits)
	require.NoError(t, err)
	return string(edited.Bytes)
}

func TestReplaceAll(t *testing.T) {
	document := ir.NewCode([]byte(
		"def add(a, b):\n    return a + b\n\ndef sub(a, b):\n    return a - b\n"))
	blocks := []*ir.Code{ir.NewCode([]byte(
		"def add(a: int, b: int) -> int:\n    return a + b\n"))}

	edits, updated, err := ReplaceFunctionsFromCodeBlocks(
		parseFunc(), blocks, document, ir.LanguagePython, Options{Replace: ReplaceAll})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "add", updated[0].Name)

	got := applyEdits(t, document, edits)
	assert.Equal(t,
		"def add(a: int, b: int) -> int:\n    return a + b\n\ndef sub(a, b):\n    return a - b\n",
		got)
}

func TestReplaceSignature_KeepsBody(t *testing.T) {
	document := ir.NewCode([]byte(
		"def add(a, b):\n    return a + b\n"))
	blocks := []*ir.Code{ir.NewCode([]byte(
		"def add(a: int, b: int) -> int:\n    return 0\n"))}

	edits, _, err := ReplaceFunctionsFromCodeBlocks(
		parseFunc(), blocks, document, ir.LanguagePython, Options{Replace: ReplaceSignature})
	require.NoError(t, err)

	got := applyEdits(t, document, edits)
	assert.Equal(t,
		"def add(a: int, b: int) -> int:\n    return a + b\n",
		got)
}

func TestReplaceDoc_InsertsPythonDocstring(t *testing.T) {
	document := ir.NewCode([]byte(
		"def f(x):\n    return x\n"))
	blocks := []*ir.Code{ir.NewCode([]byte(
		"def f(x):\n    \"\"\"Doc.\"\"\"\n    return x\n"))}

	edits, _, err := ReplaceFunctionsFromCodeBlocks(
		parseFunc(), blocks, document, ir.LanguagePython, Options{Replace: ReplaceDoc})
	require.NoError(t, err)

	got := applyEdits(t, document, edits)
	assert.Equal(t,
		"def f(x):\n    \"\"\"Doc.\"\"\"\n    return x\n",
		got)
}

func TestReplaceDoc_ExistingDocstringSkipped(t *testing.T) {
	document := ir.NewCode([]byte(
		"def f(x):\n    \"\"\"Old.\"\"\"\n    return x\n"))
	blocks := []*ir.Code{ir.NewCode([]byte(
		"def f(x):\n    \"\"\"New.\"\"\"\n    return x\n"))}

	edits, _, err := ReplaceFunctionsFromCodeBlocks(
		parseFunc(), blocks, document, ir.LanguagePython, Options{Replace: ReplaceDoc})
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestReplace_AmbiguousNameSkipped(t *testing.T) {
	document := ir.NewCode([]byte("def f(x):\n    return x\n"))
	// Two block symbols share the name: neither is used.
	blocks := []*ir.Code{
		ir.NewCode([]byte("def f(x: int) -> int:\n    return x\n")),
		ir.NewCode([]byte("class A:\n    def f(self):\n        pass\n")),
	}
	edits, updated, err := ReplaceFunctionsFromCodeBlocks(
		parseFunc(), blocks, document, ir.LanguagePython, Options{Replace: ReplaceAll})
	require.NoError(t, err)
	assert.Empty(t, edits)
	assert.Empty(t, updated)
}

func TestReplace_FilterByQualifiedID(t *testing.T) {
	document := ir.NewCode([]byte(
		"def a():\n    return 1\n\ndef b():\n    return 2\n"))
	blocks := []*ir.Code{ir.NewCode([]byte(
		"def a():\n    return 10\n\ndef b():\n    return 20\n"))}

	edits, updated, err := ReplaceFunctionsFromCodeBlocks(
		parseFunc(), blocks, document, ir.LanguagePython,
		Options{Replace: ReplaceAll, FilterIDs: []ir.QualifiedID{"a"}})
	require.NoError(t, err)
	require.Len(t, edits, 1)
	require.Len(t, updated, 1)

	got := applyEdits(t, document, edits)
	assert.Equal(t, "def a():\n    return 10\n\ndef b():\n    return 2\n", got)
}

func TestUpdateTypingImports_ExtendsExisting(t *testing.T) {
	document := ir.NewCode([]byte(
		"from typing import List\n\ndef f(x):\n    return [x]\n"))
	blockFile, err := ParseBlocks(parseFunc(), []*ir.Code{ir.NewCode([]byte(
		"def f(x: Optional[int]) -> List[int]:\n    return [x]\n"))}, ir.LanguagePython)
	require.NoError(t, err)

	edit, err := UpdateTypingImports(parseFunc(), document, ir.LanguagePython, blockFile.FunctionDeclarations())
	require.NoError(t, err)
	require.NotNil(t, edit)
	assert.Equal(t, "from typing import List, Optional", string(edit.NewBytes))

	got := applyEdits(t, document, []ir.CodeEdit{*edit})
	assert.Equal(t,
		"from typing import List, Optional\n\ndef f(x):\n    return [x]\n",
		got)
}

func TestUpdateTypingImports_InsertsWhenAbsent(t *testing.T) {
	document := ir.NewCode([]byte("def f(x):\n    return x\n"))
	blockFile, err := ParseBlocks(parseFunc(), []*ir.Code{ir.NewCode([]byte(
		"def f(x: Any):\n    return x\n"))}, ir.LanguagePython)
	require.NoError(t, err)

	edit, err := UpdateTypingImports(parseFunc(), document, ir.LanguagePython, blockFile.FunctionDeclarations())
	require.NoError(t, err)
	require.NotNil(t, edit)
	assert.Equal(t, "from typing import Any\n", string(edit.NewBytes))
	assert.Equal(t, ir.Substring{Start: 0, End: 0}, edit.Substring)
}

func TestUpdateTypingImports_NothingMissing(t *testing.T) {
	document := ir.NewCode([]byte("def f(x):\n    return x\n"))
	blockFile, err := ParseBlocks(parseFunc(), []*ir.Code{ir.NewCode([]byte(
		"def f(x: int) -> int:\n    return x\n"))}, ir.LanguagePython)
	require.NoError(t, err)

	edit, err := UpdateTypingImports(parseFunc(), document, ir.LanguagePython, blockFile.FunctionDeclarations())
	require.NoError(t, err)
	assert.Nil(t, edit)
}

func TestIsTypingType(t *testing.T) {
	assert.True(t, IsTypingType("Optional"))
	assert.True(t, IsTypingType("Dict"))
	assert.False(t, IsTypingType("int"))
}

func TestTypingNamesFromTypes_NestedArguments(t *testing.T) {
	inner := ir.ConstructorType("Optional", ir.ConstructorType("int"))
	dict := ir.ConstructorType("Dict", ir.ConstructorType("str"), inner)
	list := ir.ConstructorType("List", dict)

	names := TypingNamesFromTypes([]*ir.Type{&list, nil})
	assert.Equal(t,
		map[string]bool{"List": true, "Dict": true, "Optional": true},
		names)
}
