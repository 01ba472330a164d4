// Package analysis reports documentation and annotation gaps in lowered
// files: functions with no docstring, and functions with unannotated
// parameters or return types. Reports never fail; a file with nothing
// missing simply produces no entries.
package analysis

import (
	"fmt"

	"github.com/sycomix/rift/ir"
)

// docstringLanguages are the languages with a recognized doc-comment or
// docstring convention. Functions in other languages are never reported.
var docstringLanguages = map[ir.Language]bool{
	ir.LanguageJavaScript: true,
	ir.LanguageOCaml:      true,
	ir.LanguagePython:     true,
	ir.LanguageTSX:        true,
	ir.LanguageTypeScript: true,
}

// FunctionMissingDocstring reports a function declaration with no
// docstring.
type FunctionMissingDocstring struct {
	Function *ir.Symbol
}

func (m FunctionMissingDocstring) String() string {
	return fmt.Sprintf("Function `%s` is missing a doc string", m.Function.Name)
}

// FunctionsMissingDocstrings finds function declarations in the file that
// are missing docstrings.
func FunctionsMissingDocstrings(file *ir.File) []FunctionMissingDocstring {
	var missing []FunctionMissingDocstring
	for _, fn := range file.FunctionDeclarations() {
		if !docstringLanguages[fn.Language] {
			continue
		}
		if fn.Docstring() == "" {
			missing = append(missing, FunctionMissingDocstring{Function: fn})
		}
	}
	return missing
}

// FileMissingDocstrings groups a file's missing-docstring report with the
// file it was produced from.
type FileMissingDocstrings struct {
	Code     *ir.Code
	File     *ir.File
	Language ir.Language
	Missing  []FunctionMissingDocstring
}

// FilesMissingDocstrings reports every file in the project with at least
// one function missing a docstring.
func FilesMissingDocstrings(project *ir.Project) []FileMissingDocstrings {
	var out []FileMissingDocstrings
	for _, file := range project.Files() {
		missing := FunctionsMissingDocstrings(file)
		if len(missing) == 0 {
			continue
		}
		first := missing[0].Function
		out = append(out, FileMissingDocstrings{
			Code:     first.Code,
			File:     file,
			Language: first.Language,
			Missing:  missing,
		})
	}
	return out
}
