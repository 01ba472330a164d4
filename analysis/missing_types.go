package analysis

import (
	"fmt"
	"strings"

	"github.com/sycomix/rift/ir"
)

// inferredReturnLanguages never annotate a return type on functions that
// do not return a value, so a missing annotation is only reported when
// the function body contains a return statement.
var inferredReturnLanguages = map[ir.Language]bool{
	ir.LanguageJavaScript: true,
	ir.LanguageTypeScript: true,
	ir.LanguageTSX:        true,
}

// MissingType reports a function declaration with unannotated parameters
// or a missing return type.
type MissingType struct {
	Function   *ir.Symbol
	Parameters []string
	ReturnType bool
}

func (m MissingType) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Function `%s` is missing type annotations", m.Function.Name)
	if len(m.Parameters) == 1 {
		fmt.Fprintf(&b, " in parameter '%s'", m.Parameters[0])
	} else if len(m.Parameters) > 1 {
		quoted := make([]string, len(m.Parameters))
		for i, p := range m.Parameters {
			quoted[i] = "'" + p + "'"
		}
		fmt.Fprintf(&b, " in parameters [%s]", strings.Join(quoted, ", "))
	}
	if m.ReturnType {
		if len(m.Parameters) > 0 {
			b.WriteString(" and")
		}
		b.WriteString(" in return type")
	}
	return b.String()
}

// Count returns the number of gaps in the report.
func (m MissingType) Count() int {
	n := len(m.Parameters)
	if m.ReturnType {
		n++
	}
	return n
}

// FunctionsMissingTypes finds function declarations in the file that are
// missing type annotations on parameters or the return type. A leading
// self or cls receiver on a python method is not a gap.
func FunctionsMissingTypes(file *ir.File) []MissingType {
	var missing []MissingType
	for _, fn := range file.FunctionDeclarations() {
		kind, ok := fn.FunctionKind()
		if !ok {
			continue
		}
		parameters := kind.Parameters
		if len(parameters) > 0 {
			first := parameters[0].Name
			if (first == "self" || first == "cls") && fn.Language == ir.LanguagePython && fn.Scope != "" {
				parameters = parameters[1:]
			}
		}
		var missingParameters []string
		for _, p := range parameters {
			if p.Type == nil {
				missingParameters = append(missingParameters, p.Name)
			}
		}
		missingReturn := false
		if kind.ReturnType == nil {
			if !kind.HasReturn && inferredReturnLanguages[fn.Language] {
				// No annotation and no return statement lowers the same
				// as an annotated void in these languages.
			} else {
				missingReturn = true
			}
		}
		if len(missingParameters) > 0 || missingReturn {
			missing = append(missing, MissingType{
				Function:   fn,
				Parameters: missingParameters,
				ReturnType: missingReturn,
			})
		}
	}
	return missing
}

// FileMissingTypes groups a file's missing-type report with the file it
// was produced from.
type FileMissingTypes struct {
	Code     *ir.Code
	File     *ir.File
	Language ir.Language
	Missing  []MissingType
}

// FilesMissingTypes reports every file in the project with at least one
// function missing type annotations.
func FilesMissingTypes(project *ir.Project) []FileMissingTypes {
	var out []FileMissingTypes
	for _, file := range project.Files() {
		missing := FunctionsMissingTypes(file)
		if len(missing) == 0 {
			continue
		}
		first := missing[0].Function
		out = append(out, FileMissingTypes{
			Code:     first.Code,
			File:     file,
			Language: first.Language,
			Missing:  missing,
		})
	}
	return out
}
