// Package response reconciles generated code back onto an original
// document. Code blocks are extracted from a fenced-markdown response,
// lowered with the same parser as the document, and matched to the
// document's functions by name to produce byte-range edits.
package response

import (
	"strings"

	"github.com/sycomix/rift/ir"
)

// ExtractBlocks returns the contents of fenced code blocks in the
// response, one Code per block, without the fence lines. A block whose
// closing fence is missing is dropped.
func ExtractBlocks(response string) []*ir.Code {
	var blocks []*ir.Code
	var current strings.Builder
	inside := false
	for _, line := range strings.Split(response, "\n") {
		if strings.HasPrefix(line, "```") {
			if inside {
				blocks = append(blocks, ir.NewCode([]byte(current.String())))
				current.Reset()
			}
			inside = !inside
		} else if inside {
			current.WriteString(line)
			current.WriteString("\n")
		}
	}
	return blocks
}

// ParseBlocks lowers the code blocks into a single synthetic file named
// "response". Symbols from later blocks shadow earlier ones with the
// same qualified name.
func ParseBlocks(parse ParseFunc, blocks []*ir.Code, language ir.Language) (*ir.File, error) {
	file := ir.NewFile("response")
	for _, block := range blocks {
		if err := parse(file, block, language); err != nil {
			return nil, err
		}
	}
	return file, nil
}

// ParseFunc lowers one code buffer into the file. It matches the parser
// package's ParseCodeBlock method.
type ParseFunc func(file *ir.File, code *ir.Code, language ir.Language) error
