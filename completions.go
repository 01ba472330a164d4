package rift

import (
	"encoding/json"

	"github.com/sycomix/rift/ir"
)

// CompletionSymbol is the JSON shape of one symbol in a completions
// dump.
type CompletionSymbol struct {
	Name  string   `json:"name"`
	Scope string   `json:"scope"`
	Kind  string   `json:"kind"`
	Range ir.Range `json:"range"`
}

// CompletionFile groups a file's symbols for a completions dump.
type CompletionFile struct {
	Path    string             `json:"path"`
	Symbols []CompletionSymbol `json:"symbols"`
}

// SymbolCompletions renders every symbol in the project as indented
// JSON, one entry per file in insertion order.
func SymbolCompletions(project *ir.Project) (string, error) {
	files := make([]CompletionFile, 0, len(project.Files()))
	for _, file := range project.Files() {
		symbols := []CompletionSymbol{}
		for _, s := range file.SearchSymbol("") {
			symbols = append(symbols, CompletionSymbol{
				Name:  s.Name,
				Scope: string(s.Scope),
				Kind:  s.Kind.KindName(),
				Range: s.Range,
			})
		}
		files = append(files, CompletionFile{Path: file.Path, Symbols: symbols})
	}
	out, err := json.MarshalIndent(files, "", "    ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
