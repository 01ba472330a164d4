// Package rift lowers source code into a language-agnostic intermediate
// representation built on tree-sitter: a tree of named, scoped symbols
// with byte-exact provenance over ten languages (C, C++, C#, Java,
// JavaScript, OCaml, Python, Ruby, TypeScript, and TSX).
//
// # Pipeline
//
// Rift operates in three phases:
//
//  1. Lower: parse each source file with tree-sitter and walk the
//     concrete syntax tree, emitting symbols, imports and (optionally)
//     control-flow meta-symbols into a per-file symbol table. See the
//     parser package.
//
//  2. Analyze: scan the lowered symbols for documentation and type
//     annotation gaps. See the analysis package.
//
//  3. Edit: apply byte-range replacements to the original buffer, or
//     reconcile functions recovered from a generated code block back
//     onto the document. See the ir and response packages.
//
// # Usage
//
// Parse a directory into a Project and query its symbols:
//
//	ctx := context.Background()
//	project, err := rift.ParsePaths(ctx, []string{"path/to/project"})
//	if err != nil { ... }
//
//	for _, file := range project.Files() {
//		for _, fn := range file.FunctionDeclarations() { ... }
//	}
//
// Symbols are addressed by qualified id, the concatenation of the
// enclosing scope and the symbol name, and by reference URIs of the
// form "path#qualified.id":
//
//	resolved := project.LookupReference(ir.ParseReference("a/b.py#Foo.bar"))
//
// # Editing
//
// Edits are byte-range replacements applied in descending start-offset
// order, so a batch of non-overlapping edits never invalidates its own
// offsets:
//
//	edited, err := code.ApplyEdits(edits)
//
// The same splice primitive drives the response package, which matches
// functions extracted from fenced code blocks to functions in a
// document by name and produces the edits that update the document.
//
// # Storage
//
// The internal/store package persists a lowered Project to SQLite for
// the command-line tools; the library API itself is purely in-memory.
package rift
