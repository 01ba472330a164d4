package ir

// File is one parsed source file: its path relative to the project root,
// the ordered top-level items, the imports, and the symbol table keyed by
// qualified id. A File is created empty, populated once by the lowering
// engine in a single parse pass, and read-only thereafter; re-parsing
// produces a new File.
type File struct {
	Path       string
	Statements Block
	Imports    []Import

	symbols map[QualifiedID]*Symbol
	order   []QualifiedID
}

// NewFile creates an empty File for path.
func NewFile(path string) *File {
	return &File{
		Path:    path,
		symbols: make(map[QualifiedID]*Symbol),
	}
}

// AddSymbol inserts the symbol by qualified id. A collision overwrites the
// previous entry (last write wins) while keeping the original insertion
// position, so repeated lowering of the same bytes dumps identically. When
// the symbol has a parent, it is also appended to the parent's body,
// maintaining the dual view: table for lookup, body list for ordered
// traversal.
func (f *File) AddSymbol(symbol *Symbol) {
	qid := symbol.QualifiedID()
	if _, ok := f.symbols[qid]; !ok {
		f.order = append(f.order, qid)
	}
	f.symbols[qid] = symbol
	if symbol.Parent != nil {
		symbol.Parent.Body = append(symbol.Parent.Body, Item{Symbol: symbol})
	}
}

// AddImport records an import statement.
func (f *File) AddImport(imp Import) {
	f.Imports = append(f.Imports, imp)
}

// LookupSymbol returns the symbol with the exact qualified id, or nil.
func (f *File) LookupSymbol(qid QualifiedID) *Symbol {
	return f.symbols[qid]
}

// SearchSymbol returns all symbols with the given name, in insertion
// order; an empty name matches every symbol. Callers must treat the result
// as a set.
func (f *File) SearchSymbol(name string) []*Symbol {
	var out []*Symbol
	for _, qid := range f.order {
		s := f.symbols[qid]
		if name == "" || s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

// SearchModuleImport returns the first import declaring the given module
// name, or nil.
func (f *File) SearchModuleImport(moduleName string) *Import {
	for i := range f.Imports {
		if f.Imports[i].ModuleName == moduleName {
			return &f.Imports[i]
		}
	}
	return nil
}

// FunctionDeclarations returns every function-kind symbol in the table.
func (f *File) FunctionDeclarations() []*Symbol {
	var out []*Symbol
	for _, qid := range f.order {
		s := f.symbols[qid]
		if _, ok := s.Kind.(FunctionKind); ok {
			out = append(out, s)
		}
	}
	return out
}

// Symbols returns every symbol in insertion order.
func (f *File) Symbols() []*Symbol {
	return f.SearchSymbol("")
}

// Project is an ordered set of parsed files under one root path, built
// once per invocation and immutable after construction.
type Project struct {
	RootPath string

	files []*File
}

// NewProject creates an empty project rooted at rootPath.
func NewProject(rootPath string) *Project {
	return &Project{RootPath: rootPath}
}

// AddFile appends a parsed file.
func (p *Project) AddFile(f *File) {
	p.files = append(p.files, f)
}

// Files returns the project's files in order.
func (p *Project) Files() []*File {
	return p.files
}

// FileByPath returns the file whose root-relative path matches, or nil.
func (p *Project) FileByPath(path string) *File {
	for _, f := range p.files {
		if f.Path == path {
			return f
		}
	}
	return nil
}
