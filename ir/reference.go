package ir

import "strings"

// Reference names a file and optionally a symbol inside it. Its URI form
// is "<file_path>" or "<file_path>#<qualified_id>", split on the first "#"
// only.
type Reference struct {
	FilePath    string
	QualifiedID QualifiedID
	Qualified   bool
}

// ParseReference parses a reference URI.
func ParseReference(uri string) Reference {
	path, qid, ok := strings.Cut(uri, "#")
	return Reference{FilePath: path, QualifiedID: qid, Qualified: ok}
}

// FileReference builds an unqualified reference to a file.
func FileReference(path string) Reference {
	return Reference{FilePath: path}
}

// SymbolReference builds a qualified reference to a symbol in a file.
func SymbolReference(path string, qid QualifiedID) Reference {
	return Reference{FilePath: path, QualifiedID: qid, Qualified: true}
}

// URI renders the reference back to its string form.
func (r Reference) URI() string {
	if r.Qualified {
		return r.FilePath + "#" + r.QualifiedID
	}
	return r.FilePath
}

// ResolvedReference is the outcome of resolving a Reference against a
// Project. A nil File means the path matched nothing; a nil Symbol on a
// qualified reference means the file held no such qualified id. Neither is
// an error.
type ResolvedReference struct {
	File   *File
	Symbol *Symbol
}

// LookupReference resolves a reference against the project: the file is
// matched by root-relative path, then the symbol by exact qualified id
// when one was given.
func (p *Project) LookupReference(ref Reference) ResolvedReference {
	path := ref.FilePath
	if p.RootPath != "" {
		path = strings.TrimPrefix(path, p.RootPath+"/")
	}
	f := p.FileByPath(path)
	if f == nil {
		return ResolvedReference{}
	}
	res := ResolvedReference{File: f}
	if ref.Qualified {
		res.Symbol = f.LookupSymbol(ref.QualifiedID)
	}
	return res
}
