package store

import (
	"database/sql"
	"fmt"
)

const symbolColumns = `
	id, file_id, name, scope, qualified_id, kind, language, exported,
	start_byte, end_byte, start_line, start_col, end_line, end_col,
	COALESCE(docstring, ''), parent_qualified_id`

// Files returns every stored file, ordered by path.
func (s *Store) Files() ([]File, error) {
	rows, err := s.db.Query(`SELECT id, root_path, path, language FROM files ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.RootPath, &f.Path, &f.Language); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// SymbolsByFile returns a file's symbols in insertion order.
func (s *Store) SymbolsByFile(path string) ([]Symbol, error) {
	rows, err := s.db.Query(`
		SELECT `+symbolColumns+`
		FROM symbols
		WHERE file_id = (SELECT id FROM files WHERE path = ?)
		ORDER BY id`, path)
	if err != nil {
		return nil, fmt.Errorf("query symbols for %s: %w", path, err)
	}
	return scanSymbols(rows)
}

// SearchSymbols returns every stored symbol with the given name, across
// all files. An empty name matches everything.
func (s *Store) SearchSymbols(name string) ([]Symbol, error) {
	rows, err := s.db.Query(`
		SELECT `+symbolColumns+`
		FROM symbols
		WHERE ? = '' OR name = ?
		ORDER BY file_id, id`, name, name)
	if err != nil {
		return nil, fmt.Errorf("search symbols %q: %w", name, err)
	}
	return scanSymbols(rows)
}

// SymbolByQualifiedID returns the symbol with the given qualified id in
// the given file, or sql.ErrNoRows.
func (s *Store) SymbolByQualifiedID(path, qualifiedID string) (Symbol, error) {
	rows, err := s.db.Query(`
		SELECT `+symbolColumns+`
		FROM symbols
		WHERE file_id = (SELECT id FROM files WHERE path = ?) AND qualified_id = ?
		ORDER BY id`, path, qualifiedID)
	if err != nil {
		return Symbol{}, fmt.Errorf("query symbol %s#%s: %w", path, qualifiedID, err)
	}
	symbols, err := scanSymbols(rows)
	if err != nil {
		return Symbol{}, err
	}
	if len(symbols) == 0 {
		return Symbol{}, sql.ErrNoRows
	}
	return symbols[0], nil
}

// ImportsByFile returns a file's imports in insertion order.
func (s *Store) ImportsByFile(path string) ([]Import, error) {
	rows, err := s.db.Query(`
		SELECT id, file_id, names, module_name, start_byte, end_byte
		FROM imports
		WHERE file_id = (SELECT id FROM files WHERE path = ?)
		ORDER BY id`, path)
	if err != nil {
		return nil, fmt.Errorf("query imports for %s: %w", path, err)
	}
	defer rows.Close()

	var imports []Import
	for rows.Next() {
		var imp Import
		var names string
		if err := rows.Scan(&imp.ID, &imp.FileID, &names, &imp.ModuleName, &imp.StartByte, &imp.EndByte); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imp.Names = unmarshalNames(names)
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

func scanSymbols(rows *sql.Rows) ([]Symbol, error) {
	defer rows.Close()
	var symbols []Symbol
	for rows.Next() {
		var sym Symbol
		err := rows.Scan(
			&sym.ID, &sym.FileID, &sym.Name, &sym.Scope, &sym.QualifiedID,
			&sym.Kind, &sym.Language, &sym.Exported,
			&sym.StartByte, &sym.EndByte,
			&sym.StartLine, &sym.StartCol, &sym.EndLine, &sym.EndCol,
			&sym.Docstring, &sym.ParentQualifiedID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}
