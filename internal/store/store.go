// Package store is the SQLite persistence layer for lowered projects.
// It holds a flattened copy of the symbol tables so the command-line
// tools can query an index without re-parsing the tree.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sycomix/rift/ir"
)

// Store is the SQLite data access layer for rift's three tables.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id              INTEGER PRIMARY KEY,
  root_path       TEXT NOT NULL,
  path            TEXT NOT NULL UNIQUE,
  language        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS symbols (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
  name            TEXT NOT NULL,
  scope           TEXT NOT NULL DEFAULT '',
  qualified_id    TEXT NOT NULL,
  kind            TEXT NOT NULL,
  language        TEXT NOT NULL,
  exported        BOOLEAN NOT NULL DEFAULT FALSE,
  start_byte      INTEGER NOT NULL,
  end_byte        INTEGER NOT NULL,
  start_line      INTEGER,
  start_col       INTEGER,
  end_line        INTEGER,
  end_col         INTEGER,
  docstring       TEXT,
  parent_qualified_id TEXT
);

CREATE TABLE IF NOT EXISTS imports (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
  names           TEXT NOT NULL,
  module_name     TEXT,
  start_byte      INTEGER NOT NULL,
  end_byte        INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file_id);
CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS idx_symbols_qid ON symbols(qualified_id);
`

// SaveProject replaces the stored index with the given project. Each
// file's previous rows are deleted before its current symbols and
// imports are inserted.
func (s *Store) SaveProject(project *ir.Project) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, file := range project.Files() {
		if _, err := tx.Exec(`DELETE FROM files WHERE path = ?`, file.Path); err != nil {
			return fmt.Errorf("delete file %s: %w", file.Path, err)
		}
		language := fileLanguage(file)
		res, err := tx.Exec(
			`INSERT INTO files (root_path, path, language) VALUES (?, ?, ?)`,
			project.RootPath, file.Path, language,
		)
		if err != nil {
			return fmt.Errorf("insert file %s: %w", file.Path, err)
		}
		fileID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("file id for %s: %w", file.Path, err)
		}
		if err := saveSymbols(tx, fileID, file); err != nil {
			return fmt.Errorf("save symbols for %s: %w", file.Path, err)
		}
		if err := saveImports(tx, fileID, file); err != nil {
			return fmt.Errorf("save imports for %s: %w", file.Path, err)
		}
	}
	return tx.Commit()
}

func saveSymbols(tx *sql.Tx, fileID int64, file *ir.File) error {
	stmt, err := tx.Prepare(`
		INSERT INTO symbols (
			file_id, name, scope, qualified_id, kind, language, exported,
			start_byte, end_byte, start_line, start_col, end_line, end_col,
			docstring, parent_qualified_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sym := range file.SearchSymbol("") {
		var parentQID any
		if sym.Parent != nil {
			parentQID = string(sym.Parent.QualifiedID())
		}
		var docstring any
		if doc := sym.Docstring(); doc != "" {
			docstring = doc
		}
		_, err := stmt.Exec(
			fileID, sym.Name, string(sym.Scope), string(sym.QualifiedID()),
			sym.Kind.KindName(), string(sym.Language), sym.Exported,
			sym.Substring.Start, sym.Substring.End,
			sym.Range.Start.Row, sym.Range.Start.Column,
			sym.Range.End.Row, sym.Range.End.Column,
			docstring, parentQID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func saveImports(tx *sql.Tx, fileID int64, file *ir.File) error {
	for _, imp := range file.Imports {
		var moduleName any
		if imp.ModuleName != "" {
			moduleName = imp.ModuleName
		}
		_, err := tx.Exec(
			`INSERT INTO imports (file_id, names, module_name, start_byte, end_byte)
			 VALUES (?, ?, ?, ?, ?)`,
			fileID, marshalNames(imp.Names), moduleName,
			imp.Substring.Start, imp.Substring.End,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// fileLanguage returns the language of the file's first symbol, or ""
// when the file lowered to no symbols.
func fileLanguage(file *ir.File) string {
	symbols := file.SearchSymbol("")
	if len(symbols) == 0 {
		return ""
	}
	return string(symbols[0].Language)
}
