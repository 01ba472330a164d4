package store

// Row types mirroring the schema.

type File struct {
	ID       int64
	RootPath string
	Path     string
	Language string
}

type Symbol struct {
	ID                int64
	FileID            int64
	Name              string
	Scope             string
	QualifiedID       string
	Kind              string
	Language          string
	Exported          bool
	StartByte         int
	EndByte           int
	StartLine         int
	StartCol          int
	EndLine           int
	EndCol            int
	Docstring         string
	ParentQualifiedID *string
}

type Import struct {
	ID         int64
	FileID     int64
	Names      []string
	ModuleName *string
	StartByte  int
	EndByte    int
}
