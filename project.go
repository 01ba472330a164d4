package rift

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sycomix/rift/ir"
	"github.com/sycomix/rift/parser"
)

// ErrNoPaths is returned by ParsePaths when called with an empty path
// list.
var ErrNoPaths = errors.New("rift: no paths provided")

var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
}

// config collects the project-scan settings.
type config struct {
	languages   map[ir.Language]bool // nil means all languages
	metaSymbols bool
	filter      func(path string) bool
	log         *zap.Logger
	jobs        int
}

// Option configures a project scan.
type Option func(*config)

// WithLanguages restricts the scan to the listed languages.
func WithLanguages(languages ...ir.Language) Option {
	return func(c *config) {
		c.languages = make(map[ir.Language]bool, len(languages))
		for _, lang := range languages {
			c.languages[lang] = true
		}
	}
}

// WithMetaSymbols enables meta-symbol lowering for every parsed file.
func WithMetaSymbols(enabled bool) Option {
	return func(c *config) { c.metaSymbols = enabled }
}

// WithFilter restricts the scan to files for which filter returns true.
// The filter receives the absolute path.
func WithFilter(filter func(path string) bool) Option {
	return func(c *config) { c.filter = filter }
}

// WithLogger sets the logger for skipped-file warnings. The default
// discards them.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithJobs sets the number of files parsed concurrently. Zero or
// negative means GOMAXPROCS.
func WithJobs(jobs int) Option {
	return func(c *config) { c.jobs = jobs }
}

// ParsePaths parses every file with a recognized extension under the
// given paths into a Project. Each path may be a file or a directory;
// directories are walked recursively, skipping node_modules, .git and
// gitignored files. Files that fail to read or parse are logged and
// skipped. The project root is the directory of a single file path, or
// the longest common prefix of the paths otherwise.
func ParsePaths(ctx context.Context, paths []string, opts ...Option) (*ir.Project, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	cfg := config{log: zap.NewNop(), jobs: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.jobs <= 0 {
		cfg.jobs = runtime.GOMAXPROCS(0)
	}

	rootPath, err := projectRoot(paths)
	if err != nil {
		return nil, err
	}
	project := ir.NewProject(rootPath)

	files, err := discoverFiles(paths, cfg)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return project, nil
	}

	results := make([]*ir.File, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(cfg.jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			file, err := parseFile(rootPath, path, cfg)
			if err != nil {
				cfg.log.Warn("skipping file", zap.String("path", path), zap.Error(err))
				return nil
			}
			results[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, file := range results {
		if file != nil {
			project.AddFile(file)
		}
	}
	return project, nil
}

// parseFile reads and lowers one file into an ir.File keyed by its
// root-relative path.
func parseFile(rootPath, path string, cfg config) (*ir.File, error) {
	language, ok := parser.LanguageForFile(path)
	if !ok {
		return nil, fmt.Errorf("unrecognized extension %q", filepath.Ext(path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(rootPath, path)
	if err != nil {
		rel = path
	}
	file := ir.NewFile(rel)
	p := parser.New(parser.WithMetaSymbols(cfg.metaSymbols), parser.WithLogger(cfg.log))
	if err := p.ParseCodeBlock(file, ir.NewCode(content), language); err != nil {
		return nil, err
	}
	return file, nil
}

// discoverFiles expands the path list into the parseable files it
// covers, applying the language, filter, skip-dir and gitignore rules.
func discoverFiles(paths []string, cfg config) ([]string, error) {
	var out []string
	seen := map[string]bool{}

	add := func(path string) {
		if seen[path] {
			return
		}
		language, ok := parser.LanguageForFile(path)
		if !ok {
			return
		}
		if cfg.languages != nil && !cfg.languages[language] {
			return
		}
		if _, ok := parser.GrammarForLanguage(language); !ok {
			cfg.log.Warn("no grammar for language", zap.String("language", string(language)), zap.String("path", path))
			return
		}
		if cfg.filter != nil && !cfg.filter(path) {
			return
		}
		seen[path] = true
		out = append(out, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("rift: stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		gi := loadGitignore(path)
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if _, skip := skipDirs[d.Name()]; skip && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if gi != nil {
				if rel, err := filepath.Rel(path, p); err == nil && gi.MatchesPath(rel) {
					return nil
				}
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// projectRoot derives the project root from the path list.
func projectRoot(paths []string) (string, error) {
	if len(paths) == 1 {
		info, err := os.Stat(paths[0])
		if err != nil {
			return "", fmt.Errorf("rift: stat %s: %w", paths[0], err)
		}
		if !info.IsDir() {
			return filepath.Dir(paths[0]), nil
		}
		return filepath.Clean(paths[0]), nil
	}
	return commonPath(paths), nil
}

// commonPath returns the deepest directory shared by every path.
func commonPath(paths []string) string {
	split := func(p string) []string {
		return strings.Split(filepath.Clean(p), string(filepath.Separator))
	}
	common := split(paths[0])
	for _, p := range paths[1:] {
		parts := split(p)
		var i int
		for i = 0; i < len(common) && i < len(parts); i++ {
			if common[i] != parts[i] {
				break
			}
		}
		common = common[:i]
	}
	if len(common) == 0 || (len(common) == 1 && common[0] == "") {
		return string(filepath.Separator)
	}
	if common[0] == "" {
		return string(filepath.Separator) + filepath.Join(common[1:]...)
	}
	return filepath.Join(common...)
}
