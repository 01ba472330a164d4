package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/sycomix/rift"
	"github.com/sycomix/rift/ir"
)

// config is the on-disk .rift.toml shape. Flags override file values.
type config struct {
	Languages   []string `toml:"languages"`
	MetaSymbols bool     `toml:"metasymbols"`
	Exclude     []string `toml:"exclude"`
	DB          string   `toml:"db"`
}

// loadConfig reads .rift.toml from the repo root (or --config) and
// applies flag overrides. A missing default config file is not an
// error.
func loadConfig(repoRoot string) (config, error) {
	var cfg config
	path := flagConfig
	if path == "" {
		path = filepath.Join(repoRoot, ".rift.toml")
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	}
	if flagLanguages != "" {
		cfg.Languages = nil
		for _, lang := range strings.Split(flagLanguages, ",") {
			cfg.Languages = append(cfg.Languages, strings.TrimSpace(lang))
		}
	}
	if flagMetaSymbols {
		cfg.MetaSymbols = true
	}
	if flagDB != "" {
		cfg.DB = flagDB
	}
	return cfg, nil
}

// scanOptions translates the config into project-scan options.
func (c config) scanOptions(log *zap.Logger) []rift.Option {
	opts := []rift.Option{
		rift.WithMetaSymbols(c.MetaSymbols),
		rift.WithLogger(log),
	}
	if len(c.Languages) > 0 {
		languages := make([]ir.Language, len(c.Languages))
		for i, lang := range c.Languages {
			languages[i] = ir.Language(lang)
		}
		opts = append(opts, rift.WithLanguages(languages...))
	}
	if len(c.Exclude) > 0 {
		gi := ignore.CompileIgnoreLines(c.Exclude...)
		opts = append(opts, rift.WithFilter(func(path string) bool {
			return !gi.MatchesPath(path)
		}))
	}
	return opts
}

// dbPath resolves the database location relative to the repo root.
func (c config) dbPath(repoRoot string) string {
	path := c.DB
	if path == "" {
		return filepath.Join(repoRoot, ".rift", "index.db")
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}

// resolvePaths returns the argument paths, or the working directory
// when none are given.
func resolvePaths(args []string) ([]string, error) {
	if len(args) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		return []string{wd}, nil
	}
	paths := make([]string, len(args))
	for i, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving path %q: %w", arg, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("path not found: %s", abs)
		}
		paths[i] = abs
	}
	return paths, nil
}

// findRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func findRepoRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}

// repoRootForPaths picks the repo root for the first path, using its
// directory when the path is a file.
func repoRootForPaths(paths []string) string {
	root := paths[0]
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}
	return findRepoRoot(root)
}
