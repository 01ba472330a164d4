package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sycomix/rift"
	"github.com/sycomix/rift/internal/store"
)

var indexCmd = &cobra.Command{
	Use:   "index [paths...]",
	Short: "Parse source files and persist the symbol index",
	Long:  "Parses every recognized source file under the given paths and writes the resulting symbol tables to the SQLite database.",
	RunE:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	paths, err := resolvePaths(args)
	if err != nil {
		return err
	}
	repoRoot := repoRootForPaths(paths)
	cfg, err := loadConfig(repoRoot)
	if err != nil {
		return err
	}
	log, err := buildLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	project, err := rift.ParsePaths(context.Background(), paths, cfg.scanOptions(log)...)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	dbPath := cfg.dbPath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dbPath), err)
	}
	s, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()
	if err := s.Migrate(); err != nil {
		return err
	}
	if err := s.SaveProject(project); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d files in %s\n",
		len(project.Files()), time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)
	return nil
}
