package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sycomix/rift/internal/store"
)

var (
	flagSymbolName string
	flagSymbolFile string
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [path]",
	Short: "Query the symbol index",
	Long:  "Lists symbols from a previously built index, optionally filtered by name or file.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSymbols,
}

func init() {
	symbolsCmd.Flags().StringVar(&flagSymbolName, "name", "", "only symbols with this name")
	symbolsCmd.Flags().StringVar(&flagSymbolFile, "file", "", "only symbols in this file (root-relative path)")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	paths, err := resolvePaths(args)
	if err != nil {
		return err
	}
	repoRoot := repoRootForPaths(paths)
	cfg, err := loadConfig(repoRoot)
	if err != nil {
		return err
	}
	dbPath := cfg.dbPath(repoRoot)
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no index at %s (run \"rift index\" first)", dbPath)
	}
	s, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	var symbols []store.Symbol
	if flagSymbolFile != "" {
		symbols, err = s.SymbolsByFile(flagSymbolFile)
		if err != nil {
			return err
		}
		if flagSymbolName != "" {
			filtered := symbols[:0]
			for _, sym := range symbols {
				if sym.Name == flagSymbolName {
					filtered = append(filtered, sym)
				}
			}
			symbols = filtered
		}
	} else {
		symbols, err = s.SearchSymbols(flagSymbolName)
		if err != nil {
			return err
		}
	}

	files, err := s.Files()
	if err != nil {
		return err
	}
	pathByID := make(map[int64]string, len(files))
	for _, f := range files {
		pathByID[f.ID] = f.Path
	}

	for _, sym := range symbols {
		fmt.Printf("%s#%s\t%s\t%s\t(%d, %d)\n",
			pathByID[sym.FileID], sym.QualifiedID, sym.Kind, sym.Language,
			sym.StartByte, sym.EndByte)
	}
	return nil
}
