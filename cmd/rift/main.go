package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig      string
	flagDB          string
	flagLanguages   string
	flagMetaSymbols bool
	flagVerbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "rift",
	Short:         "Language-agnostic symbol lowering and analysis",
	Long:          "Rift parses source code with tree-sitter into a unified symbol table, reports documentation and type-annotation gaps, and persists indexes to SQLite.",
	SilenceErrors: true,
	SilenceUsage:  true,
	// No Run. Prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: .rift.toml relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: .rift/index.db relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagLanguages, "languages", "", "comma-separated language filter (e.g. python,typescript)")
	rootCmd.PersistentFlags().BoolVar(&flagMetaSymbols, "metasymbols", false, "lower control-flow and expression statements into synthetic symbols")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log skipped files and structural misses to stderr")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(completionsCmd)
	rootCmd.AddCommand(missingTypesCmd)
	rootCmd.AddCommand(missingDocsCmd)
}

// buildLogger returns a stderr logger honoring --verbose.
func buildLogger() (*zap.Logger, error) {
	if !flagVerbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
