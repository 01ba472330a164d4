package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sycomix/rift"
	"github.com/sycomix/rift/analysis"
	"github.com/sycomix/rift/ir"
)

// parseProject runs a project scan for the in-memory report commands.
func parseProject(args []string) (*ir.Project, error) {
	paths, err := resolvePaths(args)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(repoRootForPaths(paths))
	if err != nil {
		return nil, err
	}
	log, err := buildLogger()
	if err != nil {
		return nil, err
	}
	defer log.Sync()
	return rift.ParsePaths(context.Background(), paths, cfg.scanOptions(log)...)
}

var flagMapElements bool

var mapCmd = &cobra.Command{
	Use:   "map [paths...]",
	Short: "Print an outline of the project's symbols",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := parseProject(args)
		if err != nil {
			return err
		}
		if flagMapElements {
			for _, element := range project.DumpElements() {
				fmt.Println(element)
			}
			return nil
		}
		fmt.Println(project.DumpMap(0))
		return nil
	},
}

func init() {
	mapCmd.Flags().BoolVar(&flagMapElements, "elements", false, "print one qualified reference per line instead of an outline")
}

var completionsCmd = &cobra.Command{
	Use:   "completions [paths...]",
	Short: "Print every symbol as JSON for editor completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := parseProject(args)
		if err != nil {
			return err
		}
		out, err := rift.SymbolCompletions(project)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var missingTypesCmd = &cobra.Command{
	Use:   "missing-types [paths...]",
	Short: "Report functions missing type annotations",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := parseProject(args)
		if err != nil {
			return err
		}
		for _, report := range analysis.FilesMissingTypes(project) {
			for _, missing := range report.Missing {
				fmt.Printf("%s: %s\n", report.File.Path, missing)
			}
		}
		return nil
	},
}

var missingDocsCmd = &cobra.Command{
	Use:   "missing-docs [paths...]",
	Short: "Report functions missing docstrings",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := parseProject(args)
		if err != nil {
			return err
		}
		for _, report := range analysis.FilesMissingDocstrings(project) {
			for _, missing := range report.Missing {
				fmt.Printf("%s: %s\n", report.File.Path, missing)
			}
		}
		return nil
	},
}
