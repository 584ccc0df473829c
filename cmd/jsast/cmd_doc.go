package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsast/js/codebase"
	"github.com/dhamidi/jsast/js/symbols"
	"github.com/dhamidi/jsast/project"
)

func newDocCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "doc [name]",
		Short: "Show the documentation of a declaration",
		Long: `Show the JSDoc documentation of a declaration in the project.

The name can be:
  - a top-level name (e.g. parseFile)
  - a member qualified by its container (e.g. Parser.parse)

With no arguments, lists the exported declarations of the project with the
first sentence of their documentation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(dir)
			if err != nil {
				return err
			}
			cb := codebase.New(p)
			if err := cb.ScanAll(context.Background()); err != nil {
				return err
			}
			if len(args) == 0 {
				listExported(cb)
				return nil
			}
			return runDoc(cb, args[0])
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "project directory")

	return cmd
}

func listExported(cb *codebase.Codebase) {
	for _, path := range cb.Files() {
		f := cb.GetFile(path)
		for _, s := range f.Symbols {
			if !s.Exported {
				continue
			}
			fmt.Printf("%s:%d\t%s %s", relPath(cb.RootDir(), path), s.StartLine, s.Kind, s.Name)
			if sum := s.Summary(); sum != "" {
				fmt.Printf("\t%s", sum)
			}
			fmt.Println()
		}
	}
}

func runDoc(cb *codebase.Codebase, name string) error {
	parts := strings.Split(name, ".")
	var found []codebase.Match
	for _, m := range cb.FindSymbols(parts[len(parts)-1]) {
		f := cb.GetFile(m.Path)
		if f != nil && qualifiedMatch(f.Symbols, m.Symbol, parts) {
			found = append(found, m)
		}
	}
	if len(found) == 0 {
		return fmt.Errorf("%s not found in %s", name, cb.RootDir())
	}
	for i, m := range found {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s:%d\n\n", relPath(cb.RootDir(), m.Path), m.Symbol.StartLine)
		fmt.Println(codebase.HoverText(m.Symbol))
	}
	return nil
}

// qualifiedMatch reports whether the container names leading to target
// end with parts.
func qualifiedMatch(roots []*symbols.Symbol, target *symbols.Symbol, parts []string) bool {
	path := symbolPath(roots, target)
	if len(path) < len(parts) {
		return false
	}
	for i, p := range parts {
		if path[len(path)-len(parts)+i] != p {
			return false
		}
	}
	return true
}

// symbolPath returns the names from a root down to target, or nil.
func symbolPath(roots []*symbols.Symbol, target *symbols.Symbol) []string {
	for _, s := range roots {
		if s == target {
			return []string{s.Name}
		}
		if sub := symbolPath(s.Children, target); sub != nil {
			return append([]string{s.Name}, sub...)
		}
	}
	return nil
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
