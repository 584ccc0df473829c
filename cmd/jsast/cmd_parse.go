package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsast/format"
)

func newParseCmd() *cobra.Command {
	var flags parserFlags
	var outputFormat string
	var locations bool
	var compact bool
	var spans bool
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a file and dump its syntax tree",
		Long: `Parse a JavaScript or TypeScript file and print the result.

The language and source type follow the file extension unless set by
flags. Without a file, source is read from stdin.

Formats:
  json         ESTree-like JSON with comments and diagnostics
  tree         indented outline of the tree
  symbols      one declaration per line
  diagnostics  syntax errors with source excerpts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := parseInput(cmd, &flags, args)
			if err != nil {
				return err
			}

			enc, ok := format.New(outputFormat, os.Stdout)
			if !ok {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			switch e := enc.(type) {
			case *format.ASTJSONEncoder:
				e.SetLocations(locations)
				if compact {
					e.SetIndent("")
				}
			case *format.TreeEncoder:
				e.SetSpans(spans)
				e.SetLines(locations)
				e.SetMaxDepth(maxDepth)
			case *format.DiagnosticEncoder:
				e.SetSource(true)
				e.SetColor(isTerminal(os.Stdout))
			}
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if res.Panicked() {
				return fmt.Errorf("parser failed on %s", displayName(res.File()))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, tree, symbols, diagnostics)")
	cmd.Flags().BoolVar(&locations, "loc", false, "include line and column information")
	cmd.Flags().BoolVar(&compact, "compact", false, "print JSON on one line")
	cmd.Flags().BoolVar(&spans, "spans", true, "include byte spans in tree output")
	cmd.Flags().IntVar(&maxDepth, "depth", -1, "limit tree output depth (-1 for unlimited)")

	return cmd
}

func displayName(file string) string {
	if file == "" {
		return "<stdin>"
	}
	return file
}
