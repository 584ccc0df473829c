package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsast/js/parser"
)

// parserFlags are the parser settings shared by the single-file commands.
// Flags left unset keep what the file extension implies.
type parserFlags struct {
	sourceType  parser.SourceType
	language    parser.Language
	ecmaVersion parser.ECMAVersion
	strict      bool
}

func (f *parserFlags) register(cmd *cobra.Command) {
	cmd.Flags().VarP(&f.sourceType, "source-type", "s", "module, script or auto")
	cmd.Flags().VarP(&f.language, "language", "l", "js, jsx, ts or tsx")
	cmd.Flags().VarP(&f.ecmaVersion, "ecma-version", "e", "ECMAScript edition, e.g. 2020 or latest")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "force strict mode on or off")
}

func (f *parserFlags) config(cmd *cobra.Command, path string) parser.Config {
	cfg := parser.ConfigForPath(path)
	if cmd.Flags().Changed("source-type") {
		cfg.SourceType = f.sourceType
	}
	if cmd.Flags().Changed("language") {
		cfg.Language = f.language
	}
	if cmd.Flags().Changed("ecma-version") {
		cfg.ECMAVersion = f.ecmaVersion
	}
	if cmd.Flags().Changed("strict") {
		strict := f.strict
		cfg.Strict = &strict
	}
	return cfg
}

// readInput reads the file named by args, or stdin when args is empty or
// "-". The returned name is empty for stdin.
func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return data, args[0], nil
}

// parseInput parses the command's input with the flags applied.
func parseInput(cmd *cobra.Command, flags *parserFlags, args []string) (*parser.Result, error) {
	data, name, err := readInput(args)
	if err != nil {
		return nil, err
	}
	res, err := parser.ParseBytes(data, flags.config(cmd, name), parser.WithFile(name))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return res, nil
}
