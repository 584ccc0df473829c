package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsast/format"
)

func newSymbolsCmd() *cobra.Command {
	var flags parserFlags
	var locals bool

	cmd := &cobra.Command{
		Use:   "symbols [file]",
		Short: "List the declarations of a file",
		Long: `List the declarations of a file, one per line:

  kind  name  start-line  end-line  modifiers  summary

Nested declarations are qualified with their container's name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := parseInput(cmd, &flags, args)
			if err != nil {
				return err
			}
			enc := format.NewLineEncoder(os.Stdout)
			enc.SetLocals(locals)
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&locals, "locals", false, "include declarations inside functions")

	return cmd
}
