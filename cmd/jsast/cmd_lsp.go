package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jsast/js/codebase"
)

func newLSPCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, watch)
			return server.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "reparse files changed outside the editor")

	return cmd
}
