package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/comments"
)

func newCommentsCmd() *cobra.Command {
	var flags parserFlags
	var attach bool

	cmd := &cobra.Command{
		Use:   "comments [file]",
		Short: "List the comments of a file",
		Long: `List every comment with its position.

With --attach each comment is also placed relative to a node, as leading,
trailing or dangling.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := parseInput(cmd, &flags, args)
			if err != nil {
				return err
			}
			idx := ast.NewLineIndex(res.Source())
			if !attach {
				for _, c := range res.Comments() {
					printComment(os.Stdout, idx, c)
					fmt.Println()
				}
				return nil
			}

			prog, _ := res.Program()
			m := comments.Attach(prog, res.Comments(), res.Source())
			for _, a := range m.All() {
				printComment(os.Stdout, idx, a.Comment)
				fmt.Printf("\t%s\t%s [%s]\n", a.Placement, a.Node.Kind(), a.Node.Span())
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&attach, "attach", "a", false, "show the node each comment belongs to")

	return cmd
}

func printComment(w io.Writer, idx *ast.LineIndex, c ast.Comment) {
	fmt.Fprintf(w, "%s\t%s\t%s", idx.Position(c.Span.Start), c.Kind, strconv.Quote(c.Text))
}
