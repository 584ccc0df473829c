package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/walk"
)

func newWalkCmd() *cobra.Command {
	var flags parserFlags
	var kindNames []string
	var leave bool
	var count bool
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "walk [file]",
		Short: "Print the enter and leave events of a tree traversal",
		Long: `Traverse the syntax tree depth-first and print one line per event.

With --kind only nodes of the given kinds are printed; their subtrees are
still traversed. With --count a table of node kinds is printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := make(map[ast.Kind]bool)
			for _, name := range kindNames {
				k, ok := ast.ParseKind(name)
				if !ok {
					return fmt.Errorf("unknown node kind: %s", name)
				}
				kinds[k] = true
			}

			res, err := parseInput(cmd, &flags, args)
			if err != nil {
				return err
			}
			prog, ok := res.Program()
			if !ok {
				return fmt.Errorf("no tree for %s", displayName(res.File()))
			}

			if count {
				writeKindCounts(os.Stdout, walk.CountKinds(prog))
				return nil
			}
			printWalk(os.Stdout, prog, res.Source(), kinds, leave, maxDepth)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVarP(&kindNames, "kind", "k", nil, "only print nodes of these kinds")
	cmd.Flags().BoolVar(&leave, "leave", false, "print leave events too")
	cmd.Flags().BoolVar(&count, "count", false, "print a table of node kinds")
	cmd.Flags().IntVar(&maxDepth, "depth", -1, "do not descend below this depth (-1 for unlimited)")

	return cmd
}

func printWalk(w io.Writer, root ast.Node, src string, kinds map[ast.Kind]bool, leave bool, maxDepth int) {
	show := func(c *walk.Cursor) bool {
		return len(kinds) == 0 || kinds[c.Node().Kind()]
	}
	line := func(event string, c *walk.Cursor) {
		n := c.Node()
		var sb strings.Builder
		sb.WriteString(strings.Repeat("  ", c.Depth()))
		sb.WriteString(event)
		sb.WriteByte(' ')
		sb.WriteString(n.Kind().String())
		if f := c.Field(); f != ast.FieldNone {
			sb.WriteString(" ." + f.String())
		}
		if name := n.Name(); name != "" {
			sb.WriteString(" " + strconv.Quote(name))
		}
		sb.WriteString(" [" + n.Span().String() + "]")
		if n.Len() == 0 && n.Name() == "" {
			sb.WriteString(" " + strconv.Quote(n.Text(src)))
		}
		fmt.Fprintln(w, sb.String())
	}

	walk.Visit(root, &walk.Hooks{
		OnEnter: func(c *walk.Cursor) walk.Action {
			if show(c) {
				line("enter", c)
			}
			if maxDepth >= 0 && c.Depth() >= maxDepth {
				return walk.Skip
			}
			return walk.Continue
		},
		OnLeave: func(c *walk.Cursor) walk.Action {
			if leave && show(c) {
				line("leave", c)
			}
			return walk.Continue
		},
	})
}

func writeKindCounts(w io.Writer, counts map[ast.Kind]int) {
	kinds := make([]ast.Kind, 0, len(counts))
	total := 0
	for k, n := range counts {
		kinds = append(kinds, k)
		total += n
	}
	sort.Slice(kinds, func(i, j int) bool {
		if counts[kinds[i]] != counts[kinds[j]] {
			return counts[kinds[i]] > counts[kinds[j]]
		}
		return kinds[i].String() < kinds[j].String()
	})

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Kind", "Count"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, k := range kinds {
		table.Append([]string{k.String(), strconv.Itoa(counts[k])})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(total)})
	table.Render()
}
