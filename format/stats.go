package format

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/dhamidi/jsast/js/parser"
	"github.com/dhamidi/jsast/js/walk"
)

// StatsTable accumulates one row per parsed file and renders them as a
// table with totals.
type StatsTable struct {
	w    io.Writer
	rows []statsRow
}

type statsRow struct {
	file        string
	nodes       int
	comments    int
	diagnostics int
	elapsed     time.Duration
}

func NewStatsTable(w io.Writer) *StatsTable {
	return &StatsTable{w: w}
}

// Add records res, which took elapsed to parse.
func (t *StatsTable) Add(res *parser.Result, elapsed time.Duration) {
	row := statsRow{
		file:        res.File(),
		comments:    len(res.Comments()),
		diagnostics: len(res.Diagnostics()),
		elapsed:     elapsed,
	}
	if prog, ok := res.Program(); ok {
		row.nodes = walk.Count(prog)
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of recorded files.
func (t *StatsTable) Len() int {
	return len(t.rows)
}

// Render writes the table.
func (t *StatsTable) Render() {
	table := tablewriter.NewWriter(t.w)
	table.SetHeader([]string{"File", "Nodes", "Comments", "Diagnostics", "Time"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	var total statsRow
	for _, r := range t.rows {
		table.Append([]string{
			r.file,
			fmt.Sprintf("%d", r.nodes),
			fmt.Sprintf("%d", r.comments),
			fmt.Sprintf("%d", r.diagnostics),
			r.elapsed.Round(time.Microsecond).String(),
		})
		total.nodes += r.nodes
		total.comments += r.comments
		total.diagnostics += r.diagnostics
		total.elapsed += r.elapsed
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d files", len(t.rows)),
		fmt.Sprintf("%d", total.nodes),
		fmt.Sprintf("%d", total.comments),
		fmt.Sprintf("%d", total.diagnostics),
		total.elapsed.Round(time.Microsecond).String(),
	})
	table.Render()
}
