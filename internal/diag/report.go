package diag

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// IndexStats is the subset of a constructed index's shape a report
// renders. Defined here (rather than importing the tfmindex package, to
// avoid a cycle) and populated by the caller.
type IndexStats struct {
	TextLen     int
	TunneledLen int
	Order       int
	NodeCount   int
}

// WriteReport renders a small structure-tree table describing how much
// a construction collapsed the text, for tfm_index_construct's --report
// output and the pfwg inspector.
func WriteReport(w io.Writer, stats IndexStats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"metric", "value"})

	ratio := "n/a"
	if stats.TextLen > 0 {
		ratio = fmt.Sprintf("%.2f%%", 100*float64(stats.TunneledLen)/float64(stats.TextLen+1))
	}

	table.AppendBulk([][]string{
		{"text length", fmt.Sprintf("%d", stats.TextLen)},
		{"tunneled rows", fmt.Sprintf("%d", stats.TunneledLen)},
		{"rows / (text+1)", ratio},
		{"de Bruijn order", fmt.Sprintf("%d", stats.Order)},
		{"node count", fmt.Sprintf("%d", stats.NodeCount)},
	})
	table.Render()
}
