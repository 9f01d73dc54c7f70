package render

import (
	"fmt"
	"io"

	"github.com/bcdxn/f1results/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Plain writes the table to w as a rounded text table headed by title. An empty table is written
// as the "results not available" placeholder.
func Plain(w io.Writer, title string, t domain.ResultTable) error {
	if t.Empty() {
		_, err := fmt.Fprintf(w, "%s\n%s\n", title, NotAvailableMessage)
		return err
	}

	cols := Columns(t.Source, t.Session)
	header := make(table.Row, 0, len(cols))
	for _, c := range cols {
		header = append(header, c.Title)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	tw.AppendHeader(header)
	for _, r := range t.Rows {
		cells := Cells(r, t.Source, t.Session)
		row := make(table.Row, 0, len(cols))
		for _, c := range cols {
			row = append(row, cells[c.Key])
		}
		tw.AppendRow(row)
	}
	tw.Render()
	return nil
}
