package export

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/odyssey-erp/stackchart/internal/series"
)

// CategorySummary aggregates one active category.
type CategorySummary struct {
	Category string
	Points   int
	Total    int64
	Peak     int64
}

// Summarize aggregates every active category in stacking order.
func Summarize(snapshot series.Snapshot) []CategorySummary {
	out := make([]CategorySummary, 0, len(snapshot.Data))
	for _, layer := range snapshot.Data {
		summary := CategorySummary{Category: layer.Category(), Points: len(layer)}
		for i, point := range layer {
			summary.Total += point.Y
			if i == 0 || point.Y > summary.Peak {
				summary.Peak = point.Y
			}
		}
		out = append(out, summary)
	}
	return out
}

// WriteSummaryTable prints the per-category summary followed by a total row
// whose peak is the stacked maximum.
func WriteSummaryTable(w io.Writer, snapshot series.Snapshot) error {
	printer := message.NewPrinter(language.English)
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	var (
		rows   [][]string
		points int
		total  int64
	)
	for _, summary := range Summarize(snapshot) {
		rows = append(rows, []string{
			summary.Category,
			printer.Sprintf("%d", summary.Points),
			printer.Sprintf("%d", summary.Total),
			printer.Sprintf("%d", summary.Peak),
		})
		points += summary.Points
		total += summary.Total
	}
	rows = append(rows, []string{
		"total",
		printer.Sprintf("%d", points),
		printer.Sprintf("%d", total),
		printer.Sprintf("%d", snapshot.MaxY),
	})

	table.Header([]string{"Category", "Points", "Total", "Peak"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
