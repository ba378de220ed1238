package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/odyssey-erp/stackchart/internal/export"
	"github.com/odyssey-erp/stackchart/internal/observability"
	"github.com/odyssey-erp/stackchart/internal/series"
)

func newSnapshotCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print the chart snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.render(cmd, export.WriteSnapshotJSON)
		},
	}
}

func newSummaryCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print per-category totals and the chart bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.render(cmd, func(w io.Writer, snapshot series.Snapshot) error {
				if err := export.WriteSummaryTable(w, snapshot); err != nil {
					return err
				}
				if snapshot.Empty() {
					_, err := fmt.Fprintln(w, "no active categories")
					return err
				}
				_, err := fmt.Fprintf(w, "range %s - %s, y %d - %d\n",
					snapshot.MinX.Format(series.DateLayout),
					snapshot.MaxX.Format(series.DateLayout),
					snapshot.MinY, snapshot.MaxY)
				return err
			})
		},
	}
}

func newExportCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stacked layout as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.render(cmd, export.WriteStackedCSV)
		},
	}
}

func newCategoriesCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in first-seen order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := observability.NewMetrics()
			defer r.dumpMetrics(cmd, metrics)

			store, err := r.openStore(cmd, series.NewBus(), metrics)
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), store.Categories())
		},
	}
}
