// Package cli holds the stackchart commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/odyssey-erp/stackchart/internal/app"
	"github.com/odyssey-erp/stackchart/internal/observability"
	"github.com/odyssey-erp/stackchart/internal/series"
)

// ErrNoInput is returned when neither --file nor STACKCHART_DATA names a CSV source.
var ErrNoInput = errors.New("cli: no input, set --file or STACKCHART_DATA")

// Options carries the flags shared by every command.
type Options struct {
	File       string
	Categories []string
	Metrics    bool
}

type runner struct {
	cfg    *app.Config
	logger *slog.Logger
	opts   *Options
}

// NewRootCommand builds the command tree. Flag defaults come from cfg.
func NewRootCommand(cfg *app.Config, logger *slog.Logger) *cobra.Command {
	if cfg == nil {
		cfg = &app.Config{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts := &Options{
		File:       cfg.DataPath,
		Categories: append([]string(nil), cfg.Categories...),
		Metrics:    cfg.Metrics,
	}
	r := &runner{cfg: cfg, logger: logger, opts: opts}

	root := &cobra.Command{
		Use:   "stackchart",
		Short: "Stacked bar chart data from date,category,value CSV",
		Long: `stackchart groups date,category,value CSV rows (dates as DD/MM/YYYY) by
category, stacks the categories on top of each other and prints the
resulting chart snapshot.

Example usage:
  stackchart snapshot -f data.csv            # JSON snapshot of every category
  stackchart snapshot -f data.csv -c Mee,Ggg # only Mee and Ggg
  stackchart summary -f data.csv             # per-category totals
  stackchart export -f - < data.csv          # stacked layout as CSV`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.File, "file", "f", opts.File, "CSV file with date,category,value rows, - reads stdin")
	flags.StringSliceVarP(&opts.Categories, "categories", "c", opts.Categories, "active categories (default: all)")
	flags.BoolVar(&opts.Metrics, "metrics", opts.Metrics, "write Prometheus metrics to stderr when done")

	root.AddCommand(
		newSnapshotCommand(r),
		newSummaryCommand(r),
		newExportCommand(r),
		newCategoriesCommand(r),
	)
	return root
}

func (r *runner) load(cmd *cobra.Command) ([]series.Record, error) {
	switch r.opts.File {
	case "":
		return nil, ErrNoInput
	case "-":
		return series.Parse(cmd.InOrStdin())
	default:
		return series.LoadFile(r.opts.File)
	}
}

// filtered reports whether a category filter was requested, either on the
// command line or through configuration.
func (r *runner) filtered(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("categories") || r.cfg.HasCategories()
}

// openStore loads the input and builds a store publishing to bus. Metrics
// observe both the load and every recomputation.
func (r *runner) openStore(cmd *cobra.Command, bus *series.Bus, metrics *observability.Metrics) (*series.Store, error) {
	records, err := r.load(cmd)
	metrics.ObserveLoad(len(records), err)
	if err != nil {
		return nil, err
	}
	bus.Subscribe(metrics.ObserveSnapshot)
	return series.NewStore(records, bus,
		series.WithLogger(r.logger),
		series.WithObserver(metrics),
	)
}

// render publishes one snapshot, honouring the category filter, and hands
// it to write.
func (r *runner) render(cmd *cobra.Command, write func(io.Writer, series.Snapshot) error) error {
	metrics := observability.NewMetrics()
	defer r.dumpMetrics(cmd, metrics)

	bus := series.NewBus()
	store, err := r.openStore(cmd, bus, metrics)
	if err != nil {
		return err
	}

	var latest *series.Snapshot
	bus.Subscribe(func(snapshot series.Snapshot) {
		latest = &snapshot
	})
	if r.filtered(cmd) {
		store.SetActiveCategories(r.opts.Categories...)
	} else {
		store.Publish()
	}
	if latest == nil {
		return errors.New("cli: no snapshot published")
	}
	r.logger.Debug("snapshot ready",
		slog.Any("categories", latest.Categories()),
		slog.Int64("max_y", latest.MaxY),
	)
	return write(cmd.OutOrStdout(), *latest)
}

func (r *runner) dumpMetrics(cmd *cobra.Command, metrics *observability.Metrics) {
	if !r.opts.Metrics {
		return
	}
	if err := metrics.WriteText(cmd.ErrOrStderr()); err != nil {
		r.logger.Warn("write metrics", slog.Any("error", err))
	}
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
