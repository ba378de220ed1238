package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/odyssey-erp/stackchart/internal/series"
)

// WriteSnapshotJSON emits the snapshot in its renderer-facing JSON shape.
func WriteSnapshotJSON(w io.Writer, snapshot series.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}

// WriteStackedCSV emits one row per stacked segment, layer by layer.
func WriteStackedCSV(w io.Writer, snapshot series.Snapshot) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "category", "value", "y0", "top"}); err != nil {
		return err
	}
	for _, layer := range snapshot.DataStacked {
		for _, point := range layer {
			if err := writer.Write([]string{
				point.X.Format(series.DateLayout),
				point.Category,
				formatInt(point.Y),
				formatInt(point.Y0),
				formatInt(point.Top()),
			}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
