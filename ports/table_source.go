package ports

import (
	"context"
	"io"

	"cricdash/domain/chart"
	"cricdash/domain/table"
)

// TableSource loads one statistics file into an immutable table.
type TableSource interface {
	// Load reads the file at path and returns it as a table called name.
	Load(ctx context.Context, name, path string) (*table.Table, error)
}

// ChartExporter writes evaluated charts to a downloadable format.
type ChartExporter interface {
	WriteRanked(w io.Writer, res chart.RankedResult) error
	WriteHistogram(w io.Writer, hist chart.Histogram) error
}
