package chart

// SeriesFilter names one histogram series and selects its rows.
type SeriesFilter struct {
	Name   string  `json:"name"`
	Filter *Filter `json:"filter,omitempty"`
}

// DistributionSpec bins a numeric column into equal-width buckets, one
// count series per SeriesFilter, all sharing the same bin edges.
type DistributionSpec struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Dataset     string         `json:"dataset"`
	Filter      *Filter        `json:"filter,omitempty"`
	Metric      string         `json:"metric"`
	Bins        int            `json:"bins"`
	Series      []SeriesFilter `json:"series"`
	XLabel      string         `json:"xLabel,omitempty"`
	YLabel      string         `json:"yLabel,omitempty"`
	Description string         `json:"description,omitempty"`
}

// Series holds the per-bin counts of one histogram series.
type Series struct {
	Name   string    `json:"name"`
	Counts []float64 `json:"counts"`
}

// Histogram is the output of a DistributionSpec. Edges has len(bins)+1
// entries; bin i covers [Edges[i], Edges[i+1]).
type Histogram struct {
	SpecID string    `json:"specId"`
	Title  string    `json:"title"`
	XLabel string    `json:"xLabel,omitempty"`
	YLabel string    `json:"yLabel,omitempty"`
	Edges  []float64 `json:"edges"`
	Series []Series  `json:"series"`
}
