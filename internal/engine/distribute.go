package engine

import (
	"math"
	"sort"

	"cricdash/domain/chart"
	"cricdash/domain/table"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Distribute bins spec.Metric into spec.Bins equal-width buckets spanning
// the combined range of every series. A series without a filter takes every
// row that passed spec.Filter.
func Distribute(tbl *table.Table, spec chart.DistributionSpec) (chart.Histogram, error) {
	hist := chart.Histogram{
		SpecID: spec.ID,
		Title:  spec.Title,
		XLabel: spec.XLabel,
		YLabel: spec.YLabel,
		Edges:  []float64{},
	}
	if err := ValidateDistribution(spec, tbl); err != nil {
		return hist, err
	}

	rows := tbl
	var err error
	if spec.Filter != nil {
		if rows, err = ApplyFilter(rows, *spec.Filter); err != nil {
			return hist, err
		}
	}

	series := spec.Series
	if len(series) == 0 {
		series = []chart.SeriesFilter{{Name: spec.Metric}}
	}

	samples := make([][]float64, len(series))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, s := range series {
		subset := rows
		if s.Filter != nil {
			if subset, err = ApplyFilter(rows, *s.Filter); err != nil {
				return hist, err
			}
		}
		values, err := numbers(subset, spec.Metric)
		if err != nil {
			return hist, err
		}
		sort.Float64s(values)
		if len(values) > 0 {
			lo = math.Min(lo, values[0])
			hi = math.Max(hi, values[len(values)-1])
		}
		samples[i] = values
	}

	if math.IsInf(lo, 1) {
		for _, s := range series {
			hist.Series = append(hist.Series, chart.Series{Name: s.Name, Counts: []float64{}})
		}
		return hist, nil
	}
	if lo == hi {
		hi = lo + 1
	}

	hist.Edges = floats.Span(make([]float64, spec.Bins+1), lo, hi)

	// The top edge is nudged up so the maximum lands in the last bin.
	dividers := make([]float64, len(hist.Edges))
	copy(dividers, hist.Edges)
	dividers[len(dividers)-1] = math.Nextafter(hi, math.Inf(1))

	for i, s := range series {
		counts := make([]float64, spec.Bins)
		if len(samples[i]) > 0 {
			counts = stat.Histogram(counts, dividers, samples[i], nil)
		}
		hist.Series = append(hist.Series, chart.Series{Name: s.Name, Counts: counts})
	}
	return hist, nil
}

// numbers collects the non-null values of a numeric column.
func numbers(tbl *table.Table, column string) ([]float64, error) {
	idx, err := numericColumn(tbl, column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, tbl.Len())
	for r := 0; r < tbl.Len(); r++ {
		if n, ok := tbl.At(r, idx).Number(); ok {
			out = append(out, n)
		}
	}
	return out, nil
}
