package engine

import (
	"sort"

	"cricdash/domain/chart"
	"cricdash/domain/table"
	"cricdash/internal/errors"

	"github.com/montanaflynn/stats"
)

// group accumulates one group-by key in encounter order.
type group struct {
	label  string
	sum    float64
	count  int
	values []float64
	value  float64
}

// Evaluate runs spec against tbl: filter, derive, threshold, group and
// reduce, then a stable sort truncated to the limit. tbl is never modified.
func Evaluate(tbl *table.Table, spec chart.Spec) (chart.RankedResult, error) {
	result := chart.RankedResult{
		SpecID:  spec.ID,
		Title:   spec.Title,
		Kind:    spec.Kind,
		XLabel:  spec.XLabel,
		YLabel:  spec.YLabel,
		Entries: []chart.Entry{},
	}
	if err := checkShape(spec); err != nil {
		return result, err
	}

	rows := tbl
	var err error
	if spec.Filter != nil {
		if rows, err = ApplyFilter(rows, *spec.Filter); err != nil {
			return result, err
		}
	}
	if spec.Derived != nil {
		if rows, err = Derive(rows, *spec.Derived); err != nil {
			return result, err
		}
	}
	if spec.Threshold != nil {
		if rows, err = ApplyThreshold(rows, *spec.Threshold); err != nil {
			return result, err
		}
	}

	groups, err := reduce(rows, spec)
	if err != nil {
		return result, err
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if spec.Sort == chart.SortAsc {
			return groups[i].value < groups[j].value
		}
		return groups[i].value > groups[j].value
	})
	if len(groups) > spec.Limit {
		groups = groups[:spec.Limit]
	}

	for _, g := range groups {
		result.Entries = append(result.Entries, chart.Entry{Label: g.label, Value: g.value})
	}
	return result, nil
}

// reduce groups rows by spec.GroupBy and applies spec.Aggregation to each
// group. sum and count read null metric cells as zero; mean fails on them
// unless the spec skips missing values.
func reduce(rows *table.Table, spec chart.Spec) ([]*group, error) {
	keyIdx, ok := rows.ColumnIndex(spec.GroupBy)
	if !ok {
		return nil, errors.MissingColumn(rows.Name(), spec.GroupBy)
	}

	metricIdx := -1
	if spec.Metric != "" {
		if spec.Aggregation == chart.AggCount {
			idx, ok := rows.ColumnIndex(spec.Metric)
			if !ok {
				return nil, errors.MissingColumn(rows.Name(), spec.Metric)
			}
			metricIdx = idx
		} else {
			idx, err := numericColumn(rows, spec.Metric)
			if err != nil {
				return nil, err
			}
			metricIdx = idx
		}
	}

	skipBlank := spec.SkipMissingValues && spec.Aggregation == chart.AggMean && metricIdx >= 0

	var groups []*group
	byLabel := make(map[string]*group)
	for r := 0; r < rows.Len(); r++ {
		key := rows.At(r, keyIdx)
		if key.IsNull() {
			if spec.SkipMissingGroups {
				continue
			}
			return nil, errors.MissingValue(spec.GroupBy, r)
		}
		if skipBlank && rows.At(r, metricIdx).IsNull() {
			continue
		}

		label := key.Text()
		g, seen := byLabel[label]
		if !seen {
			g = &group{label: label}
			byLabel[label] = g
			groups = append(groups, g)
		}

		if metricIdx < 0 {
			g.count++
			continue
		}
		cell := rows.At(r, metricIdx)
		switch spec.Aggregation {
		case chart.AggSum:
			if n, ok := cell.Number(); ok {
				g.sum += n
			}
		case chart.AggCount:
			if !cell.IsNull() {
				g.count++
			}
		case chart.AggMean:
			n, ok := cell.Number()
			if !ok {
				return nil, errors.MissingValue(spec.Metric, r)
			}
			g.values = append(g.values, n)
		}
	}

	for _, g := range groups {
		switch spec.Aggregation {
		case chart.AggSum:
			g.value = g.sum
		case chart.AggCount:
			g.value = float64(g.count)
		case chart.AggMean:
			mean, err := stats.Mean(g.values)
			if err != nil {
				return nil, errors.InsufficientData(g.label)
			}
			g.value = mean
		}
	}
	return groups, nil
}
