package profiling

import (
	"cricdash/domain/table"
)

// ColumnProfile describes one column of a table view.
type ColumnProfile struct {
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Count    int        `json:"count"`
	Missing  int        `json:"missing"`
	Distinct int        `json:"distinct"`
	Summary  *Summary   `json:"summary,omitempty"`
	Top      []TopValue `json:"top,omitempty"`
}

// TopValue is a frequent value of a string column.
type TopValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

const topValues = 3

// Profile summarizes every column of tbl in column order. Numeric columns
// get summary statistics; string columns get their most frequent values.
func Profile(tbl *table.Table) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(tbl.Columns()))
	for c, col := range tbl.Columns() {
		p := ColumnProfile{Name: col.Name, Kind: col.Kind.String()}

		var numbers []float64
		counts := make(map[string]int)
		var order []string
		for r := 0; r < tbl.Len(); r++ {
			v := tbl.At(r, c)
			if v.IsNull() {
				p.Missing++
				continue
			}
			p.Count++
			if n, ok := v.Number(); ok {
				numbers = append(numbers, n)
			}
			key := v.Text()
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
		p.Distinct = len(order)

		if col.Kind.Numeric() && len(numbers) > 0 {
			if s, err := summarize(numbers); err == nil {
				p.Summary = &s
			}
		} else if col.Kind == table.KindString {
			p.Top = top(order, counts)
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// top returns the most frequent values; ties keep encounter order.
func top(order []string, counts map[string]int) []TopValue {
	var out []TopValue
	for _, v := range order {
		tv := TopValue{Value: v, Count: counts[v]}
		i := len(out)
		for i > 0 && out[i-1].Count < tv.Count {
			i--
		}
		if i >= topValues {
			continue
		}
		out = append(out, TopValue{})
		copy(out[i+1:], out[i:])
		out[i] = tv
		if len(out) > topValues {
			out = out[:topValues]
		}
	}
	return out
}
