package engine

import (
	"fmt"
	"strconv"
	"strings"

	"cricdash/domain/chart"
	"cricdash/domain/table"
	"cricdash/internal/errors"
)

// rowPredicate decides whether row r of a table is kept.
type rowPredicate func(r int) bool

// compileFilter checks f against tbl and returns its row predicate.
func compileFilter(tbl *table.Table, f chart.Filter) (rowPredicate, error) {
	if strings.TrimSpace(f.Column) == "" {
		return nil, errors.InvalidFilter("filter has no column")
	}
	if !f.Op.Valid() {
		return nil, errors.InvalidFilter(fmt.Sprintf("filter on %q has unknown op %q", f.Column, f.Op))
	}
	idx, ok := tbl.ColumnIndex(f.Column)
	if !ok {
		return nil, errors.InvalidFilter(fmt.Sprintf("filter references column %q absent from %q", f.Column, tbl.Name()))
	}
	col, _ := tbl.Column(f.Column)

	want, numErr := strconv.ParseFloat(strings.TrimSpace(f.Value), 64)
	numeric := col.Kind.Numeric() && numErr == nil

	if f.Op.Ordering() {
		if !col.Kind.Numeric() {
			return nil, errors.InvalidFilter(fmt.Sprintf("filter op %q needs a numeric column, %q is %s", f.Op, f.Column, col.Kind))
		}
		if numErr != nil {
			return nil, errors.InvalidFilter(fmt.Sprintf("filter op %q needs a numeric value, got %q", f.Op, f.Value))
		}
	}

	equal := func(v table.Value) bool {
		if numeric {
			n, _ := v.Number()
			return n == want
		}
		return v.Text() == f.Value
	}

	return func(r int) bool {
		v := tbl.At(r, idx)
		if v.IsNull() {
			return f.Op == chart.OpNe
		}
		switch f.Op {
		case chart.OpEq:
			return equal(v)
		case chart.OpNe:
			return !equal(v)
		}
		n, _ := v.Number()
		switch f.Op {
		case chart.OpGt:
			return n > want
		case chart.OpGe:
			return n >= want
		case chart.OpLt:
			return n < want
		default:
			return n <= want
		}
	}, nil
}

// ApplyFilter returns the rows of tbl matching f as a new table.
func ApplyFilter(tbl *table.Table, f chart.Filter) (*table.Table, error) {
	keep, err := compileFilter(tbl, f)
	if err != nil {
		return nil, err
	}
	return tbl.Filter(keep), nil
}

// ApplyThreshold keeps rows whose threshold column meets the minimum. Null
// cells never qualify.
func ApplyThreshold(tbl *table.Table, th chart.Threshold) (*table.Table, error) {
	idx, err := numericColumn(tbl, th.Column)
	if err != nil {
		return nil, err
	}
	return tbl.Filter(func(r int) bool {
		n, ok := tbl.At(r, idx).Number()
		if !ok {
			return false
		}
		if th.Exclusive {
			return n > th.Min
		}
		return n >= th.Min
	}), nil
}

// Derive appends the derived metric column: the per-row sum of its source
// columns, null when any source cell is null.
func Derive(tbl *table.Table, d chart.DerivedMetric) (*table.Table, error) {
	if strings.TrimSpace(d.Name) == "" || len(d.Columns) == 0 {
		return nil, errors.InvalidInput("derived metric needs a name and at least one column")
	}
	if tbl.HasColumn(d.Name) {
		return nil, errors.InvalidInput(fmt.Sprintf("derived metric %q shadows an existing column", d.Name))
	}

	kind := table.KindInt
	idxs := make([]int, len(d.Columns))
	for i, name := range d.Columns {
		idx, err := numericColumn(tbl, name)
		if err != nil {
			return nil, err
		}
		if col, _ := tbl.Column(name); col.Kind == table.KindFloat {
			kind = table.KindFloat
		}
		idxs[i] = idx
	}

	values := make([]table.Value, tbl.Len())
	for r := range values {
		sum := 0.0
		missing := false
		for _, idx := range idxs {
			n, ok := tbl.At(r, idx).Number()
			if !ok {
				missing = true
				break
			}
			sum += n
		}
		switch {
		case missing:
			values[r] = table.Null()
		case kind == table.KindInt:
			values[r] = table.Int(int64(sum))
		default:
			values[r] = table.Float(sum)
		}
	}
	return tbl.WithColumn(table.Column{Name: d.Name, Kind: kind}, values)
}

func numericColumn(tbl *table.Table, name string) (int, error) {
	idx, ok := tbl.ColumnIndex(name)
	if !ok {
		return 0, errors.MissingColumn(tbl.Name(), name)
	}
	if col, _ := tbl.Column(name); !col.Kind.Numeric() {
		return 0, errors.InvalidInput(fmt.Sprintf("column %q of %q is %s, not numeric", name, tbl.Name(), col.Kind))
	}
	return idx, nil
}
