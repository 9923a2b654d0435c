package table

import (
	"fmt"
)

// Column describes one named, homogeneously typed column.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"-"`
}

// Table is an immutable, ordered set of rows. Filtering and deriving return
// new tables; row slices are shared between tables and never written after
// construction.
type Table struct {
	name    string
	columns []Column
	index   map[string]int
	rows    [][]Value
}

// New builds a table, checking row widths and column homogeneity. Int cells
// are accepted in float columns and widened.
func New(name string, columns []Column, rows [][]Value) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("table %q: column %d has no name", name, i)
		}
		if _, dup := index[c.Name]; dup {
			return nil, fmt.Errorf("table %q: duplicate column %q", name, c.Name)
		}
		index[c.Name] = i
	}

	copied := make([][]Value, len(rows))
	for r, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("table %q: row %d has %d cells, want %d", name, r, len(row), len(columns))
		}
		out := make([]Value, len(row))
		for c, v := range row {
			if v.IsNull() {
				continue
			}
			want := columns[c].Kind
			switch {
			case v.kind == want:
				out[c] = v
			case want == KindFloat && v.kind == KindInt:
				out[c] = Float(float64(v.i))
			default:
				return nil, fmt.Errorf("table %q: row %d column %q holds %s, column is %s",
					name, r, columns[c].Name, v.kind, want)
			}
		}
		copied[r] = out
	}

	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{name: name, columns: cols, index: index, rows: copied}, nil
}

func (t *Table) Name() string { return t.name }
func (t *Table) Len() int     { return len(t.rows) }

// Columns returns a copy of the column list.
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of a column for use with At.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// At returns the cell at row r, column position c.
func (t *Table) At(r, c int) Value {
	return t.rows[r][c]
}

// Row returns a copy of row r.
func (t *Table) Row(r int) []Value {
	row := make([]Value, len(t.rows[r]))
	copy(row, t.rows[r])
	return row
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(r int) bool) *Table {
	rows := make([][]Value, 0, len(t.rows))
	for r := range t.rows {
		if keep(r) {
			rows = append(rows, t.rows[r])
		}
	}
	return &Table{name: t.name, columns: t.columns, index: t.index, rows: rows}
}

// Slice returns rows [offset, offset+limit) as a new table.
func (t *Table) Slice(offset, limit int) *Table {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.rows) {
		offset = len(t.rows)
	}
	end := len(t.rows)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return &Table{name: t.name, columns: t.columns, index: t.index, rows: t.rows[offset:end:end]}
}

// WithColumn returns a new table with one extra column appended. The
// receiver is left untouched.
func (t *Table) WithColumn(col Column, values []Value) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("table %q: column %q has %d values, want %d", t.name, col.Name, len(values), len(t.rows))
	}
	if t.HasColumn(col.Name) {
		return nil, fmt.Errorf("table %q: column %q already exists", t.name, col.Name)
	}

	columns := make([]Column, len(t.columns), len(t.columns)+1)
	copy(columns, t.columns)
	columns = append(columns, col)

	rows := make([][]Value, len(t.rows))
	for r, row := range t.rows {
		out := make([]Value, len(row)+1)
		copy(out, row)
		out[len(row)] = values[r]
		rows[r] = out
	}
	return New(t.name, columns, rows)
}

// Distinct returns the distinct non-null values of a column in encounter
// order.
func (t *Table) Distinct(name string) ([]Value, error) {
	c, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("table %q has no column %q", t.name, name)
	}
	seen := make(map[string]bool)
	var out []Value
	for _, row := range t.rows {
		v := row[c]
		if v.IsNull() || seen[v.Text()] {
			continue
		}
		seen[v.Text()] = true
		out = append(out, v)
	}
	return out, nil
}

// DistinctText is Distinct rendered as labels.
func (t *Table) DistinctText(name string) ([]string, error) {
	vals, err := t.Distinct(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.Text()
	}
	return out, nil
}
