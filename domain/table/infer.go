package table

import (
	"strconv"
	"strings"
)

// nullTokens are cell texts read as missing values.
var nullTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"-":    true,
}

// IsNullToken reports whether a raw cell should be read as missing.
func IsNullToken(raw string) bool {
	return nullTokens[strings.TrimSpace(raw)]
}

// InferKind picks the narrowest kind that every non-null cell parses as:
// int, then float, then string. A column with no values at all is a string
// column.
func InferKind(cells []string) Kind {
	kind := KindInt
	seen := false
	for _, raw := range cells {
		s := strings.TrimSpace(raw)
		if nullTokens[s] {
			continue
		}
		seen = true
		if kind == KindInt {
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				continue
			}
			kind = KindFloat
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return KindString
		}
	}
	if !seen {
		return KindString
	}
	return kind
}

// ParseCell converts raw text into a value of the given column kind.
func ParseCell(raw string, kind Kind) Value {
	s := strings.TrimSpace(raw)
	if nullTokens[s] {
		return Null()
	}
	switch kind {
	case KindInt:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i)
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f)
		}
	}
	return String(s)
}

// FromStrings builds a table from a header row and raw string rows,
// inferring each column's kind. Blank headers are named "Unnamed: <i>"
// after their position, like a saved index column. Short rows are padded with nulls and cells
// beyond the header are dropped.
func FromStrings(name string, headers []string, rows [][]string) (*Table, error) {
	columns := make([]Column, len(headers))
	for c, h := range headers {
		cells := make([]string, len(rows))
		for r, row := range rows {
			if c < len(row) {
				cells[r] = row[c]
			}
		}
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(c)
		}
		columns[c] = Column{Name: name, Kind: InferKind(cells)}
	}

	values := make([][]Value, len(rows))
	for r, row := range rows {
		out := make([]Value, len(columns))
		for c := range columns {
			if c < len(row) {
				out[c] = ParseCell(row[c], columns[c].Kind)
			}
		}
		values[r] = out
	}
	return New(name, columns, values)
}
