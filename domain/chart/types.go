package chart

// Kind tags how the presentation layer should draw a result.
type Kind string

const (
	KindBar       Kind = "bar"
	KindBarH      Kind = "barh"
	KindPie       Kind = "pie"
	KindHistogram Kind = "histogram"
)

// Aggregation reduces the metric cells of one group to a number.
type Aggregation string

const (
	AggSum   Aggregation = "sum"
	AggMean  Aggregation = "mean"
	AggCount Aggregation = "count"
)

// Valid reports whether a is one of the supported aggregations.
func (a Aggregation) Valid() bool {
	return a == AggSum || a == AggMean || a == AggCount
}

// SortDirection orders ranked groups by their aggregated value.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// FilterOp is the comparison applied by a Filter.
type FilterOp string

const (
	OpEq FilterOp = "eq"
	OpNe FilterOp = "ne"
	OpGt FilterOp = "gt"
	OpGe FilterOp = "ge"
	OpLt FilterOp = "lt"
	OpLe FilterOp = "le"
)

// Ordering reports whether the op compares numerically.
func (op FilterOp) Ordering() bool {
	return op == OpGt || op == OpGe || op == OpLt || op == OpLe
}

func (op FilterOp) Valid() bool {
	return op == OpEq || op == OpNe || op.Ordering()
}

// Filter keeps rows whose Column compares to Value under Op.
type Filter struct {
	Column string   `json:"column"`
	Op     FilterOp `json:"op"`
	Value  string   `json:"value"`
}

// Equals is shorthand for an equality filter.
func Equals(column, value string) *Filter {
	return &Filter{Column: column, Op: OpEq, Value: value}
}

// DerivedMetric is a synthetic per-row column: the sum of Columns.
type DerivedMetric struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// Threshold keeps rows whose Column is at least Min (strictly greater when
// Exclusive). It guards rate statistics against tiny samples.
type Threshold struct {
	Column    string  `json:"column"`
	Min       float64 `json:"min"`
	Exclusive bool    `json:"exclusive,omitempty"`
}

// Spec is a declarative recipe for one ranked aggregation.
type Spec struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Dataset     string         `json:"dataset"`
	Kind        Kind           `json:"kind"`
	Filter      *Filter        `json:"filter,omitempty"`
	Derived     *DerivedMetric `json:"derived,omitempty"`
	GroupBy     string         `json:"groupBy"`
	Metric      string         `json:"metric,omitempty"`
	Aggregation Aggregation    `json:"aggregation"`
	Threshold   *Threshold     `json:"threshold,omitempty"`
	Sort        SortDirection  `json:"sort"`
	Limit       int            `json:"limit"`

	// SkipMissingGroups drops rows with a null group key instead of failing.
	SkipMissingGroups bool `json:"skipMissingGroups,omitempty"`
	// SkipMissingValues drops rows with a null metric cell from a mean
	// instead of failing. Groups left without values are dropped too.
	SkipMissingValues bool `json:"skipMissingValues,omitempty"`

	XLabel      string `json:"xLabel,omitempty"`
	YLabel      string `json:"yLabel,omitempty"`
	Description string `json:"description,omitempty"`
}

// Entry is one ranked (label, value) pair.
type Entry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RankedResult is the ordered output of evaluating a Spec.
type RankedResult struct {
	SpecID  string  `json:"specId"`
	Title   string  `json:"title"`
	Kind    Kind    `json:"kind"`
	XLabel  string  `json:"xLabel,omitempty"`
	YLabel  string  `json:"yLabel,omitempty"`
	Entries []Entry `json:"entries"`
}

// Labels returns the entry labels in rank order.
func (r RankedResult) Labels() []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Label
	}
	return out
}

// Values returns the entry values in rank order.
func (r RankedResult) Values() []float64 {
	out := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Value
	}
	return out
}
