package chart

// Status of one chart in a rendered view.
type Status string

const (
	StatusReady       Status = "ready"
	StatusUnavailable Status = "unavailable"
)

// Outcome is the per-chart result of evaluating a dataset view. Exactly one
// of Ranked and Histogram is set when Status is ready; Reason explains an
// unavailable chart.
type Outcome struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    Status        `json:"status"`
	Ranked    *RankedResult `json:"ranked,omitempty"`
	Histogram *Histogram    `json:"histogram,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Code      string        `json:"code,omitempty"`
}

// Ready reports whether the chart can be drawn.
func (o Outcome) Ready() bool {
	return o.Status == StatusReady
}
