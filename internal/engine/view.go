package engine

import (
	"context"

	"cricdash/domain/chart"
	"cricdash/domain/table"
	"cricdash/internal/errors"
	"cricdash/internal/logging"

	"golang.org/x/sync/errgroup"
)

// Evaluator renders every chart of a dataset view. Charts are independent,
// so they are evaluated concurrently and joined before returning.
type Evaluator struct {
	workers int
	logger  *logging.Logger
}

// NewEvaluator creates an evaluator running at most workers charts at once.
func NewEvaluator(workers int, logger *logging.Logger) *Evaluator {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &Evaluator{workers: workers, logger: logger.With("Engine")}
}

// View evaluates specs then dists against tbl. The returned outcomes follow
// that order. A failing chart becomes an unavailable outcome and never
// affects the others; only context cancellation fails the whole view.
func (e *Evaluator) View(ctx context.Context, tbl *table.Table, specs []chart.Spec, dists []chart.DistributionSpec) ([]chart.Outcome, error) {
	outcomes := make([]chart.Outcome, len(specs)+len(dists))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Evaluate(tbl, spec)
			outcomes[i] = e.outcome(spec.ID, spec.Title, err)
			if err == nil {
				outcomes[i].Ranked = &res
			}
			return nil
		})
	}

	for j, dist := range dists {
		i, dist := len(specs)+j, dist
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hist, err := Distribute(tbl, dist)
			outcomes[i] = e.outcome(dist.ID, dist.Title, err)
			if err == nil {
				outcomes[i].Histogram = &hist
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.logger.Debug("evaluated %d charts over %d rows of %q", len(outcomes), tbl.Len(), tbl.Name())
	return outcomes, nil
}

func (e *Evaluator) outcome(id, title string, err error) chart.Outcome {
	if err != nil {
		e.logger.Warn("chart %s unavailable: %v", id, err)
		return chart.Outcome{
			ID:     id,
			Title:  title,
			Status: chart.StatusUnavailable,
			Reason: err.Error(),
			Code:   errors.GetCode(err),
		}
	}
	return chart.Outcome{ID: id, Title: title, Status: chart.StatusReady}
}
