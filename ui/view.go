package ui

import (
	"context"

	"cricdash/domain/chart"
	"cricdash/domain/core"
	"cricdash/internal/selection"
)

// chartView is one evaluated dataset view.
type chartView struct {
	ID       core.ID         `json:"viewId"`
	Dataset  string          `json:"dataset"`
	Stage    string          `json:"stage,omitempty"`
	Rows     int             `json:"rows"`
	Charts   []chart.Outcome `json:"charts"`
	selected *selection.Selection
}

// evaluateView selects dataset and stage and evaluates every catalog chart
// of the dataset over the selected rows.
func (a *App) evaluateView(ctx context.Context, dataset, stage string) (*chartView, error) {
	sel, err := selection.NewSelection(a.registry, dataset, stage)
	if err != nil {
		return nil, err
	}

	outcomes, err := a.evaluator.View(ctx, sel.Table(), a.catalog.Specs(dataset), a.catalog.Distributions(dataset))
	if err != nil {
		return nil, err
	}

	view := &chartView{
		ID:       core.NewID(),
		Dataset:  dataset,
		Stage:    stage,
		Rows:     sel.Table().Len(),
		Charts:   outcomes,
		selected: sel,
	}
	a.logger.Debug("view %s: %d charts over %q stage=%q", view.ID, len(outcomes), dataset, stage)
	return view, nil
}

// describe returns the description of a chart recipe, empty if unknown.
func (a *App) describe(dataset, id string) string {
	if spec, ok := a.catalog.Spec(dataset, id); ok {
		return spec.Description
	}
	if dist, ok := a.catalog.Distribution(dataset, id); ok {
		return dist.Description
	}
	return ""
}
