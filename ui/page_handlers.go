package ui

import (
	"net/http"

	"cricdash/domain/chart"
	"cricdash/domain/table"
	"cricdash/internal/profiling"

	"github.com/go-chi/chi/v5"
)

type chartCard struct {
	chart.Outcome
	Description string
	Bins        []histogramBin
}

type histogramBin struct {
	Label  string
	Counts []float64
}

type indexPage struct {
	Datasets []string
	Selected string
	Stage    string
	Stages   []string
	Columns  []string
	Rows     [][]table.Value
	Total    int
	Profile  []profiling.ColumnProfile
	Charts   []chartCard
	Error    string
}

// handleIndex renders the dashboard: dataset selector, stage selector,
// table preview, column profile and every chart as a ranked list.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{Datasets: a.registry.Names()}
	if len(page.Datasets) == 0 {
		a.renderTemplate(w, http.StatusOK, "index.html", page)
		return
	}

	page.Selected = r.URL.Query().Get("dataset")
	if page.Selected == "" {
		page.Selected = page.Datasets[0]
	}
	page.Stage = r.URL.Query().Get("stage")

	view, err := a.evaluateView(r.Context(), page.Selected, page.Stage)
	if err != nil {
		page.Error = err.Error()
		a.renderTemplate(w, statusFor(err), "index.html", page)
		return
	}

	if stages, err := view.selected.Stages(); err == nil {
		page.Stages = stages
	}

	tbl := view.selected.Table()
	page.Total = tbl.Len()
	page.Columns = tbl.ColumnNames()
	preview := tbl.Slice(0, a.config.DefaultPageSize)
	for i := 0; i < preview.Len(); i++ {
		page.Rows = append(page.Rows, preview.Row(i))
	}
	page.Profile = profiling.Profile(tbl)

	for _, o := range view.Charts {
		card := chartCard{Outcome: o, Description: a.describe(page.Selected, o.ID)}
		if o.Histogram != nil {
			card.Bins = histogramBins(*o.Histogram)
		}
		page.Charts = append(page.Charts, card)
	}
	a.renderTemplate(w, http.StatusOK, "index.html", page)
}

// handleChartsPage draws every ready chart of the view with echarts.
func (a *App) handleChartsPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	stage := r.URL.Query().Get("stage")
	view, err := a.evaluateView(r.Context(), name, stage)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderChartPage(w, pageTitle(name, stage), view.Charts); err != nil {
		a.logger.Error("rendering charts of %q: %v", name, err)
	}
}

func histogramBins(hist chart.Histogram) []histogramBin {
	labels := binLabels(hist.Edges)
	bins := make([]histogramBin, len(labels))
	for b, label := range labels {
		bins[b].Label = label
		for _, s := range hist.Series {
			bins[b].Counts = append(bins[b].Counts, s.Counts[b])
		}
	}
	return bins
}

func pageTitle(dataset, stage string) string {
	if stage == "" {
		return dataset
	}
	return dataset + " - " + stage
}

