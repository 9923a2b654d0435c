package ui

import (
	"bytes"
	"fmt"
	"net/http"

	"cricdash/domain/table"
	"cricdash/internal/engine"
	apperrors "cricdash/internal/errors"
	"cricdash/internal/profiling"
	"cricdash/internal/selection"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

const maxPageSize = 1000

type datasetSummary struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Charts  int    `json:"charts"`
}

type tableColumn struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type tablePage struct {
	Dataset string                    `json:"dataset"`
	Total   int                       `json:"total"`
	Offset  int                       `json:"offset"`
	Limit   int                       `json:"limit"`
	Columns []tableColumn             `json:"columns"`
	Rows    [][]interface{}           `json:"rows"`
	Profile []profiling.ColumnProfile `json:"profile"`
}

// handleListDatasets lists every dataset in configured order.
func (a *App) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	summaries := make([]datasetSummary, 0)
	for _, name := range a.registry.Names() {
		tbl, err := a.registry.Get(name)
		if err != nil {
			a.writeError(w, err)
			return
		}
		summaries = append(summaries, datasetSummary{
			Name:    name,
			Rows:    tbl.Len(),
			Columns: len(tbl.Columns()),
			Charts:  len(a.catalog.IDs(name)),
		})
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"datasets": summaries})
}

// handleDatasetView returns one page of a dataset's rows plus the column
// profile of the whole dataset.
func (a *App) handleDatasetView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sel, err := selection.NewSelection(a.registry, name, r.URL.Query().Get("stage"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		a.writeError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", a.config.DefaultPageSize)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	tbl := sel.Table()
	a.writeJSON(w, http.StatusOK, tablePage{
		Dataset: name,
		Total:   tbl.Len(),
		Offset:  offset,
		Limit:   limit,
		Columns: columnsOf(tbl),
		Rows:    rowsOf(tbl.Slice(offset, limit)),
		Profile: profiling.Profile(tbl),
	})
}

// handleStages lists a dataset's tournament stages; 404 when it has none.
func (a *App) handleStages(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tbl, err := a.registry.Get(name)
	if err != nil {
		a.writeError(w, err)
		return
	}
	stages, err := selection.Stages(tbl)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"dataset": name, "stages": stages})
}

// handleCharts evaluates every chart of the dataset view.
func (a *App) handleCharts(w http.ResponseWriter, r *http.Request) {
	view, err := a.evaluateView(r.Context(), chi.URLParam(r, "name"), r.URL.Query().Get("stage"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, view)
}

// handleExport evaluates one chart and returns it as an XLSX workbook.
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	name, id := chi.URLParam(r, "name"), chi.URLParam(r, "id")
	sel, err := selection.NewSelection(a.registry, name, r.URL.Query().Get("stage"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if spec, ok := a.catalog.Spec(name, id); ok {
		res, err := engine.Evaluate(sel.Table(), spec)
		if err != nil {
			a.writeError(w, err)
			return
		}
		err = a.exporter.WriteRanked(&buf, res)
		if err != nil {
			a.writeError(w, apperrors.Wrap(err, "export "+id))
			return
		}
	} else if dist, ok := a.catalog.Distribution(name, id); ok {
		hist, err := engine.Distribute(sel.Table(), dist)
		if err != nil {
			a.writeError(w, err)
			return
		}
		err = a.exporter.WriteHistogram(&buf, hist)
		if err != nil {
			a.writeError(w, apperrors.Wrap(err, "export "+id))
			return
		}
	} else {
		a.writeError(w, apperrors.NotFound(fmt.Sprintf("chart %q of dataset %q", id, name)))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".xlsx"))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("writing export %s: %v", id, err)
	}
}

func columnsOf(tbl *table.Table) []tableColumn {
	return lo.Map(tbl.Columns(), func(c table.Column, _ int) tableColumn {
		return tableColumn{Name: c.Name, Kind: c.Kind.String()}
	})
}

func rowsOf(tbl *table.Table) [][]interface{} {
	rows := make([][]interface{}, tbl.Len())
	for r := range rows {
		rows[r] = lo.Map(tbl.Row(r), func(v table.Value, _ int) interface{} { return v.Interface() })
	}
	return rows
}
