package selection

import (
	"fmt"
	"slices"

	"cricdash/domain/chart"
	"cricdash/domain/table"
	"cricdash/internal/engine"
	"cricdash/internal/errors"
)

// StageColumn names the tournament-stage column some datasets carry.
const StageColumn = "Stage"

// Lookup resolves a dataset name to its table.
type Lookup interface {
	Get(name string) (*table.Table, error)
}

// Selection is the dataset a user is looking at plus an optional stage.
type Selection struct {
	dataset string
	stage   string
	base    *table.Table
	view    *table.Table
}

// NewSelection resolves dataset through reg and applies the stage filter.
// An empty stage selects every row.
func NewSelection(reg Lookup, dataset, stage string) (*Selection, error) {
	base, err := reg.Get(dataset)
	if err != nil {
		return nil, err
	}

	s := &Selection{dataset: dataset, stage: stage, base: base, view: base}
	if stage == "" {
		return s, nil
	}

	if !base.HasColumn(StageColumn) {
		return nil, errors.InvalidFilter(fmt.Sprintf("dataset %q has no %s column", dataset, StageColumn))
	}
	stages, err := base.DistinctText(StageColumn)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(stages, stage) {
		return nil, errors.InvalidFilter(fmt.Sprintf("unknown stage %q for dataset %q", stage, dataset))
	}

	s.view, err = engine.ApplyFilter(base, *chart.Equals(StageColumn, stage))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Dataset returns the selected dataset name.
func (s *Selection) Dataset() string { return s.dataset }

// Stage returns the selected stage, empty for all stages.
func (s *Selection) Stage() string { return s.stage }

// Table returns the stage-filtered table.
func (s *Selection) Table() *table.Table { return s.view }

// Stages lists the distinct stages of the dataset in encounter order. It
// fails when the dataset has no stage column.
func (s *Selection) Stages() ([]string, error) {
	return Stages(s.base)
}

// Stages lists the distinct non-null values of tbl's stage column.
func Stages(tbl *table.Table) ([]string, error) {
	if !tbl.HasColumn(StageColumn) {
		return nil, errors.NotFound(fmt.Sprintf("%s column of %q", StageColumn, tbl.Name()))
	}
	return tbl.DistinctText(StageColumn)
}
