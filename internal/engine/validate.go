package engine

import (
	"fmt"
	"strings"

	"cricdash/domain/chart"
	"cricdash/domain/table"
	"cricdash/internal/errors"
)

// checkShape validates the parts of a spec that do not depend on a table.
func checkShape(spec chart.Spec) error {
	if strings.TrimSpace(spec.ID) == "" {
		return errors.InvalidInput("chart spec has no id")
	}
	if !spec.Aggregation.Valid() {
		return errors.InvalidInput(fmt.Sprintf("chart %s: unknown aggregation %q", spec.ID, spec.Aggregation))
	}
	if !spec.Sort.Valid() {
		return errors.InvalidInput(fmt.Sprintf("chart %s: unknown sort direction %q", spec.ID, spec.Sort))
	}
	if spec.Limit < 1 {
		return errors.InvalidInput(fmt.Sprintf("chart %s: limit must be at least 1, got %d", spec.ID, spec.Limit))
	}
	if strings.TrimSpace(spec.GroupBy) == "" {
		return errors.InvalidInput(fmt.Sprintf("chart %s: no group-by column", spec.ID))
	}
	if spec.Metric == "" && spec.Aggregation != chart.AggCount {
		return errors.InvalidInput(fmt.Sprintf("chart %s: %s needs a metric column", spec.ID, spec.Aggregation))
	}
	return nil
}

// ValidateSpec checks every column spec references against tbl. It is run
// once when a spec is registered so that broken recipes never reach
// evaluation.
func ValidateSpec(spec chart.Spec, tbl *table.Table) error {
	if err := checkShape(spec); err != nil {
		return err
	}

	if spec.Filter != nil {
		if _, err := compileFilter(tbl, *spec.Filter); err != nil {
			return errors.Wrapf(err, "chart %s", spec.ID)
		}
	}

	// Derive on an empty projection so column checks run without touching rows.
	schema := tbl.Slice(0, 0)
	if spec.Derived != nil {
		derived, err := Derive(schema, *spec.Derived)
		if err != nil {
			return errors.Wrapf(err, "chart %s", spec.ID)
		}
		schema = derived
	}

	if spec.Threshold != nil {
		if _, err := numericColumn(schema, spec.Threshold.Column); err != nil {
			return errors.Wrapf(err, "chart %s threshold", spec.ID)
		}
	}

	if !schema.HasColumn(spec.GroupBy) {
		return errors.Wrapf(errors.MissingColumn(tbl.Name(), spec.GroupBy), "chart %s group-by", spec.ID)
	}

	if spec.Metric != "" {
		if spec.Aggregation == chart.AggCount {
			if !schema.HasColumn(spec.Metric) {
				return errors.Wrapf(errors.MissingColumn(tbl.Name(), spec.Metric), "chart %s metric", spec.ID)
			}
		} else if _, err := numericColumn(schema, spec.Metric); err != nil {
			return errors.Wrapf(err, "chart %s metric", spec.ID)
		}
	}
	return nil
}

// ValidateDistribution checks a distribution spec against tbl.
func ValidateDistribution(spec chart.DistributionSpec, tbl *table.Table) error {
	if strings.TrimSpace(spec.ID) == "" {
		return errors.InvalidInput("distribution spec has no id")
	}
	if spec.Bins < 1 {
		return errors.InvalidInput(fmt.Sprintf("distribution %s: bins must be at least 1, got %d", spec.ID, spec.Bins))
	}
	if _, err := numericColumn(tbl, spec.Metric); err != nil {
		return errors.Wrapf(err, "distribution %s metric", spec.ID)
	}
	if spec.Filter != nil {
		if _, err := compileFilter(tbl, *spec.Filter); err != nil {
			return errors.Wrapf(err, "distribution %s", spec.ID)
		}
	}
	for _, s := range spec.Series {
		if s.Filter == nil {
			continue
		}
		if _, err := compileFilter(tbl, *s.Filter); err != nil {
			return errors.Wrapf(err, "distribution %s series %s", spec.ID, s.Name)
		}
	}
	return nil
}
