package catalog

import (
	"fmt"
	"sync"

	"cricdash/domain/chart"
	"cricdash/domain/table"
	"cricdash/internal/engine"
	"cricdash/internal/errors"
	"cricdash/internal/logging"

	"github.com/samber/lo"
)

// Rejection records a recipe that failed validation at registration.
type Rejection struct {
	Dataset string
	ID      string
	Err     error
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s/%s: %v", r.Dataset, r.ID, r.Err)
}

// Catalog holds the validated chart recipes of every dataset in
// registration order.
type Catalog struct {
	mu     sync.RWMutex
	specs  map[string][]chart.Spec
	dists  map[string][]chart.DistributionSpec
	ids    map[string]map[string]bool
	logger *logging.Logger
}

// New creates an empty catalog.
func New(logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &Catalog{
		specs:  make(map[string][]chart.Spec),
		dists:  make(map[string][]chart.DistributionSpec),
		ids:    make(map[string]map[string]bool),
		logger: logger.With("Catalog"),
	}
}

// Register validates spec against tbl, the dataset it will be evaluated
// over, and stores it under spec.Dataset. A spec that references a missing
// column or repeats an ID is rejected and not stored.
func (c *Catalog) Register(spec chart.Spec, tbl *table.Table) error {
	if spec.Dataset == "" {
		spec.Dataset = tbl.Name()
	}
	if err := engine.ValidateSpec(spec, tbl); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.claim(spec.Dataset, spec.ID); err != nil {
		return err
	}
	c.specs[spec.Dataset] = append(c.specs[spec.Dataset], spec)
	return nil
}

// RegisterDistribution validates and stores a histogram recipe.
func (c *Catalog) RegisterDistribution(spec chart.DistributionSpec, tbl *table.Table) error {
	if spec.Dataset == "" {
		spec.Dataset = tbl.Name()
	}
	if err := engine.ValidateDistribution(spec, tbl); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.claim(spec.Dataset, spec.ID); err != nil {
		return err
	}
	c.dists[spec.Dataset] = append(c.dists[spec.Dataset], spec)
	return nil
}

// claim reserves id within dataset. Callers hold c.mu.
func (c *Catalog) claim(dataset, id string) error {
	ids, ok := c.ids[dataset]
	if !ok {
		ids = make(map[string]bool)
		c.ids[dataset] = ids
	}
	if ids[id] {
		return errors.InvalidInput(fmt.Sprintf("chart id %q already registered for %q", id, dataset))
	}
	ids[id] = true
	return nil
}

// RegisterAll registers the built-in recipes of every dataset present in
// tables. Recipes of absent datasets are skipped; invalid recipes are
// logged and returned.
func (c *Catalog) RegisterAll(tables map[string]*table.Table) []Rejection {
	specs, dists := Builtin()
	var rejected []Rejection
	registered := 0

	for _, spec := range specs {
		tbl, ok := tables[spec.Dataset]
		if !ok {
			continue
		}
		if err := c.Register(spec, tbl); err != nil {
			rejected = append(rejected, Rejection{Dataset: spec.Dataset, ID: spec.ID, Err: err})
			continue
		}
		registered++
	}
	for _, spec := range dists {
		tbl, ok := tables[spec.Dataset]
		if !ok {
			continue
		}
		if err := c.RegisterDistribution(spec, tbl); err != nil {
			rejected = append(rejected, Rejection{Dataset: spec.Dataset, ID: spec.ID, Err: err})
			continue
		}
		registered++
	}

	for _, r := range rejected {
		c.logger.Error("rejected chart %s", r)
	}
	c.logger.Info("registered %d charts (%d rejected)", registered, len(rejected))
	return rejected
}

// Specs returns the ranked-chart recipes of dataset.
func (c *Catalog) Specs(dataset string) []chart.Spec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]chart.Spec(nil), c.specs[dataset]...)
}

// Distributions returns the histogram recipes of dataset.
func (c *Catalog) Distributions(dataset string) []chart.DistributionSpec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]chart.DistributionSpec(nil), c.dists[dataset]...)
}

// IDs lists every chart id of dataset, ranked charts first.
func (c *Catalog) IDs(dataset string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := lo.Map(c.specs[dataset], func(s chart.Spec, _ int) string { return s.ID })
	return append(ids, lo.Map(c.dists[dataset], func(d chart.DistributionSpec, _ int) string { return d.ID })...)
}

// Spec looks up one ranked-chart recipe.
func (c *Catalog) Spec(dataset, id string) (chart.Spec, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Find(c.specs[dataset], func(s chart.Spec) bool { return s.ID == id })
}

// Distribution looks up one histogram recipe.
func (c *Catalog) Distribution(dataset, id string) (chart.DistributionSpec, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Find(c.dists[dataset], func(d chart.DistributionSpec) bool { return d.ID == id })
}
