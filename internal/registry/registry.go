package registry

import (
	"context"
	"fmt"
	"sync"

	"cricdash/domain/table"
	"cricdash/internal/config"
	"cricdash/internal/errors"
	"cricdash/internal/logging"
	"cricdash/ports"

	"golang.org/x/sync/errgroup"
)

// Registry maps dataset names to their loaded tables. It is filled once by
// Init and read-only afterwards.
type Registry struct {
	mu     sync.RWMutex
	ready  bool
	names  []string
	tables map[string]*table.Table
	logger *logging.Logger
}

// New creates an empty registry.
func New(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &Registry{
		tables: make(map[string]*table.Table),
		logger: logger.With("Registry"),
	}
}

// Init loads every configured dataset through source. Files are read in
// parallel; the first failure aborts the whole load and leaves the registry
// empty. Init may succeed only once.
func (r *Registry) Init(ctx context.Context, source ports.TableSource, files []config.DatasetFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ready {
		return errors.InvalidInput("registry already initialized")
	}

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f.Name] {
			return errors.InvalidInput(fmt.Sprintf("dataset %q configured twice", f.Name))
		}
		seen[f.Name] = true
	}

	loaded := make([]*table.Table, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			tbl, err := source.Load(gctx, f.Name, f.Path)
			if err != nil {
				return errors.Wrapf(err, "dataset %q", f.Name)
			}
			loaded[i] = tbl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, f := range files {
		r.names = append(r.names, f.Name)
		r.tables[f.Name] = loaded[i]
	}
	r.ready = true
	r.logger.Info("registry ready with %d datasets", len(r.names))
	return nil
}

// Get returns the table registered under name.
func (r *Registry) Get(name string) (*table.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tbl, ok := r.tables[name]
	if !ok {
		return nil, errors.NotFound("dataset " + name)
	}
	return tbl, nil
}

// All returns a copy of the name to table mapping.
func (r *Registry) All() map[string]*table.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*table.Table, len(r.tables))
	for name, tbl := range r.tables {
		out[name] = tbl
	}
	return out
}

// Names lists the dataset names in configured order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
