package container

import (
	"context"
	"fmt"

	"cricdash/adapters/excel"
	"cricdash/internal/catalog"
	"cricdash/internal/config"
	"cricdash/internal/engine"
	"cricdash/internal/errors"
	"cricdash/internal/logging"
	"cricdash/internal/registry"
	"cricdash/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *logging.Logger

	// Data
	Source   ports.TableSource
	Registry *registry.Registry
	Catalog  *catalog.Catalog

	// Evaluation
	Evaluator *engine.Evaluator
	Exporter  ports.ChartExporter

	// Rejections lists the built-in charts that did not validate against
	// their loaded dataset.
	Rejections []catalog.Rejection
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogger(cfg.LogLevel)
	}

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Source:    excel.NewSource(logger),
		Registry:  registry.New(logger),
		Catalog:   catalog.New(logger),
		Evaluator: engine.NewEvaluator(cfg.Engine.Workers, logger),
		Exporter:  excel.NewWriter(),
	}, nil
}

// Init loads every configured dataset and registers the built-in charts
// against them. A dataset that fails to load fails Init; a chart that does
// not validate is only recorded in Rejections.
func (c *Container) Init(ctx context.Context) error {
	if err := c.Registry.Init(ctx, c.Source, c.Config.Data.Datasets); err != nil {
		return errors.Wrap(err, "failed to load datasets")
	}

	c.Rejections = c.Catalog.RegisterAll(c.Registry.All())
	c.Logger.With("Container").Info("container initialized: %d datasets, %d charts rejected",
		len(c.Registry.Names()), len(c.Rejections))
	return nil
}
