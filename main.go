package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cricdash/internal/config"
	"cricdash/internal/container"
	"cricdash/internal/logging"
	"cricdash/ui"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.NewLogger(appConfig.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	if err := appContainer.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	app, err := ui.NewApp(ui.Config{
		Port:            appConfig.Server.Port,
		DefaultPageSize: appConfig.Engine.DefaultPageSize,
	}, ui.Deps{
		Registry:  appContainer.Registry,
		Catalog:   appContainer.Catalog,
		Evaluator: appContainer.Evaluator,
		Exporter:  appContainer.Exporter,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
