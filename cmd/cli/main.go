package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"cricdash/internal/config"
	"cricdash/internal/container"
	"cricdash/internal/engine"
	"cricdash/internal/errors"
	"cricdash/internal/logging"
	"cricdash/internal/profiling"
	"cricdash/internal/selection"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "cricdash-cli",
		Short:        "Print T20 World Cup dashboard charts in the terminal",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newDatasetsCmd(),
		newStagesCmd(),
		newChartsCmd(),
		newProfileCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and every dataset. The CLI only logs
// warnings unless LOG_LEVEL asks for more.
func bootstrap(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = logging.LogLevelWarn
	}
	c, err := container.New(cfg, logging.NewLogger(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the loaded datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			printDatasets(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func newStagesCmd() *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the tournament stages of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			tbl, err := c.Registry.Get(dataset)
			if err != nil {
				return err
			}
			stages, err := selection.Stages(tbl)
			if err != nil {
				return err
			}
			for _, s := range stages {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", config.MatchSummary, "Dataset name")
	return cmd
}

func newChartsCmd() *cobra.Command {
	var dataset, stage string

	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Evaluate and print every chart of a dataset view",
		Long: `Evaluate every chart of a dataset, optionally restricted to one
tournament stage. Unavailable charts are printed with their reason.

Example: cricdash-cli charts --dataset "Match Summary" --stage Final`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			sel, err := selection.NewSelection(c.Registry, dataset, stage)
			if err != nil {
				return err
			}
			outcomes, err := c.Evaluator.View(cmd.Context(), sel.Table(), c.Catalog.Specs(dataset), c.Catalog.Distributions(dataset))
			if err != nil {
				return err
			}
			printOutcomes(cmd.OutOrStdout(), outcomes)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", config.MatchSummary, "Dataset name")
	cmd.Flags().StringVar(&stage, "stage", "", "Tournament stage (empty for all)")
	return cmd
}

func newProfileCmd() *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Summarize every column of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			tbl, err := c.Registry.Get(dataset)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), profiling.Profile(tbl))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", config.MatchSummary, "Dataset name")
	return cmd
}

func newExportCmd() *cobra.Command {
	var dataset, stage, chartID, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one chart to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if chartID == "" {
				return errors.InvalidInput("--chart is required")
			}
			if out == "" {
				out = chartID + ".xlsx"
			}
			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			if err := runExport(c, dataset, stage, chartID, out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", config.MatchSummary, "Dataset name")
	cmd.Flags().StringVar(&stage, "stage", "", "Tournament stage (empty for all)")
	cmd.Flags().StringVar(&chartID, "chart", "", "Chart id, as listed by the charts command")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default <chart>.xlsx)")
	return cmd
}

// runExport renders the chart, then writes it to out. Nothing is created
// when rendering fails.
func runExport(c *container.Container, dataset, stage, chartID, out string) error {
	buf, err := renderExport(c, dataset, stage, chartID)
	if err != nil {
		return err
	}
	return writeExport(out, buf)
}

// renderExport evaluates one chart of the selected view into an XLSX
// workbook held in memory.
func renderExport(c *container.Container, dataset, stage, chartID string) (*bytes.Buffer, error) {
	sel, err := selection.NewSelection(c.Registry, dataset, stage)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if spec, ok := c.Catalog.Spec(dataset, chartID); ok {
		res, err := engine.Evaluate(sel.Table(), spec)
		if err != nil {
			return nil, err
		}
		if err := c.Exporter.WriteRanked(&buf, res); err != nil {
			return nil, err
		}
	} else if dist, ok := c.Catalog.Distribution(dataset, chartID); ok {
		hist, err := engine.Distribute(sel.Table(), dist)
		if err != nil {
			return nil, err
		}
		if err := c.Exporter.WriteHistogram(&buf, hist); err != nil {
			return nil, err
		}
	} else {
		return nil, errors.NotFound(fmt.Sprintf("chart %q of dataset %q", chartID, dataset))
	}
	return &buf, nil
}

// writeExport creates path only once the workbook is fully rendered.
func writeExport(path string, buf *bytes.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write output file")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to close output file")
	}
	return nil
}
