package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/climetrics/scenreport/internal/analysis"
	"github.com/climetrics/scenreport/internal/dataset"
	"github.com/climetrics/scenreport/internal/errors"
	"github.com/climetrics/scenreport/internal/monitoring"
	"github.com/climetrics/scenreport/internal/report"
	"github.com/climetrics/scenreport/internal/store"
)

var (
	datasetFlag string
	outputFlag  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis and write the report artifacts",
	RunE:  runAnalysis,
}

func init() {
	runCmd.Flags().StringVarP(&datasetFlag, "dataset", "d", "",
		"Path to the scenario dataset (.xlsx or .csv), overrides the config")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", "",
		"Output directory for the workbook and figures, overrides the config")
	rootCmd.AddCommand(runCmd)
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if datasetFlag != "" {
		cfg.Dataset.Path = datasetFlag
	}
	if outputFlag != "" {
		cfg.OutputDir = outputFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := monitoring.NewLogger(monitoring.ParseLevel(cfg.LogLevel))

	loadStart := time.Now()
	frame, err := dataset.Load(cfg.Dataset.Path, cfg.Dataset.Meta)
	if err != nil {
		return err
	}
	logger.DatasetLogger(cfg.Dataset.Path, frame.Len(), len(frame.Scenarios()), frame.MetaOnlyCount(), time.Since(loadStart))

	filtered := frame.FilterCategories(cfg.Filter.Categories)
	if cfg.Filter.VettedOnly {
		filtered = filtered.FilterVetted()
	}
	if cfg.Filter.Region != "" {
		filtered = filtered.FilterRegion(cfg.Filter.Region)
	}

	analyzer := analysis.NewAnalyzer(
		analysis.NewScreener(cfg.Screen.MaxPrice, cfg.Screen.MinYears, cfg.Screen.UnitPrefix),
		analysis.NewDiscounter(cfg.Discount.Rate, cfg.Discount.BaseYear, cfg.Discount.EndYear),
		analysis.NewPairer(cfg.Pairing.Map),
		cfg.Filter.Variables,
		cfg.Filter.PriceVariable,
		logger,
	)

	analysisStart := time.Now()
	result, err := analyzer.Run(filtered)
	if err != nil {
		return err
	}
	logger.AnalysisLogger(len(filtered.Scenarios()), len(result.Exclusions), len(result.Pairs), len(result.Dropped), time.Since(analysisStart))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return errors.NewIOError("failed to create output directory", err)
	}

	artifacts := []struct {
		name  string
		path  string
		write func(path string) error
	}{
		{"workbook", filepath.Join(cfg.OutputDir, "scenreport.xlsx"), func(p string) error {
			return report.WriteWorkbook(p, filtered, result)
		}},
		{"trajectory_fan", filepath.Join(cfg.OutputDir, "trajectory_fan.png"), func(p string) error {
			return report.WriteTrajectoryFan(p, result.Bands)
		}},
		{"pair_scatter", filepath.Join(cfg.OutputDir, "pair_scatter.png"), func(p string) error {
			return report.WritePairScatter(p, result.Pairs)
		}},
		{"json", filepath.Join(cfg.OutputDir, "result.json"), func(p string) error {
			return report.WriteJSON(p, cfg.Dataset.Path, result)
		}},
	}
	for _, a := range artifacts {
		exportStart := time.Now()
		if err := a.write(a.path); err != nil {
			return err
		}
		logger.ExportLogger(a.name, a.path, time.Since(exportStart))
	}

	if cfg.History.Path != "" {
		if err := saveRunHistory(cfg.History.Path, cfg.Dataset.Path, filtered, result); err != nil {
			// History is a convenience log; a failed write should not fail
			// a run whose artifacts are already on disk.
			logger.SystemLogger("history_write_failed", err.Error())
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d artifacts to %s (%d scenarios, %d pairs)\n",
		len(artifacts), cfg.OutputDir, len(filtered.Scenarios()), len(result.Pairs))
	return nil
}

func saveRunHistory(path, datasetPath string, frame *dataset.Frame, result *analysis.Result) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer errors.SafeClose(s, "run history")

	run := store.NewRun(datasetPath, len(frame.Scenarios()), len(result.Exclusions), len(result.Pairs), len(result.Dropped))
	categories := make([]store.RunCategory, 0, len(result.Ratios))
	for _, r := range result.Ratios {
		categories = append(categories, store.RunCategory{
			RunID:    run.ID,
			Category: r.Category,
			N:        r.N,
			Median:   r.Median,
			Q25:      r.Q25,
			Q75:      r.Q75,
		})
	}
	return s.SaveRun(run, categories)
}
