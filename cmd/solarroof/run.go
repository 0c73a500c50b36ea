package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/StefanVerhoef/solarroof/internal/server"
	"github.com/StefanVerhoef/solarroof/pkg/analysis"
	"github.com/StefanVerhoef/solarroof/pkg/building"
	"github.com/StefanVerhoef/solarroof/pkg/config"
	"github.com/StefanVerhoef/solarroof/pkg/validation"
)

type analyzeOptions struct {
	buildingsPath string
	energyPath    string
	configPath    string
	jsonOutput    bool
}

// loadInputs reads the footprints, the optional energy file, and the
// configuration. Records that fail to parse become report errors, not
// hard failures.
func loadInputs(opts analyzeOptions) ([]*building.Building, building.EnergyPotentials, config.Config, *validation.Report, error) {
	report := validation.NewReport()

	buildings, skipped, err := building.LoadGeoJSON(opts.buildingsPath)
	if err != nil {
		return nil, nil, config.Config{}, nil, fmt.Errorf("loading buildings: %w", err)
	}
	for _, skip := range skipped {
		report.AddError(validation.Result{
			Level:   validation.LevelRecord,
			Message: skip.Error(),
		})
	}

	energy := building.EnergyPotentials{}
	if opts.energyPath != "" {
		energy, err = building.LoadEnergy(opts.energyPath)
		if err != nil {
			return nil, nil, config.Config{}, nil, fmt.Errorf("loading energy potentials: %w", err)
		}
	}

	var cfg config.Config
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadProject(filepath.Dir(opts.buildingsPath))
	}
	if err != nil {
		return nil, nil, config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}

	return buildings, energy, cfg, report, nil
}

func runAnalysis(opts analyzeOptions) (*analysis.Snapshot, *validation.Report, error) {
	buildings, energy, cfg, loadReport, err := loadInputs(opts)
	if err != nil {
		return nil, nil, err
	}

	snap, report, err := analysis.Run(buildings, energy, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("running analysis: %w", err)
	}
	loadReport.Merge(report)
	return snap, loadReport, nil
}

func runAnalyze(opts analyzeOptions) error {
	snap, report, err := runAnalysis(opts)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		output := map[string]any{
			"snapshot":   snap,
			"stats":      snap.Stats(),
			"validation": report,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	printValidationReport(report)
	printRanking(snap, len(snap.Records))
	fmt.Println()
	printStats(snap.Stats())
	return nil
}

func runRank(opts analyzeOptions, topN int, target float64, useTarget bool) error {
	snap, report, err := runAnalysis(opts)
	if err != nil {
		return err
	}
	if len(report.Errors) > 0 {
		printValidationReport(report)
	}

	printRanking(snap, topN)

	if useTarget {
		fmt.Println()
		if d, ok := snap.ClosestToScore(target); ok {
			fmt.Printf("Closest to %.1f: %s (score %.1f, rank %d)\n",
				target, d.BuildingID, d.Score, d.Rank)
		} else {
			fmt.Println("No buildings analyzed; no closest match.")
		}
	}
	return nil
}

func runValidate(opts analyzeOptions) error {
	buildings, _, _, report, err := loadInputs(opts)
	if err != nil {
		return err
	}

	for _, b := range buildings {
		if err := b.Validate(); err != nil {
			report.AddError(validation.Result{
				Level:      validation.LevelGeometry,
				Message:    err.Error(),
				BuildingID: b.ID,
			})
		}
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runServe(opts analyzeOptions, port int) error {
	snap, report, err := runAnalysis(opts)
	if err != nil {
		return err
	}
	srv := server.New(snap, report, port)
	return srv.Start()
}
