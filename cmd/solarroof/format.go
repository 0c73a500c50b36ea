package main

import (
	"fmt"

	"github.com/StefanVerhoef/solarroof/pkg/analysis"
	"github.com/StefanVerhoef/solarroof/pkg/rank"
	"github.com/StefanVerhoef/solarroof/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.BuildingID != "" {
				fmt.Printf("    -> building %s\n", e.BuildingID)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.BuildingID != "" {
				fmt.Printf("    -> building %s\n", w.BuildingID)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
	fmt.Println()
}

func printRanking(snap *analysis.Snapshot, n int) {
	details := snap.Top(n)
	if len(details) == 0 {
		fmt.Println("No buildings analyzed.")
		return
	}

	fmt.Printf("%-5s %-20s %8s %-12s %10s %10s %8s %10s\n",
		"Rank", "Building", "Score", "Category", "Area m2", "kWh/yr", "Shading", "Payback")
	fmt.Printf("%-5s %-20s %8s %-12s %10s %10s %8s %10s\n",
		"-----", "--------------------", "--------", "------------",
		"----------", "----------", "--------", "----------")

	for _, d := range details {
		fmt.Printf("%-5d %-20s %8.1f %-12s %10.0f %10.0f %8.2f %10s\n",
			d.Rank, d.BuildingID, d.Score, d.Category,
			d.RoofAreaM2, d.EnergyPotential, d.ShadingFactor,
			formatPayback(d.PaybackYears))
	}
}

func printStats(st analysis.Stats) {
	fmt.Println("Score Distribution")
	fmt.Println("------------------")
	fmt.Printf("  Buildings:  %d\n", st.Count)
	fmt.Printf("  Mean:       %.1f\n", st.MeanScore)
	fmt.Printf("  Median:     %.1f\n", st.Median)
	fmt.Printf("  Std dev:    %.1f\n", st.StdDev)
	fmt.Printf("  Range:      %.1f - %.1f\n", st.MinScore, st.MaxScore)

	for _, c := range []rank.Category{
		rank.Excellent, rank.Good, rank.Moderate, rank.Poor, rank.Unsuitable,
	} {
		if n := st.Categories[c]; n > 0 {
			fmt.Printf("  %-11s %d\n", string(c)+":", n)
		}
	}
}

func formatPayback(years float64) string {
	if years > 1000 {
		return "never"
	}
	return fmt.Sprintf("%.1f yr", years)
}
