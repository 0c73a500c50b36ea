package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "solarroof",
		Short: "Rooftop solar suitability analysis engine",
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(rankCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func analyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [buildings.geojson]",
		Short: "Run the full suitability pipeline and emit ranked results",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts.buildingsPath = args[0]
			return runAnalyze(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.energyPath, "energy", "e", "", "JSON file mapping building IDs to annual kWh")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "analysis config file (defaults used when absent)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "emit the full snapshot as JSON")
	return cmd
}

func rankCmd() *cobra.Command {
	var opts analyzeOptions
	var topN int
	var target float64

	cmd := &cobra.Command{
		Use:   "rank [buildings.geojson]",
		Short: "Show the highest ranked rooftops",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.buildingsPath = args[0]
			useTarget := cmd.Flags().Changed("target")
			return runRank(opts, topN, target, useTarget)
		},
	}

	cmd.Flags().StringVarP(&opts.energyPath, "energy", "e", "", "JSON file mapping building IDs to annual kWh")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "analysis config file (defaults used when absent)")
	cmd.Flags().IntVarP(&topN, "top", "n", 10, "number of rooftops to show")
	cmd.Flags().Float64VarP(&target, "target", "t", 0, "also show the rooftop scoring closest to this value")
	return cmd
}

func validateCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "validate [buildings.geojson]",
		Short: "Validate building footprints without running the full pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts.buildingsPath = args[0]
			return runValidate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "analysis config file (defaults used when absent)")
	return cmd
}

func serveCmd() *cobra.Command {
	var opts analyzeOptions
	var port int

	cmd := &cobra.Command{
		Use:   "serve [buildings.geojson]",
		Short: "Analyze once and serve the results over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts.buildingsPath = args[0]
			return runServe(opts, port)
		},
	}

	cmd.Flags().StringVarP(&opts.energyPath, "energy", "e", "", "JSON file mapping building IDs to annual kWh")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "analysis config file (defaults used when absent)")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	return cmd
}
