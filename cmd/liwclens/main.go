package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"liwclens/app"
	"liwclens/internal"
	"liwclens/internal/config"
)

func main() {
	// Optional .env for local runs; missing file is fine.
	_ = godotenv.Load()

	var inputFile string
	var outputDir string

	rootCmd := &cobra.Command{
		Use:   "liwclens",
		Short: "LIWC empathy score analysis pipeline",
		Long: `liwclens derives a weighted empathy score from LIWC category output,
runs group comparisons across attribute types, and renders violin plot
figures with plain-text reports.

Example: liwclens all --input liwc_results.csv --output output`,
	}

	rootCmd.PersistentFlags().StringVar(&inputFile, "input", "", "Input LIWC results file (CSV or XLSX); overrides LIWC_INPUT_FILE")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "Output directory; overrides LIWC_OUTPUT_DIR")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if inputFile != "" {
			cfg.InputFile = inputFile
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if err := cfg.EnsureOutputDir(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	rootCmd.AddCommand(
		newScoreCmd(loadConfig),
		newTablesCmd(loadConfig),
		newAlignedCmd(loadConfig),
		newFacetsCmd(loadConfig),
		newAllCmd(loadConfig),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type configLoader func() (*config.Config, error)

func newScoreCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Derive the new empathy score and write the comparison report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := internal.DefaultLogger
			manifest := app.NewManifest()

			result, err := app.NewScoreService(cfg, log).Run()
			if err != nil {
				return err
			}
			manifest.Record("score", result.Artifacts...)

			artifacts, err := app.NewCompareService(cfg, log).Run(result)
			if err != nil {
				return err
			}
			manifest.Record("compare", artifacts...)

			return manifest.Write(cfg.OutputDir)
		},
	}
}

func newTablesCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Run group ANOVAs and write the summary CSV tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := internal.DefaultLogger
			manifest := app.NewManifest()

			artifacts, err := app.NewAnovaService(cfg, log).Run()
			if err != nil {
				return err
			}
			manifest.Record("tables", artifacts...)

			return manifest.Write(cfg.OutputDir)
		},
	}
}

func newAlignedCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "aligned",
		Short: "Render aligned violin figures with ANOVA annotations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := internal.DefaultLogger
			manifest := app.NewManifest()

			artifacts, err := app.NewAlignedService(cfg, log).Run()
			if err != nil {
				return err
			}
			manifest.Record("aligned", artifacts...)

			return manifest.Write(cfg.OutputDir)
		},
	}
}

func newFacetsCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Render faceted violin figures of the derived score",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := internal.DefaultLogger
			manifest := app.NewManifest()

			artifacts, err := app.NewFacetedService(cfg, log).Run()
			if err != nil {
				return err
			}
			manifest.Record("facets", artifacts...)

			return manifest.Write(cfg.OutputDir)
		},
	}
}

func newAllCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run the complete pipeline: score, tables, aligned, facets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := internal.DefaultLogger
			manifest := app.NewManifest()

			result, err := app.NewScoreService(cfg, log).Run()
			if err != nil {
				return err
			}
			manifest.Record("score", result.Artifacts...)

			artifacts, err := app.NewCompareService(cfg, log).Run(result)
			if err != nil {
				return err
			}
			manifest.Record("compare", artifacts...)

			if artifacts, err = app.NewAnovaService(cfg, log).Run(); err != nil {
				return err
			}
			manifest.Record("tables", artifacts...)

			if artifacts, err = app.NewAlignedService(cfg, log).Run(); err != nil {
				return err
			}
			manifest.Record("aligned", artifacts...)

			if artifacts, err = app.NewFacetedService(cfg, log).Run(); err != nil {
				return err
			}
			manifest.Record("facets", artifacts...)

			if err := manifest.Write(cfg.OutputDir); err != nil {
				return err
			}
			log.Info("pipeline complete, %d artifacts in %s", len(manifest.Artifacts), cfg.OutputDir)
			return nil
		},
	}
}
