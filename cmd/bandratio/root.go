package main

import (
	"fmt"

	"github.com/cwbudde/algo-bandratio/internal/config"
	"github.com/cwbudde/algo-bandratio/measure/bandratio"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what the subcommands share.
type app struct {
	configFile string
	debug      bool

	minMicron    float64
	maxMicron    float64
	featureStart float64

	plotDir  string
	report   string
	database string
	dataDir  string
	object   string

	cfg config.Config
	log *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func newApp() *app {
	return &app{}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bandratio",
		Short: "Water-ice band ratio of reflectance spectra",
		Long: `bandratio integrates the 1.4-1.69 µm absorption band of a reflectance
spectrum against its linear continuum and reports the share of that area
taken by the narrow crystalline-ice feature starting near 1.626 µm.

Settings come from flags, BANDRATIO_* environment variables (a .env file
in the working directory is loaded), a YAML config file and the built-in
defaults, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Missing .env is fine.
			_ = godotenv.Load()
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file")
	pf.BoolVar(&a.debug, "debug", false, "human-readable debug logging")
	pf.Float64Var(&a.minMicron, "min-micron", bandratio.DefaultMinMicron, "lower window bound [µm], inclusive")
	pf.Float64Var(&a.maxMicron, "max-micron", bandratio.DefaultMaxMicron, "upper window bound [µm], exclusive")
	pf.Float64Var(&a.featureStart, "feature-start", bandratio.DefaultFeatureStartMicron, "nominal feature start [µm]")

	cmd.AddCommand(a.computeCmd(), a.runCmd(), a.historyCmd())

	return cmd
}

// setup resolves the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("min-micron") {
		cfg.Window.MinMicron = a.minMicron
	}

	if flags.Changed("max-micron") {
		cfg.Window.MaxMicron = a.maxMicron
	}

	if flags.Changed("feature-start") {
		cfg.FeatureStartMicron = a.featureStart
	}

	if flags.Changed("plot-dir") {
		cfg.PlotDir = a.plotDir
	}

	if flags.Changed("report") {
		cfg.Report = a.report
	}

	if flags.Changed("db") {
		cfg.Database = a.database
	}

	if flags.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg

	if a.log == nil {
		a.log, err = newLogger(a.debug)
		if err != nil {
			return err
		}
	}

	a.log.Debugw("configuration",
		"min_micron", cfg.Window.MinMicron,
		"max_micron", cfg.Window.MaxMicron,
		"feature_start_micron", cfg.FeatureStartMicron,
		"data_dir", cfg.DataDir,
	)

	return nil
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}

	if err != nil {
		return nil, fmt.Errorf("can't initialize zap logger: %w", err)
	}

	return logger.Sugar(), nil
}

func (a *app) addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.plotDir, "plot-dir", "", "write <object>.png plots to this directory")
	cmd.Flags().StringVar(&a.report, "report", "", "write a report (.yaml, .yml or .parquet)")
	cmd.Flags().StringVar(&a.database, "db", "", "append results to this SQLite database")
}
