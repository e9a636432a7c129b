package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/intentgraph"
	"github.com/aretw0/intentgraph/internal/config"
	"github.com/aretw0/intentgraph/internal/loader"
	"github.com/aretw0/intentgraph/internal/logging"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "intentgraph",
	Short: "Intentgraph extracts and analyzes the navigation graph of a dialog intent corpus",
	Long: `Intentgraph reads a chatbot intent export (JSON array, wrapped document or
JSONL), extracts every transition mechanism (redirects, fallbacks, buttons,
slot fillers), builds the conversation graph and reports on its structure,
validity, risk and quality.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.LogLevel = lvl
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = logging.New(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "intentgraph.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// newEngine builds the analysis engine from the loaded configuration.
func newEngine() *intentgraph.Engine {
	return intentgraph.New(
		intentgraph.WithLogger(logger),
		intentgraph.WithLoaderOptions(loader.Options{
			MaxRecords:    cfg.Loader.MaxRecords,
			FilterExpired: cfg.Loader.FilterExpired,
		}),
		intentgraph.WithEntryRecordTypes(cfg.Analysis.EntryRecordTypes...),
		intentgraph.WithSubtypeRules(cfg.Analysis.SubtypeRules),
		intentgraph.WithRiskWeights(cfg.Risk),
	)
}
