package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrhapile/cf-diagnoser/internal/config"
	"github.com/mrhapile/cf-diagnoser/internal/logging"
	"github.com/mrhapile/cf-diagnoser/pkg/rules"
	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

var (
	// Global flags
	verbose    bool
	configPath string
	kbPath     string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "diagnoser",
	Short: "Certainty-factor diagnostic expert system",
	Long: `diagnoser scores diagnoses from reported symptoms with a forward-chaining
rule engine and MYCIN certainty factors.

The knowledge base is a JSON or YAML file of symptoms (code, mb, md) and rules
(id, if, then, cf). When --kb is not given, rules_combined.json and rules.json
are searched next to the executable and in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if kbPath != "" {
			cfg.KnowledgeBase.Path = kbPath
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "diagnoser.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&kbPath, "kb", "", "Path to the knowledge base file")

	rootCmd.AddCommand(inferCmd, serveCmd, validateCmd, symptomsCmd)
}

// loadKnowledgeBase resolves and loads the configured knowledge base.
func loadKnowledgeBase() (*types.KnowledgeBase, string, error) {
	kb, source, err := rules.Load(cfg.KnowledgeBase.Path)
	if err != nil {
		return nil, source, err
	}
	logger.Info("knowledge base loaded",
		zap.String("path", source),
		zap.Int("symptoms", len(kb.Symptoms)),
		zap.Int("rules", len(kb.Rules)))
	return kb, source, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
