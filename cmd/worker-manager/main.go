// cmd/worker-manager/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"matching-workers/internal/common/config"
	"matching-workers/internal/compatibility"
)

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "worker-manager",
		Short: "Zeebe job workers for offer/applicant compatibility scoring",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveCmd().RunE(cmd, nil)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: configs/config.yaml)")

	root.AddCommand(serveCmd(), validateCmd(), scoreCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to Zeebe and run the enabled workers",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, nil
}

// buildScorer applies the scoring overrides of cfg to the built-in tables.
func buildScorer(cfg *config.Config) (*compatibility.Scorer, error) {
	scoringCfg, err := compatibility.FromSettings(compatibility.DefaultConfig(), cfg.Scoring)
	if err != nil {
		return nil, err
	}
	return compatibility.NewScorer(scoringCfg)
}
