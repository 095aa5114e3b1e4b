// cmd/worker-manager/validate.go
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"matching-workers/internal/common/config"
	"matching-workers/pkg/registry"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check configuration, scoring tables and the activity registry, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), cfg)
		},
	}
}

func runValidate(out io.Writer, cfg *config.Config) error {
	scorer, err := buildScorer(cfg)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	for _, c := range scorer.Categories() {
		criteria, _ := scorer.Criteria(c)
		fmt.Fprintf(out, "%-13s %d criteria, total weight %.4f\n", c, len(criteria.Criteria), criteria.TotalWeight())
	}

	reg, err := registry.LoadRegistry(cfg.App.RegistryPath)
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	for taskType := range cfg.Workers {
		if _, ok := reg.Find(taskType); !ok {
			return fmt.Errorf("registry: configured worker %q is not registered", taskType)
		}
	}
	fmt.Fprintf(out, "registry      %d activities\n", len(reg.Activities))
	fmt.Fprintln(out, "configuration OK")
	return nil
}
