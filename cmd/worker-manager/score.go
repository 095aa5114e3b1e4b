// cmd/worker-manager/score.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"matching-workers/internal/compatibility"
	"matching-workers/internal/models"
)

func scoreCmd() *cobra.Command {
	var category, profilePath, offerPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a profile file against an offer file and print the report",
		Long: `Scores one profile against one offer without any workflow engine or
database. Both files hold the same JSON the workers accept as job variables.

Example:
  worker-manager score --category emploi --profile profile.json --offer offer.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			scorer, err := buildScorer(cfg)
			if err != nil {
				return err
			}
			return runScore(cmd.OutOrStdout(), scorer, category, profilePath, offerPath)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "presentation category name (default: the offer's)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "profile JSON file")
	cmd.Flags().StringVar(&offerPath, "offer", "", "offer JSON file")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("offer")
	return cmd
}

func runScore(out io.Writer, scorer *compatibility.Scorer, category, profilePath, offerPath string) error {
	var profile models.Profile
	if err := readJSON(profilePath, &profile); err != nil {
		return err
	}
	var offer models.Offer
	if err := readJSON(offerPath, &offer); err != nil {
		return err
	}
	if category == "" {
		category = offer.Category
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(scorer.ScoreExternal(category, &profile, &offer).Report())
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
