package compatibility

import (
	"fmt"
	"strings"

	"matching-workers/internal/common/config"
	apperrors "matching-workers/internal/common/errors"
)

// FromSettings applies the scoring section of the application config on top
// of base. Criteria overrides may change label, weight and description of
// keys the category already has; they cannot add keys since evaluators are
// code. A non-empty scale replaces base's. The returned Config still has to
// go through NewScorer for validation.
func FromSettings(base Config, settings config.ScoringConfig) (Config, error) {
	cfg := base
	cfg.Criteria = make([]CriteriaConfig, len(base.Criteria))
	for i, c := range base.Criteria {
		cfg.Criteria[i] = c.clone()
	}

	if settings.StrengthThreshold != 0 {
		cfg.StrengthThreshold = settings.StrengthThreshold
	}
	if settings.WeaknessThreshold != 0 {
		cfg.WeaknessThreshold = settings.WeaknessThreshold
	}

	for name, overrides := range settings.Criteria {
		category, err := ParseCategory(name)
		if err != nil {
			return Config{}, apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("scoring.criteria: %v", err))
		}
		idx := indexOfCategory(cfg.Criteria, category)
		if idx < 0 {
			return Config{}, apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("scoring.criteria: %s has no base criteria", category))
		}
		if err := applyCriterionOverrides(&cfg.Criteria[idx], overrides); err != nil {
			return Config{}, err
		}
	}

	if len(settings.Scale) > 0 {
		scale := make([]ScoreScaleEntry, 0, len(settings.Scale))
		for _, e := range settings.Scale {
			rec, err := ParseRecommendation(strings.ToUpper(strings.TrimSpace(e.Recommendation)))
			if err != nil {
				return Config{}, apperrors.NewConfigInvariantViolationError(
					fmt.Sprintf("scoring.scale: %v", err))
			}
			scale = append(scale, ScoreScaleEntry{
				MinThreshold:   e.MinThreshold,
				Level:          e.Level,
				Recommendation: rec,
				Action:         e.Action,
				Description:    e.Description,
			})
		}
		cfg.Scale = scale
	}

	return cfg, nil
}

func indexOfCategory(configs []CriteriaConfig, c Category) int {
	for i, cfg := range configs {
		if cfg.Category == c {
			return i
		}
	}
	return -1
}

func applyCriterionOverrides(target *CriteriaConfig, overrides []config.CriterionConfig) error {
	for _, o := range overrides {
		found := false
		for i := range target.Criteria {
			def := &target.Criteria[i]
			if def.Key != o.Key {
				continue
			}
			found = true
			if o.Label != "" {
				def.Label = o.Label
			}
			if o.Weight != 0 {
				def.Weight = o.Weight
			}
			if o.Description != "" {
				def.Description = o.Description
			}
		}
		if !found {
			return apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("scoring.criteria: %s has no criterion %q", target.Category, o.Key))
		}
	}
	return nil
}
