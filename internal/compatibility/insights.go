package compatibility

import (
	"fmt"

	apperrors "matching-workers/internal/common/errors"
)

// Phrases is the insight text attached to one criterion.
type Phrases struct {
	Strength       string
	Weakness       string
	Recommendation string
}

// InsightCatalog holds per-category, per-criterion phrases.
type InsightCatalog map[Category]map[string]Phrases

func (c InsightCatalog) clone() InsightCatalog {
	out := make(InsightCatalog, len(c))
	for cat, phrases := range c {
		inner := make(map[string]Phrases, len(phrases))
		for k, v := range phrases {
			inner[k] = v
		}
		out[cat] = inner
	}
	return out
}

// Insights is the qualitative part of a result.
type Insights struct {
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
}

// InsightGenerator partitions sub-scores into strength and weakness bands.
type InsightGenerator struct {
	strengthThreshold int
	weaknessThreshold int
	catalog           InsightCatalog
	defaultStrength   string
	defaultWeakness   string
	closing           []string
}

// NewInsightGenerator validates thresholds and defaults. Sub-scores at or
// above strength count as strengths, those strictly below weakness count as
// weaknesses.
func NewInsightGenerator(strength, weakness int, catalog InsightCatalog, defaultStrength, defaultWeakness string, closing []string) (*InsightGenerator, error) {
	if weakness < 0 || strength > 100 || weakness > strength {
		return nil, apperrors.NewConfigInvariantViolationError(
			fmt.Sprintf("insight thresholds must satisfy 0 <= weakness (%d) <= strength (%d) <= 100", weakness, strength))
	}
	if defaultStrength == "" || defaultWeakness == "" {
		return nil, apperrors.NewConfigInvariantViolationError("default strength and weakness phrases are required")
	}
	if len(closing) < 2 {
		return nil, apperrors.NewConfigInvariantViolationError("at least two closing recommendations are required")
	}

	return &InsightGenerator{
		strengthThreshold: strength,
		weaknessThreshold: weakness,
		catalog:           catalog.clone(),
		defaultStrength:   defaultStrength,
		defaultWeakness:   defaultWeakness,
		closing:           append([]string(nil), closing...),
	}, nil
}

// Derive turns ordered sub-scores into insights. Output order follows the
// sub-score order. Strengths and weaknesses are never empty and the closing
// recommendations are always last.
func (g *InsightGenerator) Derive(category Category, subScores []SubScore) Insights {
	phrases := g.catalog[category]
	out := Insights{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}

	for _, s := range subScores {
		p, ok := phrases[s.Key]
		if !ok {
			p = Phrases{
				Strength:       s.Label,
				Weakness:       s.Label,
				Recommendation: s.Label,
			}
		}

		switch {
		case s.Value >= g.strengthThreshold:
			out.Strengths = append(out.Strengths, p.Strength)
		case s.Value < g.weaknessThreshold:
			out.Weaknesses = append(out.Weaknesses, p.Weakness)
			out.Recommendations = append(out.Recommendations, p.Recommendation)
		}
	}

	if len(out.Strengths) == 0 {
		out.Strengths = append(out.Strengths, g.defaultStrength)
	}
	if len(out.Weaknesses) == 0 {
		out.Weaknesses = append(out.Weaknesses, g.defaultWeakness)
	}
	out.Recommendations = append(out.Recommendations, g.closing...)

	return out
}

// Thresholds returns the strength and weakness thresholds.
func (g *InsightGenerator) Thresholds() (strength, weakness int) {
	return g.strengthThreshold, g.weaknessThreshold
}
