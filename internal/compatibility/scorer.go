package compatibility

import (
	"fmt"
	"math"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/models"
)

// roundingEpsilon absorbs float error so that an exact .5 weighted sum
// rounds up.
const roundingEpsilon = 1e-9

// Config is everything a Scorer needs. It is consumed by NewScorer and not
// retained: later mutation by the caller has no effect.
type Config struct {
	Criteria   []CriteriaConfig
	Evaluators map[Category]EvaluatorSet
	Scale      []ScoreScaleEntry
	Insights   InsightCatalog

	StrengthThreshold      int
	WeaknessThreshold      int
	DefaultStrength        string
	DefaultWeakness        string
	ClosingRecommendations []string

	// FallbackCategory scores requests for an unsupported category.
	FallbackCategory Category
}

// SubScore is one evaluated criterion.
type SubScore struct {
	Key   string
	Label string
	Value int
}

// Result is the outcome of one evaluation. It is built fresh per call and
// shares no memory with the Scorer.
type Result struct {
	// Requested is the category asked for; Category is the one whose
	// criteria were used. They differ only when Fallback is set.
	Requested Category
	Category  Category
	Fallback  bool

	OverallScore    int
	SubScores       []SubScore
	ScaleEntry      ScoreScaleEntry
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
}

// Report flattens the result for serialization.
func (r Result) Report() models.CompatibilityReport {
	subs := make([]models.SubScoreReport, len(r.SubScores))
	for i, s := range r.SubScores {
		subs[i] = models.SubScoreReport{Key: s.Key, Label: s.Label, Value: s.Value}
	}

	return models.CompatibilityReport{
		OverallScore:    r.OverallScore,
		Category:        r.Category.String(),
		Fallback:        r.Fallback,
		SubScores:       subs,
		Level:           r.ScaleEntry.Level,
		Recommendation:  string(r.ScaleEntry.Recommendation),
		Action:          r.ScaleEntry.Action,
		Description:     r.ScaleEntry.Description,
		Strengths:       append([]string{}, r.Strengths...),
		Weaknesses:      append([]string{}, r.Weaknesses...),
		Recommendations: append([]string{}, r.Recommendations...),
	}
}

// Scorer computes compatibility results. It is immutable and safe for
// concurrent use.
type Scorer struct {
	registry   *Registry
	evaluators map[Category]EvaluatorSet
	scale      *ScoreScale
	insights   *InsightGenerator
	fallback   Category
}

// NewScorer validates cfg and builds a Scorer. All errors are
// CONFIG_INVARIANT_VIOLATION.
func NewScorer(cfg Config) (*Scorer, error) {
	registry, err := NewRegistry(cfg.Criteria)
	if err != nil {
		return nil, err
	}

	scale, err := NewScoreScale(cfg.Scale)
	if err != nil {
		return nil, err
	}

	insights, err := NewInsightGenerator(cfg.StrengthThreshold, cfg.WeaknessThreshold,
		cfg.Insights, cfg.DefaultStrength, cfg.DefaultWeakness, cfg.ClosingRecommendations)
	if err != nil {
		return nil, err
	}

	if _, ok := registry.GetCriteria(cfg.FallbackCategory); !ok {
		return nil, apperrors.NewConfigInvariantViolationError(
			fmt.Sprintf("fallback category %s has no criteria", cfg.FallbackCategory))
	}

	evaluators := make(map[Category]EvaluatorSet, len(cfg.Evaluators))
	for _, c := range registry.Categories() {
		set := cfg.Evaluators[c]
		criteria, _ := registry.GetCriteria(c)
		for _, def := range criteria.Criteria {
			if set[def.Key] == nil {
				return nil, apperrors.NewConfigInvariantViolationError(
					fmt.Sprintf("%s criterion %q has no evaluator", c, def.Key))
			}
			if _, ok := cfg.Insights[c][def.Key]; !ok {
				return nil, apperrors.NewConfigInvariantViolationError(
					fmt.Sprintf("%s criterion %q has no insight phrases", c, def.Key))
			}
		}
		evaluators[c] = set.clone()
	}

	return &Scorer{
		registry:   registry,
		evaluators: evaluators,
		scale:      scale,
		insights:   insights,
		fallback:   cfg.FallbackCategory,
	}, nil
}

// Score evaluates profile against offer under category. Nil records are
// treated as empty. An unsupported category is scored with the fallback
// category's criteria and flagged on the result.
func (s *Scorer) Score(category Category, profile *models.Profile, offer *models.Offer) Result {
	if profile == nil {
		profile = &models.Profile{}
	}
	if offer == nil {
		offer = &models.Offer{}
	}

	criteria, ok := s.registry.GetCriteria(category)
	used := category
	if !ok {
		used = s.fallback
		criteria, _ = s.registry.GetCriteria(used)
	}

	evaluators := s.evaluators[used]
	subScores := make([]SubScore, 0, len(criteria.Criteria))
	var weighted float64
	for _, def := range criteria.Criteria {
		value := toSubScore(evaluators[def.Key](profile, offer))
		subScores = append(subScores, SubScore{Key: def.Key, Label: def.Label, Value: value})
		weighted += float64(value) * def.Weight
	}

	overall := roundOverall(weighted)
	insights := s.insights.Derive(used, subScores)

	return Result{
		Requested:       category,
		Category:        used,
		Fallback:        !ok,
		OverallScore:    overall,
		SubScores:       subScores,
		ScaleEntry:      s.scale.Resolve(float64(overall)),
		Strengths:       insights.Strengths,
		Weaknesses:      insights.Weaknesses,
		Recommendations: insights.Recommendations,
	}
}

// ScoreExternal maps a presentation-layer category name and scores. An
// unknown name scores as CategoryJob and sets Fallback.
func (s *Scorer) ScoreExternal(name string, profile *models.Profile, offer *models.Offer) Result {
	category, known := LookupExternalCategory(name)
	if !known {
		category = MapExternalCategory(name)
	}
	result := s.Score(category, profile, offer)
	if !known {
		result.Fallback = true
	}
	return result
}

// Criteria exposes the registry lookup.
func (s *Scorer) Criteria(category Category) (CriteriaConfig, bool) {
	return s.registry.GetCriteria(category)
}

// Categories lists the supported categories.
func (s *Scorer) Categories() []Category {
	return s.registry.Categories()
}

// Scale returns the score scale.
func (s *Scorer) Scale() *ScoreScale {
	return s.scale
}

func roundOverall(weighted float64) int {
	if math.IsNaN(weighted) {
		return int(NeutralScore)
	}
	return int(clamp(math.Round(weighted+roundingEpsilon), 0, 100))
}
