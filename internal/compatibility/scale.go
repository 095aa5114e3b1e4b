package compatibility

import (
	"fmt"
	"math"
	"sort"

	apperrors "matching-workers/internal/common/errors"
)

// Recommendation is the qualitative tier an overall score maps to.
type Recommendation string

const (
	RecommendationStrong    Recommendation = "STRONGLY_RECOMMEND"
	RecommendationRecommend Recommendation = "RECOMMEND"
	RecommendationConsider  Recommendation = "CONSIDER"
	RecommendationNot       Recommendation = "NOT_RECOMMEND"
)

// ParseRecommendation accepts the four enum spellings.
func ParseRecommendation(s string) (Recommendation, error) {
	switch r := Recommendation(s); r {
	case RecommendationStrong, RecommendationRecommend, RecommendationConsider, RecommendationNot:
		return r, nil
	default:
		return "", fmt.Errorf("unknown recommendation %q", s)
	}
}

// ScoreScaleEntry is one step of the score scale.
type ScoreScaleEntry struct {
	MinThreshold   int            `json:"minThreshold"`
	Level          string         `json:"level"`
	Recommendation Recommendation `json:"recommendation"`
	Action         string         `json:"action"`
	Description    string         `json:"description"`
}

// ScoreScale is a step function from [0,100] to entries, held sorted by
// descending threshold.
type ScoreScale struct {
	entries []ScoreScaleEntry
}

// NewScoreScale validates and sorts entries. Thresholds must be distinct,
// inside [0,100], and one of them must be 0 so that Resolve is total.
func NewScoreScale(entries []ScoreScaleEntry) (*ScoreScale, error) {
	if len(entries) == 0 {
		return nil, apperrors.NewConfigInvariantViolationError("score scale is empty")
	}

	seen := make(map[int]struct{}, len(entries))
	hasZero := false
	for _, e := range entries {
		if e.MinThreshold < 0 || e.MinThreshold > 100 {
			return nil, apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("score scale threshold %d outside [0,100]", e.MinThreshold))
		}
		if _, dup := seen[e.MinThreshold]; dup {
			return nil, apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("score scale threshold %d declared twice", e.MinThreshold))
		}
		seen[e.MinThreshold] = struct{}{}
		if _, err := ParseRecommendation(string(e.Recommendation)); err != nil {
			return nil, apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("score scale level %q: %v", e.Level, err))
		}
		if e.MinThreshold == 0 {
			hasZero = true
		}
	}
	if !hasZero {
		return nil, apperrors.NewConfigInvariantViolationError("score scale has no entry with threshold 0")
	}

	sorted := make([]ScoreScaleEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinThreshold > sorted[j].MinThreshold
	})

	return &ScoreScale{entries: sorted}, nil
}

// Resolve returns the first entry, by descending threshold, whose threshold
// is at or below score. Scores outside [0,100] are clamped first; NaN is
// treated as 0.
func (s *ScoreScale) Resolve(score float64) ScoreScaleEntry {
	switch {
	case math.IsNaN(score) || score < 0:
		score = 0
	case score > 100:
		score = 100
	}

	for _, e := range s.entries {
		if float64(e.MinThreshold) <= score {
			return e
		}
	}
	// unreachable: the 0 entry always matches
	return s.entries[len(s.entries)-1]
}

// Entries returns the entries sorted by descending threshold.
func (s *ScoreScale) Entries() []ScoreScaleEntry {
	out := make([]ScoreScaleEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
