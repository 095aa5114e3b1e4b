package compatibility

import (
	"math"
	"strings"

	"matching-workers/internal/models"
)

// NeutralScore is returned by every evaluator when the data it needs is absent.
const NeutralScore = 50.0

// Evaluator scores one axis of fit. It must be pure and must not depend on
// the criterion's weight. The scorer clamps and rounds the returned value.
type Evaluator func(p *models.Profile, o *models.Offer) float64

// EvaluatorSet maps criterion keys of one category to their evaluators.
type EvaluatorSet map[string]Evaluator

func (s EvaluatorSet) clone() EvaluatorSet {
	out := make(EvaluatorSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// toSubScore clamps an evaluator result into [0,100] and rounds half-up.
func toSubScore(v float64) int {
	if math.IsNaN(v) {
		return int(NeutralScore)
	}
	return int(math.Round(clamp(v, 0, 100)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if n := normalize(v); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// coverage is the share of required items present in have, as a score.
// ok is false when either side is empty.
func coverage(have, required []string) (score float64, ok bool) {
	haveSet := toSet(have)
	reqSet := toSet(required)
	if len(haveSet) == 0 || len(reqSet) == 0 {
		return 0, false
	}

	matched := 0
	for r := range reqSet {
		if _, found := haveSet[r]; found {
			matched++
		}
	}
	return float64(matched) / float64(len(reqSet)) * 100, true
}

// ratioScore is value/target as a percentage, capped at 100. A non-positive
// target is met by anything.
func ratioScore(value, target float64) float64 {
	if target <= 0 {
		return 100
	}
	if value <= 0 {
		return 0
	}
	return math.Min(value/target, 1) * 100
}

func contains(values []string, want string) bool {
	want = normalize(want)
	for _, v := range values {
		if normalize(v) == want {
			return true
		}
	}
	return false
}
