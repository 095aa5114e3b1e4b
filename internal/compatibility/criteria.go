package compatibility

import (
	"fmt"
	"math"

	apperrors "matching-workers/internal/common/errors"
)

// WeightTolerance is the allowed drift of a category's weight sum from 1.0.
const WeightTolerance = 1e-6

// CriterionDefinition is one weighted axis of fit.
type CriterionDefinition struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// CriteriaConfig is the ordered criterion list of one category.
type CriteriaConfig struct {
	Category Category
	Criteria []CriterionDefinition
}

// Empty reports whether the config carries no criteria, which is how an
// unsupported category is signalled.
func (c CriteriaConfig) Empty() bool {
	return len(c.Criteria) == 0
}

// TotalWeight sums the criterion weights.
func (c CriteriaConfig) TotalWeight() float64 {
	var sum float64
	for _, def := range c.Criteria {
		sum += def.Weight
	}
	return sum
}

func (c CriteriaConfig) clone() CriteriaConfig {
	out := CriteriaConfig{Category: c.Category, Criteria: make([]CriterionDefinition, len(c.Criteria))}
	copy(out.Criteria, c.Criteria)
	return out
}

// Registry is the read-only table of criteria per category.
type Registry struct {
	configs map[Category]CriteriaConfig
	order   []Category
}

// NewRegistry validates configs and freezes them. Any violation is a
// CONFIG_INVARIANT_VIOLATION: weights are never renormalized.
func NewRegistry(configs []CriteriaConfig) (*Registry, error) {
	r := &Registry{configs: make(map[Category]CriteriaConfig, len(configs))}

	for _, cfg := range configs {
		if !cfg.Category.Valid() {
			return nil, apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("criteria declared for unknown category %s", cfg.Category))
		}
		if _, dup := r.configs[cfg.Category]; dup {
			return nil, apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("criteria declared twice for %s", cfg.Category))
		}
		if err := validateCriteria(cfg); err != nil {
			return nil, err
		}
		r.configs[cfg.Category] = cfg.clone()
		r.order = append(r.order, cfg.Category)
	}

	return r, nil
}

func validateCriteria(cfg CriteriaConfig) error {
	if cfg.Empty() {
		return apperrors.NewConfigInvariantViolationError(
			fmt.Sprintf("%s has no criteria", cfg.Category))
	}

	seen := make(map[string]struct{}, len(cfg.Criteria))
	for _, def := range cfg.Criteria {
		if def.Key == "" {
			return apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("%s has a criterion without key", cfg.Category))
		}
		if _, dup := seen[def.Key]; dup {
			return apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("%s declares criterion %q twice", cfg.Category, def.Key))
		}
		seen[def.Key] = struct{}{}

		if math.IsNaN(def.Weight) || def.Weight <= 0 || def.Weight > 1 {
			return apperrors.NewConfigInvariantViolationError(
				fmt.Sprintf("%s criterion %q has weight %v outside (0,1]", cfg.Category, def.Key, def.Weight))
		}
	}

	if sum := cfg.TotalWeight(); math.Abs(sum-1.0) > WeightTolerance {
		return apperrors.NewConfigInvariantViolationError(
			fmt.Sprintf("%s weights sum to %.6f, must sum to 1.0", cfg.Category, sum))
	}

	return nil
}

// GetCriteria returns a copy of the category's criteria. ok is false, and
// the config empty, when the category is not supported.
func (r *Registry) GetCriteria(c Category) (cfg CriteriaConfig, ok bool) {
	stored, ok := r.configs[c]
	if !ok {
		return CriteriaConfig{Category: c}, false
	}
	return stored.clone(), true
}

// Categories lists the registered categories in declaration order.
func (r *Registry) Categories() []Category {
	out := make([]Category, len(r.order))
	copy(out, r.order)
	return out
}
