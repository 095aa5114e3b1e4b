package compatibility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "matching-workers/internal/common/errors"
)

func TestDefaultCriteria_WeightsSumToOne(t *testing.T) {
	for _, cfg := range DefaultConfig().Criteria {
		t.Run(cfg.Category.String(), func(t *testing.T) {
			assert.InDelta(t, 1.0, cfg.TotalWeight(), WeightTolerance)
			assert.Len(t, cfg.Criteria, 6)
		})
	}
}

func TestNewRegistry_Validation(t *testing.T) {
	tests := []struct {
		name     string
		criteria []CriterionDefinition
		wantErr  bool
	}{
		{
			name: "valid",
			criteria: []CriterionDefinition{
				{Key: "a", Weight: 0.6},
				{Key: "b", Weight: 0.4},
			},
		},
		{
			name: "within tolerance",
			criteria: []CriterionDefinition{
				{Key: "a", Weight: 0.5},
				{Key: "b", Weight: 0.5 + 1e-7},
			},
		},
		{
			name: "sum below one",
			criteria: []CriterionDefinition{
				{Key: "a", Weight: 0.5},
				{Key: "b", Weight: 0.4},
			},
			wantErr: true,
		},
		{
			name: "sum above one",
			criteria: []CriterionDefinition{
				{Key: "a", Weight: 0.7},
				{Key: "b", Weight: 0.4},
			},
			wantErr: true,
		},
		{
			name: "duplicate key",
			criteria: []CriterionDefinition{
				{Key: "a", Weight: 0.5},
				{Key: "a", Weight: 0.5},
			},
			wantErr: true,
		},
		{
			name: "zero weight",
			criteria: []CriterionDefinition{
				{Key: "a", Weight: 1},
				{Key: "b", Weight: 0},
			},
			wantErr: true,
		},
		{
			name: "NaN weight",
			criteria: []CriterionDefinition{
				{Key: "a", Weight: math.NaN()},
			},
			wantErr: true,
		},
		{
			name:     "empty",
			criteria: nil,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry([]CriteriaConfig{{Category: CategoryJob, Criteria: tt.criteria}})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConfigInvariantViolation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewRegistry_RejectsDuplicateAndUnknownCategory(t *testing.T) {
	one := []CriterionDefinition{{Key: "a", Weight: 1}}

	_, err := NewRegistry([]CriteriaConfig{
		{Category: CategoryJob, Criteria: one},
		{Category: CategoryJob, Criteria: one},
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConfigInvariantViolation))

	_, err = NewRegistry([]CriteriaConfig{{Category: Category(42), Criteria: one}})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConfigInvariantViolation))
}

func TestRegistry_GetCriteria(t *testing.T) {
	r, err := NewRegistry(DefaultConfig().Criteria)
	require.NoError(t, err)

	cfg, ok := r.GetCriteria(CategoryConsultation)
	require.True(t, ok)
	assert.Equal(t, KeyExpertiseMatch, cfg.Criteria[0].Key)

	// returned configs are copies
	cfg.Criteria[0].Weight = 0.99
	again, _ := r.GetCriteria(CategoryConsultation)
	assert.Equal(t, 0.30, again.Criteria[0].Weight)

	missing, ok := r.GetCriteria(Category(99))
	assert.False(t, ok)
	assert.True(t, missing.Empty())

	assert.Equal(t, []Category{CategoryJob, CategoryConsultation, CategoryFunding}, r.Categories())
}
