// internal/workers/matching/resolve-offer-category/handler_test.go
package resolveoffercategory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/compatibility"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	scorer, err := compatibility.NewScorer(compatibility.DefaultConfig())
	require.NoError(t, err)
	return NewHandler(&Config{Timeout: time.Second}, scorer, observability.NewNoop(), logger.NewTestLogger(t))
}

func TestExecute(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name         string
		want         string
		wantFallback bool
		firstKey     string
	}{
		{"emploi", "JOB", false, compatibility.KeySkillMatch},
		{" Consultation ", "CONSULTATION", false, compatibility.KeyExpertiseMatch},
		{"bourse", "FUNDING", false, compatibility.KeyBusinessPlanQuality},
		{"financement", "FUNDING", false, compatibility.KeyBusinessPlanQuality},
		{"stage", "JOB", true, compatibility.KeySkillMatch},
		{"", "JOB", true, compatibility.KeySkillMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := h.Execute(&Input{CategoryName: tt.name})

			assert.Equal(t, tt.want, out.Category)
			assert.Equal(t, tt.wantFallback, out.Fallback)
			require.Len(t, out.Criteria, 6)
			assert.Equal(t, tt.firstKey, out.Criteria[0].Key)

			var total float64
			for _, c := range out.Criteria {
				total += c.Weight
			}
			assert.InDelta(t, 1.0, total, compatibility.WeightTolerance)
		})
	}
}

func TestParseInput(t *testing.T) {
	input, err := ParseInput(`{"categoryName":"bourse"}`)
	require.NoError(t, err)
	assert.Equal(t, "bourse", input.CategoryName)

	_, err = ParseInput(`{}`)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInputValidationFailed))

	_, err = ParseInput(`{"categoryName":`)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeParseError))
}
