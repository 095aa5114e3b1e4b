package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{"parse error shares input code", NewParseError(errors.New("eof")), "INVALID_INPUT", 0},
		{"validation", NewInputValidationFailedError("category missing"), "INVALID_INPUT", 0},
		{"profile lookup retries", NewProfileLookupFailedError("p-1", errors.New("reset")), "PROFILE_LOOKUP_FAILED", 3},
		{"offer lookup retries", NewOfferLookupFailedError("o-1", errors.New("503")), "OFFER_LOOKUP_FAILED", 3},
		{"scoring timeout", NewScoringTimeoutError(context.DeadlineExceeded), "SCORING_TIMEOUT", 2},
		{"config violation", NewConfigInvariantViolationError("weights sum to 0.9"), "CONFIG_INVARIANT_VIOLATION", 0},
		{"unmapped code passes through", NewExternalServiceError("zeebe", errors.New("down")), "EXTERNAL_SERVICE_ERROR", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)
			assert.Equal(t, string(tt.err.Code), bpmn.ToErrorVariables()["originalErrorCode"])
		})
	}
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewProfileNotFoundError("p-1"))
	assert.Equal(t, ErrCodeProfileNotFound, Normalize(wrapped).Code)

	timeout := Normalize(fmt.Errorf("rank: %w", context.DeadlineExceeded))
	assert.Equal(t, ErrorCode("TIMEOUT_ERROR"), timeout.Code)
	assert.True(t, timeout.Retryable)

	other := Normalize(errors.New("boom"))
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), other.Code)
	assert.False(t, other.Retryable)
}

func TestHasCodeAndIs(t *testing.T) {
	err := fmt.Errorf("worker: %w", NewOfferNotFoundError("o-1"))

	assert.True(t, HasCode(err, ErrCodeOfferNotFound))
	assert.False(t, HasCode(err, ErrCodeProfileNotFound))
	assert.False(t, HasCode(errors.New("plain"), ErrCodeOfferNotFound))
	assert.True(t, errors.Is(err, NewOfferNotFoundError("another")))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "CONFIGURATION", GetErrorCategory(ErrCodeConfigInvariantViolation))
	assert.Equal(t, "CONFIGURATION", GetErrorCategory(ErrCodeUnsupportedCategory))
	assert.Equal(t, "SCORING", GetErrorCategory(ErrCodeScoringTimeout))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeProfileLookupFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeOfferNotFound))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeParseError))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING_ELSE"))
}

func TestStandardError_Message(t *testing.T) {
	err := NewUnsupportedCategoryError("stage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNSUPPORTED_CATEGORY")
	assert.Contains(t, err.Error(), "category: stage")
	assert.False(t, IsRetryableErrorCode(err.Code))
	assert.True(t, IsRetryableErrorCode(ErrCodeCacheUnavailable))
}
