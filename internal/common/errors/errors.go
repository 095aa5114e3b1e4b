// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Scoring engine errors
const (
	ErrCodeConfigInvariantViolation ErrorCode = "CONFIG_INVARIANT_VIOLATION"
	ErrCodeUnsupportedCategory      ErrorCode = "UNSUPPORTED_CATEGORY"
	ErrCodeScoringTimeout           ErrorCode = "SCORING_TIMEOUT"
)

// Worker input / collaborator errors
const (
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeParseError            ErrorCode = "PARSE_ERROR"

	ErrCodeProfileNotFound     ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeProfileLookupFailed ErrorCode = "PROFILE_LOOKUP_FAILED"
	ErrCodeOfferNotFound       ErrorCode = "OFFER_NOT_FOUND"
	ErrCodeOfferLookupFailed   ErrorCode = "OFFER_LOOKUP_FAILED"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is reports whether target is a StandardError with the same code, so that
// errors.Is works against the constructors below.
func (e *StandardError) Is(target error) bool {
	var other *StandardError
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// HasCode reports whether err wraps a StandardError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewConfigInvariantViolationError is raised only while building the scoring
// configuration at startup. It is never retryable.
func NewConfigInvariantViolationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvariantViolation,
		Message:   "Scoring configuration violates an invariant",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedCategoryError describes a category the registry does not know.
// Callers log it and fall back; it is not surfaced to workflow callers.
func NewUnsupportedCategoryError(category string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedCategory,
		Message:   "Unsupported offer category",
		Details:   fmt.Sprintf("category: %s", category),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringTimeoutError creates a retryable timeout for batch scoring.
func NewScoringTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringTimeout,
		Message:   "Compatibility scoring did not finish in time",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInputValidationFailedError creates a non-retryable job input error.
func NewInputValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputValidationFailed,
		Message:   "Job input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError creates a non-retryable job variable decoding error.
func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Job variables could not be decoded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError creates a non-retryable lookup miss.
func NewProfileNotFoundError(profileID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "Profile not found",
		Details:   fmt.Sprintf("profileId: %s", profileID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileLookupFailedError creates a retryable database error.
func NewProfileLookupFailedError(profileID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileLookupFailed,
		Message:   "Database error during profile lookup",
		Details:   fmt.Sprintf("profileId: %s, error: %s", profileID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOfferNotFoundError creates a non-retryable lookup miss.
func NewOfferNotFoundError(offerID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOfferNotFound,
		Message:   "Offer not found in search index",
		Details:   fmt.Sprintf("offerId: %s", offerID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOfferLookupFailedError creates a retryable search index error.
func NewOfferLookupFailedError(offerID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOfferLookupFailed,
		Message:   "Elasticsearch error during offer lookup",
		Details:   fmt.Sprintf("offerId: %s, error: %s", offerID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError is logged, never thrown: the cache is optional.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Report cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes modelled on
// boundary events. Lookup misses and parse failures share one BPMN code.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeConfigInvariantViolation: "CONFIG_INVARIANT_VIOLATION",
	ErrCodeUnsupportedCategory:      "UNSUPPORTED_CATEGORY",
	ErrCodeScoringTimeout:           "SCORING_TIMEOUT",
	ErrCodeInputValidationFailed:    "INVALID_INPUT",
	ErrCodeParseError:               "INVALID_INPUT",
	ErrCodeProfileNotFound:          "PROFILE_NOT_FOUND",
	ErrCodeProfileLookupFailed:      "PROFILE_LOOKUP_FAILED",
	ErrCodeOfferNotFound:            "OFFER_NOT_FOUND",
	ErrCodeOfferLookupFailed:        "OFFER_LOOKUP_FAILED",
	ErrCodeCacheUnavailable:         "CACHE_UNAVAILABLE",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProfileLookupFailed,
		ErrCodeOfferLookupFailed,
		ErrCodeCacheUnavailable:
		return 3

	case ErrCodeScoringTimeout,
		"TIMEOUT_ERROR":
		return 2

	case "EXTERNAL_SERVICE_ERROR":
		return 1

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CONFIG") || strings.Contains(codeStr, "CATEGORY"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "SCORING"):
		return "SCORING"
	case strings.Contains(codeStr, "PROFILE"):
		return "DATABASE"
	case strings.Contains(codeStr, "OFFER"):
		return "SEARCH"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "INPUT") || strings.Contains(codeStr, "PARSE") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
