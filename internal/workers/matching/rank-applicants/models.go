// internal/workers/matching/rank-applicants/models.go
package rankapplicants

import "matching-workers/internal/models"

// Input names one offer and the applicants to rank against it. Inline
// profiles are ranked together with those loaded by id.
type Input struct {
	Category   string            `json:"category"`
	OfferID    string            `json:"offerId,omitempty"`
	Offer      *models.Offer     `json:"offer,omitempty"`
	Profiles   []*models.Profile `json:"profiles,omitempty"`
	ProfileIDs []string          `json:"profileIds,omitempty"`
	MaxItems   int               `json:"maxItems,omitempty"`
}

type RankedApplicant struct {
	ProfileID      string `json:"profileId"`
	Rank           int    `json:"rank"`
	OverallScore   int    `json:"overallScore"`
	Level          string `json:"level"`
	Recommendation string `json:"recommendation"`
}

type Output struct {
	EvaluationID     string            `json:"evaluationId"`
	OfferID          string            `json:"offerId,omitempty"`
	Category         string            `json:"category"`
	Fallback         bool              `json:"fallback"`
	RankedApplicants []RankedApplicant `json:"rankedApplicants"`
	Total            int               `json:"total"`
}

const inputSchema = `{
	"type": "object",
	"properties": {
		"category":   {"type": "string"},
		"offerId":    {"type": "string", "minLength": 1},
		"offer":      {"type": ["object", "null"]},
		"profiles":   {"type": "array", "items": {"type": "object"}},
		"profileIds": {"type": "array", "items": {"type": "string", "minLength": 1}},
		"maxItems":   {"type": "integer", "minimum": 1}
	},
	"anyOf": [
		{"required": ["profiles"]},
		{"required": ["profileIds"]}
	]
}`
