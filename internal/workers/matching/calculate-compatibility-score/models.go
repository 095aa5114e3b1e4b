// internal/workers/matching/calculate-compatibility-score/models.go
package calculatecompatibilityscore

import "matching-workers/internal/models"

// Input carries the pair to score. Inline records win over ids. Category is
// a presentation name such as "emploi" or "bourse"; when empty the offer's
// own category is used.
type Input struct {
	Category  string          `json:"category"`
	ProfileID string          `json:"profileId,omitempty"`
	Profile   *models.Profile `json:"profile,omitempty"`
	OfferID   string          `json:"offerId,omitempty"`
	Offer     *models.Offer   `json:"offer,omitempty"`
}

type Output struct {
	EvaluationID string                     `json:"evaluationId"`
	Cached       bool                       `json:"cached"`
	Report       models.CompatibilityReport `json:"report"`
}

const inputSchema = `{
	"type": "object",
	"properties": {
		"category":  {"type": "string"},
		"profileId": {"type": "string", "minLength": 1},
		"profile":   {"type": ["object", "null"]},
		"offerId":   {"type": "string", "minLength": 1},
		"offer":     {"type": ["object", "null"]}
	},
	"anyOf": [
		{"required": ["category"]},
		{"required": ["offer"]},
		{"required": ["offerId"]}
	]
}`
