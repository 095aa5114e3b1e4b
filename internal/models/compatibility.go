// internal/models/compatibility.go
package models

// CompatibilityReport is the flat, serializable form of a scoring result
// handed back to workflow variables and HTTP callers.
type CompatibilityReport struct {
	OverallScore    int              `json:"overallScore"`
	Category        string           `json:"category"`
	Fallback        bool             `json:"fallback"`
	SubScores       []SubScoreReport `json:"subScores"`
	Level           string           `json:"level"`
	Recommendation  string           `json:"recommendation"`
	Action          string           `json:"action"`
	Description     string           `json:"description"`
	Strengths       []string         `json:"strengths"`
	Weaknesses      []string         `json:"weaknesses"`
	Recommendations []string         `json:"recommendations"`
}

type SubScoreReport struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// CriterionReport describes one configured criterion.
type CriterionReport struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}
