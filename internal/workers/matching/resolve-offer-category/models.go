// internal/workers/matching/resolve-offer-category/models.go
package resolveoffercategory

import "matching-workers/internal/models"

type Input struct {
	CategoryName string `json:"categoryName"`
}

type Output struct {
	Category string                   `json:"category"`
	Fallback bool                     `json:"fallback"`
	Criteria []models.CriterionReport `json:"criteria"`
}

const inputSchema = `{
	"type": "object",
	"properties": {
		"categoryName": {"type": "string"}
	},
	"required": ["categoryName"]
}`
