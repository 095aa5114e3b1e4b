// Package compatibility scores an applicant profile against an offer.
//
// A Scorer is built once from a Config, validated at construction, and is
// safe for concurrent use: after New returns nothing inside it is mutated.
// Every evaluation is a pure function of its inputs.
package compatibility

import (
	"fmt"
	"strings"
)

// Category is the closed set of offer kinds the engine knows how to score.
type Category int

const (
	CategoryJob Category = iota + 1
	CategoryConsultation
	CategoryFunding
)

// Categories lists every supported category in declaration order.
func Categories() []Category {
	return []Category{CategoryJob, CategoryConsultation, CategoryFunding}
}

func (c Category) String() string {
	switch c {
	case CategoryJob:
		return "JOB"
	case CategoryConsultation:
		return "CONSULTATION"
	case CategoryFunding:
		return "FUNDING"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Valid reports whether c is one of Categories().
func (c Category) Valid() bool {
	switch c {
	case CategoryJob, CategoryConsultation, CategoryFunding:
		return true
	default:
		return false
	}
}

// ParseCategory parses a canonical name (case-insensitive). It is strict and
// meant for configuration; presentation names go through MapExternalCategory.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(strings.TrimSpace(name), c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

// externalCategories maps frontend-facing names onto the canonical enum.
var externalCategories = map[string]Category{
	"emploi":       CategoryJob,
	"consultation": CategoryConsultation,
	"financement":  CategoryFunding,
	"bourse":       CategoryFunding,
	"job":          CategoryJob,
	"funding":      CategoryFunding,
}

// LookupExternalCategory translates a presentation-layer name. ok is false
// when the name is unknown.
func LookupExternalCategory(name string) (c Category, ok bool) {
	c, ok = externalCategories[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// MapExternalCategory is LookupExternalCategory with the documented fallback:
// unknown names map to CategoryJob.
func MapExternalCategory(name string) Category {
	if c, ok := LookupExternalCategory(name); ok {
		return c
	}
	return CategoryJob
}
