// internal/models/offer.go
package models

// Offer is a posting (job, consultation mission or funding programme).
// Category carries the presentation-layer name ("emploi", "bourse", ...);
// the engine maps it onto its own enum.
type Offer struct {
	ID          string `json:"id,omitempty"`
	Version     string `json:"version,omitempty"`
	Category    string `json:"category,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	RequiredSkills     []string `json:"requiredSkills,omitempty"`
	MinExperienceYears *int     `json:"minExperienceYears,omitempty"`
	Location           string   `json:"location,omitempty"`
	Remote             bool     `json:"remote,omitempty"`
	SalaryMin          *float64 `json:"salaryMin,omitempty"`
	SalaryMax          *float64 `json:"salaryMax,omitempty"`
	RequiredEducation  string   `json:"requiredEducation,omitempty"`

	RequiredExpertise []string `json:"requiredExpertise,omitempty"`
	Sector            string   `json:"sector,omitempty"`
	RequiredHours     *int     `json:"requiredHours,omitempty"`
	RequiredLanguages []string `json:"requiredLanguages,omitempty"`

	RequiredPlanSections   []string `json:"requiredPlanSections,omitempty"`
	MinContributionRatio   *float64 `json:"minContributionRatio,omitempty"`
	EligibleStages         []string `json:"eligibleStages,omitempty"`
	MinMarketSize          *float64 `json:"minMarketSize,omitempty"`
	RequiredGuaranteeValue *float64 `json:"requiredGuaranteeValue,omitempty"`
}
