// internal/models/profile.go
package models

// Profile is an applicant record as supplied by the surrounding platform.
// Every field is optional; numeric fields are pointers so that an absent
// value can be told apart from zero.
type Profile struct {
	ID      string `json:"id,omitempty"`
	Version string `json:"version,omitempty"`

	// Employment
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears *int     `json:"experienceYears,omitempty"`
	Location        string   `json:"location,omitempty"`
	DesiredSalary   *float64 `json:"desiredSalary,omitempty"`
	EducationLevel  string   `json:"educationLevel,omitempty"`
	Summary         string   `json:"summary,omitempty"`

	// Consultation
	Expertise         []string `json:"expertise,omitempty"`
	PortfolioURLs     []string `json:"portfolioUrls,omitempty"`
	AvailabilityHours *int     `json:"availabilityHours,omitempty"`
	Languages         []string `json:"languages,omitempty"`
	Sectors           []string `json:"sectors,omitempty"`

	// Funding
	BusinessPlanSections []string `json:"businessPlanSections,omitempty"`
	OwnContribution      *float64 `json:"ownContribution,omitempty"`
	RequestedAmount      *float64 `json:"requestedAmount,omitempty"`
	ProjectStage         string   `json:"projectStage,omitempty"`
	TargetMarketSize     *float64 `json:"targetMarketSize,omitempty"`
	TeamSize             *int     `json:"teamSize,omitempty"`
	TeamExperienceYears  *int     `json:"teamExperienceYears,omitempty"`
	GuaranteeValue       *float64 `json:"guaranteeValue,omitempty"`
}

// Education levels, lowest first.
const (
	EducationNone       = "none"
	EducationHighSchool = "high_school"
	EducationVocational = "vocational"
	EducationBachelor   = "bachelor"
	EducationMaster     = "master"
	EducationDoctorate  = "doctorate"
)

// Project stages, earliest first.
const (
	StageIdea      = "idea"
	StagePrototype = "prototype"
	StageLaunched  = "launched"
	StageGrowth    = "growth"
)

// IntPtr and FloatPtr are helpers for building records in code and tests.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
