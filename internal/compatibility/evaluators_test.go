package compatibility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"matching-workers/internal/models"
)

// ==========================
// Fixtures
// ==========================

func fullJobOffer() *models.Offer {
	return &models.Offer{
		ID:                 "offer-job",
		Title:              "Backend developer",
		Description:        "Build Go services and APIs",
		RequiredSkills:     []string{"go", "postgresql"},
		MinExperienceYears: models.IntPtr(5),
		Location:           "Paris",
		SalaryMax:          models.FloatPtr(50000),
		RequiredEducation:  models.EducationMaster,
	}
}

func fullConsultationOffer() *models.Offer {
	return &models.Offer{
		ID:                 "offer-consult",
		RequiredExpertise:  []string{"cloud", "security"},
		MinExperienceYears: models.IntPtr(4),
		RequiredHours:      models.IntPtr(40),
		RequiredLanguages:  []string{"fr", "en"},
		Sector:             "banking",
	}
}

func fullFundingOffer() *models.Offer {
	return &models.Offer{
		ID:                     "offer-fund",
		MinContributionRatio:   models.FloatPtr(0.2),
		EligibleStages:         []string{models.StageLaunched, models.StageGrowth},
		MinMarketSize:          models.FloatPtr(1000),
		RequiredGuaranteeValue: models.FloatPtr(50000),
	}
}

// ==========================
// Job
// ==========================

func TestJobEvaluators(t *testing.T) {
	offer := fullJobOffer()

	tests := []struct {
		name    string
		key     string
		profile *models.Profile
		offer   *models.Offer
		want    float64
	}{
		{"skills half covered", KeySkillMatch, &models.Profile{Skills: []string{"Go", "Docker"}}, offer, 50},
		{"skills fully covered", KeySkillMatch, &models.Profile{Skills: []string{"GO", "PostgreSQL", "k8s"}}, offer, 100},
		{"skills none required", KeySkillMatch, &models.Profile{Skills: []string{"go"}}, &models.Offer{}, NeutralScore},
		{"experience below minimum", KeyExperienceMatch, &models.Profile{ExperienceYears: models.IntPtr(3)}, offer, 60},
		{"experience above minimum", KeyExperienceMatch, &models.Profile{ExperienceYears: models.IntPtr(8)}, offer, 100},
		{"location same city", KeyLocationMatch, &models.Profile{Location: " paris "}, offer, 100},
		{"location other city", KeyLocationMatch, &models.Profile{Location: "Lyon"}, offer, 30},
		{"location remote offer", KeyLocationMatch, &models.Profile{Location: "Lyon"}, &models.Offer{Location: "Paris", Remote: true}, 100},
		{"text overlap", KeyTextSimilarity, &models.Profile{Summary: "Go backend developer"}, offer, 100},
		{"text disjoint", KeyTextSimilarity, &models.Profile{Summary: "Pastry chef"}, offer, 0},
		{"salary within range", KeySalaryMatch, &models.Profile{DesiredSalary: models.FloatPtr(45000)}, offer, 100},
		{"salary above range", KeySalaryMatch, &models.Profile{DesiredSalary: models.FloatPtr(55000)}, offer, 80},
		{"salary far above range", KeySalaryMatch, &models.Profile{DesiredSalary: models.FloatPtr(90000)}, offer, 0},
		{"education above", KeyEducationMatch, &models.Profile{EducationLevel: models.EducationDoctorate}, offer, 100},
		{"education one below", KeyEducationMatch, &models.Profile{EducationLevel: models.EducationBachelor}, offer, 60},
		{"education far below", KeyEducationMatch, &models.Profile{EducationLevel: models.EducationHighSchool}, offer, 20},
		{"education unknown", KeyEducationMatch, &models.Profile{EducationLevel: "bootcamp"}, offer, NeutralScore},
	}

	set := JobEvaluators()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, set[tt.key](tt.profile, tt.offer), 1e-9)
		})
	}
}

// ==========================
// Consultation
// ==========================

func TestConsultationEvaluators(t *testing.T) {
	offer := fullConsultationOffer()

	tests := []struct {
		name    string
		key     string
		profile *models.Profile
		offer   *models.Offer
		want    float64
	}{
		{"expertise covered", KeyExpertiseMatch, &models.Profile{Expertise: []string{"Cloud", "Security"}}, offer, 100},
		{"expertise falls back to skills", KeyExpertiseMatch, &models.Profile{Skills: []string{"cloud", "security"}}, offer, 100},
		{"expertise partial", KeyExpertiseMatch, &models.Profile{Expertise: []string{"cloud"}}, offer, 50},
		{"portfolio rich", KeyPortfolioQuality, &models.Profile{PortfolioURLs: []string{"a", "b", "c", "d", "e"}}, offer, 100},
		{"portfolio medium", KeyPortfolioQuality, &models.Profile{PortfolioURLs: []string{"a", "b", "c"}}, offer, 80},
		{"portfolio small", KeyPortfolioQuality, &models.Profile{PortfolioURLs: []string{"a"}}, offer, 60},
		{"experience level", KeyExperienceLevel, &models.Profile{ExperienceYears: models.IntPtr(3)}, offer, 75},
		{"availability partial", KeyAvailability, &models.Profile{AvailabilityHours: models.IntPtr(30)}, offer, 75},
		{"languages covered", KeyCommunicationSkills, &models.Profile{Languages: []string{"FR", "en", "de"}}, offer, 100},
		{"languages not required", KeyCommunicationSkills, &models.Profile{Languages: []string{"fr"}}, &models.Offer{}, 70},
		{"sector known", KeySectorKnowledge, &models.Profile{Sectors: []string{"Banking"}}, offer, 100},
		{"sector unknown", KeySectorKnowledge, &models.Profile{Sectors: []string{"retail"}}, offer, 30},
	}

	set := ConsultationEvaluators()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, set[tt.key](tt.profile, tt.offer), 1e-9)
		})
	}
}

// ==========================
// Funding
// ==========================

func TestFundingEvaluators(t *testing.T) {
	offer := fullFundingOffer()

	tests := []struct {
		name    string
		key     string
		profile *models.Profile
		offer   *models.Offer
		want    float64
	}{
		{"plan default sections", KeyBusinessPlanQuality, &models.Profile{BusinessPlanSections: []string{"executive_summary", "team", "risks"}}, offer, 60},
		{"plan offer sections", KeyBusinessPlanQuality, &models.Profile{BusinessPlanSections: []string{"pitch"}}, &models.Offer{RequiredPlanSections: []string{"pitch"}}, 100},
		{"contribution below ratio", KeyFinancialProfile, &models.Profile{OwnContribution: models.FloatPtr(15000), RequestedAmount: models.FloatPtr(100000)}, offer, 75},
		{"contribution meets ratio", KeyFinancialProfile, &models.Profile{OwnContribution: models.FloatPtr(30000), RequestedAmount: models.FloatPtr(100000)}, offer, 100},
		{"contribution default ratio", KeyFinancialProfile, &models.Profile{OwnContribution: models.FloatPtr(5000), RequestedAmount: models.FloatPtr(100000)}, &models.Offer{}, 25},
		{"stage eligible", KeyProjectViability, &models.Profile{ProjectStage: models.StageLaunched}, offer, 80},
		{"stage not eligible", KeyProjectViability, &models.Profile{ProjectStage: models.StagePrototype}, offer, 20},
		{"stage unrestricted", KeyProjectViability, &models.Profile{ProjectStage: models.StageIdea}, &models.Offer{}, 30},
		{"market partial", KeyMarketPotential, &models.Profile{TargetMarketSize: models.FloatPtr(750)}, offer, 75},
		{"team with bonus", KeyTeamExperience, &models.Profile{TeamExperienceYears: models.IntPtr(6), TeamSize: models.IntPtr(4)}, offer, 90},
		{"team capped", KeyTeamExperience, &models.Profile{TeamExperienceYears: models.IntPtr(12), TeamSize: models.IntPtr(5)}, offer, 100},
		{"team junior", KeyTeamExperience, &models.Profile{TeamExperienceYears: models.IntPtr(1)}, offer, 40},
		{"guarantees partial", KeyGuaranteesAvailable, &models.Profile{GuaranteeValue: models.FloatPtr(40000)}, offer, 80},
	}

	set := FundingEvaluators()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, set[tt.key](tt.profile, tt.offer), 1e-9)
		})
	}
}

// ==========================
// Neutral defaults
// ==========================

func TestEvaluators_EmptyProfileIsNeutral(t *testing.T) {
	offers := map[Category]*models.Offer{
		CategoryJob:          fullJobOffer(),
		CategoryConsultation: fullConsultationOffer(),
		CategoryFunding:      fullFundingOffer(),
	}
	offers[CategoryJob].Remote = true

	for category, set := range DefaultConfig().Evaluators {
		for key, eval := range set {
			assert.Equal(t, NeutralScore, eval(&models.Profile{}, offers[category]), "%s/%s", category, key)
			assert.Equal(t, NeutralScore, eval(&models.Profile{}, &models.Offer{}), "%s/%s", category, key)
		}
	}
}

func TestToSubScore(t *testing.T) {
	assert.Equal(t, 0, toSubScore(-20))
	assert.Equal(t, 100, toSubScore(180))
	assert.Equal(t, 67, toSubScore(66.5))
	assert.Equal(t, 50, toSubScore(math.NaN()))
}
