package compatibility

import (
	"matching-workers/internal/models"
)

// Funding criterion keys.
const (
	KeyBusinessPlanQuality = "business_plan_quality"
	KeyFinancialProfile    = "financial_profile"
	KeyProjectViability    = "project_viability"
	KeyMarketPotential     = "market_potential"
	KeyTeamExperience      = "team_experience"
	KeyGuaranteesAvailable = "guarantees_available"
)

// DefaultPlanSections is the business plan outline expected when an offer
// does not list its own.
var DefaultPlanSections = []string{
	"executive_summary",
	"market_analysis",
	"financial_projections",
	"team",
	"risks",
}

// DefaultMinContributionRatio is the own-contribution share of the requested
// amount expected when an offer does not set one.
const DefaultMinContributionRatio = 0.2

var stageScores = map[string]float64{
	models.StageIdea:      30,
	models.StagePrototype: 55,
	models.StageLaunched:  80,
	models.StageGrowth:    100,
}

// FundingEvaluators returns the evaluators for CategoryFunding.
func FundingEvaluators() EvaluatorSet {
	return EvaluatorSet{
		KeyBusinessPlanQuality: evaluateBusinessPlanQuality,
		KeyFinancialProfile:    evaluateFinancialProfile,
		KeyProjectViability:    evaluateProjectViability,
		KeyMarketPotential:     evaluateMarketPotential,
		KeyTeamExperience:      evaluateTeamExperience,
		KeyGuaranteesAvailable: evaluateGuaranteesAvailable,
	}
}

func evaluateBusinessPlanQuality(p *models.Profile, o *models.Offer) float64 {
	required := o.RequiredPlanSections
	if len(required) == 0 {
		required = DefaultPlanSections
	}
	if score, ok := coverage(p.BusinessPlanSections, required); ok {
		return score
	}
	return NeutralScore
}

func evaluateFinancialProfile(p *models.Profile, o *models.Offer) float64 {
	if p.OwnContribution == nil || p.RequestedAmount == nil {
		return NeutralScore
	}
	if *p.RequestedAmount <= 0 {
		return 100
	}

	minRatio := DefaultMinContributionRatio
	if o.MinContributionRatio != nil {
		minRatio = *o.MinContributionRatio
	}
	return ratioScore(*p.OwnContribution / *p.RequestedAmount, minRatio)
}

func evaluateProjectViability(p *models.Profile, o *models.Offer) float64 {
	score, ok := stageScores[normalize(p.ProjectStage)]
	if !ok {
		return NeutralScore
	}
	if len(toSet(o.EligibleStages)) > 0 && !contains(o.EligibleStages, p.ProjectStage) {
		return 20
	}
	return score
}

func evaluateMarketPotential(p *models.Profile, o *models.Offer) float64 {
	if p.TargetMarketSize == nil || o.MinMarketSize == nil {
		return NeutralScore
	}
	return ratioScore(*p.TargetMarketSize, *o.MinMarketSize)
}

func evaluateTeamExperience(p *models.Profile, _ *models.Offer) float64 {
	if p.TeamExperienceYears == nil {
		return NeutralScore
	}

	var score float64
	switch years := *p.TeamExperienceYears; {
	case years >= 10:
		score = 100
	case years >= 5:
		score = 80
	case years >= 2:
		score = 60
	default:
		score = 40
	}
	if p.TeamSize != nil && *p.TeamSize >= 3 {
		score += 10
	}
	return clamp(score, 0, 100)
}

func evaluateGuaranteesAvailable(p *models.Profile, o *models.Offer) float64 {
	if p.GuaranteeValue == nil || o.RequiredGuaranteeValue == nil {
		return NeutralScore
	}
	return ratioScore(*p.GuaranteeValue, *o.RequiredGuaranteeValue)
}
