package compatibility

import (
	"matching-workers/internal/models"
)

// Consultation criterion keys.
const (
	KeyExpertiseMatch      = "expertise_match"
	KeyPortfolioQuality    = "portfolio_quality"
	KeyExperienceLevel     = "experience_level"
	KeyAvailability        = "availability"
	KeyCommunicationSkills = "communication_skills"
	KeySectorKnowledge     = "sector_knowledge"
)

// ConsultationEvaluators returns the evaluators for CategoryConsultation.
func ConsultationEvaluators() EvaluatorSet {
	return EvaluatorSet{
		KeyExpertiseMatch:      evaluateExpertiseMatch,
		KeyPortfolioQuality:    evaluatePortfolioQuality,
		KeyExperienceLevel:     evaluateExperienceMatch,
		KeyAvailability:        evaluateAvailability,
		KeyCommunicationSkills: evaluateCommunicationSkills,
		KeySectorKnowledge:     evaluateSectorKnowledge,
	}
}

func evaluateExpertiseMatch(p *models.Profile, o *models.Offer) float64 {
	expertise := p.Expertise
	if len(expertise) == 0 {
		expertise = p.Skills
	}
	required := o.RequiredExpertise
	if len(required) == 0 {
		required = o.RequiredSkills
	}
	if score, ok := coverage(expertise, required); ok {
		return score
	}
	return NeutralScore
}

func evaluatePortfolioQuality(p *models.Profile, _ *models.Offer) float64 {
	n := len(toSet(p.PortfolioURLs))
	switch {
	case n >= 5:
		return 100
	case n >= 3:
		return 80
	case n >= 1:
		return 60
	default:
		return NeutralScore
	}
}

func evaluateAvailability(p *models.Profile, o *models.Offer) float64 {
	if p.AvailabilityHours == nil || o.RequiredHours == nil {
		return NeutralScore
	}
	return ratioScore(float64(*p.AvailabilityHours), float64(*o.RequiredHours))
}

func evaluateCommunicationSkills(p *models.Profile, o *models.Offer) float64 {
	if len(toSet(p.Languages)) == 0 {
		return NeutralScore
	}
	if len(toSet(o.RequiredLanguages)) == 0 {
		return 70
	}
	score, _ := coverage(p.Languages, o.RequiredLanguages)
	return score
}

func evaluateSectorKnowledge(p *models.Profile, o *models.Offer) float64 {
	if len(toSet(p.Sectors)) == 0 || normalize(o.Sector) == "" {
		return NeutralScore
	}
	if contains(p.Sectors, o.Sector) {
		return 100
	}
	return 30
}
