package compatibility

import (
	"matching-workers/internal/models"
)

// Job criterion keys.
const (
	KeySkillMatch      = "skill_match"
	KeyExperienceMatch = "experience_match"
	KeyLocationMatch   = "location_match"
	KeyTextSimilarity  = "text_similarity"
	KeySalaryMatch     = "salary_match"
	KeyEducationMatch  = "education_match"
)

// salaryCeilingFactor is the multiple of the offer's maximum at which the
// salary score reaches 0.
const salaryCeilingFactor = 1.5

var educationRank = map[string]int{
	models.EducationNone:       0,
	models.EducationHighSchool: 1,
	models.EducationVocational: 2,
	models.EducationBachelor:   3,
	models.EducationMaster:     4,
	models.EducationDoctorate:  5,
}

// JobEvaluators returns the evaluators for CategoryJob.
func JobEvaluators() EvaluatorSet {
	return EvaluatorSet{
		KeySkillMatch:      evaluateSkillMatch,
		KeyExperienceMatch: evaluateExperienceMatch,
		KeyLocationMatch:   evaluateLocationMatch,
		KeyTextSimilarity:  evaluateTextSimilarity,
		KeySalaryMatch:     evaluateSalaryMatch,
		KeyEducationMatch:  evaluateEducationMatch,
	}
}

func evaluateSkillMatch(p *models.Profile, o *models.Offer) float64 {
	if score, ok := coverage(p.Skills, o.RequiredSkills); ok {
		return score
	}
	return NeutralScore
}

func evaluateExperienceMatch(p *models.Profile, o *models.Offer) float64 {
	if p.ExperienceYears == nil || o.MinExperienceYears == nil {
		return NeutralScore
	}
	return ratioScore(float64(*p.ExperienceYears), float64(*o.MinExperienceYears))
}

func evaluateLocationMatch(p *models.Profile, o *models.Offer) float64 {
	if normalize(p.Location) == "" {
		return NeutralScore
	}
	if o.Remote {
		return 100
	}
	if normalize(o.Location) == "" {
		return NeutralScore
	}
	if normalize(p.Location) == normalize(o.Location) {
		return 100
	}
	return 30
}

func evaluateTextSimilarity(p *models.Profile, o *models.Offer) float64 {
	profileTokens := tokenize(p.Summary, p.Skills...)
	if len(profileTokens) == 0 {
		return NeutralScore
	}
	offerTokens := tokenize(o.Title, o.Description)
	if len(offerTokens) == 0 {
		return NeutralScore
	}
	return overlapCoefficient(profileTokens, offerTokens) * 100
}

func evaluateSalaryMatch(p *models.Profile, o *models.Offer) float64 {
	if p.DesiredSalary == nil || o.SalaryMax == nil || *o.SalaryMax <= 0 {
		return NeutralScore
	}

	desired, ceiling := *p.DesiredSalary, *o.SalaryMax
	if desired <= ceiling {
		return 100
	}
	limit := ceiling * salaryCeilingFactor
	if desired >= limit {
		return 0
	}
	return (limit - desired) / (limit - ceiling) * 100
}

func evaluateEducationMatch(p *models.Profile, o *models.Offer) float64 {
	have, ok := educationRank[normalize(p.EducationLevel)]
	if !ok {
		return NeutralScore
	}
	want, ok := educationRank[normalize(o.RequiredEducation)]
	if !ok {
		return NeutralScore
	}

	switch {
	case have >= want:
		return 100
	case have == want-1:
		return 60
	default:
		return 20
	}
}
