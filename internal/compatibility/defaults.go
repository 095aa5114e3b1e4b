package compatibility

// Default insight texts.
const (
	DefaultStrengthPhrase = "Profil globalement compatible"
	DefaultWeaknessPhrase = "Aucune faiblesse majeure identifiée"

	DefaultStrengthThreshold = 80
	DefaultWeaknessThreshold = 60
)

// DefaultClosingRecommendations are appended to every result.
var DefaultClosingRecommendations = []string{
	"Mettez en avant vos points forts dans votre candidature",
	"Préparez des exemples concrets de vos réalisations",
}

// DefaultConfig returns the built-in engine configuration. Each call returns
// a fresh value that the caller may adjust before NewScorer.
func DefaultConfig() Config {
	return Config{
		Criteria: []CriteriaConfig{
			{Category: CategoryJob, Criteria: []CriterionDefinition{
				{Key: KeySkillMatch, Label: "Compétences", Weight: 0.30, Description: "Correspondance entre vos compétences et celles requises"},
				{Key: KeyExperienceMatch, Label: "Expérience", Weight: 0.25, Description: "Années d'expérience par rapport au minimum demandé"},
				{Key: KeyLocationMatch, Label: "Localisation", Weight: 0.15, Description: "Proximité géographique ou télétravail"},
				{Key: KeyTextSimilarity, Label: "Adéquation du profil", Weight: 0.15, Description: "Similarité entre votre présentation et l'offre"},
				{Key: KeySalaryMatch, Label: "Salaire", Weight: 0.10, Description: "Prétentions salariales par rapport à la fourchette proposée"},
				{Key: KeyEducationMatch, Label: "Formation", Weight: 0.05, Description: "Niveau d'études par rapport au niveau requis"},
			}},
			{Category: CategoryConsultation, Criteria: []CriterionDefinition{
				{Key: KeyExpertiseMatch, Label: "Expertise", Weight: 0.30, Description: "Correspondance entre votre expertise et le besoin du client"},
				{Key: KeyPortfolioQuality, Label: "Portfolio", Weight: 0.20, Description: "Nombre de références et réalisations présentées"},
				{Key: KeyExperienceLevel, Label: "Niveau d'expérience", Weight: 0.20, Description: "Années d'expérience par rapport au minimum demandé"},
				{Key: KeyAvailability, Label: "Disponibilité", Weight: 0.10, Description: "Heures disponibles par rapport à la charge prévue"},
				{Key: KeyCommunicationSkills, Label: "Communication", Weight: 0.10, Description: "Langues maîtrisées par rapport aux langues requises"},
				{Key: KeySectorKnowledge, Label: "Connaissance du secteur", Weight: 0.10, Description: "Expérience dans le secteur du client"},
			}},
			{Category: CategoryFunding, Criteria: []CriterionDefinition{
				{Key: KeyBusinessPlanQuality, Label: "Plan d'affaires", Weight: 0.25, Description: "Complétude du plan d'affaires"},
				{Key: KeyFinancialProfile, Label: "Profil financier", Weight: 0.20, Description: "Apport personnel par rapport au montant demandé"},
				{Key: KeyProjectViability, Label: "Viabilité du projet", Weight: 0.20, Description: "Maturité du projet et éligibilité de son stade"},
				{Key: KeyMarketPotential, Label: "Potentiel de marché", Weight: 0.15, Description: "Taille du marché visé"},
				{Key: KeyTeamExperience, Label: "Expérience de l'équipe", Weight: 0.10, Description: "Expérience cumulée et taille de l'équipe"},
				{Key: KeyGuaranteesAvailable, Label: "Garanties", Weight: 0.10, Description: "Garanties disponibles par rapport aux garanties exigées"},
			}},
		},
		Evaluators: map[Category]EvaluatorSet{
			CategoryJob:          JobEvaluators(),
			CategoryConsultation: ConsultationEvaluators(),
			CategoryFunding:      FundingEvaluators(),
		},
		Scale: []ScoreScaleEntry{
			{MinThreshold: 90, Level: "Excellent", Recommendation: RecommendationStrong, Action: "Postuler immédiatement", Description: "Votre profil correspond parfaitement à cette offre"},
			{MinThreshold: 80, Level: "Très bon", Recommendation: RecommendationRecommend, Action: "Postuler", Description: "Votre profil correspond très bien à cette offre"},
			{MinThreshold: 70, Level: "Bon", Recommendation: RecommendationConsider, Action: "Envisager de postuler", Description: "Votre profil correspond bien à cette offre"},
			{MinThreshold: 60, Level: "Moyen", Recommendation: RecommendationConsider, Action: "Renforcer votre dossier avant de postuler", Description: "Votre profil correspond partiellement à cette offre"},
			{MinThreshold: 0, Level: "Très faible", Recommendation: RecommendationNot, Action: "Chercher des offres plus adaptées", Description: "Votre profil correspond peu à cette offre"},
		},
		Insights:               defaultInsights(),
		StrengthThreshold:      DefaultStrengthThreshold,
		WeaknessThreshold:      DefaultWeaknessThreshold,
		DefaultStrength:        DefaultStrengthPhrase,
		DefaultWeakness:        DefaultWeaknessPhrase,
		ClosingRecommendations: append([]string(nil), DefaultClosingRecommendations...),
		FallbackCategory:       CategoryJob,
	}
}

func defaultInsights() InsightCatalog {
	return InsightCatalog{
		CategoryJob: {
			KeySkillMatch: {
				Strength:       "Vos compétences correspondent aux exigences du poste",
				Weakness:       "Certaines compétences requises manquent à votre profil",
				Recommendation: "Développez les compétences demandées par l'offre",
			},
			KeyExperienceMatch: {
				Strength:       "Votre expérience dépasse les attentes",
				Weakness:       "Votre expérience est inférieure au minimum demandé",
				Recommendation: "Valorisez vos stages et projets personnels",
			},
			KeyLocationMatch: {
				Strength:       "Votre localisation est idéale pour ce poste",
				Weakness:       "Le poste est éloigné de votre localisation",
				Recommendation: "Précisez votre mobilité géographique",
			},
			KeyTextSimilarity: {
				Strength:       "Votre présentation reflète bien le poste",
				Weakness:       "Votre présentation s'éloigne du descriptif du poste",
				Recommendation: "Adaptez votre résumé aux termes de l'offre",
			},
			KeySalaryMatch: {
				Strength:       "Vos prétentions salariales sont dans la fourchette",
				Weakness:       "Vos prétentions salariales dépassent la fourchette proposée",
				Recommendation: "Revoyez vos prétentions salariales ou négociez les avantages",
			},
			KeyEducationMatch: {
				Strength:       "Votre formation correspond au niveau requis",
				Weakness:       "Votre niveau d'études est inférieur au niveau requis",
				Recommendation: "Mettez en avant vos certifications et formations continues",
			},
		},
		CategoryConsultation: {
			KeyExpertiseMatch: {
				Strength:       "Votre expertise répond précisément au besoin",
				Weakness:       "Votre expertise couvre partiellement le besoin",
				Recommendation: "Détaillez vos missions proches du besoin du client",
			},
			KeyPortfolioQuality: {
				Strength:       "Votre portfolio est riche et convaincant",
				Weakness:       "Votre portfolio est peu fourni",
				Recommendation: "Ajoutez des références clients à votre portfolio",
			},
			KeyExperienceLevel: {
				Strength:       "Votre niveau d'expérience est rassurant",
				Weakness:       "Votre niveau d'expérience est en dessous des attentes",
				Recommendation: "Proposez une première mission à périmètre réduit",
			},
			KeyAvailability: {
				Strength:       "Votre disponibilité couvre la charge prévue",
				Weakness:       "Votre disponibilité est insuffisante pour la mission",
				Recommendation: "Proposez un planning réaliste pour la mission",
			},
			KeyCommunicationSkills: {
				Strength:       "Vous maîtrisez les langues de la mission",
				Weakness:       "Certaines langues requises ne sont pas maîtrisées",
				Recommendation: "Indiquez votre niveau dans les langues demandées",
			},
			KeySectorKnowledge: {
				Strength:       "Vous connaissez bien le secteur du client",
				Weakness:       "Vous connaissez peu le secteur du client",
				Recommendation: "Montrez des compétences transférables vers ce secteur",
			},
		},
		CategoryFunding: {
			KeyBusinessPlanQuality: {
				Strength:       "Votre plan d'affaires est complet",
				Weakness:       "Votre plan d'affaires est incomplet",
				Recommendation: "Complétez les sections manquantes du plan d'affaires",
			},
			KeyFinancialProfile: {
				Strength:       "Votre apport personnel est solide",
				Weakness:       "Votre apport personnel est insuffisant",
				Recommendation: "Augmentez votre apport ou réduisez le montant demandé",
			},
			KeyProjectViability: {
				Strength:       "Votre projet a atteint une maturité convaincante",
				Weakness:       "Votre projet est encore à un stade précoce",
				Recommendation: "Présentez un prototype ou des premiers clients",
			},
			KeyMarketPotential: {
				Strength:       "Le marché visé présente un fort potentiel",
				Weakness:       "Le marché visé paraît trop étroit",
				Recommendation: "Étayez votre étude de marché avec des chiffres",
			},
			KeyTeamExperience: {
				Strength:       "Votre équipe est expérimentée",
				Weakness:       "Votre équipe manque d'expérience",
				Recommendation: "Entourez-vous de mentors ou d'associés expérimentés",
			},
			KeyGuaranteesAvailable: {
				Strength:       "Vos garanties couvrent les exigences",
				Weakness:       "Vos garanties sont insuffisantes",
				Recommendation: "Identifiez des garanties complémentaires ou une caution",
			},
		},
	}
}
