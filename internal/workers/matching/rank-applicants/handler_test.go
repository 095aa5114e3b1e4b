// internal/workers/matching/rank-applicants/handler_test.go
package rankapplicants

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/compatibility"
	"matching-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeProfiles struct {
	records map[string]*models.Profile
	err     error
	asked   []string
}

func (f *fakeProfiles) GetMany(_ context.Context, ids []string) (map[string]*models.Profile, error) {
	f.asked = append(f.asked, ids...)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]*models.Profile)
	for _, id := range ids {
		if p, ok := f.records[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeOffers struct {
	records map[string]*models.Offer
}

func (f *fakeOffers) Get(_ context.Context, id string) (*models.Offer, error) {
	if o, ok := f.records[id]; ok {
		return o, nil
	}
	return nil, apperrors.NewOfferNotFoundError(id)
}

func jobOffer() *models.Offer {
	return &models.Offer{
		ID:                 "o-1",
		Category:           "emploi",
		Title:              "Backend developer",
		Description:        "Go services on PostgreSQL",
		RequiredSkills:     []string{"go", "postgresql"},
		MinExperienceYears: models.IntPtr(4),
		Location:           "Lyon",
		SalaryMax:          models.FloatPtr(50000),
		RequiredEducation:  models.EducationBachelor,
	}
}

func strongProfile(id string) *models.Profile {
	return &models.Profile{
		ID:              id,
		Skills:          []string{"go", "postgresql"},
		ExperienceYears: models.IntPtr(8),
		Location:        "Lyon",
		Summary:         "Backend developer, Go services",
		DesiredSalary:   models.FloatPtr(45000),
		EducationLevel:  models.EducationMaster,
	}
}

func newTestHandler(t *testing.T, cfg *Config, profiles ProfileStore, offers OfferStore) *Handler {
	t.Helper()
	scorer, err := compatibility.NewScorer(compatibility.DefaultConfig())
	require.NoError(t, err)
	if cfg == nil {
		cfg = &Config{Timeout: 5 * time.Second, MaxItems: 100, Concurrency: 4}
	}
	return NewHandler(cfg, scorer, profiles, offers, observability.NewNoop(), logger.NewTestLogger(t))
}

func profileIDs(ranked []RankedApplicant) []string {
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ProfileID
	}
	return ids
}

// ==========================
// Execute
// ==========================

func TestExecute_RanksBestFirstWithStableTies(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)
	input := &Input{
		Category: "emploi",
		Offer:    jobOffer(),
		Profiles: []*models.Profile{{ID: "c"}, strongProfile("z"), {ID: "a"}, {ID: "b"}},
	}

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "JOB", out.Category)
	assert.False(t, out.Fallback)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, []string{"z", "a", "b", "c"}, profileIDs(out.RankedApplicants))
	for i, r := range out.RankedApplicants {
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, 50, out.RankedApplicants[1].OverallScore)
	assert.Greater(t, out.RankedApplicants[0].OverallScore, 90)
	assert.Equal(t, "STRONGLY_RECOMMEND", out.RankedApplicants[0].Recommendation)
}

func TestExecute_LoadsByIDAndDeduplicates(t *testing.T) {
	profiles := &fakeProfiles{records: map[string]*models.Profile{"p-1": strongProfile("p-1")}}
	offers := &fakeOffers{records: map[string]*models.Offer{"o-1": jobOffer()}}
	h := newTestHandler(t, nil, profiles, offers)

	out, err := h.Execute(context.Background(), &Input{
		OfferID:    "o-1",
		Profiles:   []*models.Profile{{ID: "inline"}},
		ProfileIDs: []string{"p-1", "ghost", "p-1", "inline"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"p-1", "ghost"}, profiles.asked)
	assert.Equal(t, "JOB", out.Category)
	assert.Equal(t, "o-1", out.OfferID)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, []string{"p-1", "ghost", "inline"}, profileIDs(out.RankedApplicants))
}

func TestExecute_TruncatesToSmallestLimit(t *testing.T) {
	cfg := &Config{Timeout: time.Second, MaxItems: 3, Concurrency: 2}
	h := newTestHandler(t, cfg, nil, nil)
	profiles := []*models.Profile{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}

	out, err := h.Execute(context.Background(), &Input{Category: "emploi", Offer: jobOffer(), Profiles: profiles})
	require.NoError(t, err)
	assert.Len(t, out.RankedApplicants, 3)
	assert.Equal(t, 5, out.Total)

	out, err = h.Execute(context.Background(), &Input{Category: "emploi", Offer: jobOffer(), Profiles: profiles, MaxItems: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, profileIDs(out.RankedApplicants))
}

func TestExecute_UnknownCategoryFallsBack(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	out, err := h.Execute(context.Background(), &Input{Category: "alternance", Offer: jobOffer(), Profiles: []*models.Profile{{ID: "a"}}})
	require.NoError(t, err)
	assert.Equal(t, "JOB", out.Category)
	assert.True(t, out.Fallback)
}

func TestExecute_CategoryFromOffer(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	out, err := h.Execute(context.Background(), &Input{Offer: &models.Offer{Category: "financement"}, Profiles: []*models.Profile{{ID: "a"}}})
	require.NoError(t, err)
	assert.Equal(t, "FUNDING", out.Category)
}

func TestExecute_ProfileLookupFailure(t *testing.T) {
	profiles := &fakeProfiles{err: apperrors.NewProfileLookupFailedError("p-1", errors.New("connection refused"))}
	h := newTestHandler(t, nil, profiles, nil)

	_, err := h.Execute(context.Background(), &Input{Category: "emploi", ProfileIDs: []string{"p-1"}})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeProfileLookupFailed))
}

func TestExecute_ExpiredContextIsScoringTimeout(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Execute(ctx, &Input{Category: "emploi", Offer: jobOffer(), Profiles: []*models.Profile{{ID: "a"}}})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeScoringTimeout))
	assert.True(t, apperrors.Normalize(err).Retryable)
}

// ==========================
// ParseInput
// ==========================

func TestParseInput(t *testing.T) {
	tests := []struct {
		name     string
		vars     string
		wantCode apperrors.ErrorCode
	}{
		{"ids", `{"category":"emploi","offerId":"o-1","profileIds":["a","b"]}`, ""},
		{"inline", `{"offer":{"category":"bourse"},"profiles":[{"id":"a"}],"maxItems":5}`, ""},
		{"malformed", `[`, apperrors.ErrCodeParseError},
		{"no applicants", `{"category":"emploi","offerId":"o-1"}`, apperrors.ErrCodeInputValidationFailed},
		{"zero max items", `{"profileIds":["a"],"maxItems":0}`, apperrors.ErrCodeInputValidationFailed},
		{"empty id", `{"profileIds":[""]}`, apperrors.ErrCodeInputValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := ParseInput(tt.vars)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.NotNil(t, input)
				return
			}
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}
