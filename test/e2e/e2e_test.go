// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/common/config"
	"matching-workers/internal/common/database"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/compatibility"
	"matching-workers/internal/repository"

	ccs "matching-workers/internal/workers/matching/calculate-compatibility-score"
	ra "matching-workers/internal/workers/matching/rank-applicants"
)

// These tests need Postgres, Elasticsearch and Redis from configs/config.yaml.
// Run with E2E_TESTS=1.

type stores struct {
	pg       *database.PostgresClient
	es       *database.ElasticsearchClient
	redis    *database.RedisClient
	profiles *repository.ProfileRepository
	offers   *repository.OfferRepository
	reports  *repository.ReportCache
}

func setup(t *testing.T) *stores {
	t.Helper()
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("set E2E_TESTS=1 to run end-to-end tests")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	require.NoError(t, pg.Ping(ctx), "PostgreSQL ping failed")
	t.Cleanup(func() { pg.Close() })

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)
	require.NoError(t, es.Ping(ctx), "Elasticsearch ping failed")

	rdb := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, rdb.Ping(ctx), "Redis ping failed")
	t.Cleanup(func() { rdb.Close() })

	log := logger.NewTestLogger(t)
	return &stores{
		pg:       pg,
		es:       es,
		redis:    rdb,
		profiles: repository.NewProfileRepository(pg.DB, rdb.Client, time.Minute, log),
		offers:   repository.NewOfferRepository(es.Client, es.OffersIndex, log),
		reports:  repository.NewReportCache(rdb.Client, time.Minute, log),
	}
}

const createProfiles = `
CREATE TABLE IF NOT EXISTS applicant_profiles (
	id                     TEXT PRIMARY KEY,
	version                TEXT,
	skills                 TEXT[],
	experience_years       INTEGER,
	location               TEXT,
	desired_salary         DOUBLE PRECISION,
	education_level        TEXT,
	summary                TEXT,
	expertise              TEXT[],
	portfolio_urls         TEXT[],
	availability_hours     INTEGER,
	languages              TEXT[],
	sectors                TEXT[],
	business_plan_sections TEXT[],
	own_contribution       DOUBLE PRECISION,
	requested_amount       DOUBLE PRECISION,
	project_stage          TEXT,
	target_market_size     DOUBLE PRECISION,
	team_size              INTEGER,
	team_experience_years  INTEGER,
	guarantee_value        DOUBLE PRECISION
)`

func seedProfile(t *testing.T, db *sql.DB, id string, skills []string, years int) {
	t.Helper()
	_, err := db.Exec(createProfiles)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO applicant_profiles (id, version, skills, experience_years, location, education_level, summary)
		VALUES ($1, '1', $2, $3, 'Lyon', 'master', 'Backend developer building services')
		ON CONFLICT (id) DO UPDATE SET skills = EXCLUDED.skills, experience_years = EXCLUDED.experience_years`,
		id, pq.Array(skills), years)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = db.Exec(`DELETE FROM applicant_profiles WHERE id = $1`, id) })
}

func seedOffer(t *testing.T, s *stores, id string) {
	t.Helper()
	doc := `{
		"category": "emploi",
		"title": "Backend developer",
		"description": "Services on PostgreSQL",
		"requiredSkills": ["go", "postgresql"],
		"minExperienceYears": 4,
		"location": "Lyon",
		"requiredEducation": "bachelor"
	}`
	res, err := esapi.IndexRequest{
		Index:      s.es.OffersIndex,
		DocumentID: id,
		Body:       strings.NewReader(doc),
		Refresh:    "true",
	}.Do(context.Background(), s.es.Client)
	require.NoError(t, err)
	defer res.Body.Close()
	require.False(t, res.IsError(), "index offer: %s", res.Status())

	t.Cleanup(func() {
		if res, err := s.es.Client.Delete(s.es.OffersIndex, id); err == nil {
			res.Body.Close()
		}
	})
}

func newScorer(t *testing.T) *compatibility.Scorer {
	t.Helper()
	scorer, err := compatibility.NewScorer(compatibility.DefaultConfig())
	require.NoError(t, err)
	return scorer
}

func TestCalculateCompatibilityScore_E2E(t *testing.T) {
	s := setup(t)
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	profileID, offerID := "e2e-p-"+suffix, "e2e-o-"+suffix

	seedProfile(t, s.pg.DB, profileID, []string{"go", "postgresql"}, 6)
	seedOffer(t, s, offerID)

	handler := ccs.NewHandler(&ccs.Config{Timeout: 10 * time.Second}, newScorer(t),
		s.profiles, s.offers, s.reports, observability.NewNoop(), logger.NewTestLogger(t))

	input := &ccs.Input{ProfileID: profileID, OfferID: offerID}
	first, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "JOB", first.Report.Category)
	assert.False(t, first.Cached)
	assert.GreaterOrEqual(t, first.Report.OverallScore, 80)
	assert.Len(t, first.Report.SubScores, 6)

	second, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Report, second.Report)
}

func TestRankApplicants_E2E(t *testing.T) {
	s := setup(t)
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	strong, weak, offerID := "e2e-strong-"+suffix, "e2e-weak-"+suffix, "e2e-o-"+suffix

	seedProfile(t, s.pg.DB, strong, []string{"go", "postgresql"}, 8)
	seedProfile(t, s.pg.DB, weak, []string{"php"}, 1)
	seedOffer(t, s, offerID)

	handler := ra.NewHandler(&ra.Config{Timeout: 10 * time.Second, MaxItems: 10, Concurrency: 4}, newScorer(t),
		s.profiles, s.offers, observability.NewNoop(), logger.NewTestLogger(t))

	out, err := handler.Execute(context.Background(), &ra.Input{
		OfferID:    offerID,
		ProfileIDs: []string{weak, "e2e-missing-" + suffix, strong},
	})
	require.NoError(t, err)

	require.Len(t, out.RankedApplicants, 3)
	assert.Equal(t, strong, out.RankedApplicants[0].ProfileID)
	assert.Equal(t, 1, out.RankedApplicants[0].Rank)
	assert.Equal(t, "JOB", out.Category)
}
