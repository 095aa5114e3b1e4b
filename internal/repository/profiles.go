// Package repository loads profiles and offers for the scoring workers and
// memoizes their reports.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/models"
)

const profileColumns = `id, version, skills, experience_years, location, desired_salary,
	education_level, summary, expertise, portfolio_urls, availability_hours,
	languages, sectors, business_plan_sections, own_contribution, requested_amount,
	project_stage, target_market_size, team_size, team_experience_years, guarantee_value`

const (
	queryProfileByID  = `SELECT ` + profileColumns + ` FROM applicant_profiles WHERE id = $1`
	queryProfilesByID = `SELECT ` + profileColumns + ` FROM applicant_profiles WHERE id = ANY($1)`
)

const profileKeyPrefix = "profile:"

// ProfileRepository reads applicant profiles from Postgres through a Redis
// read-through cache. A nil cache disables caching.
type ProfileRepository struct {
	db     *sql.DB
	cache  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewProfileRepository(db *sql.DB, cache redis.Cmdable, ttl time.Duration, log logger.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, cache: cache, ttl: ttl, logger: log}
}

// Get returns one profile. A missing row is PROFILE_NOT_FOUND; a database
// failure is the retryable PROFILE_LOOKUP_FAILED.
func (r *ProfileRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	if p := r.fromCache(ctx, id); p != nil {
		return p, nil
	}

	p, err := scanProfile(r.db.QueryRowContext(ctx, queryProfileByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewProfileNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewProfileLookupFailedError(id, err)
	}

	r.toCache(ctx, p)
	return p, nil
}

// GetMany returns the profiles found among ids, keyed by id. Ids without a
// row are absent from the map.
func (r *ProfileRepository) GetMany(ctx context.Context, ids []string) (map[string]*models.Profile, error) {
	found := make(map[string]*models.Profile, len(ids))
	seen := make(map[string]struct{}, len(ids))
	var missing []string
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p := r.fromCache(ctx, id); p != nil {
			found[id] = p
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return found, nil
	}

	rows, err := r.db.QueryContext(ctx, queryProfilesByID, pq.Array(missing))
	if err != nil {
		return nil, apperrors.NewProfileLookupFailedError(missing[0], err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, apperrors.NewProfileLookupFailedError(missing[0], err)
		}
		found[p.ID] = p
		r.toCache(ctx, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewProfileLookupFailedError(missing[0], err)
	}

	return found, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row scanner) (*models.Profile, error) {
	var (
		p                                            models.Profile
		version, location, education, summary, stage sql.NullString
		experience, hours, teamSize, teamExperience  sql.NullInt64
		salary, own, requested, market, guarantee    sql.NullFloat64
		skills, expertise, portfolio, languages      pq.StringArray
		sectors, planSections                        pq.StringArray
	)

	err := row.Scan(
		&p.ID, &version, &skills, &experience, &location, &salary,
		&education, &summary, &expertise, &portfolio, &hours,
		&languages, &sectors, &planSections, &own, &requested,
		&stage, &market, &teamSize, &teamExperience, &guarantee,
	)
	if err != nil {
		return nil, err
	}

	p.Version = version.String
	p.Location = location.String
	p.EducationLevel = education.String
	p.Summary = summary.String
	p.ProjectStage = stage.String

	p.Skills = skills
	p.Expertise = expertise
	p.PortfolioURLs = portfolio
	p.Languages = languages
	p.Sectors = sectors
	p.BusinessPlanSections = planSections

	p.ExperienceYears = nullInt(experience)
	p.AvailabilityHours = nullInt(hours)
	p.TeamSize = nullInt(teamSize)
	p.TeamExperienceYears = nullInt(teamExperience)

	p.DesiredSalary = nullFloat(salary)
	p.OwnContribution = nullFloat(own)
	p.RequestedAmount = nullFloat(requested)
	p.TargetMarketSize = nullFloat(market)
	p.GuaranteeValue = nullFloat(guarantee)

	return &p, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func (r *ProfileRepository) fromCache(ctx context.Context, id string) *models.Profile {
	if r.cache == nil {
		return nil
	}

	data, err := r.cache.Get(ctx, profileKeyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			metrics.CacheLookups.WithLabelValues("profile", "error").Inc()
			r.logger.Warn("profile cache read failed", map[string]interface{}{
				"profileId": id,
				"error":     apperrors.NewCacheUnavailableError(err),
			})
			return nil
		}
		metrics.CacheLookups.WithLabelValues("profile", "miss").Inc()
		return nil
	}

	var p models.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		metrics.CacheLookups.WithLabelValues("profile", "error").Inc()
		return nil
	}
	metrics.CacheLookups.WithLabelValues("profile", "hit").Inc()
	return &p
}

func (r *ProfileRepository) toCache(ctx context.Context, p *models.Profile) {
	if r.cache == nil {
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, profileKeyPrefix+p.ID, data, r.ttl).Err(); err != nil {
		r.logger.Warn("profile cache write failed", map[string]interface{}{
			"profileId": p.ID,
			"error":     apperrors.NewCacheUnavailableError(err),
		})
	}
}
