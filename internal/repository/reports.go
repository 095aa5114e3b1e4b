package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/models"
)

// ReportCache memoizes reports by category and record versions. Scoring is
// deterministic, so a versioned key never goes stale; the TTL only bounds
// memory. Cache failures are logged and treated as misses.
type ReportCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewReportCache(client redis.Cmdable, ttl time.Duration, log logger.Logger) *ReportCache {
	return &ReportCache{client: client, ttl: ttl, logger: log}
}

// ReportKey builds the memoization key. ok is false when either record lacks
// an id or a version, in which case the report must not be cached.
func ReportKey(category string, profile *models.Profile, offer *models.Offer) (key string, ok bool) {
	if profile == nil || offer == nil {
		return "", false
	}
	if profile.ID == "" || profile.Version == "" || offer.ID == "" || offer.Version == "" {
		return "", false
	}
	return fmt.Sprintf("compat:report:%s:%s@%s:%s@%s",
		category, profile.ID, profile.Version, offer.ID, offer.Version), true
}

// Get returns a memoized report. ok is false on miss or error.
func (c *ReportCache) Get(ctx context.Context, key string) (report *models.CompatibilityReport, ok bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues("report", "miss").Inc()
		return nil, false
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues("report", "error").Inc()
		c.logger.Warn("report cache read failed", map[string]interface{}{
			"key":   key,
			"error": apperrors.NewCacheUnavailableError(err),
		})
		return nil, false
	}

	var r models.CompatibilityReport
	if err := json.Unmarshal(data, &r); err != nil {
		metrics.CacheLookups.WithLabelValues("report", "error").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("report", "hit").Inc()
	return &r, true
}

// Set stores a report under key.
func (c *ReportCache) Set(ctx context.Context, key string, report models.CompatibilityReport) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("report cache write failed", map[string]interface{}{
			"key":   key,
			"error": apperrors.NewCacheUnavailableError(err),
		})
	}
}
