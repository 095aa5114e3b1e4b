// internal/workers/matching/calculate-compatibility-score/handler.go
package calculatecompatibilityscore

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/compatibility"
	"matching-workers/internal/models"
	"matching-workers/internal/repository"
)

const (
	TaskType = "calculate-compatibility-score"
)

var schema = validation.MustSchema(inputSchema)

type ProfileStore interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
}

type OfferStore interface {
	Get(ctx context.Context, id string) (*models.Offer, error)
}

type ReportCache interface {
	Get(ctx context.Context, key string) (*models.CompatibilityReport, bool)
	Set(ctx context.Context, key string, report models.CompatibilityReport)
}

type Handler struct {
	config       *Config
	scorer       *compatibility.Scorer
	profiles     ProfileStore
	offers       OfferStore
	cache        ReportCache
	obs          *observability.Observability
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, scorer *compatibility.Scorer, profiles ProfileStore, offers OfferStore, cache ReportCache, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		scorer:   scorer,
		profiles: profiles,
		offers:   offers,
		cache:    cache,
		obs:      obs,
		errorHandler: apperrors.NewErrorHandler(log, func(taskType, code string) {
			metrics.WorkerJobsFailed.WithLabelValues(taskType, code).Inc()
		}),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := ParseInput(job.Variables)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		h.obs.RecordJobProcessed(ctx, TaskType, "failed")
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		// a slow store can spend the job context; report on a fresh one
		reportCtx, reportCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer reportCancel()
		h.errorHandler.HandleJobError(reportCtx, client, job, err)
		h.obs.RecordJobProcessed(reportCtx, TaskType, "failed")
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "completed")
}

// ParseInput validates and decodes job variables.
func ParseInput(variables string) (*Input, error) {
	var raw interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return nil, apperrors.NewParseError(err)
	}

	result, err := schema.Validate(raw)
	if err != nil {
		return nil, apperrors.NewInputValidationFailedError(err.Error())
	}
	if !result.Valid {
		return nil, apperrors.NewInputValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewParseError(err)
	}
	return &input, nil
}

// Execute resolves both records and scores them. Missing records score as
// empty ones; only lookup failures are returned as errors.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}
	offer, err := h.resolveOffer(ctx, input)
	if err != nil {
		return nil, err
	}

	categoryName := input.Category
	if categoryName == "" {
		categoryName = offer.Category
	}

	key, cacheable := repository.ReportKey(strings.ToLower(strings.TrimSpace(categoryName)), profile, offer)
	if cacheable && h.cache != nil {
		if report, ok := h.cache.Get(ctx, key); ok {
			h.logger.Debug("report served from cache", map[string]interface{}{"key": key})
			return &Output{EvaluationID: uuid.NewString(), Cached: true, Report: *report}, nil
		}
	}

	ctx, span := h.obs.StartSpan(ctx, "compatibility.score",
		attribute.String("category.requested", categoryName),
		attribute.String("profile.id", profile.ID),
		attribute.String("offer.id", offer.ID),
	)
	result := h.scorer.ScoreExternal(categoryName, profile, offer)
	span.SetAttributes(
		attribute.String("category", result.Category.String()),
		attribute.Int("score.overall", result.OverallScore),
	)
	span.End()

	if result.Fallback {
		h.logger.Warn("category fell back to default", map[string]interface{}{
			"error":    apperrors.NewUnsupportedCategoryError(categoryName),
			"category": result.Category.String(),
		})
	}

	report := result.Report()
	metrics.RecordEvaluation(report.Category, report.Recommendation, report.OverallScore, report.Fallback, categoryName)
	h.obs.RecordScore(ctx, report.Category, report.OverallScore)

	if cacheable && h.cache != nil {
		h.cache.Set(ctx, key, report)
	}

	h.logger.Info("compatibility score calculated", map[string]interface{}{
		"profileId":      profile.ID,
		"offerId":        offer.ID,
		"category":       report.Category,
		"score":          report.OverallScore,
		"recommendation": report.Recommendation,
	})

	return &Output{EvaluationID: uuid.NewString(), Report: report}, nil
}

func (h *Handler) resolveProfile(ctx context.Context, input *Input) (*models.Profile, error) {
	if input.Profile != nil {
		return input.Profile, nil
	}
	if input.ProfileID == "" || h.profiles == nil {
		return &models.Profile{ID: input.ProfileID}, nil
	}

	p, err := h.profiles.Get(ctx, input.ProfileID)
	if apperrors.HasCode(err, apperrors.ErrCodeProfileNotFound) {
		h.logger.Warn("profile not found, scoring as empty", map[string]interface{}{"profileId": input.ProfileID})
		return &models.Profile{ID: input.ProfileID}, nil
	}
	return p, err
}

func (h *Handler) resolveOffer(ctx context.Context, input *Input) (*models.Offer, error) {
	if input.Offer != nil {
		return input.Offer, nil
	}
	if input.OfferID == "" || h.offers == nil {
		return &models.Offer{ID: input.OfferID}, nil
	}

	o, err := h.offers.Get(ctx, input.OfferID)
	if apperrors.HasCode(err, apperrors.ErrCodeOfferNotFound) {
		h.logger.Warn("offer not found, scoring against empty offer", map[string]interface{}{"offerId": input.OfferID})
		return &models.Offer{ID: input.OfferID}, nil
	}
	return o, err
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":       job.Key,
		"evaluationId": output.EvaluationID,
		"score":        output.Report.OverallScore,
	})
}
