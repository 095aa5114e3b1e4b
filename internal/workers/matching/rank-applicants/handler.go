// internal/workers/matching/rank-applicants/handler.go
package rankapplicants

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"
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
)

const (
	TaskType = "rank-applicants"
)

var schema = validation.MustSchema(inputSchema)

type ProfileStore interface {
	GetMany(ctx context.Context, ids []string) (map[string]*models.Profile, error)
}

type OfferStore interface {
	Get(ctx context.Context, id string) (*models.Offer, error)
}

type Handler struct {
	config       *Config
	scorer       *compatibility.Scorer
	profiles     ProfileStore
	offers       OfferStore
	obs          *observability.Observability
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, scorer *compatibility.Scorer, profiles ProfileStore, offers OfferStore, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		scorer:   scorer,
		profiles: profiles,
		offers:   offers,
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
		// the job context may be spent; report on a fresh one
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

// Execute scores every applicant against the offer and returns them best
// first. Ties are broken by profile id so the order is stable across runs.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	offer, err := h.resolveOffer(ctx, input)
	if err != nil {
		return nil, err
	}
	profiles, err := h.resolveProfiles(ctx, input)
	if err != nil {
		return nil, err
	}

	name := input.Category
	if name == "" {
		name = offer.Category
	}
	category, ok := compatibility.LookupExternalCategory(name)
	if !ok {
		category = compatibility.MapExternalCategory(name)
		metrics.RecordCategoryFallback(name)
		h.logger.Warn("category fell back to default", map[string]interface{}{
			"error":    apperrors.NewUnsupportedCategoryError(name),
			"category": category.String(),
		})
	}

	ctx, span := h.obs.StartSpan(ctx, "compatibility.rank",
		attribute.String("category", category.String()),
		attribute.String("offer.id", offer.ID),
		attribute.Int("batch.size", len(profiles)),
	)
	defer span.End()

	metrics.BatchSize.Observe(float64(len(profiles)))
	results, err := h.scorer.ScoreBatch(ctx, category, offer, profiles, h.config.Concurrency)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, apperrors.NewScoringTimeoutError(err)
		}
		return nil, err
	}

	ranked := make([]RankedApplicant, len(results))
	for i, r := range results {
		report := r.Report()
		metrics.RecordEvaluation(report.Category, report.Recommendation, report.OverallScore, false, name)
		ranked[i] = RankedApplicant{
			ProfileID:      profiles[i].ID,
			OverallScore:   report.OverallScore,
			Level:          report.Level,
			Recommendation: report.Recommendation,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].OverallScore != ranked[j].OverallScore {
			return ranked[i].OverallScore > ranked[j].OverallScore
		}
		return ranked[i].ProfileID < ranked[j].ProfileID
	})

	if limit := h.limit(input.MaxItems); len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	h.logger.Info("ranking completed", map[string]interface{}{
		"offerId":     offer.ID,
		"category":    category.String(),
		"inputCount":  len(profiles),
		"outputCount": len(ranked),
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return &Output{
		EvaluationID:     uuid.NewString(),
		OfferID:          offer.ID,
		Category:         category.String(),
		Fallback:         !ok,
		RankedApplicants: ranked,
		Total:            len(results),
	}, nil
}

func (h *Handler) limit(requested int) int {
	limit := h.config.MaxItems
	if requested > 0 && (limit <= 0 || requested < limit) {
		limit = requested
	}
	if limit <= 0 {
		return math.MaxInt
	}
	return limit
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
		h.logger.Warn("offer not found, ranking against empty offer", map[string]interface{}{"offerId": input.OfferID})
		return &models.Offer{ID: input.OfferID}, nil
	}
	return o, err
}

// resolveProfiles returns inline profiles followed by loaded ones, in input
// order, skipping duplicate ids. Unknown ids become empty profiles.
func (h *Handler) resolveProfiles(ctx context.Context, input *Input) ([]*models.Profile, error) {
	seen := make(map[string]bool, len(input.Profiles)+len(input.ProfileIDs))
	out := make([]*models.Profile, 0, len(input.Profiles)+len(input.ProfileIDs))

	for _, p := range input.Profiles {
		if p == nil {
			p = &models.Profile{}
		}
		if p.ID != "" {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
		}
		out = append(out, p)
	}

	var ids []string
	for _, id := range input.ProfileIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return out, nil
	}

	found := map[string]*models.Profile{}
	if h.profiles != nil {
		var err error
		if found, err = h.profiles.GetMany(ctx, ids); err != nil {
			return nil, err
		}
	}

	missing := 0
	for _, id := range ids {
		p, ok := found[id]
		if !ok {
			missing++
			p = &models.Profile{ID: id}
		}
		out = append(out, p)
	}
	if missing > 0 {
		h.logger.Warn("profiles not found, ranking as empty", map[string]interface{}{"missing": missing})
	}
	return out, nil
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
		"total":        output.Total,
	})
}
