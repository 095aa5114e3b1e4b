// internal/workers/matching/resolve-offer-category/handler.go
package resolveoffercategory

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/compatibility"
	"matching-workers/internal/models"
)

const (
	TaskType = "resolve-offer-category"
)

var schema = validation.MustSchema(inputSchema)

// Handler maps a presentation-layer category name onto the engine's
// category and returns its criteria, so a process can route on it before
// any scoring happens.
type Handler struct {
	config       *Config
	scorer       *compatibility.Scorer
	obs          *observability.Observability
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, scorer *compatibility.Scorer, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		scorer: scorer,
		obs:    obs,
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := ParseInput(job.Variables)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		h.obs.RecordJobProcessed(ctx, TaskType, "failed")
		return
	}

	output := h.Execute(input)

	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
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

// Execute never fails: unknown names resolve to the default category with
// Fallback set.
func (h *Handler) Execute(input *Input) *Output {
	category, ok := compatibility.LookupExternalCategory(input.CategoryName)
	if !ok {
		category = compatibility.MapExternalCategory(input.CategoryName)
		metrics.RecordCategoryFallback(input.CategoryName)
		h.logger.Warn("category fell back to default", map[string]interface{}{
			"error":    apperrors.NewUnsupportedCategoryError(input.CategoryName),
			"category": category.String(),
		})
	}

	out := &Output{Category: category.String(), Fallback: !ok, Criteria: []models.CriterionReport{}}
	if cfg, found := h.scorer.Criteria(category); found {
		for _, def := range cfg.Criteria {
			out.Criteria = append(out.Criteria, models.CriterionReport{
				Key:         def.Key,
				Label:       def.Label,
				Weight:      def.Weight,
				Description: def.Description,
			})
		}
	}

	h.logger.Debug("category resolved", map[string]interface{}{
		"categoryName": input.CategoryName,
		"category":     out.Category,
		"fallback":     out.Fallback,
	})
	return out
}
