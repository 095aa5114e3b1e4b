// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"matching-workers/internal/common/config"
	"matching-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// HandlerFunc is the job callback signature of the Zeebe client.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// WorkerPool opens job workers and closes them together on shutdown.
type WorkerPool struct {
	client  zbc.Client
	logger  logger.Logger
	workers map[string]worker.JobWorker
}

func NewWorkerPool(client zbc.Client, log logger.Logger) *WorkerPool {
	return &WorkerPool{
		client:  client,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for taskType unless the worker is disabled.
func (p *WorkerPool) Start(taskType string, wcfg config.WorkerConfig, handler HandlerFunc) {
	if !wcfg.Enabled {
		p.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return
	}

	p.workers[taskType] = p.client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	p.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
}

// TaskTypes lists the started workers.
func (p *WorkerPool) TaskTypes() []string {
	out := make([]string, 0, len(p.workers))
	for t := range p.workers {
		out = append(out, t)
	}
	return out
}

// Close stops polling and waits for in-flight jobs of every worker.
func (p *WorkerPool) Close() {
	for taskType, w := range p.workers {
		p.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		w.Close()
		w.AwaitClose()
	}
}
