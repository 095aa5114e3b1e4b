// internal/workers/matching/rank-applicants/config.go
package rankapplicants

import (
	"time"

	"matching-workers/internal/common/config"
)

type Config struct {
	Timeout     time.Duration
	MaxItems    int
	Concurrency int
}

func NewConfig(wcfg config.WorkerConfig) *Config {
	return &Config{
		Timeout:     config.GetDuration(wcfg.Timeout),
		MaxItems:    wcfg.MaxItems,
		Concurrency: wcfg.Concurrency,
	}
}
