// internal/workers/matching/calculate-compatibility-score/config.go
package calculatecompatibilityscore

import (
	"time"

	"matching-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func NewConfig(wcfg config.WorkerConfig) *Config {
	return &Config{
		Timeout: config.GetDuration(wcfg.Timeout),
	}
}
