// internal/workers/matching/resolve-offer-category/config.go
package resolveoffercategory

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
