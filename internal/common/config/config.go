// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Scoring       ScoringConfig           `mapstructure:"scoring"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name         string `mapstructure:"name"`
	Version      string `mapstructure:"version"`
	Environment  string `mapstructure:"environment"`
	HTTPPort     int    `mapstructure:"http_port"`
	RegistryPath string `mapstructure:"registry_path"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses   []string `mapstructure:"addresses"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	OffersIndex string   `mapstructure:"offers_index"`
	MaxRetries  int      `mapstructure:"max_retries"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
	MaxItems      int  `mapstructure:"max_items"`   // Batch workers only
	Concurrency   int  `mapstructure:"concurrency"` // Batch workers only
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ObservabilityConfig holds OpenTelemetry settings. An empty JaegerEndpoint
// disables trace export.
type ObservabilityConfig struct {
	ServiceName    string  `mapstructure:"service_name"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

// ScoringConfig carries overrides for the compatibility engine. Evaluators
// are code; only labels, weights, thresholds and the score scale can be
// changed here.
type ScoringConfig struct {
	StrengthThreshold int                          `mapstructure:"strength_threshold"`
	WeaknessThreshold int                          `mapstructure:"weakness_threshold"`
	Criteria          map[string][]CriterionConfig `mapstructure:"criteria"`
	Scale             []ScaleEntryConfig           `mapstructure:"scale"`
	CacheTTL          int                          `mapstructure:"cache_ttl"`         // seconds
	ProfileCacheTTL   int                          `mapstructure:"profile_cache_ttl"` // seconds
}

type CriterionConfig struct {
	Key         string  `mapstructure:"key"`
	Label       string  `mapstructure:"label"`
	Weight      float64 `mapstructure:"weight"`
	Description string  `mapstructure:"description"`
}

type ScaleEntryConfig struct {
	MinThreshold   int    `mapstructure:"min_threshold"`
	Level          string `mapstructure:"level"`
	Recommendation string `mapstructure:"recommendation"`
	Action         string `mapstructure:"action"`
	Description    string `mapstructure:"description"`
}
