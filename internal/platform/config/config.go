package config

import (
	"os"
	"strings"
	"time"
)

// Config captures process-level configuration. Empty optional values select
// the in-process defaults (memory stores, seeded registry, no-op audit) so a
// bare `go run ./cmd/server` works out of the box.
type Config struct {
	Addr string

	// RedisURL switches the client/classification/workflow stores from
	// memory to Redis when set.
	RedisURL string

	// RegistryDSN switches the client registry collaborator from the seeded
	// in-memory registry to PostgreSQL when set.
	RegistryDSN string

	// Upstream collaborator endpoints. Empty endpoints leave the in-process
	// stub implementations active.
	DocumentsBaseURL    string
	AnalyzerBaseURL     string
	DataQualityBaseURL  string
	CompletenessBaseURL string

	// KafkaBrokers enables the audit publisher when non-empty.
	KafkaBrokers []string

	// StepTimeout bounds a single workflow step execution.
	StepTimeout time.Duration

	// UpstreamTimeout bounds individual collaborator HTTP calls.
	UpstreamTimeout time.Duration
}

// FromEnv builds Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:                getenv("ICLM_ADDR", ":8080"),
		RedisURL:            os.Getenv("ICLM_REDIS_URL"),
		RegistryDSN:         os.Getenv("ICLM_REGISTRY_DSN"),
		DocumentsBaseURL:    os.Getenv("ICLM_DOCS_BASE_URL"),
		AnalyzerBaseURL:     os.Getenv("ICLM_ANALYZER_URL"),
		DataQualityBaseURL:  os.Getenv("ICLM_DQ_URL"),
		CompletenessBaseURL: os.Getenv("ICLM_COMPLETENESS_URL"),
		StepTimeout:         getduration("ICLM_STEP_TIMEOUT", 30*time.Second),
		UpstreamTimeout:     getduration("ICLM_HTTP_TIMEOUT", 10*time.Second),
	}
	if brokers := os.Getenv("ICLM_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
