// Package config loads service settings from environment variables,
// applying defaults and validating before anything else starts.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	MySQLDSN        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// StorageTimeout bounds every individual store call so a slow database
	// degrades one request instead of hanging the caller.
	StorageTimeout time.Duration

	// Risk assessment windows and thresholds.
	ReportWindow      time.Duration // threshold evaluator recency window
	MLWindow          time.Duration // evidence gatherer feature window
	ForecastLookahead time.Duration
	BBoxHalfWidth     float64  // degrees
	HeavyRainMM       float64  // mm/h
	HumidityHighPct   float64  // %
	HighWaterLevels   []string // water levels that trigger High on their own

	// ML predictor artifacts. All optional; absence selects the heuristic.
	MLEnabled    bool
	ModelPath    string
	ScalerPath   string
	FeaturesPath string
	ONNXLibPath  string

	// NLP description scorer.
	NLPLexiconPath string
	NLPWorkers     int
	NLPQueueSize   int
	NLPTimeout     time.Duration
	NLPCacheSize   int

	// Kafka report-event publishing (feature-flagged).
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaReportTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset and validating the result.
func Load() (*Config, error) {
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	storageTimeout, err := envDuration("STORAGE_TIMEOUT", 3*time.Second)
	if err != nil {
		return nil, err
	}
	reportWindow, err := envDuration("REPORT_WINDOW", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	mlWindow, err := envDuration("ML_WINDOW", 3*time.Hour)
	if err != nil {
		return nil, err
	}
	lookahead, err := envDuration("FORECAST_LOOKAHEAD", 3*time.Hour)
	if err != nil {
		return nil, err
	}
	nlpTimeout, err := envDuration("NLP_TIMEOUT", 2*time.Second)
	if err != nil {
		return nil, err
	}

	bboxHalfWidth, err := envFloat("BBOX_HALF_WIDTH", 0.01)
	if err != nil {
		return nil, err
	}
	heavyRain, err := envFloat("HEAVY_RAIN_MM", 10)
	if err != nil {
		return nil, err
	}
	humidityHigh, err := envFloat("HUMIDITY_HIGH_PCT", 80)
	if err != nil {
		return nil, err
	}

	nlpWorkers, err := envInt("NLP_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	nlpQueue, err := envInt("NLP_QUEUE_SIZE", 64)
	if err != nil {
		return nil, err
	}
	nlpCache, err := envInt("NLP_CACHE_SIZE", 512)
	if err != nil {
		return nil, err
	}

	highWater := splitCSV(envOrDefault("HIGH_WATER_LEVELS",
		strings.Join([]string{
			domain.WaterKneeDeep,
			domain.WaterWaistDeep,
			domain.WaterChestDeep,
			domain.WaterAboveHead,
		}, ",")))

	kafkaBrokers := splitCSV(envOrDefault("KAFKA_BROKERS", ""))
	kafkaEnabled := len(kafkaBrokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		MySQLDSN:        envOrDefault("MYSQL_DSN", "rainsafe:rainsafe@tcp(localhost:3306)/rainsafe?parseTime=true"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		StorageTimeout:  storageTimeout,

		ReportWindow:      reportWindow,
		MLWindow:          mlWindow,
		ForecastLookahead: lookahead,
		BBoxHalfWidth:     bboxHalfWidth,
		HeavyRainMM:       heavyRain,
		HumidityHighPct:   humidityHigh,
		HighWaterLevels:   highWater,

		MLEnabled:    envOrDefault("ML_ENABLED", "true") == "true",
		ModelPath:    envOrDefault("MODEL_PATH", ""),
		ScalerPath:   envOrDefault("SCALER_PATH", ""),
		FeaturesPath: envOrDefault("FEATURES_PATH", ""),
		ONNXLibPath:  envOrDefault("ONNX_LIB_PATH", ""),

		NLPLexiconPath: envOrDefault("NLP_LEXICON_PATH", "data/nlp/lexicon.json"),
		NLPWorkers:     nlpWorkers,
		NLPQueueSize:   nlpQueue,
		NLPTimeout:     nlpTimeout,
		NLPCacheSize:   nlpCache,

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     kafkaBrokers,
		KafkaReportTopic: envOrDefault("KAFKA_REPORT_TOPIC", "flood-reports"),
	}

	if cfg.MySQLDSN == "" {
		return nil, fmt.Errorf("MYSQL_DSN is required")
	}
	if cfg.BBoxHalfWidth <= 0 {
		return nil, fmt.Errorf("BBOX_HALF_WIDTH must be positive")
	}
	if cfg.HeavyRainMM <= 0 {
		return nil, fmt.Errorf("HEAVY_RAIN_MM must be positive")
	}
	if cfg.HumidityHighPct <= 0 || cfg.HumidityHighPct > 100 {
		return nil, fmt.Errorf("HUMIDITY_HIGH_PCT must be in (0, 100]")
	}
	if len(cfg.HighWaterLevels) == 0 {
		return nil, fmt.Errorf("HIGH_WATER_LEVELS must not be empty")
	}
	for _, w := range cfg.HighWaterLevels {
		if !domain.ValidWaterLevel(w) || w == "" {
			return nil, fmt.Errorf("HIGH_WATER_LEVELS contains unknown level %q", w)
		}
	}
	if cfg.NLPWorkers < 1 {
		return nil, fmt.Errorf("NLP_WORKERS must be at least 1")
	}
	if cfg.NLPQueueSize < 1 {
		return nil, fmt.Errorf("NLP_QUEUE_SIZE must be at least 1")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
