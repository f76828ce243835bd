package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 3*time.Second, cfg.StorageTimeout)

	assert.Equal(t, 24*time.Hour, cfg.ReportWindow)
	assert.Equal(t, 3*time.Hour, cfg.MLWindow)
	assert.Equal(t, 3*time.Hour, cfg.ForecastLookahead)
	assert.Equal(t, 0.01, cfg.BBoxHalfWidth)
	assert.Equal(t, 10.0, cfg.HeavyRainMM)
	assert.Equal(t, 80.0, cfg.HumidityHighPct)
	assert.Equal(t, []string{"Knee-deep", "Waist-deep", "Chest-deep", "Above head"}, cfg.HighWaterLevels)

	assert.True(t, cfg.MLEnabled)
	assert.Empty(t, cfg.ModelPath)

	assert.Equal(t, "data/nlp/lexicon.json", cfg.NLPLexiconPath)
	assert.Equal(t, 4, cfg.NLPWorkers)
	assert.Equal(t, 64, cfg.NLPQueueSize)
	assert.Equal(t, 2*time.Second, cfg.NLPTimeout)
	assert.Equal(t, 512, cfg.NLPCacheSize)

	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "flood-reports", cfg.KafkaReportTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("MYSQL_DSN", "user:pass@tcp(db:3306)/flood?parseTime=true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("STORAGE_TIMEOUT", "5s")
	t.Setenv("REPORT_WINDOW", "12h")
	t.Setenv("ML_WINDOW", "1h")
	t.Setenv("FORECAST_LOOKAHEAD", "6h")
	t.Setenv("BBOX_HALF_WIDTH", "0.02")
	t.Setenv("HEAVY_RAIN_MM", "15")
	t.Setenv("HUMIDITY_HIGH_PCT", "85")
	t.Setenv("HIGH_WATER_LEVELS", "Waist-deep,Chest-deep,Above head")
	t.Setenv("ML_ENABLED", "false")
	t.Setenv("MODEL_PATH", "data/ml/model.onnx")
	t.Setenv("NLP_WORKERS", "8")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "user:pass@tcp(db:3306)/flood?parseTime=true", cfg.MySQLDSN)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.StorageTimeout)
	assert.Equal(t, 12*time.Hour, cfg.ReportWindow)
	assert.Equal(t, time.Hour, cfg.MLWindow)
	assert.Equal(t, 6*time.Hour, cfg.ForecastLookahead)
	assert.Equal(t, 0.02, cfg.BBoxHalfWidth)
	assert.Equal(t, 15.0, cfg.HeavyRainMM)
	assert.Equal(t, 85.0, cfg.HumidityHighPct)
	assert.Equal(t, []string{"Waist-deep", "Chest-deep", "Above head"}, cfg.HighWaterLevels)
	assert.False(t, cfg.MLEnabled)
	assert.Equal(t, "data/ml/model.onnx", cfg.ModelPath)
	assert.Equal(t, 8, cfg.NLPWorkers)
	assert.True(t, cfg.KafkaEnabled, "brokers imply enabled")
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeStorageTimeout(t *testing.T) {
	t.Setenv("STORAGE_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_TIMEOUT")
}

func TestLoad_InvalidBBox(t *testing.T) {
	t.Setenv("BBOX_HALF_WIDTH", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BBOX_HALF_WIDTH")
}

func TestLoad_UnknownHighWaterLevel(t *testing.T) {
	t.Setenv("HIGH_WATER_LEVELS", "Knee-deep,Flooded")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HIGH_WATER_LEVELS")
}

func TestLoad_InvalidHumidity(t *testing.T) {
	t.Setenv("HUMIDITY_HIGH_PCT", "120")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HUMIDITY_HIGH_PCT")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_InvalidNLPWorkers(t *testing.T) {
	t.Setenv("NLP_WORKERS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NLP_WORKERS")
}
