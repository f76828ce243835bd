// Command api serves the flood risk assessment backend: report submission,
// hybrid risk queries, alert intake, the dashboard feed, and operational
// endpoints.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rainsafe/rainsafe-backend/internal/adapter/httpapi"
	kafkaadapter "github.com/rainsafe/rainsafe-backend/internal/adapter/kafka"
	"github.com/rainsafe/rainsafe-backend/internal/config"
	"github.com/rainsafe/rainsafe-backend/internal/nlp"
	"github.com/rainsafe/rainsafe-backend/internal/observability"
	"github.com/rainsafe/rainsafe-backend/internal/predictor"
	"github.com/rainsafe/rainsafe-backend/internal/risk"
	"github.com/rainsafe/rainsafe-backend/internal/storage/mysql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mysql.Open(ctx, cfg.MySQLDSN)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := mysql.EnsureSchema(ctx, db); err != nil {
		logger.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	reportStore := mysql.NewReportStore(db)
	weatherStore := mysql.NewWeatherStore(db)

	// ML predictor (feature-flagged via ML_ENABLED). Artifact failures fall
	// back to the heuristic inside Load; disabling drops the ML assessment
	// entirely.
	var p predictor.Predictor
	if cfg.MLEnabled {
		p = predictor.Load(predictor.Artifacts{
			ModelPath:    cfg.ModelPath,
			ScalerPath:   cfg.ScalerPath,
			FeaturesPath: cfg.FeaturesPath,
			ONNXLibPath:  cfg.ONNXLibPath,
		}, predictor.NewHeuristic(cfg.HeavyRainMM, cfg.HumidityHighPct), logger)
		logger.Info("predictor ready", "source", p.Source())
	} else {
		logger.Info("ml assessment disabled")
	}

	// NLP scorer. A missing lexicon degrades scoring to unknown severity
	// rather than failing startup.
	var scorer nlp.Scorer
	lex, err := nlp.LoadLexicon(cfg.NLPLexiconPath)
	if err != nil {
		logger.Warn("nlp lexicon unavailable, scoring degraded", "error", err, "path", cfg.NLPLexiconPath)
		scorer = nlp.NewAnalyzer(nil)
	} else {
		scorer = nlp.NewCachedScorer(nlp.NewAnalyzer(lex), cfg.NLPCacheSize)
	}
	pool := nlp.NewPool(scorer, cfg.NLPWorkers, cfg.NLPQueueSize, cfg.NLPTimeout, metrics, logger)
	defer pool.Close()

	// Report event publishing (feature-flagged via KAFKA_BROKERS).
	var publisher httpapi.Publisher
	if cfg.KafkaEnabled {
		kp := kafkaadapter.NewPublisher(cfg, logger)
		defer kp.Close()
		publisher = kp
		logger.Info("report publishing enabled", "topic", cfg.KafkaReportTopic)
	} else {
		logger.Info("report publishing disabled")
	}

	engine := risk.NewEngine(
		risk.NewEvaluator(reportStore, cfg.ReportWindow, cfg.BBoxHalfWidth, cfg.StorageTimeout, cfg.HighWaterLevels, metrics, logger),
		risk.NewGatherer(reportStore, weatherStore, cfg.MLWindow, cfg.ForecastLookahead, cfg.BBoxHalfWidth, cfg.StorageTimeout, metrics, logger),
		p,
		metrics,
		logger,
	)

	srv := httpapi.NewServer(cfg.HTTPAddr, reportStore, engine, pool, publisher,
		&dbReadiness{db: db}, cfg.StorageTimeout, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// dbReadiness gates /readyz on database connectivity.
type dbReadiness struct {
	db *sql.DB
}

func (r *dbReadiness) CheckReadiness(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
