package risk

import (
	"context"
	"log/slog"
	"time"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
	"github.com/rainsafe/rainsafe-backend/internal/observability"
	"github.com/rainsafe/rainsafe-backend/internal/predictor"
)

// Engine runs one hybrid risk assessment end to end: threshold rules over
// crowd reports, evidence gathering, the ML or heuristic prediction, and
// reconciliation into a single verdict.
type Engine struct {
	evaluator *Evaluator
	gatherer  *Gatherer

	// predictor is nil when ML assessment is disabled; the verdict then
	// reports the ML side as Unknown.
	predictor predictor.Predictor

	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewEngine assembles the assessment pipeline. Pass a nil predictor to run
// with threshold evidence only.
func NewEngine(evaluator *Evaluator, gatherer *Gatherer, p predictor.Predictor, metrics *observability.Metrics, logger *slog.Logger) *Engine {
	return &Engine{
		evaluator: evaluator,
		gatherer:  gatherer,
		predictor: p,
		metrics:   metrics,
		logger:    logger,
	}
}

// AssessRisk produces the verdict for a point. It always returns a verdict;
// evidence failures degrade the inputs rather than the call.
func (e *Engine) AssessRisk(ctx context.Context, lat, lon float64) domain.RiskVerdict {
	start := time.Now()
	defer func() {
		e.metrics.RiskDuration.Observe(time.Since(start).Seconds())
	}()

	threshold := e.evaluator.Evaluate(ctx, lat, lon)
	vector, weatherFound, status := e.gatherer.Gather(ctx, lat, lon)

	ml := domain.RiskUnknown
	if e.predictor != nil {
		ml = e.predictor.Predict(vector)
		e.metrics.Predictions.WithLabelValues(e.predictor.Source()).Inc()
	} else {
		e.metrics.Predictions.WithLabelValues("disabled").Inc()
	}

	verdict := Reconcile(threshold, ml, weatherFound, e.predictor != nil)

	outcome := "ok"
	if status != StatusOk || threshold.Err != nil {
		outcome = "degraded"
	}
	e.metrics.RiskRequests.WithLabelValues(outcome).Inc()
	e.metrics.RiskLevels.WithLabelValues(verdict.Level.String()).Inc()

	e.logger.Info("risk assessed",
		"lat", lat, "lon", lon,
		"level", verdict.Level.String(),
		"threshold", threshold.Level.String(),
		"ml", ml.String(),
		"reports", threshold.ReportsFound,
		"weather_found", weatherFound,
		"evidence", status.String(),
	)
	return verdict
}
