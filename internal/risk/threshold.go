package risk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
	"github.com/rainsafe/rainsafe-backend/internal/observability"
)

// thresholdQueryCap bounds how many recent reports one evaluation inspects.
const thresholdQueryCap = 50

// Threshold trigger strings surfaced in contributing factors.
const (
	triggerHighWater = "High water level reported by users"
	triggerNoReports = "No recent user reports"
)

// ThresholdResult is the outcome of the crowd-report rule check. A storage
// failure yields Level Unknown with Err set; the reconciler treats that as
// absent evidence, not as a request failure.
type ThresholdResult struct {
	Level        domain.RiskLevel
	ReportsFound int
	Trigger      string
	Err          error
}

// Evaluator applies the water-level and report-count rules over reports near
// a point within the recency window.
type Evaluator struct {
	reports ReportStore

	window    time.Duration
	halfWidth float64
	timeout   time.Duration
	highWater map[string]struct{}

	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewEvaluator wires a threshold evaluator. highWaterLevels lists the water
// levels that escalate to High on their own.
func NewEvaluator(reports ReportStore, window time.Duration, halfWidth float64, timeout time.Duration, highWaterLevels []string, metrics *observability.Metrics, logger *slog.Logger) *Evaluator {
	high := make(map[string]struct{}, len(highWaterLevels))
	for _, w := range highWaterLevels {
		high[w] = struct{}{}
	}
	return &Evaluator{
		reports:   reports,
		window:    window,
		halfWidth: halfWidth,
		timeout:   timeout,
		highWater: high,
		metrics:   metrics,
		logger:    logger,
	}
}

// Evaluate inspects recent reports around the point. Any report with a water
// level in the high set forces High; otherwise any report at all means
// Medium, and none means Low.
func (e *Evaluator) Evaluate(ctx context.Context, lat, lon float64) ThresholdResult {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	since := domain.Now().Add(-e.window)
	box := domain.BoxAround(lat, lon, e.halfWidth)

	reports, err := e.reports.QueryBox(ctx, box, since, thresholdQueryCap)
	if err != nil {
		e.metrics.StorageErrors.WithLabelValues("reports").Inc()
		e.logger.Error("threshold report query failed", "error", err, "lat", lat, "lon", lon)
		return ThresholdResult{Level: domain.RiskUnknown, Err: err}
	}

	for _, r := range reports {
		if _, high := e.highWater[r.WaterLevel]; high {
			return ThresholdResult{
				Level:        domain.RiskHigh,
				ReportsFound: len(reports),
				Trigger:      triggerHighWater,
			}
		}
	}
	if len(reports) > 0 {
		return ThresholdResult{
			Level:        domain.RiskMedium,
			ReportsFound: len(reports),
			Trigger:      fmt.Sprintf("%d recent user reports", len(reports)),
		}
	}
	return ThresholdResult{Level: domain.RiskLow, Trigger: triggerNoReports}
}
