package risk

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang/geo/s2"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
	"github.com/rainsafe/rainsafe-backend/internal/observability"
)

// Gatherer assembles the predictor's feature vector from recent reports and
// the freshest weather snapshot near the query point.
type Gatherer struct {
	reports ReportStore
	weather WeatherStore

	window    time.Duration // snapshot and report freshness window
	lookahead time.Duration // forecast horizon for rainfall_next_3h
	halfWidth float64       // bounding-box half-width, degrees
	timeout   time.Duration // per store call

	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewGatherer wires an evidence gatherer over the two stores.
func NewGatherer(reports ReportStore, weather WeatherStore, window, lookahead time.Duration, halfWidth float64, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Gatherer {
	return &Gatherer{
		reports:   reports,
		weather:   weather,
		window:    window,
		lookahead: lookahead,
		halfWidth: halfWidth,
		timeout:   timeout,
		metrics:   metrics,
		logger:    logger,
	}
}

// Gather builds the feature vector for a point. Storage errors substitute
// defaults for the affected fields and are reflected in the returned status;
// they never propagate.
func (g *Gatherer) Gather(ctx context.Context, lat, lon float64) (domain.FeatureVector, bool, Status) {
	now := domain.Now()
	since := now.Add(-g.window)
	vector := domain.DefaultFeatureVector()

	var reportsFailed, weatherFailed bool

	count, err := g.countReports(ctx, lat, lon, since)
	if err != nil {
		reportsFailed = true
		g.metrics.StorageErrors.WithLabelValues("reports").Inc()
		g.logger.Error("report count failed, defaulting to zero", "error", err, "lat", lat, "lon", lon)
	} else {
		vector.NearbyReports = float64(count)
	}

	weatherFound := false
	snapshot, found, err := g.latestSnapshot(ctx, lat, lon, since)
	switch {
	case err != nil:
		weatherFailed = true
		g.metrics.StorageErrors.WithLabelValues("weather").Inc()
		g.logger.Error("weather lookup failed, using default conditions", "error", err, "lat", lat, "lon", lon)
	case found:
		weatherFound = true
		vector.TempC = snapshot.Current.TempC
		vector.HumidityPct = snapshot.Current.HumidityPct
		vector.Rain1hMM = snapshot.Current.Rain1hMM
		vector.PressureHPa = snapshot.Current.PressureHPa
		vector.RainfallNext3h = snapshot.RainfallBetween(now, now.Add(g.lookahead))
	}

	status := StatusOk
	switch {
	case reportsFailed && weatherFailed:
		status = StatusUnavailable
	case reportsFailed || weatherFailed:
		status = StatusDegraded
	}
	return vector, weatherFound, status
}

func (g *Gatherer) countReports(ctx context.Context, lat, lon float64, since time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.reports.CountInBox(ctx, domain.BoxAround(lat, lon, g.halfWidth), since)
}

// latestSnapshot returns the candidate snapshot nearest to the query point.
// Candidates are already the freshest per city; ties on distance keep the
// earlier candidate.
func (g *Gatherer) latestSnapshot(ctx context.Context, lat, lon float64, since time.Time) (domain.WeatherSnapshot, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	candidates, err := g.weather.LatestInWindow(ctx, since)
	if err != nil {
		return domain.WeatherSnapshot{}, false, err
	}
	if len(candidates) == 0 {
		return domain.WeatherSnapshot{}, false, nil
	}

	point := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	best := 0
	bestDist := point.Distance(s2.PointFromLatLng(s2.LatLngFromDegrees(candidates[0].Latitude, candidates[0].Longitude)))
	for i := 1; i < len(candidates); i++ {
		d := point.Distance(s2.PointFromLatLng(s2.LatLngFromDegrees(candidates[i].Latitude, candidates[i].Longitude)))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return candidates[best], true, nil
}
