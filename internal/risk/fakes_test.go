package risk

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// fakeReportStore filters its fixture reports the way the real store would.
type fakeReportStore struct {
	reports  []domain.Report
	countErr error
	queryErr error
}

func (f *fakeReportStore) CountInBox(_ context.Context, box domain.BoundingBox, since time.Time) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	n := 0
	for _, r := range f.reports {
		if box.Contains(r.Latitude, r.Longitude) && !r.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeReportStore) QueryBox(_ context.Context, box domain.BoundingBox, since time.Time, limit int) ([]domain.Report, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	out := make([]domain.Report, 0, len(f.reports))
	for _, r := range f.reports {
		if box.Contains(r.Latitude, r.Longitude) && !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeWeatherStore struct {
	snapshots []domain.WeatherSnapshot
	err       error
}

func (f *fakeWeatherStore) LatestInWindow(_ context.Context, since time.Time) ([]domain.WeatherSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.WeatherSnapshot, 0, len(f.snapshots))
	for _, s := range f.snapshots {
		if !s.FetchedAt.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

// fixedPredictor always answers the same level.
type fixedPredictor struct {
	level domain.RiskLevel
}

func (p *fixedPredictor) Predict(domain.FeatureVector) domain.RiskLevel { return p.level }

func (p *fixedPredictor) PredictBatch(vs []domain.FeatureVector) []domain.RiskLevel {
	out := make([]domain.RiskLevel, len(vs))
	for i := range out {
		out[i] = p.level
	}
	return out
}

func (p *fixedPredictor) Source() string { return "heuristic" }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
