package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

func defaultHeuristic() *Heuristic {
	return NewHeuristic(10, 80)
}

func TestHeuristic_RuleOrder(t *testing.T) {
	h := defaultHeuristic()

	cases := []struct {
		name string
		v    domain.FeatureVector
		want domain.RiskLevel
	}{
		{"extreme rain", domain.FeatureVector{Rain1hMM: 20}, domain.RiskHigh},
		{"extreme rain boundary", domain.FeatureVector{Rain1hMM: 25}, domain.RiskHigh},
		{"report cluster", domain.FeatureVector{NearbyReports: 5}, domain.RiskHigh},
		{"heavy rain", domain.FeatureVector{Rain1hMM: 10}, domain.RiskMedium},
		{"heavy rain below double", domain.FeatureVector{Rain1hMM: 19.9}, domain.RiskMedium},
		{"high humidity", domain.FeatureVector{HumidityPct: 80}, domain.RiskMedium},
		{"a few reports", domain.FeatureVector{NearbyReports: 2}, domain.RiskMedium},
		{"quiet conditions", domain.DefaultFeatureVector(), domain.RiskLow},
		{"zero vector", domain.FeatureVector{}, domain.RiskLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, h.Predict(tc.v))
		})
	}
}

func TestHeuristic_SevereRuleWins(t *testing.T) {
	h := defaultHeuristic()

	// Rain at double the threshold outranks every medium rule.
	v := domain.FeatureVector{Rain1hMM: 25, HumidityPct: 85, NearbyReports: 3}
	assert.Equal(t, domain.RiskHigh, h.Predict(v))
}

func TestHeuristic_NeverUnknown(t *testing.T) {
	h := defaultHeuristic()

	vectors := []domain.FeatureVector{
		{},
		{TempC: -40, HumidityPct: -1, Rain1hMM: -5, PressureHPa: 0},
		{TempC: 60, HumidityPct: 200, Rain1hMM: 500, PressureHPa: 2000, NearbyReports: 1e6},
		domain.DefaultFeatureVector(),
	}
	for _, v := range vectors {
		level := h.Predict(v)
		assert.True(t, level.Known(), "predict must always return a concrete level, got %s", level)
	}
}

// Raising rain or the report count while holding everything else fixed must
// never lower the returned level.
func TestHeuristic_Monotonicity(t *testing.T) {
	h := defaultHeuristic()
	base := domain.DefaultFeatureVector()

	prev := h.Predict(base)
	for rain := 0.0; rain <= 40; rain += 0.5 {
		v := base
		v.Rain1hMM = rain
		got := h.Predict(v)
		assert.GreaterOrEqual(t, int(got), int(prev), "rain=%v lowered the level", rain)
		prev = got
	}

	prev = h.Predict(base)
	for reports := 0.0; reports <= 20; reports++ {
		v := base
		v.NearbyReports = reports
		got := h.Predict(v)
		assert.GreaterOrEqual(t, int(got), int(prev), "reports=%v lowered the level", reports)
		prev = got
	}
}

func TestHeuristic_PredictBatch(t *testing.T) {
	h := defaultHeuristic()

	vs := []domain.FeatureVector{
		{Rain1hMM: 25},
		{},
		{NearbyReports: 3},
	}
	got := h.PredictBatch(vs)
	assert.Equal(t, []domain.RiskLevel{domain.RiskHigh, domain.RiskLow, domain.RiskMedium}, got)
}

func TestHeuristic_CustomThresholds(t *testing.T) {
	h := NewHeuristic(5, 60)

	assert.Equal(t, domain.RiskHigh, h.Predict(domain.FeatureVector{Rain1hMM: 10}))
	assert.Equal(t, domain.RiskMedium, h.Predict(domain.FeatureVector{Rain1hMM: 5}))
	assert.Equal(t, domain.RiskMedium, h.Predict(domain.FeatureVector{HumidityPct: 60}))
}

func TestHeuristic_Source(t *testing.T) {
	assert.Equal(t, SourceHeuristic, defaultHeuristic().Source())
}
