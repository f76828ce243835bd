package predictor

import "github.com/rainsafe/rainsafe-backend/internal/domain"

// Heuristic is the rule-based fallback predictor. Rules fire in a fixed
// order from most to least severe, so adding rain or reports can only hold
// or raise the returned level, never lower it.
type Heuristic struct {
	heavyRainMM     float64
	humidityHighPct float64
}

// NewHeuristic creates a heuristic predictor with the given weather
// thresholds (defaults: heavy rain 10 mm/h, high humidity 80%).
func NewHeuristic(heavyRainMM, humidityHighPct float64) *Heuristic {
	return &Heuristic{
		heavyRainMM:     heavyRainMM,
		humidityHighPct: humidityHighPct,
	}
}

// Predict applies the threshold rules to the vector.
func (h *Heuristic) Predict(v domain.FeatureVector) domain.RiskLevel {
	switch {
	case v.Rain1hMM >= 2*h.heavyRainMM:
		return domain.RiskHigh
	case v.NearbyReports >= 5:
		return domain.RiskHigh
	case v.Rain1hMM >= h.heavyRainMM:
		return domain.RiskMedium
	case v.HumidityPct >= h.humidityHighPct:
		return domain.RiskMedium
	case v.NearbyReports >= 2:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// PredictBatch predicts a parallel sequence of levels.
func (h *Heuristic) PredictBatch(vs []domain.FeatureVector) []domain.RiskLevel {
	out := make([]domain.RiskLevel, len(vs))
	for i, v := range vs {
		out[i] = h.Predict(v)
	}
	return out
}

func (h *Heuristic) Source() string { return SourceHeuristic }
