package predictor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// Scaler standardizes a raw feature vector the way the model was trained:
// (value - mean) / scale, per feature. Mean and scale come from a JSON
// artifact exported alongside the model.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LoadScaler reads a scaler artifact and validates its width against the
// feature vector contract.
func LoadScaler(path string) (*Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scaler artifact: %w", err)
	}
	var s Scaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scaler artifact: %w", err)
	}
	if len(s.Mean) != domain.FeatureCount || len(s.Scale) != domain.FeatureCount {
		return nil, fmt.Errorf("scaler width %dx%d does not match %d features",
			len(s.Mean), len(s.Scale), domain.FeatureCount)
	}
	for i, sc := range s.Scale {
		if sc == 0 {
			return nil, fmt.Errorf("scaler has zero scale for feature %q", domain.FeatureNames[i])
		}
	}
	return &s, nil
}

// Transform standardizes the vector in contract order.
func (s *Scaler) Transform(values [domain.FeatureCount]float64) [domain.FeatureCount]float64 {
	var out [domain.FeatureCount]float64
	for i := range values {
		out[i] = (values[i] - s.Mean[i]) / s.Scale[i]
	}
	return out
}
