package predictor

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// Artifacts names the optional files backing the model predictor. Absence
// of any of them is a normal, handled state.
type Artifacts struct {
	ModelPath    string // ONNX model
	ScalerPath   string // JSON mean/scale pairs
	FeaturesPath string // JSON feature-name list + class labels
	ONNXLibPath  string // ONNX Runtime shared library; defaults next to the model
}

// featureManifest is the features artifact: the ordered feature names the
// model was trained on, plus optional string class labels indexed by the
// model's output class.
type featureManifest struct {
	Features []string `json:"features"`
	Labels   []string `json:"labels,omitempty"`
}

// loadManifest reads the features artifact and rejects models trained
// against a different feature contract.
func loadManifest(path string) (featureManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return featureManifest{}, fmt.Errorf("read features artifact: %w", err)
	}
	var m featureManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return featureManifest{}, fmt.Errorf("parse features artifact: %w", err)
	}
	if !slices.Equal(m.Features, domain.FeatureNames) {
		return featureManifest{}, fmt.Errorf("model features %v do not match contract %v",
			m.Features, domain.FeatureNames)
	}
	return m, nil
}
