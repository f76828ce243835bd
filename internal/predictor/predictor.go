// Package predictor turns feature vectors into risk levels.
//
// Two implementations share the Predictor contract: a transparent rule-based
// heuristic that is always available, and an ONNX-backed model loaded from
// optional artifacts at startup. Selection happens once, at process start;
// whichever variant is chosen is immutable and safe for concurrent callers.
// No code path returns an error: every failure terminates in a valid level.
package predictor

import (
	"strings"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// Predictor maps feature vectors to risk levels. Implementations never
// return Unknown and never fail; degraded paths end in the heuristic.
type Predictor interface {
	Predict(v domain.FeatureVector) domain.RiskLevel
	PredictBatch(vs []domain.FeatureVector) []domain.RiskLevel

	// Source identifies the evidence source for provenance ("model" or
	// "heuristic").
	Source() string
}

// Evidence source tags reported by Source.
const (
	SourceModel     = "model"
	SourceHeuristic = "heuristic"
)

// levelFromClass maps a numeric class output to a risk level:
// class 2 and above is High, 1 and above Medium, anything else Low.
func levelFromClass(class float64) domain.RiskLevel {
	switch {
	case class >= 2:
		return domain.RiskHigh
	case class >= 1:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// levelFromLabel normalizes a string class label by case-insensitive prefix:
// "h..." High, "m..." Medium, "l..." Low. Unrecognized labels default to Low
// rather than failing the prediction.
func levelFromLabel(label string) domain.RiskLevel {
	label = strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.HasPrefix(label, "h"):
		return domain.RiskHigh
	case strings.HasPrefix(label, "m"):
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
