package risk

import (
	"fmt"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// Reconcile merges the threshold and ML assessments into the final verdict.
// The final level is the more severe of the two, with Unknown excluded from
// promotion; when neither source carries signal the policy is Low, the least
// alarming level, a deliberate availability-over-caution trade-off.
//
// Pure data transformation. No I/O, cannot fail.
func Reconcile(threshold ThresholdResult, ml domain.RiskLevel, weatherFound, predictorEnabled bool) domain.RiskVerdict {
	level := domain.MaxKnown(threshold.Level, ml)
	if !level.Known() {
		level = domain.RiskLow
	}

	factors := make([]string, 0, 3)
	if threshold.Trigger != "" {
		factors = append(factors, threshold.Trigger)
	}
	if predictorEnabled && ml.Known() {
		factors = append(factors, fmt.Sprintf("ML assessment: %s", ml))
	} else if !predictorEnabled && weatherFound {
		factors = append(factors, "Recent weather data available (ML model disabled)")
	}
	if len(factors) == 0 {
		factors = append(factors, "No specific factors identified.")
	}

	details := domain.AssessmentDetails{
		ThresholdAssessment: threshold.Level,
		MLAssessment:        ml,
		UserReportsFound:    threshold.ReportsFound,
		WeatherDataFound:    weatherFound,
		ContributingFactors: factors,
		Recommendation:      domain.Recommendation(level),
	}
	if threshold.Err != nil {
		details.Error = threshold.Err.Error()
	}

	return domain.RiskVerdict{
		Level:   level,
		Source:  domain.SourceHybrid,
		Details: details,
	}
}
