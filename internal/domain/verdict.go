package domain

// Assessment source tags. Every verdict carries one so callers can always
// attribute it to combined evidence or to a boundary failure.
const (
	SourceHybrid = "hybrid"
	SourceError  = "error"
)

// Fixed end-user recommendation strings, keyed by final risk level.
var recommendations = map[RiskLevel]string{
	RiskLow:     "Conditions appear safe. Remain aware of weather changes.",
	RiskMedium:  "Potential for localized flooding. Exercise caution.",
	RiskHigh:    "High flood risk detected. Avoid travel in this area.",
	RiskUnknown: "Could not determine risk. Please check conditions manually.",
}

// Recommendation returns the user-facing advice for a final risk level.
func Recommendation(level RiskLevel) string {
	if r, ok := recommendations[level]; ok {
		return r
	}
	return recommendations[RiskUnknown]
}

// ErrorVerdict is the boundary fallback when an assessment could not run at
// all. The level is Unknown and the source tag attributes the failure.
func ErrorVerdict(msg string) RiskVerdict {
	return RiskVerdict{
		Level:  RiskUnknown,
		Source: SourceError,
		Details: AssessmentDetails{
			ContributingFactors: []string{"No specific factors identified."},
			Recommendation:      Recommendation(RiskUnknown),
			Error:               msg,
		},
	}
}

// AssessmentDetails is the structured explanation attached to a verdict.
type AssessmentDetails struct {
	ThresholdAssessment RiskLevel `json:"threshold_assessment"`
	MLAssessment        RiskLevel `json:"ml_assessment"`
	UserReportsFound    int       `json:"user_reports_found"`
	WeatherDataFound    bool      `json:"weather_data_found"`
	ContributingFactors []string  `json:"contributing_factors"`
	Recommendation      string    `json:"recommendation"`
	Error               string    `json:"error,omitempty"`
}

// RiskVerdict is the final, explainable output of a risk query. Constructed
// fresh per request and never persisted by the engine itself.
type RiskVerdict struct {
	Level   RiskLevel         `json:"risk_level"`
	Source  string            `json:"source"`
	Details AssessmentDetails `json:"details"`
}
