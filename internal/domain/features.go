package domain

// Default feature values substituted when source data is absent.
const (
	DefaultTempC       = 25.0
	DefaultHumidityPct = 50.0
	DefaultRain1hMM    = 0.0
	DefaultPressureHPa = 1013.0
)

// FeatureCount is the fixed width of the vector fed to the predictor.
const FeatureCount = 6

// FeatureNames lists the vector fields in contract order. Model artifacts
// declare this same list; a mismatch means the artifact was trained against
// a different contract and must be rejected.
var FeatureNames = []string{
	"temp",
	"humidity",
	"rain_1h_mm",
	"pressure",
	"nearby_report_count",
	"rainfall_next_3h",
}

// FeatureVector is the fixed-order numeric summary of weather and crowd
// signals consumed by the predictor. Field order is a contract: see Values.
type FeatureVector struct {
	TempC          float64 `json:"temp"`
	HumidityPct    float64 `json:"humidity"`
	Rain1hMM       float64 `json:"rain_1h_mm"`
	PressureHPa    float64 `json:"pressure"`
	NearbyReports  float64 `json:"nearby_report_count"`
	RainfallNext3h float64 `json:"rainfall_next_3h"`
}

// DefaultFeatureVector is the documented fallback when no evidence could be
// gathered: seasonal-neutral weather and zero crowd signal.
func DefaultFeatureVector() FeatureVector {
	return FeatureVector{
		TempC:       DefaultTempC,
		HumidityPct: DefaultHumidityPct,
		Rain1hMM:    DefaultRain1hMM,
		PressureHPa: DefaultPressureHPa,
	}
}

// Values flattens the vector in contract order.
func (v FeatureVector) Values() [FeatureCount]float64 {
	return [FeatureCount]float64{
		v.TempC,
		v.HumidityPct,
		v.Rain1hMM,
		v.PressureHPa,
		v.NearbyReports,
		v.RainfallNext3h,
	}
}
