package domain

import "time"

// CurrentConditions holds the instantaneous readings of a weather snapshot.
type CurrentConditions struct {
	TempC       float64 `json:"temp"`
	HumidityPct float64 `json:"humidity"`
	Rain1hMM    float64 `json:"rain_1h_mm"`
	PressureHPa float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	Condition   string  `json:"condition,omitempty"`
}

// ForecastBucket is one 3-hour forecast slot with its expected rainfall.
type ForecastBucket struct {
	Time     time.Time `json:"time"`
	Rain3hMM float64   `json:"rain_3h_mm"`
}

// WeatherSnapshot is one ingested observation for a city, produced
// periodically by the external weather ingester. The engine only ever reads
// the most recent snapshot within its freshness window.
type WeatherSnapshot struct {
	City      string            `json:"city"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Current   CurrentConditions `json:"current_weather"`
	Forecast  []ForecastBucket  `json:"forecast_data"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// RainfallBetween sums forecast rainfall for buckets whose timestamp falls
// within [from, to], inclusive on both ends.
func (s WeatherSnapshot) RainfallBetween(from, to time.Time) float64 {
	var total float64
	for _, b := range s.Forecast {
		if b.Time.Before(from) || b.Time.After(to) {
			continue
		}
		total += b.Rain3hMM
	}
	return total
}
