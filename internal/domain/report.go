package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Water level vocabulary for crowd reports.
const (
	WaterAnkleDeep = "Ankle-deep"
	WaterKneeDeep  = "Knee-deep"
	WaterWaistDeep = "Waist-deep"
	WaterChestDeep = "Chest-deep"
	WaterAboveHead = "Above head"
)

// WaterLevels lists every accepted water-level observation, shallowest first.
var WaterLevels = []string{
	WaterAnkleDeep,
	WaterKneeDeep,
	WaterWaistDeep,
	WaterChestDeep,
	WaterAboveHead,
}

// ValidWaterLevel reports whether s is one of the accepted observations.
// The empty string is valid: water level is optional on submission.
func ValidWaterLevel(s string) bool {
	if s == "" {
		return true
	}
	for _, w := range WaterLevels {
		if s == w {
			return true
		}
	}
	return false
}

// NLPAnalysis is the enrichment attached to a report by the description
// scorer. Severity is one of "unknown", "low", "medium", "high".
type NLPAnalysis struct {
	Severity        string   `json:"severity_from_text"`
	Locations       []string `json:"extracted_locations"`
	ActionableWords []string `json:"actionable_words"`
}

// UnknownAnalysis is the degraded result used when the scorer's language
// resource is unavailable or scoring did not complete in time.
func UnknownAnalysis() NLPAnalysis {
	return NLPAnalysis{
		Severity:        "unknown",
		Locations:       []string{},
		ActionableWords: []string{},
	}
}

// Report is a crowd-sourced flood observation. Immutable once created;
// the report store is the system of record.
type Report struct {
	ID          string      `json:"id"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Description string      `json:"description"`
	WaterLevel  string      `json:"water_level,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	NLP         NLPAnalysis `json:"nlp_analysis"`
}

// NewReportID produces a deterministic ID from the submission's key fields.
// Identical submissions at the identical instant hash to the same ID, so
// replays stay idempotent downstream.
func NewReportID(lat, lon float64, description string, createdAt time.Time) string {
	input := fmt.Sprintf("%.6f|%.6f|%s|%d", lat, lon, description, createdAt.UTC().UnixNano())
	hash := sha256.Sum256([]byte(input))
	return "rpt-" + hex.EncodeToString(hash[:8])
}

// BoundingBox is a rectangular lat/lon region, the portability baseline for
// "near a point" queries when no geospatial index is available.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoxAround builds the bounding box of ±halfWidth degrees around a point.
// At the default half-width of 0.01° that is roughly 1.1 km of latitude.
func BoxAround(lat, lon, halfWidth float64) BoundingBox {
	return BoundingBox{
		MinLat: lat - halfWidth,
		MaxLat: lat + halfWidth,
		MinLon: lon - halfWidth,
		MaxLon: lon + halfWidth,
	}
}

// Contains reports whether the point lies inside the box, borders included.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}
