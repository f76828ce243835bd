package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReportID_Deterministic(t *testing.T) {
	at := time.Date(2026, time.August, 1, 10, 30, 0, 0, time.UTC)

	a := NewReportID(12.9716, 77.5946, "Street flooded near the market", at)
	b := NewReportID(12.9716, 77.5946, "Street flooded near the market", at)
	assert.Equal(t, a, b, "identical submissions must hash identically")

	c := NewReportID(12.9716, 77.5947, "Street flooded near the market", at)
	assert.NotEqual(t, a, c, "different coordinates must change the ID")

	d := NewReportID(12.9716, 77.5946, "Street flooded near the market", at.Add(time.Second))
	assert.NotEqual(t, a, d, "different timestamps must change the ID")

	assert.Contains(t, a, "rpt-")
}

func TestValidWaterLevel(t *testing.T) {
	for _, w := range WaterLevels {
		assert.True(t, ValidWaterLevel(w), w)
	}
	assert.True(t, ValidWaterLevel(""), "water level is optional")
	assert.False(t, ValidWaterLevel("knee-deep"), "vocabulary is case sensitive")
	assert.False(t, ValidWaterLevel("Flooded"))
}

func TestBoxAround(t *testing.T) {
	box := BoxAround(12.97, 77.59, 0.01)

	assert.InDelta(t, 12.96, box.MinLat, 1e-9)
	assert.InDelta(t, 12.98, box.MaxLat, 1e-9)
	assert.InDelta(t, 77.58, box.MinLon, 1e-9)
	assert.InDelta(t, 77.60, box.MaxLon, 1e-9)

	assert.True(t, box.Contains(12.97, 77.59))
	assert.True(t, box.Contains(12.96, 77.58), "borders included")
	assert.False(t, box.Contains(12.95, 77.59))
}

func TestUnknownAnalysis(t *testing.T) {
	a := UnknownAnalysis()
	assert.Equal(t, "unknown", a.Severity)
	assert.Empty(t, a.Locations)
	assert.Empty(t, a.ActionableWords)
	assert.NotNil(t, a.Locations, "empty set, not null, in JSON output")
	assert.NotNil(t, a.ActionableWords)
}
