package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	createdAt := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	report := domain.Report{
		ID:          "rpt-0011aabb22ccdd33",
		Latitude:    12.97,
		Longitude:   77.59,
		Description: "Water is rising near the bridge",
		WaterLevel:  domain.WaterKneeDeep,
		CreatedAt:   createdAt,
		NLP: domain.NLPAnalysis{
			Severity:        "medium",
			Locations:       []string{"bridge"},
			ActionableWords: []string{"rising"},
		},
	}

	msg, err := serializeToMessage(report)
	require.NoError(t, err)

	assert.Equal(t, []byte("rpt-0011aabb22ccdd33"), msg.Key)
	assert.Contains(t, string(msg.Value), `"water_level":"Knee-deep"`)
	assert.Contains(t, string(msg.Value), `"severity_from_text":"medium"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "water_level", msg.Headers[0].Key)
	assert.Equal(t, []byte(domain.WaterKneeDeep), msg.Headers[0].Value)
	assert.Equal(t, "created_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-08-28T10:30:00Z"), msg.Headers[1].Value)
}
