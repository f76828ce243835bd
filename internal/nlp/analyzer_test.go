package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

func TestAnalyzer_Score(t *testing.T) {
	a := NewAnalyzer(DefaultLexicon())

	cases := []struct {
		name         string
		description  string
		wantSeverity string
		wantWords    []string
	}{
		{
			name:         "medium risk verbs",
			description:  "Water is rising and waterlogged the street",
			wantSeverity: SeverityMedium,
			wantWords:    []string{"rising", "waterlogged"},
		},
		{
			name:         "high risk irregular form",
			description:  "A car is stuck, the road is impassable",
			wantSeverity: SeverityHigh,
			wantWords:    []string{"stuck", "impassable"},
		},
		{
			name:         "high outranks medium",
			description:  "Water rising fast and people are trapped",
			wantSeverity: SeverityHigh,
			wantWords:    []string{"rising", "trapped"},
		},
		{
			name:         "collapsed matches directly",
			description:  "The wall has collapsed near the canal",
			wantSeverity: SeverityHigh,
			wantWords:    []string{"collapsed"},
		},
		{
			name:         "no signal words",
			description:  "It is a bit wet outside",
			wantSeverity: SeverityLow,
			wantWords:    []string{},
		},
		{
			name:         "empty description",
			description:  "",
			wantSeverity: SeverityLow,
			wantWords:    []string{},
		},
		{
			name:         "repeated words deduplicated",
			description:  "Rising, rising, still rising",
			wantSeverity: SeverityMedium,
			wantWords:    []string{"rising"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := a.Score(tc.description)
			assert.Equal(t, tc.wantSeverity, got.Severity)
			assert.ElementsMatch(t, tc.wantWords, got.ActionableWords)
		})
	}
}

func TestAnalyzer_ScoreIsCaseInsensitive(t *testing.T) {
	a := NewAnalyzer(DefaultLexicon())

	got := a.Score("DANGEROUS water SUBMERGED the underpass")
	assert.Equal(t, SeverityHigh, got.Severity)
	assert.Contains(t, got.ActionableWords, "dangerous")
	assert.Contains(t, got.ActionableWords, "submerged")
}

func TestAnalyzer_ExtractPlaces(t *testing.T) {
	a := NewAnalyzer(DefaultLexicon())

	cases := []struct {
		name        string
		description string
		want        []string
	}{
		{"single place", "Flooding near the bridge", []string{"bridge"}},
		{"multi word place", "Water overflowing onto the main road", []string{"main road"}},
		{"several places", "From the market to the bus stand", []string{"market", "bus stand"}},
		{"duplicates collapse", "bridge after bridge after bridge", []string{"bridge"}},
		{"no places", "Everything is fine here", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := a.Score(tc.description)
			assert.ElementsMatch(t, tc.want, got.Locations)
		})
	}
}

// The degraded analyzer must answer with the unknown analysis rather than
// guessing a severity.
func TestAnalyzer_DegradedWithoutLexicon(t *testing.T) {
	a := NewAnalyzer(nil)
	assert.False(t, a.Enabled())

	got := a.Score("People are trapped and the road is impassable")
	assert.Equal(t, domain.UnknownAnalysis(), got)
}
