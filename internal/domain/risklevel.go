package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RiskLevel is a discrete flood risk category. The zero value is Unknown,
// the sentinel for "could not be determined"; Low, Medium, and High form
// the ordered scale.
type RiskLevel int

const (
	RiskUnknown RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
)

// String returns the canonical label used in API responses and stored data.
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Known reports whether the level carries actual signal, i.e. is not Unknown.
func (r RiskLevel) Known() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// MarshalJSON encodes the level as its canonical label.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a canonical label, case-insensitively.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// ParseRiskLevel converts a label into a RiskLevel. "Unknown" parses to the
// sentinel; anything unrecognized is an error.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	case "unknown":
		return RiskUnknown, nil
	default:
		return RiskUnknown, fmt.Errorf("unrecognized risk level %q", s)
	}
}

// MaxKnown returns the more severe of two levels, ignoring Unknown on either
// side. If neither carries signal the result is Unknown.
func MaxKnown(a, b RiskLevel) RiskLevel {
	switch {
	case !a.Known():
		return b
	case !b.Known():
		return a
	case b > a:
		return b
	default:
		return a
	}
}
