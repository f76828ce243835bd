package risk

import (
	"context"
	"time"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// ReportStore is the slice of the report repository the engine reads.
type ReportStore interface {
	// CountInBox counts reports inside the box created at or after since.
	CountInBox(ctx context.Context, box domain.BoundingBox, since time.Time) (int, error)
	// QueryBox returns up to limit reports inside the box created at or
	// after since, newest first.
	QueryBox(ctx context.Context, box domain.BoundingBox, since time.Time, limit int) ([]domain.Report, error)
}

// WeatherStore yields ingested weather snapshots.
type WeatherStore interface {
	// LatestInWindow returns the freshest snapshot per city fetched at or
	// after since. The gatherer picks the nearest to the query point.
	LatestInWindow(ctx context.Context, since time.Time) ([]domain.WeatherSnapshot, error)
}

// Status describes how much of the requested evidence was actually gathered.
type Status int

const (
	StatusOk          Status = iota // all sources answered
	StatusDegraded                  // some source failed, partial evidence
	StatusUnavailable               // no source answered, defaults only
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusDegraded:
		return "degraded"
	default:
		return "unavailable"
	}
}
