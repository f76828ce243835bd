package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// ReportStore persists and queries crowd flood reports.
type ReportStore struct {
	db *sql.DB
}

// NewReportStore wraps the shared connection pool.
func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

// Insert writes a report with its NLP enrichment. Duplicate IDs are replays
// of the identical submission, so they are treated as success.
func (s *ReportStore) Insert(ctx context.Context, r domain.Report) error {
	locations, err := json.Marshal(r.NLP.Locations)
	if err != nil {
		return fmt.Errorf("marshal nlp locations: %w", err)
	}
	words, err := json.Marshal(r.NLP.ActionableWords)
	if err != nil {
		return fmt.Errorf("marshal nlp words: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports
			(id, latitude, longitude, description, water_level, created_at,
			 nlp_severity, nlp_locations, nlp_words)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE id = id`,
		r.ID, r.Latitude, r.Longitude, r.Description, r.WaterLevel,
		r.CreatedAt.UTC(), r.NLP.Severity, locations, words,
	)
	if err != nil {
		return fmt.Errorf("insert report %s: %w", r.ID, err)
	}
	return nil
}

// QueryBox returns up to limit reports inside the box created at or after
// since, newest first.
func (s *ReportStore) QueryBox(ctx context.Context, box domain.BoundingBox, since time.Time, limit int) ([]domain.Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, latitude, longitude, description, water_level, created_at,
		       nlp_severity, nlp_locations, nlp_words
		FROM reports
		WHERE latitude BETWEEN ? AND ?
		  AND longitude BETWEEN ? AND ?
		  AND created_at >= ?
		ORDER BY created_at DESC
		LIMIT ?`,
		box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, since.UTC(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query reports in box: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

// CountInBox counts reports inside the box created at or after since.
func (s *ReportStore) CountInBox(ctx context.Context, box domain.BoundingBox, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM reports
		WHERE latitude BETWEEN ? AND ?
		  AND longitude BETWEEN ? AND ?
		  AND created_at >= ?`,
		box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, since.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reports in box: %w", err)
	}
	return count, nil
}

// QueryRecent returns up to limit reports created at or after since across
// all locations, newest first. Backs the dashboard map.
func (s *ReportStore) QueryRecent(ctx context.Context, since time.Time, limit int) ([]domain.Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, latitude, longitude, description, water_level, created_at,
		       nlp_severity, nlp_locations, nlp_words
		FROM reports
		WHERE created_at >= ?
		ORDER BY created_at DESC
		LIMIT ?`,
		since.UTC(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func scanReport(rows *sql.Rows) (domain.Report, error) {
	var (
		r         domain.Report
		locations []byte
		words     []byte
	)
	if err := rows.Scan(
		&r.ID, &r.Latitude, &r.Longitude, &r.Description, &r.WaterLevel,
		&r.CreatedAt, &r.NLP.Severity, &locations, &words,
	); err != nil {
		return domain.Report{}, fmt.Errorf("scan report: %w", err)
	}
	if err := json.Unmarshal(locations, &r.NLP.Locations); err != nil {
		return domain.Report{}, fmt.Errorf("decode nlp locations for %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(words, &r.NLP.ActionableWords); err != nil {
		return domain.Report{}, fmt.Errorf("decode nlp words for %s: %w", r.ID, err)
	}
	return r, nil
}
