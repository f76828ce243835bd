package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS reports (
		id VARCHAR(32) NOT NULL PRIMARY KEY,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		description TEXT NOT NULL,
		water_level VARCHAR(32) NOT NULL DEFAULT '',
		created_at DATETIME(6) NOT NULL,
		nlp_severity VARCHAR(16) NOT NULL DEFAULT 'unknown',
		nlp_locations JSON NOT NULL,
		nlp_words JSON NOT NULL,
		INDEX idx_reports_location (latitude, longitude, created_at),
		INDEX idx_reports_created_at (created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS weather_snapshots (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		city VARCHAR(128) NOT NULL,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		temp_c DOUBLE NOT NULL,
		humidity_pct DOUBLE NOT NULL,
		rain_1h_mm DOUBLE NOT NULL,
		pressure_hpa DOUBLE NOT NULL,
		wind_speed DOUBLE NOT NULL DEFAULT 0,
		cond VARCHAR(64) NOT NULL DEFAULT '',
		forecast JSON NOT NULL,
		fetched_at DATETIME(6) NOT NULL,
		INDEX idx_weather_city_fetched (city, fetched_at),
		INDEX idx_weather_fetched_at (fetched_at)
	)`,
}

// EnsureSchema creates the tables when missing. Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
