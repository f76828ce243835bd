package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// WeatherStore reads and writes ingested weather snapshots.
type WeatherStore struct {
	db *sql.DB
}

// NewWeatherStore wraps the shared connection pool.
func NewWeatherStore(db *sql.DB) *WeatherStore {
	return &WeatherStore{db: db}
}

// Insert stores one snapshot. Used by the ingestion side and the seeder.
func (s *WeatherStore) Insert(ctx context.Context, snap domain.WeatherSnapshot) error {
	forecast, err := json.Marshal(snap.Forecast)
	if err != nil {
		return fmt.Errorf("marshal forecast: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO weather_snapshots
			(city, latitude, longitude, temp_c, humidity_pct, rain_1h_mm,
			 pressure_hpa, wind_speed, cond, forecast, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.City, snap.Latitude, snap.Longitude,
		snap.Current.TempC, snap.Current.HumidityPct, snap.Current.Rain1hMM,
		snap.Current.PressureHPa, snap.Current.WindSpeed, snap.Current.Condition,
		forecast, snap.FetchedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert weather snapshot for %s: %w", snap.City, err)
	}
	return nil
}

// LatestInWindow returns the freshest snapshot per city fetched at or after
// since.
func (s *WeatherStore) LatestInWindow(ctx context.Context, since time.Time) ([]domain.WeatherSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT w.city, w.latitude, w.longitude, w.temp_c, w.humidity_pct,
		       w.rain_1h_mm, w.pressure_hpa, w.wind_speed, w.cond, w.forecast,
		       w.fetched_at
		FROM weather_snapshots w
		JOIN (
			SELECT city, MAX(fetched_at) AS fetched_at
			FROM weather_snapshots
			WHERE fetched_at >= ?
			GROUP BY city
		) latest ON latest.city = w.city AND latest.fetched_at = w.fetched_at`,
		since.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query latest weather snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.WeatherSnapshot
	for rows.Next() {
		var (
			snap     domain.WeatherSnapshot
			forecast []byte
		)
		if err := rows.Scan(
			&snap.City, &snap.Latitude, &snap.Longitude,
			&snap.Current.TempC, &snap.Current.HumidityPct, &snap.Current.Rain1hMM,
			&snap.Current.PressureHPa, &snap.Current.WindSpeed, &snap.Current.Condition,
			&forecast, &snap.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scan weather snapshot: %w", err)
		}
		if err := json.Unmarshal(forecast, &snap.Forecast); err != nil {
			return nil, fmt.Errorf("decode forecast for %s: %w", snap.City, err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weather snapshots: %w", err)
	}
	return snapshots, nil
}
