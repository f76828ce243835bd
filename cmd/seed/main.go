// Command seed populates a development database with sample flood reports
// and weather snapshots. Reports are scored with the same lexicon the API
// uses, so seeded data matches real submission output.
//
// Usage:
//
//	go run ./cmd/seed \
//	  -dsn "rainsafe:rainsafe@tcp(localhost:3306)/rainsafe?parseTime=true" \
//	  -lexicon data/nlp/lexicon.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
	"github.com/rainsafe/rainsafe-backend/internal/nlp"
	"github.com/rainsafe/rainsafe-backend/internal/storage/mysql"
)

// seedTime anchors all generated timestamps so reruns produce the same IDs
// and the windowed queries behave predictably in local testing.
var seedTime = time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

type seedReport struct {
	lat, lon    float64
	description string
	waterLevel  string
	age         time.Duration
}

var seedReports = []seedReport{
	{12.9716, 77.5946, "Water is rising and waterlogged the street near the market", domain.WaterAnkleDeep, 30 * time.Minute},
	{12.9721, 77.5940, "Car stuck under the flyover, road completely impassable", domain.WaterKneeDeep, time.Hour},
	{12.9705, 77.5952, "Drain overflowing onto the main road, traffic struggling", "", 2 * time.Hour},
	{12.9350, 77.6245, "Stagnant water near the bus stand since last night", domain.WaterAnkleDeep, 5 * time.Hour},
	{13.0827, 80.2707, "Subway flooded, people trapped on the far side", domain.WaterWaistDeep, 45 * time.Minute},
	{13.0810, 80.2695, "Water entering ground floor houses near the canal", domain.WaterKneeDeep, 3 * time.Hour},
	{19.0760, 72.8777, "Heavy waterlogging, dangerous to cross the underpass", domain.WaterChestDeep, 90 * time.Minute},
	{19.0745, 72.8790, "Street fully submerged after the overnight rain", domain.WaterKneeDeep, 20 * time.Hour},
}

type seedCity struct {
	name     string
	lat, lon float64
	current  domain.CurrentConditions
	rain3h   []float64
}

var seedCities = []seedCity{
	{
		name: "Bengaluru", lat: 12.9716, lon: 77.5946,
		current: domain.CurrentConditions{TempC: 24.5, HumidityPct: 92, Rain1hMM: 14.2, PressureHPa: 1004, WindSpeed: 4.2, Condition: "Rain"},
		rain3h:  []float64{8.0, 5.5, 2.0},
	},
	{
		name: "Chennai", lat: 13.0827, lon: 80.2707,
		current: domain.CurrentConditions{TempC: 30.1, HumidityPct: 78, Rain1hMM: 2.1, PressureHPa: 1007, WindSpeed: 6.8, Condition: "Drizzle"},
		rain3h:  []float64{1.5, 0.5, 0.0},
	},
	{
		name: "Mumbai", lat: 19.0760, lon: 72.8777,
		current: domain.CurrentConditions{TempC: 27.3, HumidityPct: 95, Rain1hMM: 22.7, PressureHPa: 1001, WindSpeed: 9.4, Condition: "Thunderstorm"},
		rain3h:  []float64{12.0, 9.5, 6.0},
	},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dsn := flag.String("dsn", "rainsafe:rainsafe@tcp(localhost:3306)/rainsafe?parseTime=true", "MySQL DSN")
	lexiconPath := flag.String("lexicon", "data/nlp/lexicon.json", "path to the NLP lexicon resource")
	flag.Parse()

	domain.SetClock(clockwork.NewFakeClockAt(seedTime))
	defer domain.SetClock(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mysql.Open(ctx, *dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.EnsureSchema(ctx, db); err != nil {
		return err
	}

	lex, err := nlp.LoadLexicon(*lexiconPath)
	if err != nil {
		log.Printf("lexicon unavailable (%v), using built-in default", err)
		lex = nlp.DefaultLexicon()
	}
	analyzer := nlp.NewAnalyzer(lex)

	reportStore := mysql.NewReportStore(db)
	for _, sr := range seedReports {
		createdAt := seedTime.Add(-sr.age)
		report := domain.Report{
			ID:          domain.NewReportID(sr.lat, sr.lon, sr.description, createdAt),
			Latitude:    sr.lat,
			Longitude:   sr.lon,
			Description: sr.description,
			WaterLevel:  sr.waterLevel,
			CreatedAt:   createdAt,
			NLP:         analyzer.Score(sr.description),
		}
		if err := reportStore.Insert(ctx, report); err != nil {
			return fmt.Errorf("seed report %s: %w", report.ID, err)
		}
		log.Printf("report %s severity=%s water_level=%q", report.ID, report.NLP.Severity, report.WaterLevel)
	}

	weatherStore := mysql.NewWeatherStore(db)
	for _, city := range seedCities {
		snap := domain.WeatherSnapshot{
			City:      city.name,
			Latitude:  city.lat,
			Longitude: city.lon,
			Current:   city.current,
			FetchedAt: seedTime.Add(-15 * time.Minute),
		}
		for i, rain := range city.rain3h {
			snap.Forecast = append(snap.Forecast, domain.ForecastBucket{
				Time:     seedTime.Add(time.Duration(i) * 3 * time.Hour),
				Rain3hMM: rain,
			})
		}
		if err := weatherStore.Insert(ctx, snap); err != nil {
			return fmt.Errorf("seed weather for %s: %w", city.name, err)
		}
		log.Printf("weather %s rain_1h=%.1fmm", city.name, snap.Current.Rain1hMM)
	}

	log.Printf("seeded %d reports, %d weather snapshots", len(seedReports), len(seedCities))
	return nil
}
