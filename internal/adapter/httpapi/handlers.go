package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

const (
	minDescriptionLen = 10
	maxDescriptionLen = 500

	dashboardWindow = 24 * time.Hour
	dashboardLimit  = 100
)

// submitReportRequest is the POST /report body.
type submitReportRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Description string   `json:"description"`
	WaterLevel  string   `json:"water_level"`
}

func (r *submitReportRequest) validate() error {
	if r.Latitude == nil || r.Longitude == nil {
		return fmt.Errorf("latitude and longitude are required")
	}
	if err := validateCoordinates(*r.Latitude, *r.Longitude); err != nil {
		return err
	}
	desc := strings.TrimSpace(r.Description)
	if len(desc) < minDescriptionLen || len(desc) > maxDescriptionLen {
		return fmt.Errorf("description must be between %d and %d characters", minDescriptionLen, maxDescriptionLen)
	}
	if !domain.ValidWaterLevel(r.WaterLevel) {
		return fmt.Errorf("water_level must be one of %s", strings.Join(domain.WaterLevels, ", "))
	}
	return nil
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// handleSubmitReport accepts a flood report, scores its description, and
// persists it. Persistence is the one failure surfaced as a server error;
// the report is the system of record and silent loss is unacceptable.
func (s *Server) handleSubmitReport(c *gin.Context) {
	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdAt := domain.Now()
	report := domain.Report{
		ID:          domain.NewReportID(*req.Latitude, *req.Longitude, req.Description, createdAt),
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Description: strings.TrimSpace(req.Description),
		WaterLevel:  req.WaterLevel,
		CreatedAt:   createdAt,
		NLP:         s.analyzer.Analyze(c.Request.Context(), req.Description),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.storageTimeout)
	defer cancel()
	if err := s.reports.Insert(ctx, report); err != nil {
		s.logger.Error("report insert failed", "error", err, "report_id", report.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save report"})
		return
	}
	s.metrics.ReportsSubmitted.Inc()

	if s.publisher != nil {
		if err := s.publisher.Publish(c.Request.Context(), report); err != nil {
			s.logger.Warn("report publish failed", "error", err, "report_id", report.ID)
		} else {
			s.metrics.ReportsPublished.Inc()
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Report submitted successfully",
		"data":    report,
	})
}

// handleRisk answers a risk query. Malformed coordinates are the only client
// error; everything past the boundary degrades inside the engine, so the
// response is always a verdict.
func (s *Server) handleRisk(c *gin.Context) {
	lat, lon, err := parseCoordinates(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.assess(c.Request.Context(), lat, lon))
}

// assess shields the risk route from assessor panics: callers are promised a
// verdict, so a crashed assessment becomes an error-tagged Unknown verdict
// instead of a generic 500.
func (s *Server) assess(ctx context.Context, lat, lon float64) (verdict domain.RiskVerdict) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("risk assessment panic", "panic", r, "lat", lat, "lon", lon)
			verdict = domain.ErrorVerdict(fmt.Sprintf("%v", r))
		}
	}()
	return s.assessor.AssessRisk(ctx, lat, lon)
}

func parseCoordinates(c *gin.Context) (float64, float64, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		return 0, 0, fmt.Errorf("lat and lon query parameters are required")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lon %q", lonStr)
	}
	if err := validateCoordinates(lat, lon); err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

// alertRequest is the POST /alerts body. There is no delivery pipeline;
// accepted requests are logged for later processing.
type alertRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Message   string   `json:"message"`
}

func (s *Server) handleAlert(c *gin.Context) {
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}
	if err := validateCoordinates(*req.Latitude, *req.Longitude); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("alert request received",
		"lat", *req.Latitude, "lon", *req.Longitude, "message", req.Message)
	c.JSON(http.StatusAccepted, gin.H{"message": "Alert request accepted"})
}

// mapPoint is one dashboard marker.
type mapPoint struct {
	ID         string    `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	WaterLevel string    `json:"water_level,omitempty"`
	Severity   string    `json:"severity"`
	CreatedAt  time.Time `json:"created_at"`
}

// handleDashboard serves the recent reports as map points with per-severity
// counts.
func (s *Server) handleDashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.storageTimeout)
	defer cancel()

	reports, err := s.reports.QueryRecent(ctx, domain.Now().Add(-dashboardWindow), dashboardLimit)
	if err != nil {
		s.logger.Error("dashboard query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reports"})
		return
	}

	points := make([]mapPoint, 0, len(reports))
	counts := map[string]int{}
	for _, r := range reports {
		points = append(points, mapPoint{
			ID:         r.ID,
			Latitude:   r.Latitude,
			Longitude:  r.Longitude,
			WaterLevel: r.WaterLevel,
			Severity:   r.NLP.Severity,
			CreatedAt:  r.CreatedAt,
		})
		counts[r.NLP.Severity]++
	}

	c.JSON(http.StatusOK, gin.H{
		"map_points":      points,
		"severity_counts": counts,
		"total_reports":   len(reports),
	})
}
