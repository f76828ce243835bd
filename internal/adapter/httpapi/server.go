// Package httpapi exposes the public HTTP surface: report submission, risk
// queries, alert intake, the dashboard feed, and the operational endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
	"github.com/rainsafe/rainsafe-backend/internal/observability"
)

// ReportStore is the slice of the report repository the API writes and reads.
type ReportStore interface {
	Insert(ctx context.Context, r domain.Report) error
	QueryRecent(ctx context.Context, since time.Time, limit int) ([]domain.Report, error)
}

// Assessor runs one hybrid risk assessment.
type Assessor interface {
	AssessRisk(ctx context.Context, lat, lon float64) domain.RiskVerdict
}

// Analyzer scores a report description, degrading to the unknown analysis
// when scoring cannot complete in time.
type Analyzer interface {
	Analyze(ctx context.Context, description string) domain.NLPAnalysis
}

// Publisher forwards accepted reports to downstream consumers. Optional.
type Publisher interface {
	Publish(ctx context.Context, r domain.Report) error
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server wires the gin router into an http.Server with sane timeouts.
type Server struct {
	httpServer *http.Server

	reports   ReportStore
	assessor  Assessor
	analyzer  Analyzer
	publisher Publisher

	storageTimeout time.Duration
	metrics        *observability.Metrics
	logger         *slog.Logger
}

// NewServer builds the router and all routes. publisher may be nil when
// event publishing is disabled.
func NewServer(addr string, reports ReportStore, assessor Assessor, analyzer Analyzer, publisher Publisher, ready ReadinessChecker, storageTimeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		reports:        reports,
		assessor:       assessor,
		analyzer:       analyzer,
		publisher:      publisher,
		storageTimeout: storageTimeout,
		metrics:        metrics,
		logger:         logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))

	engine.POST("/report", s.handleSubmitReport)
	engine.GET("/risk", s.handleRisk)
	engine.POST("/alerts", s.handleAlert)
	engine.GET("/dashboard", s.handleDashboard)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	engine.GET("/readyz", handleReady(ready))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func handleReady(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
