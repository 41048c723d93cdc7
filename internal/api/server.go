// Package api exposes the reports and the attempt log over HTTP.
package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/coach"
	"github.com/abhisek/examlens/internal/cutoff"
	"github.com/abhisek/examlens/internal/dashboard"
	"github.com/abhisek/examlens/internal/history"
	"github.com/abhisek/examlens/internal/report"
)

// Reports is the read side served by report.Engine.
type Reports interface {
	Dashboard(ctx context.Context, userID string) (*dashboard.Report, error)
	Trend(ctx context.Context, userID string) (dashboard.Trend, error)
	Session(ctx context.Context, userID, sessionID string, o history.Override) (*report.SessionReport, error)
}

// Store is the attempt log as seen by the handlers.
type Store interface {
	AppendAttempt(ctx context.Context, rec attempt.Record) (int64, error)
	Library(ctx context.Context, userID, subject string) ([]attempt.Record, error)
	ClearFromLibrary(ctx context.Context, userID string, questionID int64) (int64, error)
	Cutoff(ctx context.Context, examName string, year int) (*cutoff.Record, error)
}

// Planner writes study plans. It is optional.
type Planner interface {
	Plan(ctx context.Context, r *dashboard.Report) (*coach.Plan, error)
}

// Config controls the engine setup.
type Config struct {
	CORSOrigins []string
	// PlanTimeout bounds a single study-plan request.
	PlanTimeout time.Duration
}

// Server holds the handler dependencies.
type Server struct {
	reports Reports
	store   Store
	planner Planner
	logger  *slog.Logger
	cfg     Config
}

// NewServer creates a Server. planner may be nil, which disables the
// plan endpoint.
func NewServer(reports Reports, store Store, planner Planner, logger *slog.Logger, cfg Config) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{reports: reports, store: store, planner: planner, logger: logger, cfg: cfg}
}

// Handler builds the gin engine with middleware and routes.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.logger))
	r.Use(cors.New(s.corsConfig()))

	r.GET("/health", s.health)

	users := r.Group("/api/users/:user")
	{
		users.GET("/dashboard", s.getDashboard)
		users.GET("/trend", s.getTrend)
		users.GET("/sessions/:session", s.getSession)
		users.GET("/library", s.getLibrary)
		users.DELETE("/library/:question", s.clearLibrary)
		users.POST("/plan", s.postPlan)
	}

	r.POST("/api/attempts", s.postAttempt)
	r.GET("/api/cutoffs/:exam/:year", s.getCutoff)

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	origins := s.cfg.CORSOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
