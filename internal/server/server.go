package server

import (
	"log/slog"
	"net/http"

	"retail-dashboard/internal/handlers"
	"retail-dashboard/internal/presentation"
	"retail-dashboard/internal/services"
	"retail-dashboard/internal/ui/static"
)

type Server struct {
	analytics     *services.Analytics
	mux           *http.ServeMux
	logger        *slog.Logger
	pageHandlers  *handlers.PageHandlers
	apiHandlers   *handlers.APIHandlers
	sseHandlers   *handlers.SSEHandlers
	chartHandlers *handlers.ChartHandlers
}

// NewServer wires the handlers and routes. version is reported by /health.
func NewServer(analytics *services.Analytics, profile presentation.Profile, logger *slog.Logger, version string) *Server {
	api := handlers.NewAPIHandlers(analytics, logger)
	api.Version = version

	s := &Server{
		analytics:     analytics,
		mux:           http.NewServeMux(),
		logger:        logger,
		pageHandlers:  handlers.NewPageHandlers(analytics, profile, logger),
		apiHandlers:   api,
		sseHandlers:   handlers.NewSSEHandlers(analytics, profile, logger),
		chartHandlers: handlers.NewChartHandlers(analytics, profile, logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Dashboard routes
	s.mux.HandleFunc("GET /{$}", s.pageHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static.FS)))

	// REST API endpoints
	s.mux.HandleFunc("GET /api/options", s.apiHandlers.HandleOptions)
	s.mux.HandleFunc("GET /api/preview", s.apiHandlers.HandlePreview)
	s.mux.HandleFunc("GET /api/dashboard", s.apiHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)
	s.mux.HandleFunc("GET /api/monthly-sales", s.apiHandlers.HandleMonthlySales)
	s.mux.HandleFunc("GET /api/price-distribution", s.apiHandlers.HandlePriceDistribution)
	s.mux.HandleFunc("GET /api/rating-distribution", s.apiHandlers.HandleRatingDistribution)
	s.mux.HandleFunc("GET /api/scatter", s.apiHandlers.HandleScatter)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/dashboard", s.sseHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /sse/preview", s.sseHandlers.HandlePreview)

	// Server-rendered charts
	s.mux.HandleFunc("GET /charts/monthly-sales.png", s.chartHandlers.HandleMonthlySales)
	s.mux.HandleFunc("GET /charts/ratings.png", s.chartHandlers.HandleRatings)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
