package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"retail-dashboard/internal/errors"
	"retail-dashboard/internal/models"
	"retail-dashboard/internal/observability"
	"retail-dashboard/internal/services"
)

const cacheControl = "public, max-age=300"

var cacheHeaders = map[string]string{
	"Cache-Control": cacheControl,
}

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger

	// Version is reported by the health endpoint.
	Version string
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

// view resolves the request's selection to a dashboard view, writing the
// error response itself when it cannot.
func (h *APIHandlers) view(w http.ResponseWriter, r *http.Request) (*models.Dashboard, bool) {
	sel, err := parseSelection(r)
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}

	view, err := h.analytics.Dashboard(r.Context(), sel)
	if err != nil {
		h.fail(w, r, errors.FromLoad(err))
		return nil, false
	}
	return view, true
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.analytics.Options(r.Context())
	if err != nil {
		h.fail(w, r, errors.FromLoad(err))
		return
	}
	errors.WriteSuccessWithHeaders(w, options, cacheHeaders)
}

func (h *APIHandlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	records, err := h.analytics.Preview(r.Context())
	if err != nil {
		h.fail(w, r, errors.FromLoad(err))
		return
	}
	errors.WriteSuccessWithHeaders(w, records, cacheHeaders)
}

func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if view, ok := h.view(w, r); ok {
		errors.WriteSuccessWithHeaders(w, view, cacheHeaders)
	}
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if view, ok := h.view(w, r); ok {
		errors.WriteSuccessWithHeaders(w, view.Summary, cacheHeaders)
	}
}

func (h *APIHandlers) HandleMonthlySales(w http.ResponseWriter, r *http.Request) {
	if view, ok := h.view(w, r); ok {
		errors.WriteSuccessWithHeaders(w, view.MonthlySales, cacheHeaders)
	}
}

func (h *APIHandlers) HandlePriceDistribution(w http.ResponseWriter, r *http.Request) {
	if view, ok := h.view(w, r); ok {
		errors.WriteSuccessWithHeaders(w, view.Prices, cacheHeaders)
	}
}

func (h *APIHandlers) HandleRatingDistribution(w http.ResponseWriter, r *http.Request) {
	if view, ok := h.view(w, r); ok {
		errors.WriteSuccessWithHeaders(w, view.Ratings, cacheHeaders)
	}
}

func (h *APIHandlers) HandleScatter(w http.ResponseWriter, r *http.Request) {
	if view, ok := h.view(w, r); ok {
		errors.WriteSuccessWithHeaders(w, view.Scatter, cacheHeaders)
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   h.Version,
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
