package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"retail-dashboard/internal/errors"
	"retail-dashboard/internal/observability"
	"retail-dashboard/internal/presentation"
	"retail-dashboard/internal/services"
	"retail-dashboard/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

type PageHandlers struct {
	analytics *services.Analytics
	profile   presentation.Profile
	logger    *slog.Logger
}

func NewPageHandlers(analytics *services.Analytics, profile presentation.Profile, logger *slog.Logger) *PageHandlers {
	return &PageHandlers{
		analytics: analytics,
		profile:   profile,
		logger:    logger,
	}
}

func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	requestID := observability.GetRequestID(ctx)

	options, err := h.analytics.Options(ctx)
	if err != nil {
		errors.WriteError(w, h.logger, errors.FromLoad(err), requestID)
		return
	}
	preview, err := h.analytics.Preview(ctx)
	if err != nil {
		errors.WriteError(w, h.logger, errors.FromLoad(err), requestID)
		return
	}

	page, err := templates.String(ctx, templates.Dashboard(h.profile, options, preview))
	if err != nil {
		h.logger.Error("render dashboard", "error", err, "request_id", requestID)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}
