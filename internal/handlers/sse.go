package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"retail-dashboard/internal/errors"
	"retail-dashboard/internal/observability"
	"retail-dashboard/internal/presentation"
	"retail-dashboard/internal/services"
	"retail-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	analytics *services.Analytics
	profile   presentation.Profile
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, profile presentation.Profile, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		profile:   profile,
		logger:    logger,
	}
}

// HandleDashboard recomputes the view for the posted filter signals, swaps
// in the metrics panel and pushes the chart data as signals.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	sel, err := parseSelection(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	view, err := h.analytics.Dashboard(r.Context(), sel)
	if err != nil {
		errors.WriteError(w, h.logger, errors.FromLoad(err), requestID)
		return
	}

	html, err := templates.String(r.Context(), templates.Metrics(h.profile, view.Summary))
	if err != nil {
		h.logger.Error("render metrics", "error", err, "request_id", requestID)
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "render metrics"), requestID)
		return
	}

	signals, err := json.Marshal(map[string]any{
		templates.SignalMonthlySales: view.MonthlySales,
		templates.SignalPrices:       view.Prices,
		templates.SignalRatings:      view.Ratings,
		templates.SignalScatter:      view.Scatter,
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err, "request_id", requestID)
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "marshal chart signals"), requestID)
		return
	}

	sse := datastar.NewSSE(w, r)

	if err := sse.PatchElements(html); err != nil {
		h.logger.Warn("patch metrics", "error", err, "request_id", requestID)
		return
	}
	if err := sse.PatchSignals(signals); err != nil {
		h.logger.Warn("patch chart signals", "error", err, "request_id", requestID)
	}
}

// HandlePreview swaps in the dataset preview table.
func (h *SSEHandlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	records, err := h.analytics.Preview(r.Context())
	if err != nil {
		errors.WriteError(w, h.logger, errors.FromLoad(err), requestID)
		return
	}

	html, err := templates.String(r.Context(), templates.PreviewTable(h.profile, records))
	if err != nil {
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "render preview"), requestID)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElements(html); err != nil {
		h.logger.Warn("patch preview", "error", err, "request_id", requestID)
	}
}
