package handlers

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"retail-dashboard/internal/errors"
	"retail-dashboard/internal/models"
)

// signalsParam is the query parameter Datastar sends signals in on GET.
const signalsParam = "datastar"

// selectionSignals mirrors the filter signals declared on the page.
type selectionSignals struct {
	ProductLine string `json:"productLine"`
	City        string `json:"city"`
	Gender      string `json:"gender"`
}

func selectionFromQuery(r *http.Request) models.Selection {
	q := r.URL.Query()
	return models.Selection{
		ProductLine: q.Get("product_line"),
		City:        q.Get("city"),
		Gender:      q.Get("gender"),
	}
}

// parseSelection reads the filter selection from Datastar signals when the
// request carries them, otherwise from plain query parameters.
func parseSelection(r *http.Request) (models.Selection, error) {
	var sel models.Selection
	if r.URL.Query().Get(signalsParam) != "" {
		var signals selectionSignals
		if err := datastar.ReadSignals(r, &signals); err != nil {
			return sel, errors.ValidationWrap(err, "Invalid filter signals")
		}
		sel = models.Selection{
			ProductLine: signals.ProductLine,
			City:        signals.City,
			Gender:      signals.Gender,
		}
	} else {
		sel = selectionFromQuery(r)
	}

	if err := sel.Validate(); err != nil {
		return sel, errors.ValidationWrap(err, "Invalid filter selection")
	}
	return sel.Normalize(), nil
}
