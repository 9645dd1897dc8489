// Package templates renders the dashboard page and the fragments patched
// into it over SSE. Components are written in templ; run `templ generate`
// after editing a .templ file.
package templates

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/a-h/templ"

	"retail-dashboard/internal/models"
)

// Chart data signals. The leading underscore keeps them in the browser:
// Datastar leaves such signals out of the filter requests it sends back.
const (
	SignalMonthlySales = "_monthlyData"
	SignalPrices       = "_priceData"
	SignalRatings      = "_ratingData"
	SignalScatter      = "_scatterData"
)

// Filter signals, the only ones a request carries.
const (
	SignalProductLine = "productLine"
	SignalCity        = "city"
	SignalGender      = "gender"
)

// initialSignals is the page's data-signals value.
func initialSignals() string {
	b, err := json.Marshal(map[string]any{
		SignalProductLine:  models.All,
		SignalCity:         models.All,
		SignalGender:       models.All,
		SignalMonthlySales: map[string]any{},
		SignalPrices:       []any{},
		SignalRatings:      map[string]any{},
		SignalScatter:      []any{},
	})
	if err != nil {
		panic(err)
	}
	return string(b)
}

func chartEffect(fn, signal string) string {
	return "window.dashboard." + fn + "(el, $" + signal + ")"
}

func date(r models.Record) string {
	return r.Date.Format("2006-01-02")
}

// String renders c to a string, for SSE element patches.
func String(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
