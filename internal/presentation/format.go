package presentation

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"retail-dashboard/internal/models"
)

const moneyFormat = "#,###.##"

// Money formats an amount with thousands separators and two decimals.
func Money(d decimal.Decimal) string {
	return humanize.FormatFloat(moneyFormat, d.Round(2).InexactFloat64())
}

// Number formats a plain float with thousands separators and two decimals.
func Number(v float64) string {
	return humanize.FormatFloat(moneyFormat, v)
}

// Mean formats an Average, or the profile's no-data text when undefined.
func (p Profile) Mean(a models.Average) string {
	if !a.Valid {
		return p.Labels.NoData
	}
	return Number(a.Value)
}
