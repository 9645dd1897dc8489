package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Chart payloads need plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Record is one sales transaction row.
type Record struct {
	Date        time.Time       `json:"date"`
	Month       Month           `json:"month"`
	ProductLine string          `json:"product_line"`
	City        string          `json:"city"`
	Gender      string          `json:"gender"`
	Payment     string          `json:"payment"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	Rating      float64         `json:"rating"`
	GrossIncome decimal.Decimal `json:"gross_income"`
}
