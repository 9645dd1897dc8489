package models

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// NoData is how an undefined Average prints.
const NoData = "no data"

// Average is a mean that is undefined over zero records.
type Average struct {
	Value float64
	Valid bool
}

// NewAverage returns an invalid Average when count is zero.
func NewAverage(sum float64, count int) Average {
	if count == 0 {
		return Average{}
	}
	return Average{Value: sum / float64(count), Valid: true}
}

// Float64 returns NaN for an undefined mean.
func (a Average) Float64() float64 {
	if !a.Valid {
		return math.NaN()
	}
	return a.Value
}

func (a Average) String() string {
	if !a.Valid {
		return NoData
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

func (a *Average) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Average{}
		return nil
	}
	if err := json.Unmarshal(data, &a.Value); err != nil {
		return err
	}
	a.Valid = true
	return nil
}

type Summary struct {
	Records            int             `json:"records"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	AverageRating      Average         `json:"average_rating"`
	AverageGrossIncome Average         `json:"average_gross_income"`
}

type MonthlyTotal struct {
	Month Month           `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type MonthlyLineTotal struct {
	Month       Month           `json:"month"`
	ProductLine string          `json:"product_line"`
	Total       decimal.Decimal `json:"total"`
}

// Series is one line of the monthly sales chart.
type Series struct {
	Name   string         `json:"name"`
	Points []MonthlyTotal `json:"points"`
}

// TimeSeries is split by product line unless a single line was selected.
type TimeSeries struct {
	ByProductLine bool     `json:"by_product_line"`
	Series        []Series `json:"series"`
}

type PriceGroup struct {
	ProductLine string    `json:"product_line"`
	Prices      []float64 `json:"prices"`
}

type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type RatingDistribution struct {
	Values []float64 `json:"values"`
	Bins   int       `json:"bins"`
}

type ScatterPoint struct {
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
	Rating      float64 `json:"rating"`
	ProductLine string  `json:"product_line"`
}

type FilterOptions struct {
	ProductLines []string `json:"product_lines"`
	Cities       []string `json:"cities"`
	Genders      []string `json:"genders"`
}

// Dashboard is everything rendered for one selection.
type Dashboard struct {
	Selection    Selection          `json:"selection"`
	Summary      Summary            `json:"summary"`
	MonthlySales TimeSeries         `json:"monthly_sales"`
	Prices       []PriceGroup       `json:"price_distribution"`
	Ratings      RatingDistribution `json:"rating_distribution"`
	Scatter      []ScatterPoint     `json:"scatter"`
}
