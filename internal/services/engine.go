package services

import (
	"cmp"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"retail-dashboard/internal/models"
)

// RatingBins is the histogram bin count the dashboard asks renderers for.
const RatingBins = 20

// Filter returns the records matching every non-All dimension of sel, in
// their original order. The result never aliases the input.
func Filter(records []models.Record, sel models.Selection) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if sel.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func Summarize(records []models.Record) models.Summary {
	total := decimal.Zero
	gross := decimal.Zero
	var ratings float64

	for _, r := range records {
		total = total.Add(r.Total)
		gross = gross.Add(r.GrossIncome)
		ratings += r.Rating
	}

	s := models.Summary{
		Records:       len(records),
		TotalSales:    total,
		AverageRating: models.NewAverage(ratings, len(records)),
	}
	if n := len(records); n > 0 {
		s.AverageGrossIncome = models.Average{
			Value: gross.Div(decimal.NewFromInt(int64(n))).InexactFloat64(),
			Valid: true,
		}
	}
	return s
}

// SalesByMonth sums Total per month, in calendar order.
func SalesByMonth(records []models.Record) []models.MonthlyTotal {
	groups := make(map[models.Month]decimal.Decimal)
	for _, r := range records {
		groups[r.Month] = groups[r.Month].Add(r.Total)
	}

	result := make([]models.MonthlyTotal, 0, len(groups))
	for month, total := range groups {
		result = append(result, models.MonthlyTotal{Month: month, Total: total})
	}
	slices.SortFunc(result, func(a, b models.MonthlyTotal) int {
		return a.Month.Compare(b.Month)
	})
	return result
}

// SalesByMonthAndLine sums Total per observed (month, product line) pair.
// Pairs without records are absent, not zero.
func SalesByMonthAndLine(records []models.Record) []models.MonthlyLineTotal {
	type key struct {
		month models.Month
		line  string
	}
	groups := make(map[key]decimal.Decimal)
	for _, r := range records {
		k := key{r.Month, r.ProductLine}
		groups[k] = groups[k].Add(r.Total)
	}

	result := make([]models.MonthlyLineTotal, 0, len(groups))
	for k, total := range groups {
		result = append(result, models.MonthlyLineTotal{Month: k.month, ProductLine: k.line, Total: total})
	}
	slices.SortFunc(result, func(a, b models.MonthlyLineTotal) int {
		if c := a.Month.Compare(b.Month); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductLine, b.ProductLine)
	})
	return result
}

// MonthlySales builds the time-series chart data. Without a product line
// filter there is one series per product line present.
func MonthlySales(records []models.Record, sel models.Selection) models.TimeSeries {
	if sel.HasProductLine() {
		return models.TimeSeries{
			Series: []models.Series{{Name: sel.ProductLine, Points: SalesByMonth(records)}},
		}
	}

	ts := models.TimeSeries{ByProductLine: true, Series: []models.Series{}}
	index := make(map[string]int)
	for _, t := range SalesByMonthAndLine(records) {
		i, ok := index[t.ProductLine]
		if !ok {
			i = len(ts.Series)
			index[t.ProductLine] = i
			ts.Series = append(ts.Series, models.Series{Name: t.ProductLine})
		}
		ts.Series[i].Points = append(ts.Series[i].Points, models.MonthlyTotal{Month: t.Month, Total: t.Total})
	}
	slices.SortFunc(ts.Series, func(a, b models.Series) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return ts
}

func PriceByProductLine(records []models.Record) []models.PriceGroup {
	groups := make(map[string][]float64)
	for _, r := range records {
		groups[r.ProductLine] = append(groups[r.ProductLine], r.UnitPrice.InexactFloat64())
	}

	result := make([]models.PriceGroup, 0, len(groups))
	for line, prices := range groups {
		result = append(result, models.PriceGroup{ProductLine: line, Prices: prices})
	}
	slices.SortFunc(result, func(a, b models.PriceGroup) int {
		return cmp.Compare(a.ProductLine, b.ProductLine)
	})
	return result
}

func Ratings(records []models.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Rating
	}
	return out
}

// Histogram buckets values into equal-width bins spanning [min, max]. The
// last bin is closed on the right. A zero-width range is widened by 0.5 on
// each side.
func Histogram(values []float64, bins int) []models.Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]models.Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		i := int(math.Floor((v - lo) / width))
		i = max(0, min(i, bins-1))
		out[i].Count++
	}
	return out
}

func Scatter(records []models.Record) []models.ScatterPoint {
	out := make([]models.ScatterPoint, len(records))
	for i, r := range records {
		out[i] = models.ScatterPoint{
			UnitPrice:   r.UnitPrice.InexactFloat64(),
			Total:       r.Total.InexactFloat64(),
			Rating:      r.Rating,
			ProductLine: r.ProductLine,
		}
	}
	return out
}

// FilterOptions lists the selectable values. Gender is fixed regardless of data.
func FilterOptions(records []models.Record) models.FilterOptions {
	lines := make([]string, 0)
	cities := make([]string, 0)
	for _, r := range records {
		lines = append(lines, r.ProductLine)
		cities = append(cities, r.City)
	}
	slices.Sort(lines)
	slices.Sort(cities)

	return models.FilterOptions{
		ProductLines: slices.Compact(lines),
		Cities:       slices.Compact(cities),
		Genders:      []string{models.GenderMale, models.GenderFemale},
	}
}

// BuildDashboard runs filter, metrics and aggregation for one selection.
func BuildDashboard(records []models.Record, sel models.Selection) *models.Dashboard {
	filtered := Filter(records, sel)
	return &models.Dashboard{
		Selection:    sel.Normalize(),
		Summary:      Summarize(filtered),
		MonthlySales: MonthlySales(filtered, sel),
		Prices:       PriceByProductLine(filtered),
		Ratings:      models.RatingDistribution{Values: Ratings(filtered), Bins: RatingBins},
		Scatter:      Scatter(filtered),
	}
}
