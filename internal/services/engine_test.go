package services

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"retail-dashboard/internal/models"
)

func newRecord(date string, line, city, gender, total string, rating float64) models.Record {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	t := decimal.RequireFromString(total)
	return models.Record{
		Date:        d,
		Month:       models.MonthOf(d),
		ProductLine: line,
		City:        city,
		Gender:      gender,
		Payment:     "Cash",
		UnitPrice:   t,
		Quantity:    1,
		Total:       t,
		Rating:      rating,
		GrossIncome: t.Div(decimal.NewFromInt(21)),
	}
}

func testRecords() []models.Record {
	return []models.Record{
		newRecord("2019-01-05", "Food and beverages", "Yangon", models.GenderFemale, "548.97", 9.1),
		newRecord("2019-03-08", "Electronic accessories", "Naypyitaw", models.GenderFemale, "80.22", 9.6),
		newRecord("2019-03-03", "Home and lifestyle", "Yangon", models.GenderMale, "340.53", 7.4),
		newRecord("2019-01-27", "Health and beauty", "Yangon", models.GenderMale, "489.05", 8.4),
		newRecord("2019-02-08", "Sports and travel", "Yangon", models.GenderMale, "634.38", 5.3),
		newRecord("2019-03-25", "Electronic accessories", "Naypyitaw", models.GenderMale, "627.62", 4.1),
		newRecord("2019-02-25", "Electronic accessories", "Yangon", models.GenderFemale, "433.69", 5.8),
		newRecord("2019-02-24", "Home and lifestyle", "Naypyitaw", models.GenderFemale, "772.38", 8.0),
		newRecord("2019-01-10", "Health and beauty", "Mandalay", models.GenderFemale, "76.15", 7.2),
		newRecord("2019-02-20", "Food and beverages", "Mandalay", models.GenderMale, "172.75", 5.9),
	}
}

var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
}

func TestFilter(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name string
		sel  models.Selection
		want int
	}{
		{"all", models.Selection{}, 10},
		{"product line", models.Selection{ProductLine: "Electronic accessories"}, 3},
		{"city", models.Selection{City: "Yangon"}, 5},
		{"gender", models.Selection{Gender: models.GenderMale}, 5},
		{"combined", models.Selection{ProductLine: "Electronic accessories", City: "Naypyitaw", Gender: models.GenderMale}, 1},
		{"unknown value", models.Selection{City: "Atlantis"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.sel)
			if len(got) != tt.want {
				t.Fatalf("Filter() returned %d records, want %d", len(got), tt.want)
			}
			for _, r := range got {
				if !tt.sel.Matches(r) {
					t.Errorf("Filter() kept non-matching record %+v", r)
				}
			}
		})
	}
}

func TestFilter_PreservesOrderAndDoesNotAlias(t *testing.T) {
	records := testRecords()
	got := Filter(records, models.Selection{Gender: models.GenderFemale})

	var want []models.Record
	for _, r := range records {
		if r.Gender == models.GenderFemale {
			want = append(want, r)
		}
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Filter() order mismatch (-want +got):\n%s", diff)
	}

	all := Filter(records, models.Selection{})
	all[0].City = "changed"
	if records[0].City == "changed" {
		t.Error("Filter() result aliases the input slice")
	}

	if empty := Filter(nil, models.Selection{}); empty == nil || len(empty) != 0 {
		t.Errorf("Filter(nil) = %#v, want empty non-nil slice", empty)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	records := testRecords()
	sel := models.Selection{City: "Yangon", Gender: models.GenderMale}

	once := Filter(records, sel)
	twice := Filter(once, sel)
	if diff := cmp.Diff(once, twice, cmpOpts); diff != "" {
		t.Errorf("Filter() not idempotent (-once +twice):\n%s", diff)
	}
}

func TestFilter_Composition(t *testing.T) {
	records := testRecords()
	line := models.Selection{ProductLine: "Electronic accessories"}
	city := models.Selection{City: "Naypyitaw"}
	gender := models.Selection{Gender: models.GenderFemale}
	combined := models.Selection{ProductLine: line.ProductLine, City: city.City, Gender: gender.Gender}

	want := Filter(records, combined)
	orders := [][]models.Selection{
		{line, city, gender},
		{gender, city, line},
		{city, line, gender},
	}
	for _, order := range orders {
		got := records
		for _, sel := range order {
			got = Filter(got, sel)
		}
		if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
			t.Errorf("sequential filter mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSummarize_SumInvariant(t *testing.T) {
	records := testRecords()
	total := Summarize(records).TotalSales

	partitions := map[string]func(models.Record) string{
		"product line": func(r models.Record) string { return r.ProductLine },
		"city":         func(r models.Record) string { return r.City },
		"gender":       func(r models.Record) string { return r.Gender },
	}

	for name, key := range partitions {
		t.Run(name, func(t *testing.T) {
			var values []string
			for _, r := range records {
				values = append(values, key(r))
			}
			slices.Sort(values)

			sum := decimal.Zero
			for _, v := range slices.Compact(values) {
				var sel models.Selection
				switch name {
				case "product line":
					sel.ProductLine = v
				case "city":
					sel.City = v
				case "gender":
					sel.Gender = v
				}
				sum = sum.Add(Summarize(Filter(records, sel)).TotalSales)
			}
			if !sum.Equal(total) {
				t.Errorf("partition sum = %s, want %s", sum, total)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	records := []models.Record{
		newRecord("2019-01-01", "Food and beverages", "Yangon", models.GenderMale, "10", 8),
		newRecord("2019-01-02", "Food and beverages", "Yangon", models.GenderMale, "5", 6),
	}
	records[0].GrossIncome = decimal.RequireFromString("1.5")
	records[1].GrossIncome = decimal.RequireFromString("0.25")

	got := Summarize(records)
	want := models.Summary{
		Records:            2,
		TotalSales:         decimal.RequireFromString("15"),
		AverageRating:      models.Average{Value: 7, Valid: true},
		AverageGrossIncome: models.Average{Value: 0.875, Valid: true},
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(Filter(testRecords(), models.Selection{City: "Atlantis"}))

	if got.Records != 0 {
		t.Errorf("Records = %d, want 0", got.Records)
	}
	if !got.TotalSales.IsZero() {
		t.Errorf("TotalSales = %s, want 0", got.TotalSales)
	}
	if got.AverageRating.String() != models.NoData {
		t.Errorf("AverageRating = %q, want %q", got.AverageRating, models.NoData)
	}
	if got.AverageGrossIncome.String() != models.NoData {
		t.Errorf("AverageGrossIncome = %q, want %q", got.AverageGrossIncome, models.NoData)
	}
}

func TestSummarize_GenderAbsent(t *testing.T) {
	var males []models.Record
	for _, r := range testRecords() {
		if r.Gender == models.GenderMale {
			males = append(males, r)
		}
	}

	filtered := Filter(males, models.Selection{Gender: models.GenderFemale})
	if len(filtered) != 0 {
		t.Fatalf("Filter() returned %d records, want 0", len(filtered))
	}
	if s := Summarize(filtered); s.AverageRating.String() != models.NoData {
		t.Errorf("AverageRating = %q, want %q", s.AverageRating, models.NoData)
	}
}

func TestSalesByMonth(t *testing.T) {
	records := []models.Record{
		newRecord("2019-01-03", "Food", "Yangon", models.GenderMale, "10", 5),
		newRecord("2019-01-20", "Food", "Yangon", models.GenderMale, "5", 5),
		newRecord("2019-02-11", "Food", "Yangon", models.GenderMale, "7", 5),
	}

	got := SalesByMonth(records)
	want := []models.MonthlyTotal{
		{Month: models.Month{Year: 2019, Month: time.January}, Total: decimal.NewFromInt(15)},
		{Month: models.Month{Year: 2019, Month: time.February}, Total: decimal.NewFromInt(7)},
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("SalesByMonth() mismatch (-want +got):\n%s", diff)
	}
}

func TestSalesByMonth_Chronological(t *testing.T) {
	records := []models.Record{
		newRecord("2019-10-01", "Food", "Yangon", models.GenderMale, "1", 5),
		newRecord("2018-12-01", "Food", "Yangon", models.GenderMale, "1", 5),
		newRecord("2019-09-01", "Food", "Yangon", models.GenderMale, "1", 5),
	}

	got := SalesByMonth(records)
	var months []string
	for _, m := range got {
		months = append(months, m.Month.String())
	}
	want := []string{"2018-12", "2019-09", "2019-10"}
	if diff := cmp.Diff(want, months); diff != "" {
		t.Errorf("month order mismatch (-want +got):\n%s", diff)
	}
}

func TestSalesByMonthAndLine_Completeness(t *testing.T) {
	records := testRecords()
	rand.Shuffle(len(records), func(i, j int) { records[i], records[j] = records[j], records[i] })

	got := SalesByMonthAndLine(records)

	type pair struct {
		month models.Month
		line  string
	}
	observed := make(map[pair]decimal.Decimal)
	for _, r := range records {
		p := pair{r.Month, r.ProductLine}
		observed[p] = observed[p].Add(r.Total)
	}

	if len(got) != len(observed) {
		t.Fatalf("SalesByMonthAndLine() returned %d triples, want %d", len(got), len(observed))
	}
	for _, triple := range got {
		want, ok := observed[pair{triple.Month, triple.ProductLine}]
		if !ok {
			t.Errorf("unexpected pair %s/%s", triple.Month, triple.ProductLine)
			continue
		}
		if !want.Equal(triple.Total) {
			t.Errorf("%s/%s total = %s, want %s", triple.Month, triple.ProductLine, triple.Total, want)
		}
	}

	sorted := slices.IsSortedFunc(got, func(a, b models.MonthlyLineTotal) int {
		if c := a.Month.Compare(b.Month); c != 0 {
			return c
		}
		if a.ProductLine < b.ProductLine {
			return -1
		}
		if a.ProductLine > b.ProductLine {
			return 1
		}
		return 0
	})
	if !sorted {
		t.Error("triples should be ordered by month then product line")
	}
}

func TestMonthlySales(t *testing.T) {
	records := testRecords()

	t.Run("split by product line", func(t *testing.T) {
		ts := MonthlySales(records, models.Selection{})
		if !ts.ByProductLine {
			t.Error("ByProductLine should be true without a product line filter")
		}
		var names []string
		for _, s := range ts.Series {
			names = append(names, s.Name)
		}
		want := []string{"Electronic accessories", "Food and beverages", "Health and beauty", "Home and lifestyle", "Sports and travel"}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Errorf("series names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("single product line", func(t *testing.T) {
		sel := models.Selection{ProductLine: "Electronic accessories"}
		ts := MonthlySales(Filter(records, sel), sel)
		if ts.ByProductLine {
			t.Error("ByProductLine should be false with a product line filter")
		}
		want := []models.Series{{
			Name: "Electronic accessories",
			Points: []models.MonthlyTotal{
				{Month: models.Month{Year: 2019, Month: time.February}, Total: decimal.RequireFromString("433.69")},
				{Month: models.Month{Year: 2019, Month: time.March}, Total: decimal.RequireFromString("707.84")},
			},
		}}
		if diff := cmp.Diff(want, ts.Series, cmpOpts); diff != "" {
			t.Errorf("series mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty", func(t *testing.T) {
		ts := MonthlySales(nil, models.Selection{})
		if ts.Series == nil || len(ts.Series) != 0 {
			t.Errorf("Series = %#v, want empty non-nil slice", ts.Series)
		}
	})
}

func TestPriceByProductLine(t *testing.T) {
	records := []models.Record{
		newRecord("2019-01-01", "Sports", "Yangon", models.GenderMale, "20.5", 5),
		newRecord("2019-01-01", "Food", "Yangon", models.GenderMale, "3", 5),
		newRecord("2019-01-01", "Sports", "Yangon", models.GenderMale, "11", 5),
	}

	got := PriceByProductLine(records)
	want := []models.PriceGroup{
		{ProductLine: "Food", Prices: []float64{3}},
		{ProductLine: "Sports", Prices: []float64{20.5, 11}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PriceByProductLine() mismatch (-want +got):\n%s", diff)
	}
}

func TestHistogram(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		bins   int
		want   []int
	}{
		{"empty", nil, 4, nil},
		{"spread", []float64{4, 5, 6, 7, 8}, 4, []int{1, 1, 1, 2}},
		{"max in last bin", []float64{0, 10}, 2, []int{1, 1}},
		{"single value", []float64{7, 7, 7}, 3, []int{0, 3, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bins := Histogram(tt.values, tt.bins)
			var counts []int
			total := 0
			for _, b := range bins {
				counts = append(counts, b.Count)
				total += b.Count
			}
			if diff := cmp.Diff(tt.want, counts); diff != "" {
				t.Errorf("Histogram() counts mismatch (-want +got):\n%s", diff)
			}
			if total != len(tt.values) {
				t.Errorf("Histogram() counted %d values, want %d", total, len(tt.values))
			}
		})
	}
}

func TestFilterOptions(t *testing.T) {
	got := FilterOptions(testRecords())
	want := models.FilterOptions{
		ProductLines: []string{"Electronic accessories", "Food and beverages", "Health and beauty", "Home and lifestyle", "Sports and travel"},
		Cities:       []string{"Mandalay", "Naypyitaw", "Yangon"},
		Genders:      []string{models.GenderMale, models.GenderFemale},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FilterOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDashboard(t *testing.T) {
	sel := models.Selection{City: "Yangon"}
	view := BuildDashboard(testRecords(), sel)

	if view.Selection != sel.Normalize() {
		t.Errorf("Selection = %+v, want normalized %+v", view.Selection, sel.Normalize())
	}
	if view.Summary.Records != 5 {
		t.Errorf("Summary.Records = %d, want 5", view.Summary.Records)
	}
	if len(view.Ratings.Values) != 5 || view.Ratings.Bins != RatingBins {
		t.Errorf("Ratings = %+v", view.Ratings)
	}
	if len(view.Scatter) != 5 {
		t.Errorf("Scatter has %d points, want 5", len(view.Scatter))
	}
}
