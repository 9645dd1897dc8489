package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"retail-dashboard/internal/models"
)

const (
	batchSize  = 2000
	maxWorkers = 8
)

const (
	ColDate        = "Date"
	ColProductLine = "Product line"
	ColCity        = "City"
	ColGender      = "Gender"
	ColPayment     = "Payment"
	ColUnitPrice   = "Unit price"
	ColQuantity    = "Quantity"
	ColTotal       = "Total"
	ColRating      = "Rating"
	ColGrossIncome = "gross income"
)

// RequiredColumns must all be present in the header row.
var RequiredColumns = []string{
	ColDate, ColProductLine, ColCity, ColGender, ColPayment,
	ColUnitPrice, ColQuantity, ColTotal, ColRating, ColGrossIncome,
}

var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	time.RFC3339,
}

// ParseDate accepts the date layouts found in sales exports.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadFile reads the whole file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return l.Load(ctx, path, f)
}

// Load parses a delimited table with a header row. Any structural or cell
// problem yields a *DataFormatError.
func (l *Loader) Load(ctx context.Context, name string, r io.Reader) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		// Cells are kept verbatim; "NA" is a valid city or product line.
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, &DataFormatError{Path: name, Err: df.Err}
	}

	names := df.Names()
	for _, col := range RequiredColumns {
		if !slices.Contains(names, col) {
			return nil, &DataFormatError{Path: name, Column: col, Err: ErrMissingColumn}
		}
	}

	if df.Nrow() == 0 {
		return nil, &DataFormatError{Path: name, Err: ErrNoRecords}
	}

	cols := make(map[string][]string, len(RequiredColumns))
	for _, col := range RequiredColumns {
		s := df.Col(col)
		if s.Err != nil {
			return nil, &DataFormatError{Path: name, Column: col, Err: s.Err}
		}
		cols[col] = s.Records()
	}

	records := make([]models.Record, df.Nrow())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for lo := 0; lo < len(records); lo += batchSize {
		hi := min(lo+batchSize, len(records))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				rec, err := parseRow(cols, i)
				if err != nil {
					var dfe *DataFormatError
					if errors.As(err, &dfe) {
						dfe.Path = name
					}
					return err
				}
				records[i] = rec
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dataset{
		records:  records,
		path:     name,
		loadedAt: time.Now(),
		duration: time.Since(start),
	}

	l.logger.Info("dataset loaded",
		"path", name,
		"records", len(records),
		"duration", d.duration,
	)

	return d, nil
}

func parseRow(cols map[string][]string, i int) (models.Record, error) {
	cell := func(col string) string {
		return strings.TrimSpace(cols[col][i])
	}
	fail := func(col string, err error) error {
		return &DataFormatError{Row: i + 1, Column: col, Value: cols[col][i], Err: err}
	}

	date, err := ParseDate(cell(ColDate))
	if err != nil {
		return models.Record{}, fail(ColDate, err)
	}

	rec := models.Record{
		Date:        date,
		Month:       models.MonthOf(date),
		ProductLine: cell(ColProductLine),
		City:        cell(ColCity),
		Gender:      cell(ColGender),
		Payment:     cell(ColPayment),
	}

	if rec.UnitPrice, err = decimal.NewFromString(cell(ColUnitPrice)); err != nil {
		return models.Record{}, fail(ColUnitPrice, err)
	}
	if rec.Quantity, err = strconv.Atoi(cell(ColQuantity)); err != nil {
		return models.Record{}, fail(ColQuantity, err)
	}
	if rec.Total, err = decimal.NewFromString(cell(ColTotal)); err != nil {
		return models.Record{}, fail(ColTotal, err)
	}
	if rec.Rating, err = parseFinite(cell(ColRating)); err != nil {
		return models.Record{}, fail(ColRating, err)
	}
	if rec.GrossIncome, err = decimal.NewFromString(cell(ColGrossIncome)); err != nil {
		return models.Record{}, fail(ColGrossIncome, err)
	}

	return rec, nil
}

var errNotFinite = errors.New("value is not a finite number")

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}
