package dataset

import (
	"errors"
	"fmt"
)

// DataFormatError reports a missing column or an unparseable cell in the
// input file. Loading never continues past one.
type DataFormatError struct {
	Path   string
	Row    int // 1-based data row, 0 when not row specific
	Column string
	Value  string
	Err    error
}

func (e *DataFormatError) Error() string {
	switch {
	case e.Row > 0:
		return fmt.Sprintf("data format: %s: row %d column %q value %q: %v", e.Path, e.Row, e.Column, e.Value, e.Err)
	case e.Column != "":
		return fmt.Sprintf("data format: %s: column %q: %v", e.Path, e.Column, e.Err)
	default:
		return fmt.Sprintf("data format: %s: %v", e.Path, e.Err)
	}
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

var (
	ErrMissingColumn = errors.New("required column missing")
	ErrNoRecords     = errors.New("no records")
)

// IsDataFormat reports whether err is, or wraps, a DataFormatError.
func IsDataFormat(err error) bool {
	var dfe *DataFormatError
	return errors.As(err, &dfe)
}
