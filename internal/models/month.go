package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month is a calendar month at year-month granularity.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf truncates t to its calendar month.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses the 2006-01 form produced by String.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

func (m Month) index() int {
	return m.Year*12 + int(m.Month) - 1
}

// Compare orders months chronologically.
func (m Month) Compare(o Month) int {
	switch a, b := m.index(), o.index(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (m Month) Before(o Month) bool {
	return m.Compare(o) < 0
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Time returns midnight UTC on the first day of the month.
func (m Month) Time() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
