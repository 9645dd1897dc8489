// Package dataset loads the sales file into an immutable, shared set of records.
package dataset

import (
	"slices"
	"time"

	"retail-dashboard/internal/models"
)

// Dataset is read-only once built.
type Dataset struct {
	records  []models.Record
	path     string
	loadedAt time.Time
	duration time.Duration
}

// FromRecords builds an in-memory dataset. The input slice is copied.
func FromRecords(records []models.Record) *Dataset {
	return &Dataset{
		records:  slices.Clone(records),
		path:     "memory",
		loadedAt: time.Now(),
	}
}

func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the records in load order. The returned slice is a copy.
func (d *Dataset) Records() []models.Record {
	return slices.Clone(d.records)
}

// All iterates the records without copying.
func (d *Dataset) All(yield func(int, models.Record) bool) {
	for i, r := range d.records {
		if !yield(i, r) {
			return
		}
	}
}

// Head returns at most n records from the start.
func (d *Dataset) Head(n int) []models.Record {
	if n < 0 {
		n = 0
	}
	return slices.Clone(d.records[:min(n, len(d.records))])
}

func (d *Dataset) Path() string {
	return d.path
}

func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

func (d *Dataset) LoadDuration() time.Duration {
	return d.duration
}
