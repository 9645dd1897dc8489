package models

import (
	"fmt"
	"strings"
)

// All is the "no filter" sentinel for a selection dimension.
const All = "all"

// Selection holds the user's filter choices. Each dimension is either All
// (or empty) or an exact, case-sensitive value.
type Selection struct {
	ProductLine string `json:"product_line"`
	City        string `json:"city"`
	Gender      string `json:"gender"`
}

// IsAll reports whether a dimension value means "no filter".
func IsAll(v string) bool {
	return v == "" || v == All
}

func (s Selection) HasProductLine() bool {
	return !IsAll(s.ProductLine)
}

func (s Selection) HasCity() bool {
	return !IsAll(s.City)
}

func (s Selection) HasGender() bool {
	return !IsAll(s.Gender)
}

// Normalize replaces empty dimensions with All.
func (s Selection) Normalize() Selection {
	if IsAll(s.ProductLine) {
		s.ProductLine = All
	}
	if IsAll(s.City) {
		s.City = All
	}
	if IsAll(s.Gender) {
		s.Gender = All
	}
	return s
}

// Validate restricts gender to {all, Male, Female}.
func (s Selection) Validate() error {
	if s.HasGender() && s.Gender != GenderMale && s.Gender != GenderFemale {
		return fmt.Errorf("gender must be one of %s, %s, %s; got %q", All, GenderMale, GenderFemale, s.Gender)
	}
	return nil
}

// Key is a stable cache key for the selection.
func (s Selection) Key() string {
	n := s.Normalize()
	return strings.Join([]string{n.ProductLine, n.City, n.Gender}, "\x1f")
}

// Matches applies the selection predicate to a single record.
func (s Selection) Matches(r Record) bool {
	if s.HasProductLine() && r.ProductLine != s.ProductLine {
		return false
	}
	if s.HasCity() && r.City != s.City {
		return false
	}
	if s.HasGender() && r.Gender != s.Gender {
		return false
	}
	return true
}
