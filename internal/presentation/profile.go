// Package presentation holds the text a dashboard is rendered with. The
// same engine output is shown through any Profile.
package presentation

import (
	"fmt"
	"sort"

	"github.com/microcosm-cc/bluemonday"
)

type Labels struct {
	Filters      string
	ProductLine  string
	City         string
	Gender       string
	GenderMale   string
	GenderFemale string

	// Each selector names its own "no filter" entry.
	AllProductLines string
	AllCities       string
	AllGenders      string

	Metrics            string
	TotalSales         string
	AverageRating      string
	AverageGrossIncome string
	NoData             string

	MonthlySales      string
	PriceDistribution string
	RatingHistogram   string
	Scatter3D         string
	Preview           string
}

// Profile is one rendition of the dashboard: titles, control labels and
// optional prose sections. Prose is HTML and is sanitized on output.
type Profile struct {
	Name     string
	Lang     string
	Title    string
	Subtitle string
	Labels   Labels

	Objective   string
	Variables   string
	Conclusions string
	Credits     string
}

var policy = bluemonday.UGCPolicy()

// Sanitize strips anything from prose HTML that user content could not carry.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}

func (p Profile) ObjectiveHTML() string   { return Sanitize(p.Objective) }
func (p Profile) VariablesHTML() string   { return Sanitize(p.Variables) }
func (p Profile) ConclusionsHTML() string { return Sanitize(p.Conclusions) }
func (p Profile) CreditsHTML() string     { return Sanitize(p.Credits) }

// HasProse reports whether any prose section is set.
func (p Profile) HasProse() bool {
	return p.Objective != "" || p.Variables != "" || p.Conclusions != "" || p.Credits != ""
}

// GenderLabel maps a data value to its display label.
func (p Profile) GenderLabel(value string) string {
	switch value {
	case "Male":
		return p.Labels.GenderMale
	case "Female":
		return p.Labels.GenderFemale
	default:
		return value
	}
}

var profiles = map[string]Profile{
	analysis.Name: analysis,
	brief.Name:    brief,
}

// Lookup returns a built-in profile by name.
func Lookup(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown dashboard profile %q", name)
	}
	return p, nil
}

// Names lists the built-in profiles.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
