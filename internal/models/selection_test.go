package models

import "testing"

func TestSelection_Matches(t *testing.T) {
	r := Record{ProductLine: "Food and beverages", City: "Yangon", Gender: GenderFemale}

	tests := []struct {
		name string
		sel  Selection
		want bool
	}{
		{"zero value", Selection{}, true},
		{"all sentinels", Selection{All, All, All}, true},
		{"product line", Selection{ProductLine: "Food and beverages"}, true},
		{"other product line", Selection{ProductLine: "Sports and travel"}, false},
		{"city and gender", Selection{City: "Yangon", Gender: GenderFemale}, true},
		{"gender mismatch", Selection{City: "Yangon", Gender: GenderMale}, false},
		{"case sensitive", Selection{City: "yangon"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Matches(r); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelection_Validate(t *testing.T) {
	tests := []struct {
		gender  string
		wantErr bool
	}{
		{"", false},
		{All, false},
		{GenderMale, false},
		{GenderFemale, false},
		{"female", true},
		{"Other", true},
	}

	for _, tt := range tests {
		t.Run(tt.gender, func(t *testing.T) {
			err := Selection{Gender: tt.gender}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelection_Key(t *testing.T) {
	if (Selection{}).Key() != (Selection{All, All, All}).Key() {
		t.Error("empty and all selections should share a key")
	}
	if (Selection{City: "Mandalay"}).Key() == (Selection{ProductLine: "Mandalay"}).Key() {
		t.Error("keys should distinguish dimensions")
	}

	n := Selection{City: "Mandalay"}.Normalize()
	if n.ProductLine != All || n.Gender != All || n.City != "Mandalay" {
		t.Errorf("Normalize() = %+v", n)
	}
}
