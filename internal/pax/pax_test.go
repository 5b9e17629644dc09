package pax

import (
	"testing"

	"travel_parser/internal/travel"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *travel.PassengerCount
	}{
		{
			name: "adults only",
			text: "flight for 2 men and 1 woman",
			want: &travel.PassengerCount{AdultMale: 2, AdultFemale: 1, Total: 3},
		},
		{
			name: "kids",
			text: "3 kids traveling",
			want: &travel.PassengerCount{Minor: 3, Total: 3},
		},
		{
			name: "male minors count twice by contract",
			text: "2 male minors",
			want: &travel.PassengerCount{AdultMale: 2, MinorMale: 2, Total: 4},
		},
		{
			name: "female minors count twice by contract",
			text: "1 female minor",
			want: &travel.PassengerCount{AdultFemale: 1, MinorFemale: 1, Total: 2},
		},
		{
			name: "mixed",
			text: "4 minors, 2 male minors and 1 woman",
			want: &travel.PassengerCount{AdultMale: 2, AdultFemale: 1, Minor: 4, MinorMale: 2, Total: 9},
		},
		{
			name: "case insensitive",
			text: "2 MEN",
			want: &travel.PassengerCount{AdultMale: 2, Total: 2},
		},
		{
			name: "bare adults word does not count",
			text: "traveling with 2 adults",
			want: nil,
		},
		{
			name: "numbers without passenger words",
			text: "Total: 4500",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("Extract(%q) = %+v, want nil", tt.text, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Extract(%q) = nil, want %+v", tt.text, tt.want)
			}
			if *got != *tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractTotalIsSum(t *testing.T) {
	texts := []string{
		"2 men and 1 woman",
		"2 male minors",
		"1 female minor and 3 kids",
		"9 women",
	}

	for _, text := range texts {
		pc := Extract(text)
		if pc == nil {
			t.Fatalf("Extract(%q) = nil", text)
		}
		if pc.Total != pc.Sum() {
			t.Errorf("Extract(%q): Total = %d, Sum() = %d", text, pc.Total, pc.Sum())
		}
	}
}
