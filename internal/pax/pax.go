// Package pax extracts typed passenger counts from free text.
//
// The five checks are independent single-shot regexes, not a cascade:
// one text may set several counts at once ("2 male minors" counts as
// both adult_male and minor_male by contract). The same extraction
// serves OCR text and flight queries; only the query parser applies
// the assume-single-traveler default afterwards.
package pax

import (
	"regexp"
	"strconv"

	"travel_parser/internal/travel"
)

var (
	// 2 men / 1 man / 3 adult males
	adultMaleRe = regexp.MustCompile(`(?i)(\d+)\s*(?:adult\s*)?(?:men|man|male)`)

	// 2 women / 1 woman / 1 adult female
	adultFemaleRe = regexp.MustCompile(`(?i)(\d+)\s*(?:adult\s*)?(?:women|woman|female)`)

	// 1 female minor
	minorFemaleRe = regexp.MustCompile(`(?i)(\d+)\s*female\s*minor`)

	// 2 male minors
	minorMaleRe = regexp.MustCompile(`(?i)(\d+)\s*male\s*minor`)

	// 3 kids / 2 children / 1 child / 4 minors
	minorRe = regexp.MustCompile(`(?i)(\d+)\s*(kids|children|child|minor)`)
)

// Extract derives passenger counts from text. Returns nil when nothing
// matched; otherwise Total holds the sum of all matched counts.
func Extract(text string) *travel.PassengerCount {
	var pc travel.PassengerCount
	found := false

	if m := adultMaleRe.FindStringSubmatch(text); m != nil {
		pc.AdultMale, _ = strconv.Atoi(m[1])
		found = true
	}
	if m := adultFemaleRe.FindStringSubmatch(text); m != nil {
		pc.AdultFemale, _ = strconv.Atoi(m[1])
		found = true
	}
	if m := minorFemaleRe.FindStringSubmatch(text); m != nil {
		pc.MinorFemale, _ = strconv.Atoi(m[1])
		found = true
	}
	if m := minorMaleRe.FindStringSubmatch(text); m != nil {
		pc.MinorMale, _ = strconv.Atoi(m[1])
		found = true
	}
	if m := minorRe.FindStringSubmatch(text); m != nil {
		pc.Minor, _ = strconv.Atoi(m[1])
		found = true
	}

	if !found {
		return nil
	}
	pc.Total = pc.Sum()
	return &pc
}
