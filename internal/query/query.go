// Package query parses natural-language flight requests into a normalized
// travel intent: route, trip type, travel date, time preference, and
// passenger counts.
package query

import (
	"regexp"
	"strings"
	"time"

	"travel_parser/internal/pax"
	"travel_parser/internal/travel"
)

var (
	// Route phrasings, most specific first.
	// e.g. "from delhi to mumbai", "leaving goa for dubai", "delhi to mumbai"
	routePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:from|leaving)\s+([a-z]+)\s+(?:to|for)\s+([a-z]+)`),
		regexp.MustCompile(`([a-z]+)\s+(?:to|for)\s+([a-z]+)`),
	}

	// Date phrasings. Bare "tomorrow"/"today" without a leading "on" is
	// deliberately not captured; only weekday words stand alone.
	// e.g. "on next monday", "on 15/03/2024", "friday"
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`on\s+(next\s+\w+|\w+day|tomorrow|today|\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		regexp.MustCompile(`(next\s+\w+|\w+day)`),
	}
)

var roundTripWords = []string{"round trip", "return", "round-trip"}

var timePreferences = []string{"morning", "afternoon", "evening", "night"}

// Parse converts a flight request sentence into a TravelIntent. The current
// date anchors relative phrases like "next monday". Parse never fails; fields
// it cannot find are simply left empty. A query naming no passenger counts is
// booked for a single adult traveler.
func Parse(q string, current time.Time) travel.TravelIntent {
	lq := strings.ToLower(q)

	intent := travel.TravelIntent{TravelIntent: travel.TripOneWay}

	for _, re := range routePatterns {
		if m := re.FindStringSubmatch(lq); m != nil {
			intent.Origin = NormalizeCity(m[1])
			intent.Destination = NormalizeCity(m[2])
			break
		}
	}

	for _, word := range roundTripWords {
		if strings.Contains(lq, word) {
			intent.TravelIntent = travel.TripRoundTrip
			break
		}
	}

	for _, re := range datePatterns {
		if m := re.FindStringSubmatch(lq); m != nil {
			intent.TravelDate = ResolveDate(m[1], current)
			break
		}
	}

	for _, pref := range timePreferences {
		if strings.Contains(lq, pref) {
			intent.TimePreference = pref
			break
		}
	}

	pc := pax.Extract(lq)
	if pc == nil || pc.Total == 0 {
		pc = &travel.PassengerCount{AdultMale: 1, Total: 1}
	}
	intent.Passengers = *pc

	return intent
}
