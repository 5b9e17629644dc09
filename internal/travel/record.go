// Package travel defines the record and wire types shared by the
// extractor, merger, query parser, and question resolver.
package travel

import (
	"fmt"
	"strings"
)

// EntityRecord is the flat record of facts extracted from one text blob.
// Absent fields mean "not found"; each category holds at most one value.
type EntityRecord struct {
	Name        string          `json:"name,omitempty"`
	Date        string          `json:"date,omitempty"`
	Amount      string          `json:"amount,omitempty"`
	BookingID   string          `json:"booking_id,omitempty"`
	Origin      string          `json:"origin,omitempty"`
	Destination string          `json:"destination,omitempty"`
	Route       string          `json:"route,omitempty"`
	Passengers  *PassengerCount `json:"passengers,omitempty"`
}

// Field is one present key/value pair of an EntityRecord.
type Field struct {
	Key   string
	Value string
}

// Fields returns the present fields in their canonical scan order.
// The question resolver's key scan and fallback listing depend on it.
func (r *EntityRecord) Fields() []Field {
	var fields []Field
	add := func(key, value string) {
		if value != "" {
			fields = append(fields, Field{Key: key, Value: value})
		}
	}
	add("name", r.Name)
	add("date", r.Date)
	add("amount", r.Amount)
	add("booking_id", r.BookingID)
	add("origin", r.Origin)
	add("destination", r.Destination)
	add("route", r.Route)
	if r.Passengers != nil {
		add("passengers", r.Passengers.String())
	}
	return fields
}

// Empty reports whether nothing was extracted.
func (r *EntityRecord) Empty() bool {
	return r.Name == "" && r.Date == "" && r.Amount == "" && r.BookingID == "" &&
		r.Origin == "" && r.Destination == "" && r.Route == "" && r.Passengers == nil
}

// PassengerCount is the typed passenger breakdown. Total holds the sum
// of the other fields at the moment the record is finalized; it is
// recomputed, never supplied independently.
type PassengerCount struct {
	AdultMale   int `json:"adult_male,omitempty"`
	AdultFemale int `json:"adult_female,omitempty"`
	Minor       int `json:"minor,omitempty"`
	MinorMale   int `json:"minor_male,omitempty"`
	MinorFemale int `json:"minor_female,omitempty"`
	Total       int `json:"total,omitempty"`
}

// Sum returns the sum of all count fields excluding Total.
func (p *PassengerCount) Sum() int {
	return p.AdultMale + p.AdultFemale + p.Minor + p.MinorMale + p.MinorFemale
}

// Empty reports whether no count is present.
func (p *PassengerCount) Empty() bool {
	return p == nil || (p.Sum() == 0 && p.Total == 0)
}

// String renders the non-zero fields in order, for listings and logs.
func (p *PassengerCount) String() string {
	var parts []string
	add := func(key string, n int) {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", key, n))
		}
	}
	add("adult_male", p.AdultMale)
	add("adult_female", p.AdultFemale)
	add("minor", p.Minor)
	add("minor_male", p.MinorMale)
	add("minor_female", p.MinorFemale)
	add("total", p.Total)
	return "{" + strings.Join(parts, ", ") + "}"
}

// Trip types produced by the query parser.
const (
	TripOneWay    = "one_way"
	TripRoundTrip = "round_trip"
)

// TravelIntent is the normalized form of a natural-language flight
// request. Passengers is always present; after the zero-total default
// it holds at least one traveler.
type TravelIntent struct {
	TravelIntent   string         `json:"travel_intent"`
	Origin         string         `json:"origin,omitempty"`
	Destination    string         `json:"destination,omitempty"`
	TravelDate     string         `json:"travel_date,omitempty"`
	TimePreference string         `json:"time_preference,omitempty"`
	Passengers     PassengerCount `json:"passengers"`
}

// QAAnswer is a formatted answer plus the provenance of the field that
// backed it. Source is always set, "No data" on the terminal fallback.
type QAAnswer struct {
	Answer string `json:"answer"`
	Source string `json:"source"`
}
