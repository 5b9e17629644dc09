// Package extractor turns one text blob into a flat entity record by
// running the per-category pattern cascades in priority order.
package extractor

import (
	"strings"

	"travel_parser/internal/patterns"
	"travel_parser/internal/pax"
	"travel_parser/internal/travel"
)

// The category cascades. Order inside each cascade encodes "more
// specific pattern wins": the first match ends the cascade.
var (
	nameCascade = patterns.MustCascade("name", []patterns.Pattern{
		// Name: John Smith / passenger: Maria Lopez. The label folds
		// case; the captured sequence stays strictly capitalized.
		{Name: "labeled_name", Expr: `(?i:Name|Passenger|Customer)[:\s]+({NAMESEQ})`},
		// Mr. John Smith / dr Jane Roe
		{Name: "titled_name", Expr: `(?i:Mr|Mrs|Ms|Dr)\.?\s+({NAMESEQ})`},
	}, nil)

	dateCascade = patterns.MustCascade("date", []patterns.Pattern{
		// 2024-03-15
		{Name: "iso_date", Expr: `\b(\d{4}-\d{2}-\d{2})\b`},
		// 15/03/2024
		{Name: "slash_date", Expr: `\b(\d{2}/\d{2}/\d{4})\b`},
		// 15-03-2024
		{Name: "dash_date", Expr: `\b(\d{2}-\d{2}-\d{4})\b`},
		// Date: 5/3/24 / Departure: 15-03-2024
		{Name: "labeled_date", Expr: `(?:Date|Travel|Departure)[:\s]+({DMY})`},
	}, nil)

	amountCascade = patterns.MustCascade("amount", []patterns.Pattern{
		// ₹ 4,500.00 / $1200
		{Name: "currency_symbol", Expr: `[₹$]\s*({NUM})`},
		// Amount: 4,500 / Fare: ₹ 980.50
		{Name: "labeled_amount", Expr: `(?i)(?:Amount|Total|Price|Fare)[:\s]+[₹$]?\s*({NUM})`},
		// Rs. 2200 / INR 4,500.00
		{Name: "rupee_prefixed", Expr: `(?i)(?:Rs\.?|INR)\s*({NUM})`},
	}, nil)

	bookingCascade = patterns.MustCascade("booking_id", []patterns.Pattern{
		// PNR: ABC123
		{Name: "pnr_labeled", Expr: `PNR[:\s]+({ALNUM}{6,10})`},
		// Booking: XY12AB34
		{Name: "booking_labeled", Expr: `Booking[:\s]+({ALNUM}{6,12})`},
		// ID: A1B2C3
		{Name: "id_labeled", Expr: `ID[:\s]+({ALNUM}{6,12})`},
		// Any bare 6-char token. Low confidence: flight numbers and other
		// incidental codes match too, so it sits last and shows up in the
		// trace under its own name when it wins.
		{Name: "bare_token", Expr: `\b({ALNUM}{6})\b`},
	}, nil)

	routeCascade = patterns.MustCascade("route", []patterns.Pattern{
		// Delhi to Mumbai. First occurrence only, no city validation.
		{Name: "word_to_word", Expr: `(?i)([A-Za-z]+)\s+to\s+([A-Za-z]+)`},
	}, nil)
)

// Extract runs every category cascade over text. It never fails;
// categories with no match stay absent from the record.
func Extract(text string) travel.EntityRecord {
	var rec travel.EntityRecord

	if m, ok := nameCascade.Apply(text); ok {
		rec.Name = strings.TrimSpace(m.Value)
	}
	if m, ok := dateCascade.Apply(text); ok {
		rec.Date = m.Value
	}
	if m, ok := amountCascade.Apply(text); ok {
		rec.Amount = m.Value
	}
	if m, ok := bookingCascade.Apply(text); ok {
		rec.BookingID = m.Value
	}
	if m, ok := routeCascade.Apply(text); ok {
		rec.Origin = m.Groups[0]
		rec.Destination = m.Groups[1]
		rec.Route = rec.Origin + "-" + rec.Destination
	}
	rec.Passengers = pax.Extract(text)

	return rec
}

// ExtractWithTrace is Extract plus the per-category cascade traces, in
// category order. The traces show which pattern won each category, such
// as when booking_id fell through to the bare token rule.
func ExtractWithTrace(text string) (travel.EntityRecord, []*patterns.Trace) {
	var rec travel.EntityRecord

	nameTrace := nameCascade.ApplyWithTrace(text)
	if m := nameTrace.Match; m != nil {
		rec.Name = strings.TrimSpace(m.Value)
	}

	dateTrace := dateCascade.ApplyWithTrace(text)
	if m := dateTrace.Match; m != nil {
		rec.Date = m.Value
	}

	amountTrace := amountCascade.ApplyWithTrace(text)
	if m := amountTrace.Match; m != nil {
		rec.Amount = m.Value
	}

	bookingTrace := bookingCascade.ApplyWithTrace(text)
	if m := bookingTrace.Match; m != nil {
		rec.BookingID = m.Value
	}

	routeTrace := routeCascade.ApplyWithTrace(text)
	if m := routeTrace.Match; m != nil {
		rec.Origin = m.Groups[0]
		rec.Destination = m.Groups[1]
		rec.Route = rec.Origin + "-" + rec.Destination
	}

	rec.Passengers = pax.Extract(text)

	traces := []*patterns.Trace{nameTrace, dateTrace, amountTrace, bookingTrace, routeTrace}
	return rec, traces
}
