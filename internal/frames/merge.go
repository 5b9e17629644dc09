package frames

import "travel_parser/internal/travel"

// Merge consolidates per-frame records into one. For text fields the longest
// value seen wins, so a partial OCR read ("Jo") loses to a fuller one
// ("John Smith") regardless of frame order. Passenger counts are not
// length-comparable; the first frame that found any wins.
func Merge(results []travel.FrameResult) travel.EntityRecord {
	var merged travel.EntityRecord

	for _, fr := range results {
		if fr.Error != "" || fr.Entities == nil {
			continue
		}
		rec := fr.Entities

		mergeField(&merged.Name, rec.Name)
		mergeField(&merged.Date, rec.Date)
		mergeField(&merged.Amount, rec.Amount)
		mergeField(&merged.BookingID, rec.BookingID)
		mergeField(&merged.Origin, rec.Origin)
		mergeField(&merged.Destination, rec.Destination)
		mergeField(&merged.Route, rec.Route)

		if merged.Passengers == nil && rec.Passengers != nil {
			pc := *rec.Passengers
			merged.Passengers = &pc
		}
	}

	return merged
}

// mergeField keeps dst unless src is strictly longer.
func mergeField(dst *string, src string) {
	if src == "" {
		return
	}
	if *dst == "" || len(src) > len(*dst) {
		*dst = src
	}
}
