package query

import (
	"strings"
	"time"
)

// weekdays in the order the resolver checks them when a phrase names one.
var weekdays = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// dateLayouts for absolute dates, day-first. Unpadded forms also accept
// zero-padded input.
var dateLayouts = []string{
	"2006-01-02",
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2-1-06",
}

// ResolveDate converts a date phrase to a canonical YYYY-MM-DD string given
// a reference date. "next <weekday>" lands strictly after the reference date:
// asked for "next monday" on a Monday it returns the Monday a week out, never
// the same day. A bare weekday resolves on-or-after the reference. Text that
// resolves to no date at all is returned unchanged.
func ResolveDate(text string, ref time.Time) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "today"):
		return ref.Format("2006-01-02")
	case strings.Contains(lower, "tomorrow"):
		return ref.AddDate(0, 0, 1).Format("2006-01-02")
	case strings.Contains(lower, "next"):
		daysAhead := 7
		for _, wd := range weekdays {
			if strings.Contains(lower, wd.name) {
				daysAhead = (int(wd.day) - int(ref.Weekday()) + 7) % 7
				if daysAhead == 0 {
					daysAhead = 7
				}
				break
			}
		}
		return ref.AddDate(0, 0, daysAhead).Format("2006-01-02")
	}

	for _, wd := range weekdays {
		if strings.Contains(lower, wd.name) {
			daysAhead := (int(wd.day) - int(ref.Weekday()) + 7) % 7
			return ref.AddDate(0, 0, daysAhead).Format("2006-01-02")
		}
	}

	trimmed := strings.TrimSpace(text)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return text
}
