package query

import (
	"testing"
	"time"
)

func TestResolveDate(t *testing.T) {
	// 2024-03-04 is a Monday.
	ref := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"today", "today", "2024-03-04"},
		{"tomorrow", "tomorrow", "2024-03-05"},
		{"next same weekday is a week out", "next monday", "2024-03-11"},
		{"next tuesday", "next tuesday", "2024-03-05"},
		{"next sunday", "next sunday", "2024-03-10"},
		{"next with no weekday", "next week", "2024-03-11"},
		{"bare weekday may land on the reference day", "monday", "2024-03-04"},
		{"bare weekday later in week", "friday", "2024-03-08"},
		{"slash date", "15/03/2024", "2024-03-15"},
		{"dash date", "15-03-2024", "2024-03-15"},
		{"short year", "5/3/24", "2024-03-05"},
		{"iso date", "2024-03-15", "2024-03-15"},
		{"unparseable text returned verbatim", "someday soon", "someday soon"},
		{"impossible calendar date returned verbatim", "99/99/9999", "99/99/9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDate(tt.text, ref); got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
