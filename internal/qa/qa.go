// Package qa answers free-text questions about an extracted entity record
// using ordered keyword rule groups.
package qa

import (
	"fmt"
	"strings"

	"travel_parser/internal/travel"
)

// Answer resolves a question against a record. Rule groups are evaluated in
// order against the lower-cased question; the first group whose keywords
// match claims the question. A claimed group whose backing field is absent
// yields no answer rather than trying later groups; passenger rules and the
// listing fallback then take over. Answer never fails and Source always
// names what backed the answer.
func Answer(rec travel.EntityRecord, question string) travel.QAAnswer {
	q := strings.ToLower(question)

	var answer, source string

	switch {
	case strings.Contains(q, "amount") || (strings.Contains(q, "total") && containsAny(q, "price", "amount", "fare")):
		if rec.Amount != "" {
			answer = fmt.Sprintf("The amount is %s.", rec.Amount)
			source = fmt.Sprintf("Amount found: %s", rec.Amount)
		}
	case strings.Contains(q, "name"):
		if rec.Name != "" {
			answer = fmt.Sprintf("The name is %s.", rec.Name)
			source = fmt.Sprintf("Name found: %s", rec.Name)
		}
	case strings.Contains(q, "date"), strings.Contains(q, "when"):
		if rec.Date != "" {
			answer = fmt.Sprintf("The date is %s.", rec.Date)
			source = fmt.Sprintf("Date found: %s", rec.Date)
		}
	case containsAny(q, "pnr", "booking", "id"):
		for _, f := range rec.Fields() {
			key := strings.ToLower(f.Key)
			if strings.Contains(key, "pnr") || strings.Contains(key, "id") || strings.Contains(key, "booking") {
				answer = fmt.Sprintf("The %s is %s.", f.Key, f.Value)
				source = fmt.Sprintf("%s: %s", f.Key, f.Value)
				break
			}
		}
	}

	if answer == "" {
		answer, source = answerPassengers(rec.Passengers, q)
	}

	if answer == "" {
		if fields := rec.Fields(); len(fields) > 0 {
			parts := make([]string, len(fields))
			for i, f := range fields {
				parts[i] = fmt.Sprintf("%s: %s", f.Key, f.Value)
			}
			answer = "Found information: " + strings.Join(parts, ", ")
			source = "All extracted entities"
		} else {
			answer = "No relevant information found for this question."
			source = "No data"
		}
	}

	return travel.QAAnswer{Answer: answer, Source: source}
}

// answerPassengers resolves passenger-count questions. Keyword matching is
// substring containment, so "male" also matches questions about females and
// the male branches win whenever their count is present.
func answerPassengers(pc *travel.PassengerCount, q string) (answer, source string) {
	var counts travel.PassengerCount
	if pc != nil {
		counts = *pc
	}

	switch {
	case strings.Contains(q, "adult") && strings.Contains(q, "male"):
		if counts.AdultMale > 0 {
			answer = fmt.Sprintf("There are %d adult males.", counts.AdultMale)
			source = fmt.Sprintf("adult_male: %d", counts.AdultMale)
		}
	case strings.Contains(q, "adult") && strings.Contains(q, "female"):
		// Shadowed: "male" is a substring of "female", so the case
		// above claims every question this one could match.
		if counts.AdultFemale > 0 {
			answer = fmt.Sprintf("There are %d adult females.", counts.AdultFemale)
			source = fmt.Sprintf("adult_female: %d", counts.AdultFemale)
		}
	case strings.Contains(q, "how many adults") || (strings.Contains(q, "how many") && strings.Contains(q, "adult")):
		total := counts.AdultMale + counts.AdultFemale
		if total > 0 {
			answer = fmt.Sprintf("There are %d adults (%d male, %d female).", total, counts.AdultMale, counts.AdultFemale)
			source = fmt.Sprintf("adult_male: %d, adult_female: %d", counts.AdultMale, counts.AdultFemale)
		}
	case containsAny(q, "minor", "child", "children", "kid"):
		switch {
		case strings.Contains(q, "male") && strings.Contains(q, "minor") && counts.MinorMale > 0:
			answer = fmt.Sprintf("There are %d male minors.", counts.MinorMale)
			source = fmt.Sprintf("minor_male: %d", counts.MinorMale)
		case strings.Contains(q, "female") && strings.Contains(q, "minor") && counts.MinorFemale > 0:
			answer = fmt.Sprintf("There are %d female minors.", counts.MinorFemale)
			source = fmt.Sprintf("minor_female: %d", counts.MinorFemale)
		default:
			minors := counts.Minor + counts.MinorMale + counts.MinorFemale
			if minors > 0 {
				answer = fmt.Sprintf("There are %d minors.", minors)
				source = fmt.Sprintf("minors_total: %d", minors)
			}
		}
	case strings.Contains(q, "total") && strings.Contains(q, "passeng"),
		strings.Contains(q, "how many passengers"),
		strings.Contains(q, "total") && strings.Contains(q, "pax"):
		if counts.Total > 0 {
			answer = fmt.Sprintf("Total passengers are %d.", counts.Total)
			source = fmt.Sprintf("total: %d", counts.Total)
		} else if sum := counts.Sum(); sum > 0 {
			answer = fmt.Sprintf("Total passengers (inferred) are %d.", sum)
			source = fmt.Sprintf("inferred_total: %d", sum)
		}
	}

	return answer, source
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
