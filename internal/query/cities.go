package query

import "strings"

// cityToCode maps normalized city names to IATA airport codes.
var cityToCode = map[string]string{
	"delhi": "DEL", "mumbai": "BOM", "bangalore": "BLR", "chennai": "MAA",
	"kolkata": "CCU", "hyderabad": "HYD", "pune": "PNQ", "goa": "GOI",
	"ajman": "AJM", "dubai": "DXB", "abu dhabi": "AUH", "sharjah": "SHJ",
	"new york": "JFK", "london": "LHR", "paris": "CDG", "singapore": "SIN",
}

// misspellings corrects city names commonly mangled by users or OCR.
var misspellings = map[string]string{
	"delhee":    "delhi",
	"deli":      "delhi",
	"mumbi":     "mumbai",
	"bangalor":  "bangalore",
	"bangaluru": "bangalore",
}

// NormalizeCity converts a free-text city name to an airport code. Unknown
// cities fall back to the first three letters upper-cased, so every input
// yields a code-shaped token. No fuzzy distance matching.
func NormalizeCity(city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	if fixed, ok := misspellings[city]; ok {
		city = fixed
	}
	if code, ok := cityToCode[city]; ok {
		return code
	}

	r := []rune(strings.ToUpper(city))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}
