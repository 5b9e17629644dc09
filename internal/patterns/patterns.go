// Package patterns provides first-match-wins pattern cascades for
// entity extraction.
//
// A cascade is a priority-ordered list of named patterns for one
// category; the first pattern that matches decides the value and the
// remaining patterns are not tried. Keeping the list as data rather
// than inline control flow makes the priority order testable on its
// own, and gives every match a provenance name.
package patterns

// BasePatterns are named sub-expressions available to cascade patterns
// through {PLACEHOLDER} syntax. Placeholder names are uppercase words,
// so regex quantifiers like {2,4} pass through untouched.
var BasePatterns = map[string]string{
	// 4,500 or 4500.00
	"NUM": `[\d,]+(?:\.\d{2})?`,

	// John Smith, Maria Ann Lopez: two or more capitalized words.
	// Separator excludes newlines; a name never spans lines.
	"NAMESEQ": `[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)+`,

	// single uppercase alphanumeric, quantified by the cascade pattern
	"ALNUM": `[A-Z0-9]`,

	// 25/12/2024, 4-3-24
	"DMY": `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`,
}
