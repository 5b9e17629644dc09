package patterns

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is one candidate in a cascade. Name identifies it in traces
// and provenance; Expr may reference BasePatterns via {PLACEHOLDER}.
type Pattern struct {
	Name string
	Expr string
}

// Cascade is the priority-ordered pattern list for one entity category.
type Cascade struct {
	Category string
	patterns []compiledPattern
}

type compiledPattern struct {
	name     string
	expanded string
	re       *regexp.Regexp
}

// placeholderRe matches {NAME} placeholders. Names start with a letter,
// so quantifiers like {6,10} never collide.
var placeholderRe = regexp.MustCompile(`\{[A-Z][A-Z0-9_]*\}`)

// NewCascade expands and compiles the patterns in order. Local patterns
// overlay BasePatterns for this cascade only. An unresolved placeholder
// is an error rather than a silently literal brace.
func NewCascade(category string, pats []Pattern, local map[string]string) (*Cascade, error) {
	base := make(map[string]string, len(BasePatterns)+len(local))
	for k, v := range BasePatterns {
		base[k] = v
	}
	for k, v := range local {
		base[k] = v
	}

	c := &Cascade{
		Category: category,
		patterns: make([]compiledPattern, 0, len(pats)),
	}
	for _, p := range pats {
		expanded := expand(p.Expr, base)
		if leftover := placeholderRe.FindString(expanded); leftover != "" {
			return nil, fmt.Errorf("cascade %s pattern %s: unknown placeholder %s", category, p.Name, leftover)
		}
		re, err := regexp.Compile(expanded)
		if err != nil {
			return nil, fmt.Errorf("cascade %s pattern %s: %w", category, p.Name, err)
		}
		c.patterns = append(c.patterns, compiledPattern{name: p.Name, expanded: expanded, re: re})
	}
	return c, nil
}

// MustCascade is NewCascade that panics on error, for package-level
// cascade variables.
func MustCascade(category string, pats []Pattern, local map[string]string) *Cascade {
	c, err := NewCascade(category, pats, local)
	if err != nil {
		panic(err)
	}
	return c
}

// expand replaces {PLACEHOLDER} references with their base patterns.
func expand(pattern string, base map[string]string) string {
	result := pattern
	for name, expr := range base {
		result = strings.ReplaceAll(result, "{"+name+"}", expr)
	}
	return result
}

// Match is a successful cascade application.
type Match struct {
	PatternName string   // which pattern won
	Value       string   // first capture group
	Groups      []string // all capture groups, for multi-group patterns
}

// Apply runs the cascade in priority order and returns the first match.
// Text is matched as-is: case is significant to several categories.
func (c *Cascade) Apply(text string) (Match, bool) {
	for _, p := range c.patterns {
		if m := p.re.FindStringSubmatch(text); len(m) > 1 {
			return Match{PatternName: p.name, Value: m[1], Groups: m[1:]}, true
		}
	}
	return Match{}, false
}

// PatternTrace records one pattern attempt inside a cascade trace.
type PatternTrace struct {
	Name    string // pattern name
	Pattern string // expanded regex
	Matched bool
	Value   string // first capture, if matched
}

// Trace is the complete evaluation record of one cascade application.
// Every pattern is evaluated for the trace, even after the first match.
type Trace struct {
	Category string
	Match    *Match // the winning (first) match, nil if none
	Patterns []PatternTrace
}

// ApplyWithTrace is Apply plus a per-pattern evaluation record, for
// debugging why a pattern does or does not win.
func (c *Cascade) ApplyWithTrace(text string) *Trace {
	trace := &Trace{
		Category: c.Category,
		Patterns: make([]PatternTrace, 0, len(c.patterns)),
	}

	for _, p := range c.patterns {
		pt := PatternTrace{Name: p.name, Pattern: p.expanded}
		if m := p.re.FindStringSubmatch(text); len(m) > 1 {
			pt.Matched = true
			pt.Value = m[1]
			if trace.Match == nil {
				trace.Match = &Match{PatternName: p.name, Value: m[1], Groups: m[1:]}
			}
		}
		trace.Patterns = append(trace.Patterns, pt)
	}

	return trace
}

// Format renders the trace as an indented ladder.
func (t *Trace) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", t.Category)
	for _, pt := range t.Patterns {
		mark := " "
		if pt.Matched {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] %s: %s", mark, pt.Name, pt.Pattern)
		if pt.Matched {
			fmt.Fprintf(&b, " => %q", pt.Value)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
