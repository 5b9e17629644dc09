package patterns

import (
	"strings"
	"testing"
)

func TestCascadeFirstMatchWins(t *testing.T) {
	c := MustCascade("code", []Pattern{
		{Name: "labeled", Expr: `CODE[:\s]+({ALNUM}{6})`},
		{Name: "bare", Expr: `\b({ALNUM}{6})\b`},
	}, nil)

	tests := []struct {
		name        string
		text        string
		wantPattern string
		wantValue   string
	}{
		{
			name:        "labeled beats bare",
			text:        "ref XYZ789 CODE: ABC123",
			wantPattern: "labeled",
			wantValue:   "ABC123",
		},
		{
			name:        "bare fires when label absent",
			text:        "ref XYZ789 only",
			wantPattern: "bare",
			wantValue:   "XYZ789",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := c.Apply(tt.text)
			if !ok {
				t.Fatal("Apply() found no match")
			}
			if m.PatternName != tt.wantPattern {
				t.Errorf("PatternName = %q, want %q", m.PatternName, tt.wantPattern)
			}
			if m.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", m.Value, tt.wantValue)
			}
		})
	}
}

func TestCascadeNoMatch(t *testing.T) {
	c := MustCascade("num", []Pattern{
		{Name: "plain", Expr: `({NUM})`},
	}, nil)

	if _, ok := c.Apply("no digits here"); ok {
		t.Error("Apply() matched text without digits")
	}
}

func TestCascadeMultiGroup(t *testing.T) {
	c := MustCascade("pair", []Pattern{
		{Name: "a_to_b", Expr: `([A-Za-z]+)\s+to\s+([A-Za-z]+)`},
	}, nil)

	m, ok := c.Apply("Delhi to Mumbai")
	if !ok {
		t.Fatal("Apply() found no match")
	}
	if len(m.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(m.Groups))
	}
	if m.Groups[0] != "Delhi" || m.Groups[1] != "Mumbai" {
		t.Errorf("Groups = %v, want [Delhi Mumbai]", m.Groups)
	}
}

func TestCascadeLocalOverlay(t *testing.T) {
	local := map[string]string{"NUM": `\d+`}
	c := MustCascade("strict", []Pattern{
		{Name: "plain", Expr: `^({NUM})$`},
	}, local)

	// The local NUM has no comma class, so a grouped number must not match.
	if _, ok := c.Apply("4,500"); ok {
		t.Error("local overlay not applied: grouped number matched")
	}
	if m, ok := c.Apply("4500"); !ok || m.Value != "4500" {
		t.Errorf("Apply(4500) = %v, %v, want match 4500", m, ok)
	}
}

func TestCascadeUnknownPlaceholder(t *testing.T) {
	_, err := NewCascade("bad", []Pattern{
		{Name: "oops", Expr: `({NOPE})`},
	}, nil)
	if err == nil {
		t.Fatal("NewCascade() accepted an unknown placeholder")
	}
	if !strings.Contains(err.Error(), "NOPE") {
		t.Errorf("error %q does not name the placeholder", err)
	}
}

func TestCascadeQuantifiersUntouched(t *testing.T) {
	// {2,4} and {6} are quantifiers, not placeholders.
	_, err := NewCascade("quant", []Pattern{
		{Name: "q", Expr: `([A-Z]{2,4}\d{6})`},
	}, nil)
	if err != nil {
		t.Fatalf("NewCascade() rejected quantifier braces: %v", err)
	}
}

func TestApplyWithTrace(t *testing.T) {
	c := MustCascade("code", []Pattern{
		{Name: "labeled", Expr: `CODE[:\s]+({ALNUM}{6})`},
		{Name: "bare", Expr: `\b({ALNUM}{6})\b`},
	}, nil)

	trace := c.ApplyWithTrace("bare XYZ789 here")
	if trace.Match == nil {
		t.Fatal("trace has no match")
	}
	if trace.Match.PatternName != "bare" {
		t.Errorf("winner = %q, want %q", trace.Match.PatternName, "bare")
	}
	if len(trace.Patterns) != 2 {
		t.Fatalf("len(Patterns) = %d, want 2", len(trace.Patterns))
	}
	if trace.Patterns[0].Matched {
		t.Error("labeled pattern should not have matched")
	}
	if !trace.Patterns[1].Matched || trace.Patterns[1].Value != "XYZ789" {
		t.Errorf("bare pattern trace = %+v, want matched XYZ789", trace.Patterns[1])
	}

	out := trace.Format()
	if !strings.Contains(out, "[x] bare") || !strings.Contains(out, `"XYZ789"`) {
		t.Errorf("Format() = %q, missing matched ladder entry", out)
	}
}
