package rules

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
		ok   bool
	}{
		{"plain integer", "42", 42, true},
		{"plain float", "3.25", 3.25, true},
		{"thousands separators", "1,234.5", 1234.5, true},
		{"percent sign", "85%", 85, true},
		{"separators and percent", "1,234.5%", 1234.5, true},
		{"dollar sign", "$1,200", 1200, true},
		{"euro sign", "€99.5", 99.5, true},
		{"pound sign", "£12", 12, true},
		{"surrounding whitespace", "  77 ", 77, true},
		{"negative", "-12.5", -12.5, true},
		{"not a number", "abc", 0, false},
		{"empty string", "", 0, false},
		{"only symbols", "$,%", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"json number", `85`, 85, true},
		{"json float", `12.75`, 12.75, true},
		{"numeric string", `"85%"`, 85, true},
		{"formatted string", `"1,234.5%"`, 1234.5, true},
		{"wrapped value", `{"value": 42}`, 42, true},
		{"wrapped text", `{"text": "85%"}`, 85, true},
		{"wrapped string value", `{"value": "1,000"}`, 1000, true},
		{"null", `null`, 0, false},
		{"boolean", `true`, 0, false},
		{"array", `[1,2]`, 0, false},
		{"empty object", `{}`, 0, false},
		{"double wrapped", `{"value": {"value": 3}}`, 0, false},
		{"non-numeric string", `"abc"`, 0, false},
		{"empty raw", ``, 0, false},
		{"invalid json", `{`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseValue(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEvaluate_DefaultRuleset(t *testing.T) {
	rs := Default()

	tests := []struct {
		name      string
		in        float64
		wantLabel string
		wantIndex int
		ok        bool
	}{
		{"above upper threshold", 150, "Done", 1, true},
		{"middle band", 75, "Working on it", 2, true},
		{"lower band", 30, "Stuck", 3, true},
		{"upper boundary inclusive", 100, "Working on it", 2, true},
		{"lower boundary inclusive", 50, "Working on it", 2, true},
		{"just above upper boundary", 100.01, "Done", 1, true},
		{"just below lower boundary", 49.99, "Stuck", 3, true},
		{"NaN", math.NaN(), "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rs.Evaluate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.wantLabel, got.Label)
				assert.Equal(t, tt.wantIndex, got.Index)
			}
		})
	}
}

func TestEvaluate_FirstMatchWins(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	rs := Ruleset{
		{Label: "first", Index: 1, When: Bounds{GT: f(0)}},
		{Label: "second", Index: 2, When: Bounds{GT: f(0)}},
	}

	got, ok := rs.Evaluate(10)
	assert.True(t, ok)
	assert.Equal(t, "first", got.Label)
}

func TestEvaluate_GapYieldsNoStatus(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	rs := Ruleset{
		{Label: "high", Index: 1, When: Bounds{GT: f(100)}},
		{Label: "low", Index: 2, When: Bounds{LT: f(50)}},
	}

	_, ok := rs.Evaluate(75)
	assert.False(t, ok)
}

func TestBoundsMatch(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		b    Bounds
		in   float64
		want bool
	}{
		{"gt holds", Bounds{GT: f(10)}, 11, true},
		{"gt fails at boundary", Bounds{GT: f(10)}, 10, false},
		{"gte holds at boundary", Bounds{GTE: f(10)}, 10, true},
		{"lt holds", Bounds{LT: f(10)}, 9, true},
		{"lte fails above", Bounds{LTE: f(10)}, 10.5, false},
		{"eq holds", Bounds{EQ: f(5)}, 5, true},
		{"eq fails", Bounds{EQ: f(5)}, 5.1, false},
		{"combined range holds", Bounds{GTE: f(50), LTE: f(100)}, 75, true},
		{"combined range fails low", Bounds{GTE: f(50), LTE: f(100)}, 49, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.b.Match(tt.in))
		})
	}
}

func TestRulesetValidate(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	assert.NoError(t, Default().Validate())

	assert.Error(t, Ruleset{}.Validate())
	assert.Error(t, Ruleset{{Label: "", Index: 1, When: Bounds{GT: f(0)}}}.Validate())
	assert.Error(t, Ruleset{{Label: "x", Index: -1, When: Bounds{GT: f(0)}}}.Validate())
	assert.Error(t, Ruleset{{Label: "x", Index: 1}}.Validate())
	assert.Error(t, Ruleset{{Label: "x", Index: 1, When: Bounds{GTE: f(10), LTE: f(5)}}}.Validate())
}
