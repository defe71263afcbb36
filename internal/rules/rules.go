// Package rules maps numeric formula results to status labels using an
// ordered list of threshold rules. Rules are plain configuration data;
// evaluation is a pure function over them.
package rules

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bounds describes the numeric predicate of a rule. All bounds that are
// present must hold for the rule to match.
type Bounds struct {
	GT  *float64 `yaml:"gt,omitempty"`
	GTE *float64 `yaml:"gte,omitempty"`
	LT  *float64 `yaml:"lt,omitempty"`
	LTE *float64 `yaml:"lte,omitempty"`
	EQ  *float64 `yaml:"eq,omitempty"`
}

// Empty reports whether no bound is set.
func (b Bounds) Empty() bool {
	return b.GT == nil && b.GTE == nil && b.LT == nil && b.LTE == nil && b.EQ == nil
}

// Match reports whether n satisfies every bound that is set.
func (b Bounds) Match(n float64) bool {
	if b.GT != nil && !(n > *b.GT) {
		return false
	}
	if b.GTE != nil && !(n >= *b.GTE) {
		return false
	}
	if b.LT != nil && !(n < *b.LT) {
		return false
	}
	if b.LTE != nil && !(n <= *b.LTE) {
		return false
	}
	if b.EQ != nil && n != *b.EQ {
		return false
	}
	return true
}

// Rule binds a numeric predicate to a status outcome.
type Rule struct {
	Label string `yaml:"label"`
	Index int    `yaml:"index"`
	Color string `yaml:"color"`
	When  Bounds `yaml:"when"`
}

// Status is the resolved outcome of evaluating a value against a ruleset.
type Status struct {
	Label string
	Index int
	Color string
}

// Ruleset is an ordered list of rules. Declaration order is evaluation
// order and the first matching rule wins.
type Ruleset []Rule

// Validate checks that every rule is well formed. Gaps between rules are
// allowed; a gap means "no status" at evaluation time.
func (rs Ruleset) Validate() error {
	if len(rs) == 0 {
		return fmt.Errorf("at least one rule is required")
	}
	for i, r := range rs {
		if r.Label == "" {
			return fmt.Errorf("rule %d: label is empty", i)
		}
		if r.Index < 0 {
			return fmt.Errorf("rule %d (%s): index must be >= 0", i, r.Label)
		}
		if r.When.Empty() {
			return fmt.Errorf("rule %d (%s): no bounds set", i, r.Label)
		}
		if r.When.GTE != nil && r.When.LTE != nil && *r.When.GTE > *r.When.LTE {
			return fmt.Errorf("rule %d (%s): gte > lte", i, r.Label)
		}
	}
	return nil
}

// Evaluate returns the first rule matching n in declaration order.
// NaN never matches.
func (rs Ruleset) Evaluate(n float64) (Status, bool) {
	if math.IsNaN(n) {
		return Status{}, false
	}
	for _, r := range rs {
		if r.When.Match(n) {
			return Status{Label: r.Label, Index: r.Index, Color: r.Color}, true
		}
	}
	return Status{}, false
}

// Default returns the stock three-rule set: >100 Done, 50-100 Working
// on it, <50 Stuck.
func Default() Ruleset {
	f := func(v float64) *float64 { return &v }
	return Ruleset{
		{Label: "Done", Index: 1, Color: "green", When: Bounds{GT: f(100)}},
		{Label: "Working on it", Index: 2, Color: "yellow", When: Bounds{GTE: f(50), LTE: f(100)}},
		{Label: "Stuck", Index: 3, Color: "red", When: Bounds{LT: f(50)}},
	}
}

// valueCleaner strips the noise formula results carry: thousands
// separators, currency symbols, percent signs.
var valueCleaner = strings.NewReplacer(
	",", "",
	"$", "",
	"€", "",
	"£", "",
	"%", "",
)

// ParseNumber extracts a float from a cleaned-up numeric string.
// Returns false for anything that does not parse to a finite number.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(valueCleaner.Replace(s))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ParseValue extracts a number from a raw formula-column value.
// Numbers pass through, strings are cleaned and parsed, and wrapped
// forms ({"value": ...} or {"text": ...}) are unwrapped one level.
// Everything else is not a value.
func ParseValue(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return parseAny(v, true)
}

func parseAny(v any, unwrap bool) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case string:
		return ParseNumber(t)
	case map[string]any:
		if !unwrap {
			return 0, false
		}
		if inner, ok := t["value"]; ok {
			return parseAny(inner, false)
		}
		if inner, ok := t["text"]; ok {
			return parseAny(inner, false)
		}
		return 0, false
	default:
		return 0, false
	}
}
