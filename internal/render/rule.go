package render

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedOverrideRule indicates an override rule string is not of the
// form "pattern:replacement" or its pattern does not compile.
var ErrMalformedOverrideRule = errors.New("malformed override rule")

// Column widths for lines rewritten by an override rule.
const (
	keyColumnWidth   = 32
	valueColumnWidth = 25
)

// Rule rewrites template lines whose leading token matches Pattern.
type Rule struct {
	// Source is the rule string as supplied by the caller.
	Source string

	// Replacement replaces everything after the matched key.
	Replacement string

	re *regexp.Regexp
}

// ParseRule parses a "pattern:replacement" string. The string must contain
// exactly one colon.
func ParseRule(s string) (Rule, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("%w: %q must have the form regular_expression:new_value", ErrMalformedOverrideRule, s)
	}

	pattern, replacement := parts[0], parts[1]
	re, err := regexp.Compile("(" + pattern + `)\s+(.*)`)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %q: %v", ErrMalformedOverrideRule, s, err)
	}

	return Rule{Source: s, Replacement: replacement, re: re}, nil
}

// ParseRules parses every rule string, failing on the first malformed one.
// Order is preserved; it decides which rule wins when several match a line.
func ParseRules(ss []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(ss))
	for _, s := range ss {
		rule, err := ParseRule(s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Apply rewrites line if the rule matches it. The matched key is kept and the
// replacement follows, both left-justified into fixed-width columns.
func (r Rule) Apply(line string) (string, bool) {
	if r.re == nil {
		return line, false
	}
	m := r.re.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return fmt.Sprintf("%-*s%-*s", keyColumnWidth, m[1], valueColumnWidth, r.Replacement), true
}

// String returns the rule as it was supplied.
func (r Rule) String() string {
	return r.Source
}
