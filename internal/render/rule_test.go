package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	rule, err := ParseRule("contact_groups:user@example.com")
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", rule.Replacement)
	assert.Equal(t, "contact_groups:user@example.com", rule.String())
}

func TestParseRule_Malformed(t *testing.T) {
	tests := []struct {
		name string
		rule string
	}{
		{"no colon", "contact_groups"},
		{"two colons", "contact_groups:a:b"},
		{"url value", "notes_url:http://example.com"},
		{"empty", ""},
		{"bad regex", "contact_(groups:ops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRule(tt.rule)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedOverrideRule))
		})
	}
}

func TestParseRule_EmptyParts(t *testing.T) {
	rule, err := ParseRule("contact_groups:")
	require.NoError(t, err)
	assert.Equal(t, "", rule.Replacement)
}

func TestParseRules_PreservesOrder(t *testing.T) {
	rules, err := ParseRules([]string{"a:1", "b:2", "c:3"})
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, "a:1", rules[0].Source)
	assert.Equal(t, "b:2", rules[1].Source)
	assert.Equal(t, "c:3", rules[2].Source)
}

func TestParseRules_FailsOnAnyMalformed(t *testing.T) {
	rules, err := ParseRules([]string{"a:1", "broken", "c:3"})
	require.Error(t, err)
	assert.Nil(t, rules)
	assert.True(t, errors.Is(err, ErrMalformedOverrideRule))
	assert.Contains(t, err.Error(), `"broken"`)
}

func TestRule_Apply(t *testing.T) {
	rule, err := ParseRule("notification_period:workhours")
	require.NoError(t, err)

	out, ok := rule.Apply("notification_period             24x7")
	require.True(t, ok)
	assert.Equal(t, "notification_period             workhours                ", out)

	out, ok = rule.Apply("check_command check_ping")
	assert.False(t, ok)
	assert.Equal(t, "check_command check_ping", out)
}

func TestRule_ApplyLongKeyIsNotTruncated(t *testing.T) {
	rule, err := ParseRule(`\w+_extremely_long_attribute_name:x`)
	require.NoError(t, err)

	out, ok := rule.Apply("some_extremely_long_attribute_name value")
	require.True(t, ok)
	assert.Equal(t, "some_extremely_long_attribute_namex                        ", out)
}

func TestRule_ZeroValueNeverMatches(t *testing.T) {
	var rule Rule
	_, ok := rule.Apply("anything at all")
	assert.False(t, ok)
}
