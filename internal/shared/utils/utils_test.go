package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalString("   "))

	got := OptionalString("  hello ")
	require.NotNil(t, got)
	assert.Equal(t, "hello", *got)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "", Deref(nil))
	s := "x"
	assert.Equal(t, "x", Deref(&s))
}

func TestEnsureScheme(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"", ""},
		{"example.org", "https://example.org"},
		{"https://example.org", "https://example.org"},
		{"http://example.org", "http://example.org"},
		{"mailto:ana@example.org", "mailto:ana@example.org"},
		{"  example.org/page  ", "https://example.org/page"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, EnsureScheme(tt.in))
	}
}

func TestParseFloatToDecimal(t *testing.T) {
	assert.Nil(t, ParseFloatToDecimal(nil))

	v := 249.99
	d := ParseFloatToDecimal(&v)
	require.NotNil(t, d)
	assert.Equal(t, "249.99", d.String())
}

func TestParseStringToUUID(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, ParseStringToUUID(id.String()))
	assert.Equal(t, uuid.Nil, ParseStringToUUID("nonsense"))
	assert.Equal(t, uuid.Nil, ParseStringToUUID(""))
}
