package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCensor(t *testing.T) {
	r := NewRedactor(0)
	for _, w := range []string{"prohibido", "malo", "mal", "alo", "  "} {
		r.AddWord(w)
	}
	assert.Equal(t, 4, r.Len())

	testCases := []struct {
		input       string
		expected    string
		description string
	}{
		{"esto es prohibido", "esto es *********", "Single word"},
		{"nada que ver", "nada que ver", "No match"},
		{"malo", "****", "Nested spans"},
		{"malalo", "******", "Overlapping spans"},
		{"MaLo y PROHIBIDO", "**** y *********", "Case-insensitive"},
		{"animales", "ani***es", "Word inside a word"},
		{"", "", "Empty text"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := r.Censor(tc.input)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, got, r.Censor(got), "censoring is idempotent")
		})
	}
}

func TestMask(t *testing.T) {
	r := NewRedactor('#')
	r.AddWord("ño")
	assert.Equal(t, []bool{false, false, true, true}, r.Mask("AÑÑO"))
	assert.Equal(t, "AÑ##", r.Censor("AÑÑO"))
	assert.True(t, r.Forbidden(" ÑO "))
	assert.False(t, r.Forbidden("ñ"))
}

func TestEmptyRedactor(t *testing.T) {
	r := NewRedactor(0)
	assert.Equal(t, "texto libre", r.Censor("texto libre"))
	assert.Equal(t, []bool{false, false}, r.Mask("ab"))
}
