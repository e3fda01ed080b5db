package fuzzy

import (
	"fmt"
	"testing"

	"github.com/bastiangx/trielab/pkg/trie"
	"github.com/stretchr/testify/assert"
)

func dictionary(words ...string) *trie.Trie[rune, struct{}] {
	t := trie.New[rune, struct{}]()
	for _, w := range words {
		t.Insert([]rune(w), nil)
	}
	return t
}

// Tests the corrector only ever reaches words one edit away.
func TestCorrect(t *testing.T) {
	dict := dictionary("gato", "gata", "pato", "casa", "cosa", "año", "árbol", "perro")
	corrector := NewCorrector(dict, "")

	testCases := []struct {
		input       string
		expected    []string
		description string
	}{
		{"gto", []string{"gato"}, "Missing character"},
		{"gatto", []string{"gato"}, "Extra character"},
		{"gaxo", []string{"gato"}, "Substitution"},
		{"gat", []string{"gata", "gato"}, "Insertion at end, two hits"},
		{"cesa", []string{"casa", "cosa"}, "Vowel substitution, two hits"},
		{"ano", []string{"año"}, "Accented alphabet symbol"},
		{"arbol", []string{"árbol"}, "Accented substitution"},
		{"gato", []string{"gata", "gato", "pato"}, "Known word keeps identity and neighbours"},
		{"pxrrx", []string{}, "Two substitutions out of reach"},
		{"", []string{}, "Empty word"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, corrector.Correct(tc.input), "input %q", tc.input)
		})
	}
}

func TestCandidatesCount(t *testing.T) {
	corrector := NewCorrector(dictionary(), "ab")

	testCases := []struct {
		word string
		want int
	}{
		{"", 2},
		{"x", 1 + 2 + 4},
		{"xyz", 3 + 6 + 8},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("len=%d", len(tc.word)), func(t *testing.T) {
			assert.Len(t, corrector.Candidates(tc.word), tc.want)
		})
	}

	assert.Equal(t, []string{"", "a", "b", "ax", "bx", "xa", "xb"}, corrector.Candidates("x"))
}

func TestAlphabetDedup(t *testing.T) {
	corrector := NewCorrector(dictionary(), "abca")
	assert.Equal(t, "abc", corrector.Alphabet())
	assert.Equal(t, DefaultAlphabet, NewCorrector(dictionary(), "").Alphabet())
}

func TestChecker(t *testing.T) {
	checker := NewChecker(dictionary("hola", "mundo"), "")

	ok, fixes := checker.Check("  Hola ")
	assert.True(t, ok)
	assert.Empty(t, fixes)

	ok, fixes = checker.Check("mundp")
	assert.False(t, ok)
	assert.Equal(t, []string{"mundo"}, fixes)

	ok, fixes = checker.Check("   ")
	assert.False(t, ok)
	assert.Empty(t, fixes)
}

func BenchmarkCorrect(b *testing.B) {
	dict := trie.New[rune, struct{}]()
	for i := 0; i < 1000; i++ {
		dict.Insert([]rune(fmt.Sprintf("palabra%d", i)), nil)
	}
	corrector := NewCorrector(dict, "")
	inputs := []string{"palbra1", "palabra22", "palabraa3", "plabra4"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		corrector.Correct(inputs[i%len(inputs)])
	}
}
