// Package fuzzy proposes spelling corrections one edit away from a misspelled word.
//
// Candidates are generated by deleting, substituting or inserting a single symbol
// and each one is validated against a dictionary. Larger edit distances are never
// explored.
package fuzzy

import (
	"sort"
	"strings"
)

// DefaultAlphabet is the symbol set used for substitutions and insertions.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzáéíóúñ"

// Dictionary is the exact-membership check a Corrector validates candidates with.
// *trie.Trie[rune, P] satisfies it.
type Dictionary interface {
	ExactMatch(seq []rune) bool
}

// Corrector generates single-edit corrections validated against a Dictionary.
type Corrector struct {
	dict     Dictionary
	alphabet []rune
}

// NewCorrector returns a corrector over dict. An empty alphabet selects DefaultAlphabet.
func NewCorrector(dict Dictionary, alphabet string) *Corrector {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	return &Corrector{
		dict:     dict,
		alphabet: dedupeRunes(alphabet),
	}
}

// Alphabet returns the symbols used for substitutions and insertions.
func (c *Corrector) Alphabet() string {
	return string(c.alphabet)
}

// Candidates returns every single-edit variant of word in generation order:
// deletions, then substitutions, then insertions. Duplicates are kept.
func (c *Corrector) Candidates(word string) []string {
	w := []rune(word)
	n, k := len(w), len(c.alphabet)
	out := make([]string, 0, n+n*k+(n+1)*k)

	buf := make([]rune, 0, n+1)
	for i := 0; i < n; i++ {
		buf = append(append(buf[:0], w[:i]...), w[i+1:]...)
		out = append(out, string(buf))
	}
	for i := 0; i < n; i++ {
		buf = append(buf[:0], w...)
		for _, r := range c.alphabet {
			buf[i] = r
			out = append(out, string(buf))
		}
	}
	for i := 0; i <= n; i++ {
		for _, r := range c.alphabet {
			buf = append(append(append(buf[:0], w[:i]...), r), w[i:]...)
			out = append(out, string(buf))
		}
	}
	return out
}

// Correct returns the dictionary words exactly one edit away from word, sorted and
// without duplicates. If word itself is in the dictionary and one of its symbols is
// in the alphabet, the identity substitution returns it too.
func (c *Corrector) Correct(word string) []string {
	seen := make(map[string]struct{})
	for _, candidate := range c.Candidates(word) {
		if _, dup := seen[candidate]; dup {
			continue
		}
		if c.dict.ExactMatch([]rune(candidate)) {
			seen[candidate] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Checker is the spell-check front end: exact hits pass, misses get corrections.
type Checker struct {
	dict      Dictionary
	corrector *Corrector
}

// NewChecker returns a checker over dict.
func NewChecker(dict Dictionary, alphabet string) *Checker {
	return &Checker{dict: dict, corrector: NewCorrector(dict, alphabet)}
}

// Check lower-cases and trims word, reports whether it is known, and otherwise
// returns its single-edit corrections.
func (ch *Checker) Check(word string) (bool, []string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false, []string{}
	}
	if ch.dict.ExactMatch([]rune(word)) {
		return true, []string{}
	}
	return false, ch.corrector.Correct(word)
}

// Corrector returns the underlying corrector.
func (ch *Checker) Corrector() *Corrector {
	return ch.corrector
}

func dedupeRunes(s string) []rune {
	seen := make(map[rune]struct{})
	var out []rune
	for _, r := range s {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
