package scan

import (
	"strings"
	"unicode"

	"github.com/bastiangx/trielab/pkg/trie"
)

// DefaultPlaceholder replaces every redacted rune.
const DefaultPlaceholder = '*'

// Redactor masks every occurrence of forbidden words in text, including overlapping
// and nested ones. Matching is case-insensitive.
type Redactor struct {
	trie        *trie.Trie[rune, struct{}]
	placeholder rune
}

// NewRedactor returns a redactor with no forbidden words. A zero placeholder selects
// DefaultPlaceholder.
func NewRedactor(placeholder rune) *Redactor {
	if placeholder == 0 {
		placeholder = DefaultPlaceholder
	}
	return &Redactor{
		trie:        trie.New[rune, struct{}](),
		placeholder: placeholder,
	}
}

// AddWord forbids word. Blank words are ignored.
func (r *Redactor) AddWord(word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}
	r.trie.Insert(lowerRunes(word), nil)
}

// Forbidden reports whether word is on the list.
func (r *Redactor) Forbidden(word string) bool {
	return r.trie.ExactMatch(lowerRunes(strings.TrimSpace(word)))
}

// Len returns the number of forbidden words.
func (r *Redactor) Len() int {
	return r.trie.Len()
}

// Mask returns one flag per rune of text, set when that rune lies inside any
// forbidden span. Every start index is scanned so overlapping spans are all found.
func (r *Redactor) Mask(text string) []bool {
	runes := lowerRunes(text)
	mask := make([]bool, len(runes))
	root := r.trie.Root()

	for i := range runes {
		node := root
		for j := i; j < len(runes); j++ {
			child, ok := node.Child(runes[j])
			if !ok {
				break
			}
			node = child
			if node.Terminal() {
				for k := i; k <= j; k++ {
					mask[k] = true
				}
			}
		}
	}
	return mask
}

// Censor replaces every masked rune of text with the placeholder.
func (r *Redactor) Censor(text string) string {
	mask := r.Mask(text)
	runes := []rune(text)
	for i, masked := range mask {
		if masked {
			runes[i] = r.placeholder
		}
	}
	return string(runes)
}

// lowerRunes lower-cases rune by rune so indexes line up with the original text.
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, c := range runes {
		runes[i] = unicode.ToLower(c)
	}
	return runes
}
