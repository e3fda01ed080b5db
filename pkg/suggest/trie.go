package suggest

import (
	"sort"
	"unicode"

	"github.com/bastiangx/trielab/pkg/trie"
)

// searchTrie ranks every terminal below prefix by frequency, highest first. Equal
// frequencies keep the trie's enumeration order.
func searchTrie(t *trie.Trie[rune, int], prefix string) []Suggestion {
	entries := t.CollectTerminals([]rune(prefix))
	if len(entries) == 0 {
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, len(entries))
	for _, e := range entries {
		suggestions = append(suggestions, Suggestion{
			Word:      string(e.Sequence),
			Frequency: e.Payload,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Frequency > suggestions[j].Frequency
	})
	return suggestions
}

// foldCase lowercases s and remembers which rune positions were upper case.
func foldCase(s string) (string, []bool) {
	runes := []rune(s)
	capitalPositions := make([]bool, len(runes))
	for i, r := range runes {
		if unicode.IsUpper(r) {
			capitalPositions[i] = true
			runes[i] = unicode.ToLower(r)
		}
	}
	return string(runes), capitalPositions
}

// ApplyCapitalization re-applies the capital letters of the typed prefix to word.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}

	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] {
			wordRunes[i] = unicode.ToUpper(wordRunes[i])
		}
	}
	return string(wordRunes)
}
