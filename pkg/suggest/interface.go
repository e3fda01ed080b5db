// Package suggest provides frequency-ranked prefix completion over a trie, plus a
// prefix-keyed hot cache for repeated lookups.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Suggest returns every word below prefix ordered by frequency
	Suggest(prefix string) []string

	// Complete returns at most limit suggestions with their frequencies
	Complete(prefix string, limit int) []Suggestion

	// AddWord seeds a word with an initial frequency
	AddWord(word string, frequency int)

	// RecordQuery counts one more use of query
	RecordQuery(query string)

	// Stats returns statistics about the indexed words
	Stats() map[string]int
}
