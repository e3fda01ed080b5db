package suggest

import (
	"github.com/bastiangx/trielab/pkg/trie"
	"github.com/charmbracelet/log"
)

// Suggestion is a completed word and how often it was seen.
type Suggestion struct {
	Word      string
	Frequency int
}

// Options controls a Completer.
type Options struct {
	// CacheSize is the number of prefixes kept in the hot cache; 0 disables it.
	CacheSize int
	// CaseFold indexes words lower-cased and re-applies the typed capitals to results.
	CaseFold bool
}

var _ ICompleter = (*Completer)(nil)

// Completer ranks completions by how often each word was added or queried.
type Completer struct {
	trie         *trie.Trie[rune, int]
	hotCache     *HotCache
	caseFold     bool
	maxFrequency int
	queries      int
}

// NewCompleter returns an empty completer.
func NewCompleter(opts Options) *Completer {
	c := &Completer{
		trie:     trie.New[rune, int](),
		caseFold: opts.CaseFold,
	}
	if opts.CacheSize > 0 {
		c.hotCache = NewHotCache(opts.CacheSize)
	}
	return c
}

// AddWord seeds word with frequency occurrences. Frequencies below 1 count as 1.
func (c *Completer) AddWord(word string, frequency int) {
	if frequency < 1 {
		frequency = 1
	}
	c.add(word, frequency)
}

// RecordQuery counts one more use of query so future rankings adapt to usage.
func (c *Completer) RecordQuery(query string) {
	if query == "" {
		return
	}
	c.queries++
	c.add(query, 1)
}

func (c *Completer) add(word string, n int) {
	if c.caseFold {
		word, _ = foldCase(word)
	}
	node := c.trie.Insert([]rune(word), func(freq *int) { *freq += n })
	if node.Payload > c.maxFrequency {
		c.maxFrequency = node.Payload
	}
	c.hotCache.Invalidate(word)
}

// Contains reports whether word was added or recorded.
func (c *Completer) Contains(word string) bool {
	if c.caseFold {
		word, _ = foldCase(word)
	}
	return c.trie.ExactMatch([]rune(word))
}

// Frequency returns the accumulated count for word, 0 when unknown.
func (c *Completer) Frequency(word string) int {
	if c.caseFold {
		word, _ = foldCase(word)
	}
	node, ok := c.trie.Find([]rune(word))
	if !ok || !node.Terminal() {
		return 0
	}
	return node.Payload
}

// Suggest returns every word below prefix, most frequent first.
func (c *Completer) Suggest(prefix string) []string {
	suggestions := c.Complete(prefix, 0)
	words := make([]string, len(suggestions))
	for i, s := range suggestions {
		words[i] = s.Word
	}
	return words
}

// Complete returns at most limit ranked suggestions for prefix; limit <= 0 means all.
// An empty or absent prefix yields an empty result.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	if prefix == "" {
		return []Suggestion{}
	}
	lookup := prefix
	var capitalPositions []bool
	if c.caseFold {
		lookup, capitalPositions = foldCase(prefix)
	}

	suggestions, hit := c.hotCache.Get(lookup)
	if !hit {
		suggestions = searchTrie(c.trie, lookup)
		c.hotCache.Put(lookup, suggestions)
	}
	log.Debugf("Ranked %d suggestions for prefix '%s' (cached=%v)", len(suggestions), prefix, hit)

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	if c.caseFold {
		for i := range suggestions {
			suggestions[i].Word = ApplyCapitalization(suggestions[i].Word, capitalPositions)
		}
	}
	return suggestions
}

// Stats returns statistics about the indexed words and the cache.
func (c *Completer) Stats() map[string]int {
	stats := map[string]int{
		"totalWords":   c.trie.Len(),
		"maxFrequency": c.maxFrequency,
		"nodes":        c.trie.Nodes(),
		"queries":      c.queries,
	}
	for k, v := range c.hotCache.Stats() {
		stats[k] = v
	}
	return stats
}
