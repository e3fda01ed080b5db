package suggest

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

type cacheEntry struct {
	suggestions []Suggestion
	lastAccess  int64
}

// HotCache memoizes ranked results per prefix. Keys live in a patricia trie so that
// recording a word can drop exactly the cached prefixes of that word.
type HotCache struct {
	entries     *patricia.Trie
	size        int
	maxEntries  int
	accessCount int64
	hits        int
	misses      int
	evictions   int
}

// NewHotCache returns a cache holding at most maxEntries prefixes.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		entries:    patricia.NewTrie(),
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the cached ranking for prefix.
func (hc *HotCache) Get(prefix string) ([]Suggestion, bool) {
	if hc == nil || prefix == "" {
		return nil, false
	}
	item := hc.entries.Get(patricia.Prefix(prefix))
	if item == nil {
		hc.misses++
		return nil, false
	}
	entry := item.(*cacheEntry)
	entry.lastAccess = hc.nextAccessTime()
	hc.hits++

	out := make([]Suggestion, len(entry.suggestions))
	copy(out, entry.suggestions)
	return out, true
}

// Put stores the full ranking for prefix, evicting the least recently used prefix when full.
func (hc *HotCache) Put(prefix string, suggestions []Suggestion) {
	if hc == nil || prefix == "" || hc.maxEntries <= 0 {
		return
	}
	stored := make([]Suggestion, len(suggestions))
	copy(stored, suggestions)

	key := patricia.Prefix(prefix)
	if item := hc.entries.Get(key); item != nil {
		entry := item.(*cacheEntry)
		entry.suggestions = stored
		entry.lastAccess = hc.nextAccessTime()
		return
	}

	if hc.size >= hc.maxEntries {
		hc.evictLRU()
	}
	hc.entries.Insert(key, &cacheEntry{suggestions: stored, lastAccess: hc.nextAccessTime()})
	hc.size++
}

// Invalidate drops every cached prefix of word, including word itself.
func (hc *HotCache) Invalidate(word string) {
	if hc == nil || hc.size == 0 {
		return
	}
	var stale []patricia.Prefix
	err := hc.entries.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, item patricia.Item) error {
		stale = append(stale, append(patricia.Prefix(nil), p...))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting hot cache prefixes: %v", err)
		return
	}
	for _, p := range stale {
		if hc.entries.Delete(p) {
			hc.size--
		}
	}
	if len(stale) > 0 {
		log.Debugf("Invalidated %d cached prefixes for '%s'", len(stale), word)
	}
}

// Stats returns cache counters.
func (hc *HotCache) Stats() map[string]int {
	if hc == nil {
		return map[string]int{}
	}
	return map[string]int{
		"hotCacheEntries":   hc.size,
		"maxHotEntries":     hc.maxEntries,
		"hotCacheHits":      hc.hits,
		"hotCacheMisses":    hc.misses,
		"hotCacheEvictions": hc.evictions,
	}
}

func (hc *HotCache) nextAccessTime() int64 {
	hc.accessCount++
	return hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldest patricia.Prefix
	var oldestTime int64 = math.MaxInt64

	_ = hc.entries.Visit(func(p patricia.Prefix, item patricia.Item) error {
		if entry := item.(*cacheEntry); entry.lastAccess < oldestTime {
			oldestTime = entry.lastAccess
			oldest = append(oldest[:0], p...)
		}
		return nil
	})

	if oldest != nil && hc.entries.Delete(oldest) {
		hc.size--
		hc.evictions++
		log.Debugf("Evicted prefix '%s' from hot cache", string(oldest))
	}
}
