/*
Package engine wires every trie front-end into one explicitly constructed owner.

An Engine is built once at startup and passed to the server or CLI; nothing in this
module keeps a package-level trie. Each front-end keeps its own trie instance:

	eng := engine.New(engine.DefaultOptions())
	eng.Insert("casa")
	eng.Suggest("ca")               // [casa]
	eng.Correct("csa")              // [casa]
	eng.LookupLongestPrefix(bits)   // route label
	eng.Censor("texto")             // masked text

Word lists are seeded through the dictionary package before queries run.
*/
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/trielab/internal/utils"
	"github.com/bastiangx/trielab/pkg/dictionary"
	"github.com/bastiangx/trielab/pkg/fuzzy"
	"github.com/bastiangx/trielab/pkg/openings"
	"github.com/bastiangx/trielab/pkg/route"
	"github.com/bastiangx/trielab/pkg/scan"
	"github.com/bastiangx/trielab/pkg/suggest"
	"github.com/bastiangx/trielab/pkg/trie"
	"github.com/charmbracelet/log"
)

// Side selects one of the two opening books.
type Side string

const (
	White Side = "white"
	Black Side = "black"
)

// ErrUnknownSide is returned for a book side other than white or black.
var ErrUnknownSide = errors.New("unknown book side")

// ParseSide maps "white"/"w" and "black"/"b" to a Side. Empty text selects White.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
}

// Options configures the front-ends an Engine builds.
type Options struct {
	Alphabet    string
	CacheSize   int
	CaseFold    bool
	Placeholder rune
	K           int
}

// DefaultOptions returns the options used when no config overrides them.
func DefaultOptions() Options {
	return Options{
		Alphabet:    fuzzy.DefaultAlphabet,
		CacheSize:   256,
		CaseFold:    true,
		Placeholder: scan.DefaultPlaceholder,
		K:           6,
	}
}

// Engine owns one instance of every query front-end.
type Engine struct {
	words    suggest.ICompleter
	spelling *trie.Trie[rune, struct{}]
	checker  *fuzzy.Checker
	routes   *route.Table
	genome   *scan.GenomeIndex
	redactor *scan.Redactor
	white    *openings.Book
	black    *openings.Book
	k        int
}

// New builds an empty engine.
func New(opts Options) *Engine {
	if opts.K < 1 {
		opts.K = DefaultOptions().K
	}
	spelling := trie.New[rune, struct{}]()
	e := &Engine{
		words:    suggest.NewCompleter(suggest.Options{CacheSize: opts.CacheSize, CaseFold: opts.CaseFold}),
		spelling: spelling,
		checker:  fuzzy.NewChecker(spelling, opts.Alphabet),
		routes:   route.NewTable(),
		genome:   scan.NewGenomeIndex(),
		redactor: scan.NewRedactor(opts.Placeholder),
		white:    openings.NewBook(string(White)),
		black:    openings.NewBook(string(Black)),
		k:        opts.K,
	}
	log.Debugf("Engine ready: alphabet=%q cache=%d k=%d", opts.Alphabet, opts.CacheSize, opts.K)
	return e
}

// Insert adds word to the suggestion and spelling dictionaries with one occurrence.
func (e *Engine) Insert(word string) {
	e.AddWord(word, 1)
}

// AddWord adds word with an initial frequency. Blank words are ignored.
func (e *Engine) AddWord(word string, frequency int) {
	word = utils.NormalizeWord(word)
	if word == "" {
		return
	}
	e.words.AddWord(word, frequency)
	e.spelling.Insert([]rune(strings.ToLower(word)), nil)
}

// ExactMatch reports whether word is in the spelling dictionary.
func (e *Engine) ExactMatch(word string) bool {
	return e.spelling.ExactMatch([]rune(strings.ToLower(utils.NormalizeWord(word))))
}

// Suggest returns every known completion of prefix, most frequent first.
func (e *Engine) Suggest(prefix string) []string {
	return e.words.Suggest(utils.NormalizeWord(prefix))
}

// Complete returns at most limit ranked completions with their frequencies.
func (e *Engine) Complete(prefix string, limit int) []suggest.Suggestion {
	return e.words.Complete(utils.NormalizeWord(prefix), limit)
}

// RecordQuery counts one more use of query for future rankings.
func (e *Engine) RecordQuery(query string) {
	query = utils.NormalizeWord(query)
	if query == "" {
		return
	}
	e.words.RecordQuery(query)
	e.spelling.Insert([]rune(strings.ToLower(query)), nil)
}

// Correct returns the dictionary words one edit away from word.
func (e *Engine) Correct(word string) []string {
	return e.checker.Corrector().Correct(strings.ToLower(utils.NormalizeWord(word)))
}

// Check reports whether word is known and otherwise proposes corrections.
func (e *Engine) Check(word string) (bool, []string) {
	return e.checker.Check(utils.NormalizeWord(word))
}

// InsertRoute attaches label to the first length bits of bits.
func (e *Engine) InsertRoute(bits string, length int, label string) {
	e.routes.InsertPrefix(bits, length, label)
}

// AddRoute parses cidr and attaches label to it.
func (e *Engine) AddRoute(cidr, label string) error {
	return e.routes.AddCIDR(cidr, label)
}

// LookupLongestPrefix returns the label of the most specific route covering bits.
func (e *Engine) LookupLongestPrefix(bits string) (string, bool) {
	return e.routes.Lookup(bits)
}

// LookupAddr parses addr and returns its longest-prefix label.
func (e *Engine) LookupAddr(addr string) (string, bool, error) {
	return e.routes.LookupAddr(addr)
}

// Routes lists every labelled prefix.
func (e *Engine) Routes() []route.Route {
	return e.routes.Routes()
}

// ScanGrid returns the target words found in grid in any of the eight directions.
func (e *Engine) ScanGrid(grid [][]rune, targets []string) []string {
	return scan.ScanGrid(grid, targets)
}

// FindInGrid returns every grid occurrence of targets with its start and direction.
func (e *Engine) FindInGrid(grid [][]rune, targets []string) []scan.GridMatch {
	return scan.FindInGrid(grid, targets)
}

// IndexGenome replaces the loaded genome with every k-mer of genome. k below 1 uses
// the engine's window. On error the previous index stays loaded.
func (e *Engine) IndexGenome(genome string, k int) error {
	if k < 1 {
		k = e.k
	}
	index := scan.NewGenomeIndex()
	if err := index.IndexKmers(genome, k); err != nil {
		return fmt.Errorf("index genome: %w", err)
	}
	e.genome = index
	return nil
}

// FindPatterns returns every indexed k-mer starting with prefix with its positions.
func (e *Engine) FindPatterns(prefix string) []scan.Pattern {
	return e.genome.FindPatterns(prefix)
}

// SearchKmer returns the positions of exactly seq.
func (e *Engine) SearchKmer(seq string) []int {
	return e.genome.Search(seq)
}

// Forbid adds words to the redaction list.
func (e *Engine) Forbid(words ...string) {
	for _, w := range words {
		e.redactor.AddWord(utils.NormalizeWord(w))
	}
}

// Censor masks every forbidden span of text. Runes outside a span are returned as given.
func (e *Engine) Censor(text string) string {
	return e.redactor.Censor(text)
}

// Book returns the opening book for side.
func (e *Engine) Book(side Side) *openings.Book {
	if side == Black {
		return e.black
	}
	return e.white
}

// RecordGame counts one game on side's book.
func (e *Engine) RecordGame(side Side, moves []string, result openings.Result, label string) {
	e.Book(side).Insert(moves, result, label)
}

// Continuations lists the moves played after moves on side's book.
func (e *Engine) Continuations(side Side, moves []string) []openings.Continuation {
	return e.Book(side).Continuations(moves)
}

// LoadWords seeds the suggestion and spelling dictionaries from a word list file.
func (e *Engine) LoadWords(path string) (int, error) {
	entries, err := dictionary.LoadWordList(path)
	if err != nil {
		return 0, fmt.Errorf("load words: %w", err)
	}
	for _, entry := range entries {
		e.AddWord(entry.Word, entry.Frequency)
	}
	log.Debugf("Seeded %d words from %s", len(entries), path)
	return len(entries), nil
}

// LoadForbidden seeds the redaction list from a word list file.
func (e *Engine) LoadForbidden(path string) (int, error) {
	entries, err := dictionary.LoadWordList(path)
	if err != nil {
		return 0, fmt.Errorf("load forbidden words: %w", err)
	}
	for _, entry := range entries {
		e.Forbid(entry.Word)
	}
	return len(entries), nil
}

// Stats reports sizes of every front-end, keyed "<front-end>.<stat>".
func (e *Engine) Stats() map[string]int {
	stats := make(map[string]int)
	for k, v := range e.words.Stats() {
		stats["suggest."+k] = v
	}
	stats["spelling.words"] = e.spelling.Len()
	stats["spelling.nodes"] = e.spelling.Nodes()
	stats["route.routes"] = e.routes.Len()
	for k, v := range e.genome.Stats() {
		stats["genome."+k] = v
	}
	stats["censor.words"] = e.redactor.Len()
	stats["book.white.games"] = e.white.Games()
	stats["book.black.games"] = e.black.Games()
	return stats
}
