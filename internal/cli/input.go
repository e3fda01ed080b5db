// Package cli is an interactive line REPL over the engine for debugging and trying
// out every front-end by hand.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/trielab/internal/utils"
	"github.com/bastiangx/trielab/pkg/dictionary"
	"github.com/bastiangx/trielab/pkg/engine"
	"github.com/bastiangx/trielab/pkg/openings"
	"github.com/bastiangx/trielab/pkg/route"
	"github.com/bastiangx/trielab/pkg/scan"
	"github.com/charmbracelet/log"
)

// ErrUsage is returned for a command with missing or malformed arguments.
var ErrUsage = errors.New("usage")

// errQuit ends the input loop.
var errQuit = errors.New("quit")

// Options holds the REPL's suggestion bounds.
type Options struct {
	MinPrefix int
	MaxPrefix int
	Limit     int
	NoFilter  bool
}

// InputHandler reads commands line by line and prints results.
type InputHandler struct {
	engine       *engine.Engine
	opts         Options
	in           io.Reader
	out          *log.Logger
	render       *renderer
	requestCount int
}

// NewInputHandler creates a handler on stdin/stdout.
func NewInputHandler(eng *engine.Engine, opts Options) *InputHandler {
	return NewInputHandlerWithIO(eng, opts, os.Stdin, os.Stdout)
}

// NewInputHandlerWithIO creates a handler over explicit streams.
func NewInputHandlerWithIO(eng *engine.Engine, opts Options, r io.Reader, w io.Writer) *InputHandler {
	if opts.MaxPrefix <= 0 {
		opts.MaxPrefix = 60
	}
	return &InputHandler{
		engine: eng,
		opts:   opts,
		in:     r,
		out: log.NewWithOptions(w, log.Options{
			ReportTimestamp: false,
			Level:           log.InfoLevel,
		}),
		render: newRenderer(w),
	}
}

// Start runs the loop until the input ends or "quit" is read.
func (h *InputHandler) Start() error {
	h.out.Print("trielab CLI")
	h.out.Print("type a prefix for suggestions or 'help' for commands (Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		h.out.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := h.Execute(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			h.out.Print(h.render.err(err.Error()))
		}
	}
}

// Execute runs one command line. A line that is not a command is a suggest prefix.
func (h *InputHandler) Execute(line string) error {
	h.requestCount++
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		h.printHelp()
	case "quit", "exit":
		return errQuit
	case "suggest", "s":
		if len(args) != 1 {
			return fmt.Errorf("%w: suggest <prefix>", ErrUsage)
		}
		h.suggest(args[0])
	case "add":
		return h.add(args)
	case "check":
		if len(args) != 1 {
			return fmt.Errorf("%w: check <word>", ErrUsage)
		}
		h.check(args[0])
	case "correct":
		if len(args) != 1 {
			return fmt.Errorf("%w: correct <word>", ErrUsage)
		}
		h.printList("corrections", args[0], h.engine.Correct(args[0]))
	case "route":
		return h.route(args)
	case "routes":
		h.routes()
	case "kmer":
		return h.kmer(args)
	case "grid":
		return h.grid(args)
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("%w: load <file>", ErrUsage)
		}
		return h.load(args[0])
	case "censor":
		if len(args) == 0 {
			return fmt.Errorf("%w: censor <text>", ErrUsage)
		}
		h.out.Print(h.engine.Censor(strings.Join(args, " ")))
	case "forbid":
		if len(args) == 0 {
			return fmt.Errorf("%w: forbid <word>...", ErrUsage)
		}
		h.engine.Forbid(args...)
		h.out.Printf("%d forbidden word(s) added", len(args))
	case "book":
		return h.book(args)
	case "next":
		return h.next(args)
	case "openings":
		return h.openings(args)
	case "stats":
		h.stats()
	default:
		if len(fields) == 1 {
			h.suggest(fields[0])
			return nil
		}
		return fmt.Errorf("%w: unknown command %q, try 'help'", ErrUsage, cmd)
	}
	return nil
}

func (h *InputHandler) printHelp() {
	lines := [][2]string{
		{"<prefix> | suggest <prefix>", "ranked completions"},
		{"add <word> [freq]", "add a word to the dictionaries"},
		{"check <word> | correct <word>", "spell-check, single-edit corrections"},
		{"route add <cidr> <label>", "register a route"},
		{"route <addr> | routes", "longest-prefix lookup, list routes"},
		{"kmer index <k> <genome>", "index every k-mer"},
		{"kmer find <prefix> | kmer <seq>", "patterns by prefix, exact positions"},
		{"grid <file> <word>...", "word search in 8 directions"},
		{"load <file>", "load a word list or genome by extension"},
		{"forbid <word>... | censor <text>", "redaction list, masked text"},
		{"book add <side> <result> <moves>... [| label]", "count a game"},
		{"next <side> [moves]... | openings <side>", "continuations, roll-up by label"},
		{"stats | quit", ""},
	}
	for _, l := range lines {
		h.out.Printf("  %-48s %s", h.render.command(l[0]), l[1])
	}
}

func (h *InputHandler) suggest(prefix string) {
	n := utf8.RuneCountInString(prefix)
	if n < h.opts.MinPrefix {
		h.out.Print(h.render.err(fmt.Sprintf("Prefix too short: %s", prefix)))
		return
	}
	if n > h.opts.MaxPrefix {
		h.out.Print(h.render.err(fmt.Sprintf("Prefix too long: %s", prefix)))
		return
	}
	if !h.opts.NoFilter && !utils.IsValidInput(prefix) {
		h.out.Print(h.render.warn(fmt.Sprintf("No suggestions found for prefix: '%s' (filtered out)", prefix)))
		return
	}

	start := time.Now()
	suggestions := h.engine.Complete(prefix, h.opts.Limit)
	log.Debugf("Took %v for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		h.out.Print(h.render.warn(fmt.Sprintf("No suggestions found for prefix: '%s'", prefix)))
		return
	}
	h.out.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		h.out.Printf("%2d. %s (freq: %s)", i+1, h.render.word(s.Word), utils.FormatWithCommas(s.Frequency))
	}
}

func (h *InputHandler) add(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: add <word> [freq]", ErrUsage)
	}
	freq := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: frequency %q is not a number", ErrUsage, args[1])
		}
		freq = n
	}
	h.engine.AddWord(args[0], freq)
	h.out.Printf("added %s", h.render.word(args[0]))
	return nil
}

func (h *InputHandler) check(word string) {
	ok, fixes := h.engine.Check(word)
	if ok {
		h.out.Printf("%s is spelled correctly", h.render.word(word))
		return
	}
	h.printList("corrections", word, fixes)
}

func (h *InputHandler) printList(what, subject string, items []string) {
	if len(items) == 0 {
		h.out.Print(h.render.warn(fmt.Sprintf("No %s for '%s'", what, subject)))
		return
	}
	styled := make([]string, len(items))
	for i, it := range items {
		styled[i] = h.render.word(it)
	}
	h.out.Printf("%s for '%s': %s", what, subject, strings.Join(styled, ", "))
}

func (h *InputHandler) route(args []string) error {
	if len(args) >= 3 && args[0] == "add" {
		if err := h.engine.AddRoute(args[1], strings.Join(args[2:], " ")); err != nil {
			return err
		}
		h.out.Printf("route %s -> %s", args[1], strings.Join(args[2:], " "))
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: route <addr> | route add <cidr> <label>", ErrUsage)
	}
	label, ok, err := h.engine.LookupAddr(args[0])
	if err != nil {
		return err
	}
	if !ok {
		h.out.Print(h.render.warn(fmt.Sprintf("No route for %s", args[0])))
		return nil
	}
	h.out.Printf("%s -> %s", args[0], h.render.word(label))
	return nil
}

func (h *InputHandler) routes() {
	for _, r := range h.engine.Routes() {
		cidr := r.Bits
		if p, err := route.PrefixFromBits(r.Bits); err == nil {
			cidr = p.String()
		}
		h.out.Printf("%-18s %s", cidr, h.render.word(r.Label))
	}
}

func (h *InputHandler) kmer(args []string) error {
	switch {
	case len(args) == 3 && args[0] == "index":
		k, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: k %q is not a number", ErrUsage, args[1])
		}
		if err := h.engine.IndexGenome(args[2], k); err != nil {
			return err
		}
		h.printGenome(args[2])
	case len(args) == 2 && args[0] == "find":
		patterns := h.engine.FindPatterns(args[1])
		if len(patterns) == 0 {
			h.out.Print(h.render.warn(fmt.Sprintf("No patterns start with %s", args[1])))
			return nil
		}
		for _, p := range patterns {
			h.out.Printf("%s x%d at %v", h.render.word(p.Sequence), p.Count, p.Positions)
		}
	case len(args) == 1:
		h.out.Printf("%s at %v", h.render.word(args[0]), h.engine.SearchKmer(args[0]))
	default:
		return fmt.Errorf("%w: kmer index <k> <genome> | kmer find <prefix> | kmer <seq>", ErrUsage)
	}
	return nil
}

// printGenome reports the indexed k-mer count and the composition of genome.
func (h *InputHandler) printGenome(genome string) {
	h.out.Printf("indexed %d distinct k-mers", h.engine.Stats()["genome.sequences"])
	comp, err := scan.Compose(genome)
	if err != nil {
		return
	}
	h.out.Printf("length %d  A:%d C:%d G:%d T:%d  GC %.1f%%",
		comp.Length, comp.Counts['A'], comp.Counts['C'], comp.Counts['G'], comp.Counts['T'], comp.GCContent)
}

// load seeds the engine from path, picking the loader by extension.
func (h *InputHandler) load(path string) error {
	format, err := dictionary.DetectFileFormat(path)
	if err != nil {
		return err
	}
	switch format {
	case dictionary.FormatGenome:
		genome, err := dictionary.LoadGenome(path)
		if err != nil {
			return err
		}
		if err := h.engine.IndexGenome(genome, 0); err != nil {
			return err
		}
		h.printGenome(genome)
	case dictionary.FormatGrid:
		return fmt.Errorf("%w: grids are searched with grid <file> <word>...", ErrUsage)
	default:
		n, err := h.engine.LoadWords(path)
		if err != nil {
			return err
		}
		h.out.Printf("loaded %d words from %s", n, path)
	}
	return nil
}

func (h *InputHandler) grid(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: grid <file> <word>...", ErrUsage)
	}
	grid, err := dictionary.LoadGrid(args[0])
	if err != nil {
		return err
	}
	matches := h.engine.FindInGrid(grid, args[1:])
	if len(matches) == 0 {
		h.out.Print(h.render.warn("No words found"))
		return nil
	}
	for _, m := range matches {
		h.out.Printf("%s at (%d,%d) %s", h.render.word(m.Word), m.Row, m.Col, m.Direction)
	}
	return nil
}

// book parses "add <side> <result> <moves>... [| label]".
func (h *InputHandler) book(args []string) error {
	if len(args) < 4 || args[0] != "add" {
		return fmt.Errorf("%w: book add <side> <result> <moves>... [| label]", ErrUsage)
	}
	side, err := engine.ParseSide(args[1])
	if err != nil {
		return err
	}
	result, err := openings.ParseResult(args[2])
	if err != nil {
		return err
	}
	moves, label := args[3:], ""
	for i, tok := range moves {
		if tok == "|" {
			moves, label = moves[:i], strings.Join(moves[i+1:], " ")
			break
		}
	}
	if len(moves) == 0 {
		return fmt.Errorf("%w: no moves given", ErrUsage)
	}
	h.engine.RecordGame(side, moves, result, label)
	h.out.Printf("%s: %s (%s)", side, strings.Join(moves, " "), result)
	return nil
}

func (h *InputHandler) next(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: next <side> [moves]...", ErrUsage)
	}
	side, err := engine.ParseSide(args[0])
	if err != nil {
		return err
	}
	conts := h.engine.Continuations(side, args[1:])
	if len(conts) == 0 {
		h.out.Print(h.render.warn("No continuations found"))
		return nil
	}
	for i, c := range conts {
		h.out.Printf("%2d. %-8s %s %s", i+1, h.render.word(c.Move), h.render.counters(c.Counters), h.render.label(c.Label))
	}
	return nil
}

func (h *InputHandler) openings(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: openings <side>", ErrUsage)
	}
	side, err := engine.ParseSide(args[0])
	if err != nil {
		return err
	}
	for _, o := range h.engine.Book(side).Openings() {
		h.out.Printf("%-32s %s", h.render.label(o.Label), h.render.counters(o.Counters))
	}
	return nil
}

func (h *InputHandler) stats() {
	stats := h.engine.Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		h.out.Printf("%-24s %s", k, utils.FormatWithCommas(stats[k]))
	}
	h.out.Printf("%-24s %d", "cli.requests", h.requestCount)
}
