// Package scan walks tries alongside external sequences: word-search grids in eight
// directions, genome k-mer windows, and linear text for redaction.
package scan

import (
	"sort"
	"strings"
	"unicode"

	"github.com/bastiangx/trielab/pkg/trie"
)

// Direction is a (row, column) step.
type Direction struct {
	DRow, DCol int
}

// Directions lists the eight compass steps tried from every cell.
var Directions = []Direction{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// String returns a compass name for d.
func (d Direction) String() string {
	names := map[Direction]string{
		{-1, 0}: "N", {1, 0}: "S", {0, -1}: "W", {0, 1}: "E",
		{-1, -1}: "NW", {-1, 1}: "NE", {1, -1}: "SW", {1, 1}: "SE",
	}
	if name, ok := names[d]; ok {
		return name
	}
	return "?"
}

// GridMatch is one occurrence of a target word in a grid.
type GridMatch struct {
	Word      string
	Row, Col  int
	Direction Direction
}

// ParseGrid splits text into rows of whitespace-separated single symbols. Blank lines
// are skipped; multi-rune tokens contribute each of their runes.
func ParseGrid(text string) [][]rune {
	var grid [][]rune
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		var row []rune
		for _, f := range fields {
			row = append(row, []rune(f)...)
		}
		grid = append(grid, row)
	}
	return grid
}

// FindInGrid reports every occurrence of targets in grid, walking each cell in all
// eight directions while descending a trie of the upper-cased targets. Matches are
// ordered by cell, then direction, then length.
func FindInGrid(grid [][]rune, targets []string) []GridMatch {
	t := trie.New[rune, struct{}]()
	for _, w := range targets {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		t.Insert([]rune(w), nil)
	}

	var matches []GridMatch
	for i := range grid {
		for j := range grid[i] {
			for _, d := range Directions {
				matches = walkGrid(grid, t, i, j, d, matches)
			}
		}
	}
	return matches
}

func walkGrid(grid [][]rune, t *trie.Trie[rune, struct{}], row, col int, d Direction, matches []GridMatch) []GridMatch {
	node := t.Root()
	var word []rune
	for x, y := row, col; x >= 0 && x < len(grid) && y >= 0 && y < len(grid[x]); x, y = x+d.DRow, y+d.DCol {
		r := unicode.ToUpper(grid[x][y])
		child, ok := node.Child(r)
		if !ok {
			break
		}
		node = child
		word = append(word, r)
		if node.Terminal() {
			matches = append(matches, GridMatch{Word: string(word), Row: row, Col: col, Direction: d})
		}
	}
	return matches
}

// ScanGrid returns the distinct target words found in grid, sorted.
func ScanGrid(grid [][]rune, targets []string) []string {
	seen := make(map[string]struct{})
	for _, m := range FindInGrid(grid, targets) {
		seen[m.Word] = struct{}{}
	}
	found := make([]string, 0, len(seen))
	for w := range seen {
		found = append(found, w)
	}
	sort.Strings(found)
	return found
}
