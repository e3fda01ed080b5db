// Package dictionary reads the plain-text inputs a session is seeded from: word
// lists for suggestion, spelling and redaction, letter grids, and genomes.
//
// Word lists hold one entry per line in UTF-8. Blank lines and lines starting with
// '#' are skipped; an optional tab-separated second column gives the frequency:
//
//	casa	3
//	cama
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bastiangx/trielab/internal/utils"
	"github.com/bastiangx/trielab/pkg/scan"
	"github.com/charmbracelet/log"
)

// ErrEmptyList is returned when an input holds no usable entries.
var ErrEmptyList = errors.New("no entries")

const maxLineSize = 1 << 20

// Entry is one word list line.
type Entry struct {
	Word      string
	Frequency int
}

// LoadStats counts how the lines of a word list were treated.
type LoadStats struct {
	Lines      int
	Entries    int
	Skipped    int
	Invalid    int
	Duplicates int
}

// ReadWordList parses a word list. Repeated words are merged into their first entry
// with summed frequencies; lines with an unparsable frequency are counted as invalid
// and dropped.
func ReadWordList(r io.Reader) ([]Entry, LoadStats, error) {
	var (
		entries []Entry
		stats   LoadStats
		index   = make(map[string]int)
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		stats.Lines++
		line := scanner.Text()
		if stats.Lines == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			stats.Skipped++
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			stats.Invalid++
			log.Warnf("Skipping line %d: %v", stats.Lines, err)
			continue
		}
		if i, ok := index[entry.Word]; ok {
			entries[i].Frequency += entry.Frequency
			stats.Duplicates++
			continue
		}
		index[entry.Word] = len(entries)
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("read word list: %w", err)
	}
	stats.Entries = len(entries)
	return entries, stats, nil
}

func parseLine(line string) (Entry, error) {
	word, freqText, hasFreq := strings.Cut(line, "\t")
	word = utils.NormalizeWord(word)
	if word == "" {
		return Entry{}, fmt.Errorf("empty word in %q", line)
	}
	entry := Entry{Word: word, Frequency: 1}
	if hasFreq {
		freq, err := strconv.Atoi(strings.TrimSpace(freqText))
		if err != nil || freq < 1 {
			return Entry{}, fmt.Errorf("invalid frequency %q for %q", freqText, word)
		}
		entry.Frequency = freq
	}
	return entry, nil
}

// LoadWordList validates and reads the word list at path.
func LoadWordList(path string) ([]Entry, error) {
	if err := ValidateFileFormat(path, FormatWordList); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer file.Close()

	entries, stats, err := ReadWordList(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyList, path)
	}
	log.Debugf("Loaded %s: lines=%d entries=%d skipped=%d invalid=%d duplicates=%d",
		path, stats.Lines, stats.Entries, stats.Skipped, stats.Invalid, stats.Duplicates)
	return entries, nil
}

// LoadGrid reads a whitespace-separated letter grid.
func LoadGrid(path string) ([][]rune, error) {
	if err := ValidateFileFormat(path, FormatGrid); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	grid := scan.ParseGrid(utils.NormalizeWord(string(data)))
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyList, path)
	}
	return grid, nil
}

// LoadGenome reads a nucleotide sequence. FASTA header (">") and comment (";")
// lines are skipped and the remaining lines are joined.
func LoadGenome(path string) (string, error) {
	if err := ValidateFileFormat(path, FormatGenome); err != nil {
		return "", err
	}
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open genome: %w", err)
	}
	defer file.Close()
	return ReadGenome(file)
}

// ReadGenome is LoadGenome over an open reader.
func ReadGenome(r io.Reader) (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '>' || line[0] == ';' {
			continue
		}
		b.WriteString(strings.ToUpper(strings.Join(strings.Fields(line), "")))
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read genome: %w", err)
	}
	if b.Len() == 0 {
		return "", ErrEmptyList
	}
	return b.String(), nil
}
