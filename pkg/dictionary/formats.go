package dictionary

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// FileFormat represents the input files a session can be seeded from.
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatWordList            // one word per line, optional tab-separated frequency
	FormatGrid                // whitespace-separated letter rows
	FormatGenome              // raw or FASTA nucleotide text
)

// FormatInfo contains metadata about an input file format.
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatWordList: {
		Format:      FormatWordList,
		Description: "Word list",
		Extensions:  []string{".txt", ".lst", ".dic"},
		MinSize:     1,
	},
	FormatGrid: {
		Format:      FormatGrid,
		Description: "Letter grid",
		Extensions:  []string{".txt", ".grid"},
		MinSize:     1,
	},
	FormatGenome: {
		Format:      FormatGenome,
		Description: "Nucleotide sequence",
		Extensions:  []string{".txt", ".fa", ".fasta", ".seq"},
		MinSize:     1,
	},
}

// ErrUnsupportedFormat is returned when a file does not match the expected format.
var ErrUnsupportedFormat = errors.New("unsupported file format")

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// ValidateFileFormat checks size, extension and UTF-8 validity of filename.
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("%w: file %s is too small (%d bytes) for %s",
			ErrEmptyList, filename, fileInfo.Size(), formatInfo.Description)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(formatInfo.Extensions, ext) {
		return fmt.Errorf("%w: file %s has extension %q, %s expects %v",
			ErrUnsupportedFormat, filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	return validateTextFormat(filename)
}

// validateTextFormat checks that the head of filename is UTF-8 text.
func validateTextFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}
	head := buffer[:n]
	// a multi-byte rune may straddle the end of a full buffer
	for i := 1; n == len(buffer) && i < utf8.UTFMax && !utf8.Valid(head); i++ {
		head = head[:len(head)-1]
	}
	if !utf8.Valid(head) {
		return fmt.Errorf("%w: file %s is not UTF-8 text", ErrUnsupportedFormat, filename)
	}

	log.Debugf("Text file %s validated", filename)
	return nil
}

// DetectFileFormat guesses the format of filename from its extension.
// ".txt" is shared by every format and reports FormatWordList.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range []FileFormat{FormatWordList, FormatGenome, FormatGrid} {
		if slices.Contains(supportedFormats[f].Extensions, ext) {
			return f, ValidateFileFormat(filename, f)
		}
	}
	return FormatUnknown, fmt.Errorf("%w: unable to detect format for file %s", ErrUnsupportedFormat, filename)
}
