package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/trielab/pkg/openings"
	"github.com/bastiangx/trielab/pkg/route"
	"github.com/bastiangx/trielab/pkg/scan"
	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestInsertedWordsStayMatched(t *testing.T) {
	e := New(DefaultOptions())
	words := []string{"casa", "cama", "ca", "perro", "árbol"}
	for i, w := range words {
		e.Insert(w)
		for _, prev := range words[:i+1] {
			assert.True(t, e.ExactMatch(prev), "%q after inserting %q", prev, w)
		}
	}
	assert.False(t, e.ExactMatch("cas"))
	assert.False(t, e.ExactMatch(""))
}

func TestSuggestFrequencyOrder(t *testing.T) {
	e := New(DefaultOptions())
	for i := 0; i < 3; i++ {
		e.Insert("casa")
	}
	e.Insert("cama")

	assert.Equal(t, []string{"casa", "cama"}, e.Suggest("ca"))
	assert.Equal(t, []string{}, e.Suggest("zz"))
	assert.Equal(t, []string{"Casa", "Cama"}, e.Suggest("Ca"))

	e.RecordQuery("cama")
	e.RecordQuery("cama")
	e.RecordQuery("cama")
	assert.Equal(t, []string{"cama", "casa"}, e.Suggest("ca"))
}

func TestCorrect(t *testing.T) {
	e := New(DefaultOptions())
	e.Insert("gato")
	assert.Contains(t, e.Correct("gto"), "gato")
	assert.Contains(t, e.Correct("GTO"), "gato")

	ok, fixes := e.Check("gatto")
	assert.False(t, ok)
	assert.Equal(t, []string{"gato"}, fixes)
}

func TestLookupLongestPrefix(t *testing.T) {
	e := New(DefaultOptions())
	require.NoError(t, e.AddRoute("0.0.0.0/0", "default"))
	require.NoError(t, e.AddRoute("10.0.0.0/8", "internal"))

	inside, err := route.ParseAddr("10.1.2.3")
	require.NoError(t, err)
	label, ok := e.LookupLongestPrefix(inside)
	assert.True(t, ok)
	assert.Equal(t, "internal", label)

	label, ok, err = e.LookupAddr("8.8.8.8")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "default", label)

	e.InsertRoute("1100", 4, "raw")
	label, _ = e.LookupLongestPrefix("11001")
	assert.Equal(t, "raw", label)
	assert.Len(t, e.Routes(), 3)

	_, _, err = e.LookupAddr("10.1.2")
	assert.ErrorIs(t, err, route.ErrMalformedInput)
}

func TestScanGridAndGenome(t *testing.T) {
	e := New(DefaultOptions())
	grid := scan.ParseGrid("S O L\nX A X\nX X L")
	assert.Equal(t, []string{"SAL", "SOL"}, e.ScanGrid(grid, []string{"sol", "sal", "mar"}))
	assert.Len(t, e.FindInGrid(grid, []string{"sal"}), 1)

	require.NoError(t, e.IndexGenome("ATGCGATACG", 0))
	assert.Equal(t, 6, e.Stats()["genome.k"])
	require.NoError(t, e.IndexGenome("ATGATG", 3))

	want := []scan.Pattern{{Sequence: "ATG", Positions: []int{0, 3}, Count: 2}}
	if diff := cmp.Diff(want, e.FindPatterns("AT")); diff != "" {
		t.Errorf("FindPatterns after re-index mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, e.SearchKmer("ATGCGA"))
	assert.Equal(t, 3, e.Stats()["genome.sequences"])
	assert.Equal(t, 6, e.Stats()["genome.genomeLength"])

	assert.ErrorIs(t, e.IndexGenome("ATGX", 2), scan.ErrInvalidNucleotide)
	assert.Equal(t, []int{0, 3}, e.SearchKmer("ATG"))
	assert.Equal(t, 3, e.Stats()["genome.k"])
}

func TestCensor(t *testing.T) {
	e := New(DefaultOptions())
	e.Forbid("prohibido", "  malo ")

	testCases := []struct {
		name string
		text string
		want string
	}{
		{"plain", "esto es prohibido", "esto es *********"},
		{"surrounding whitespace", "  hola malo\n", "  hola ****\n"},
		{"tabs and inner spacing", "\tmalo  y   malo\t", "\t****  y   ****\t"},
		{"decomposed accent kept", "cafe\u0301 malo", "cafe\u0301 ****"},
		{"no match", "  nada que ver \n", "  nada que ver \n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Censor(tc.text)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, e.Censor(got))
		})
	}
}

func TestContinuations(t *testing.T) {
	e := New(DefaultOptions())
	e.RecordGame(White, []string{"e4", "e5"}, openings.Win, "Open Game")
	e.RecordGame(White, []string{"e4", "c5"}, openings.Draw, "Sicilian")
	e.RecordGame(Black, []string{"d4"}, openings.Loss, "")

	got := e.Continuations(White, []string{"e4"})
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Counters.Total()+got[1].Counters.Total())
	assert.Empty(t, e.Continuations(Black, []string{"e4"}))
	assert.Equal(t, 1, e.Book(Black).Games())

	side, err := ParseSide("B")
	require.NoError(t, err)
	assert.Equal(t, Black, side)
	_, err = ParseSide("red")
	assert.ErrorIs(t, err, ErrUnknownSide)
}

func TestLoadWordsAndForbidden(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("casa\t3\ncama\n# fin\n"), 0o644))
	forbidden := filepath.Join(dir, "forbidden.txt")
	require.NoError(t, os.WriteFile(forbidden, []byte("malo\n"), 0o644))

	e := New(DefaultOptions())
	n, err := e.LoadWords(words)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"casa", "cama"}, e.Suggest("ca"))
	assert.True(t, e.ExactMatch("cama"))

	n, err = e.LoadForbidden(forbidden)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "no es ****", e.Censor("no es malo"))

	_, err = e.LoadWords(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	stats := e.Stats()
	assert.Equal(t, 2, stats["suggest.totalWords"])
	assert.Equal(t, 1, stats["censor.words"])
}
