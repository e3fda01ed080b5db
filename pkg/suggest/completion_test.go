package suggest

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestSuggestFrequencyOrder(t *testing.T) {
	for _, size := range []int{0, 8} {
		c := NewCompleter(Options{CacheSize: size})
		for i := 0; i < 3; i++ {
			c.RecordQuery("casa")
		}
		c.RecordQuery("cama")

		assert.Equal(t, []string{"casa", "cama"}, c.Suggest("ca"), "cache size %d", size)
	}
}

func TestSuggestTiesKeepInsertionOrder(t *testing.T) {
	c := NewCompleter(Options{})
	for _, w := range []string{"mesa", "mes", "menta", "mero"} {
		c.RecordQuery(w)
	}
	c.RecordQuery("mero")

	testCases := []struct {
		prefix string
		want   []string
	}{
		{"me", []string{"mero", "mes", "mesa", "menta"}},
		{"mes", []string{"mes", "mesa"}},
		{"mero", []string{"mero"}},
		{"x", []string{}},
		{"", []string{}},
	}

	for _, tc := range testCases {
		t.Run("prefix="+tc.prefix, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Suggest(tc.prefix))
		})
	}
}

func TestCompleteLimitAndFrequencies(t *testing.T) {
	c := NewCompleter(Options{})
	c.AddWord("programa", 40)
	c.AddWord("programar", 25)
	c.AddWord("progreso", 60)
	c.AddWord("prueba", 0)

	got := c.Complete("pro", 2)
	require.Len(t, got, 2)
	assert.Equal(t, Suggestion{Word: "progreso", Frequency: 60}, got[0])
	assert.Equal(t, Suggestion{Word: "programa", Frequency: 40}, got[1])

	assert.Equal(t, 1, c.Frequency("prueba"))
	assert.Equal(t, 0, c.Frequency("prog"))
	assert.True(t, c.Contains("programar"))
	assert.False(t, c.Contains("program"))

	stats := c.Stats()
	assert.Equal(t, 4, stats["totalWords"])
	assert.Equal(t, 60, stats["maxFrequency"])
}

func TestRecordQueryInvalidatesCache(t *testing.T) {
	c := NewCompleter(Options{CacheSize: 4})
	c.AddWord("sol", 2)
	c.AddWord("sola", 1)

	assert.Equal(t, []string{"sol", "sola"}, c.Suggest("so"))
	assert.Equal(t, []string{"sol", "sola"}, c.Suggest("so"))
	assert.Equal(t, 1, c.Stats()["hotCacheHits"])

	c.RecordQuery("sola")
	c.RecordQuery("sola")
	assert.Equal(t, []string{"sola", "sol"}, c.Suggest("so"))

	c.RecordQuery("solar")
	assert.Equal(t, []string{"sola", "sol", "solar"}, c.Suggest("so"))
}

func TestCaseFold(t *testing.T) {
	c := NewCompleter(Options{CaseFold: true})
	c.AddWord("Casa", 5)
	c.AddWord("camino", 3)

	assert.Equal(t, []string{"Casa", "Camino"}, c.Suggest("Ca"))
	assert.Equal(t, []string{"casa", "camino"}, c.Suggest("ca"))
	assert.True(t, c.Contains("CASA"))
}

func TestHotCacheEviction(t *testing.T) {
	hc := NewHotCache(2)
	hc.Put("a", []Suggestion{{Word: "ab", Frequency: 1}})
	hc.Put("b", []Suggestion{{Word: "bc", Frequency: 1}})

	_, ok := hc.Get("a")
	require.True(t, ok)

	hc.Put("c", nil)
	_, ok = hc.Get("b")
	assert.False(t, ok, "least recently used prefix should be evicted")
	_, ok = hc.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, hc.Stats()["hotCacheEvictions"])

	hc.Invalidate("abc")
	_, ok = hc.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, hc.Stats()["hotCacheEntries"])
}

func TestApplyCapitalization(t *testing.T) {
	testCases := []struct {
		word     string
		capitals []bool
		want     string
	}{
		{"hello", nil, "hello"},
		{"hello", []bool{true}, "Hello"},
		{"hello", []bool{true, false, true}, "HeLlo"},
		{"ñandú", []bool{true, false, false, false, true}, "ÑandÚ"},
		{"ab", []bool{false, false, true, true}, "ab"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, ApplyCapitalization(tc.word, tc.capitals))
		})
	}
}
