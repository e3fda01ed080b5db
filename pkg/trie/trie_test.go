package trie

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(entries []Entry[rune, int]) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, string(e.Sequence))
	}
	return out
}

func TestExactMatch(t *testing.T) {
	tr := New[rune, int]()

	testCases := []struct {
		insert string
		probes map[string]bool
	}{
		{"casa", map[string]bool{"casa": true, "cas": false, "casas": false}},
		{"cama", map[string]bool{"casa": true, "cama": true, "ca": false}},
		{"ca", map[string]bool{"casa": true, "cama": true, "ca": true, "c": false}},
		{"perro", map[string]bool{"casa": true, "cama": true, "ca": true, "perro": true, "": false}},
	}

	for _, tc := range testCases {
		t.Run(tc.insert, func(t *testing.T) {
			tr.Insert([]rune(tc.insert), nil)
			for probe, want := range tc.probes {
				assert.Equal(t, want, tr.ExactMatch([]rune(probe)), "probe %q", probe)
			}
		})
	}
	assert.Equal(t, 4, tr.Len())
}

func TestInsertAppliesPayloadAtTerminal(t *testing.T) {
	tr := New[rune, int]()
	inc := func(p *int) { *p++ }

	tr.Insert([]rune("gato"), inc)
	tr.Insert([]rune("gato"), inc)
	tr.Insert([]rune("ga"), inc)

	node, ok := tr.Find([]rune("gato"))
	require.True(t, ok)
	assert.Equal(t, 2, node.Payload)

	mid, ok := tr.Find([]rune("gat"))
	require.True(t, ok)
	assert.False(t, mid.Terminal())
	assert.Equal(t, 0, mid.Payload)
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, 5, tr.Nodes())
}

func TestInsertPrefixLeavesTerminalAlone(t *testing.T) {
	tr := New[byte, string]()
	set := func(label string) func(*string) {
		return func(p *string) { *p = label }
	}

	tr.InsertPrefix([]byte("1010"), 2, set("two"))
	tr.InsertPrefix([]byte("1"), 5, set("clamped"))
	tr.InsertPrefix([]byte("111"), 0, set("root"))

	assert.Equal(t, "root", tr.Root().Payload)
	node, ok := tr.Find([]byte("10"))
	require.True(t, ok)
	assert.Equal(t, "two", node.Payload)
	assert.False(t, node.Terminal())

	one, ok := tr.Find([]byte("1"))
	require.True(t, ok)
	assert.Equal(t, "clamped", one.Payload)
	assert.Equal(t, 0, tr.Len())
}

func TestCollectTerminalsOrder(t *testing.T) {
	tr := New[rune, int]()
	for _, w := range []string{"mar", "casa", "mapa", "cama", "ca", "marco"} {
		tr.Insert([]rune(w), nil)
	}

	testCases := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"mar", "marco", "mapa", "ca", "casa", "cama"}},
		{"ma", []string{"mar", "marco", "mapa"}},
		{"ca", []string{"ca", "casa", "cama"}},
		{"x", nil},
	}

	for _, tc := range testCases {
		t.Run("prefix="+tc.prefix, func(t *testing.T) {
			got := tr.CollectTerminals([]rune(tc.prefix))
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			if diff := cmp.Diff(tc.want, words(got)); diff != "" {
				t.Errorf("CollectTerminals(%q) mismatch (-want +got):\n%s", tc.prefix, diff)
			}
		})
	}
}

func TestCollectTerminalsDeepPath(t *testing.T) {
	tr := New[byte, int]()
	long := make([]byte, 200000)
	for i := range long {
		long[i] = "ACGT"[i%4]
	}
	tr.Insert(long, func(p *int) { *p = 7 })

	got := CollectTerminals(tr.Root(), nil)
	require.Len(t, got, 1)
	assert.Equal(t, len(long), len(got[0].Sequence))
	assert.Equal(t, 7, got[0].Payload)
}

func TestVisitSkipAndStop(t *testing.T) {
	tr := New[rune, int]()
	for _, w := range []string{"ab", "ac", "b"} {
		tr.Insert([]rune(w), nil)
	}

	var seen []string
	err := tr.Visit(func(seq []rune, n *Node[rune, int]) error {
		seen = append(seen, string(seq))
		if string(seq) == "a" {
			return SkipSubtree
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "a", "b"}, seen)

	stop := errors.New("stop")
	count := 0
	err = tr.Visit(func(seq []rune, n *Node[rune, int]) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)

	seen = seen[:0]
	require.NoError(t, tr.VisitSubtree([]rune("a"), func(seq []rune, n *Node[rune, int]) error {
		seen = append(seen, string(seq))
		return nil
	}))
	assert.Equal(t, []string{"a", "ab", "ac"}, seen)
	assert.NoError(t, tr.VisitSubtree([]rune("zz"), func([]rune, *Node[rune, int]) error {
		t.Fatal("visited missing subtree")
		return nil
	}))
}

func TestNodeChildrenInsertionOrder(t *testing.T) {
	tr := New[string, int]()
	tr.Insert([]string{"e4", "e5"}, nil)
	tr.Insert([]string{"e4", "c5"}, nil)
	tr.Insert([]string{"e4", "e6"}, nil)
	tr.Insert([]string{"e4", "e5", "Nf3"}, nil)

	node, ok := tr.Find([]string{"e4"})
	require.True(t, ok)
	assert.Equal(t, []string{"e5", "c5", "e6"}, node.Symbols())
	assert.Equal(t, 3, node.Len())

	var order []string
	node.Each(func(s string, _ *Node[string, int]) { order = append(order, s) })
	assert.Equal(t, node.Symbols(), order)

	_, ok = node.Child("d5")
	assert.False(t, ok)
	var nilNode *Node[string, int]
	assert.False(t, nilNode.Terminal())
	assert.Nil(t, nilNode.Symbols())
}
