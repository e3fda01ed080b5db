package openings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContinuationsSumInsertions(t *testing.T) {
	games := []struct {
		moves  []string
		result Result
		label  string
	}{
		{[]string{"e4", "e5"}, Win, "Open Game"},
		{[]string{"e4", "c5"}, Draw, "Sicilian"},
	}

	for _, order := range [][]int{{0, 1}, {1, 0}} {
		b := NewBook("white")
		for _, i := range order {
			b.Insert(games[i].moves, games[i].result, games[i].label)
		}

		got := b.Continuations([]string{"e4"})
		require.Len(t, got, 2)

		var sum Counters
		byMove := make(map[string]Continuation)
		for _, c := range got {
			sum = sum.Merge(c.Counters)
			byMove[c.Move] = c
		}
		assert.Equal(t, Counters{Wins: 1, Draws: 1}, sum)
		assert.Equal(t, Continuation{Move: "e5", Counters: Counters{Wins: 1}, Label: "Open Game"}, byMove["e5"])
		assert.Equal(t, Continuation{Move: "c5", Counters: Counters{Draws: 1}, Label: "Sicilian"}, byMove["c5"])
		assert.Equal(t, 2, b.Games())
	}
}

func TestContinuationsOrderAndMissing(t *testing.T) {
	b := NewBook("white")
	b.Insert(ParseMoves("d4 d5 c4"), Win, "Queen's Gambit")
	b.Insert(ParseMoves("e4 e5"), Loss, "")
	b.Insert(ParseMoves("d4 Nf6"), Draw, "Indian")

	first := b.Continuations(nil)
	assert.Equal(t, []string{"d4", "e4"}, moves(first))
	assert.Equal(t, Counters{}, first[0].Counters, "interior positions carry no games")

	assert.Equal(t, []string{"d5", "Nf6"}, moves(b.Continuations([]string{"d4"})))
	assert.Equal(t, []Continuation{}, b.Continuations([]string{"c4"}))
	assert.Equal(t, []Continuation{}, b.Continuations(ParseMoves("d4 d5 c4")))
}

func moves(cs []Continuation) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Move
	}
	return out
}

func TestInsertAccumulatesAndRelabels(t *testing.T) {
	b := NewBook("black")
	line := ParseMoves("e4 c5 Nf3")
	b.Insert(line, Win, "Sicilian")
	b.Insert(line, Win, "")
	b.Insert(line, Loss, "Sicilian Open")

	c, label, ok := b.Lookup(line)
	require.True(t, ok)
	assert.Equal(t, Counters{Wins: 2, Losses: 1}, c)
	assert.Equal(t, "Sicilian Open", label)
	assert.Equal(t, 1, b.Lines())

	_, _, ok = b.Lookup(ParseMoves("d4"))
	assert.False(t, ok)
}

func TestAggregateByLabel(t *testing.T) {
	b := NewBook("white")
	b.Record(ParseMoves("e4 c5"), Counters{Wins: 40, Losses: 45, Draws: 15}, "Sicilian")
	b.Record(ParseMoves("e4 c5 Nf3"), Counters{Wins: 10, Losses: 5}, "Sicilian")
	b.Record(ParseMoves("e4 e5"), Counters{Wins: 3}, "Open Game")
	b.Record(ParseMoves("d4"), Counters{}, "Queen Pawn")
	b.Insert(ParseMoves("c4"), Draw, "")

	want := map[string]Counters{
		"Sicilian":  {Wins: 50, Losses: 50, Draws: 15},
		"Open Game": {Wins: 3},
	}
	if diff := cmp.Diff(want, b.AggregateByLabel()); diff != "" {
		t.Errorf("AggregateByLabel mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []Opening{
		{Label: "Sicilian", Counters: Counters{Wins: 50, Losses: 50, Draws: 15}},
		{Label: "Open Game", Counters: Counters{Wins: 3}},
	}, b.Openings())
	assert.Equal(t, 119, b.Games())

	assert.Equal(t, []Opening{}, NewBook("empty").Openings())
}

func TestParseResult(t *testing.T) {
	testCases := []struct {
		input string
		want  Result
	}{
		{"win", Win},
		{" WIN ", Win},
		{"1-0", Win},
		{"loss", Loss},
		{"0-1", Loss},
		{"draw", Draw},
		{"1/2-1/2", Draw},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseResult(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseResult("checkmate")
	assert.ErrorIs(t, err, ErrUnknownResult)
	assert.Equal(t, "draw", Draw.String())
}

func TestPercentages(t *testing.T) {
	w, l, d := Counters{Wins: 2, Losses: 1, Draws: 1}.Percentages()
	assert.InDelta(t, 50.0, w, 1e-9)
	assert.InDelta(t, 25.0, l, 1e-9)
	assert.InDelta(t, 25.0, d, 1e-9)

	w, l, d = Counters{}.Percentages()
	assert.Zero(t, w+l+d)
}
