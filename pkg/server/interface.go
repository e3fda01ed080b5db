/*
Package server implements msgpack IPC over stdin/stdout for the trie engine.

Clients write a stream of msgpack maps to stdin and read one response map per
request from stdout. Every request carries an ID that is echoed back, and an op
naming the front-end to query:

	{"id": "1", "op": "suggest", "p": "ca", "l": 5}
	{"id": "1", "s": [{"w": "casa", "r": 1, "f": 3}, {"w": "cama", "r": 2, "f": 1}], "c": 2, "t": 41}

	{"id": "2", "op": "route_lookup", "a": "10.1.2.3"}
	{"id": "2", "lb": "internal", "ok": true}

	{"id": "3", "op": "censor", "x": "esto es prohibido"}
	{"id": "3", "x": "esto es *********"}

Failed requests get an error map with an HTTP-like code:

	{"id": "4", "e": "unknown op: fly", "c": 400}

Absent prefixes, addresses outside every route and unknown lines are not errors;
they produce empty results. Ops:

	suggest, record, check, correct,
	route_add, route_lookup, routes,
	kmer_index, kmer_find, kmer_search,
	grid_scan, censor, censor_add,
	book_add, continuations, openings,
	stats, health
*/
package server

import (
	"github.com/bastiangx/trielab/pkg/openings"
)

// Request is the union of every op's parameters. Unused fields are omitted on the wire.
type Request struct {
	ID     string   `msgpack:"id"`
	Op     string   `msgpack:"op"`
	Prefix string   `msgpack:"p,omitempty"`
	Limit  int      `msgpack:"l,omitempty"`
	Word   string   `msgpack:"w,omitempty"`
	Words  []string `msgpack:"ws,omitempty"`
	Text   string   `msgpack:"x,omitempty"`
	Addr   string   `msgpack:"a,omitempty"`
	CIDR   string   `msgpack:"cidr,omitempty"`
	Bits   string   `msgpack:"b,omitempty"`
	Label  string   `msgpack:"lb,omitempty"`
	Grid   []string `msgpack:"g,omitempty"`
	Genome string   `msgpack:"gn,omitempty"`
	K      int      `msgpack:"k,omitempty"`
	Moves  []string `msgpack:"m,omitempty"`
	Result string   `msgpack:"r,omitempty"`
	Count  int      `msgpack:"n,omitempty"`
	Side   string   `msgpack:"sd,omitempty"`
}

// CompletionSuggestion is one ranked suggestion.
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
	Freq int    `msgpack:"f,omitempty"`
}

// CompletionResponse answers suggest.
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// WordsResponse answers correct and grid_scan.
type WordsResponse struct {
	ID      string     `msgpack:"id"`
	Words   []string   `msgpack:"s"`
	Count   int        `msgpack:"c"`
	Matches []GridSpan `msgpack:"mt,omitempty"`
}

// GridSpan locates one grid hit.
type GridSpan struct {
	Word      string `msgpack:"w"`
	Row       int    `msgpack:"r"`
	Col       int    `msgpack:"c"`
	Direction string `msgpack:"d"`
}

// CheckResponse answers check.
type CheckResponse struct {
	ID          string   `msgpack:"id"`
	Known       bool     `msgpack:"ok"`
	Corrections []string `msgpack:"s"`
}

// RouteResponse answers route_lookup.
type RouteResponse struct {
	ID    string `msgpack:"id"`
	Label string `msgpack:"lb"`
	Found bool   `msgpack:"ok"`
}

// RouteEntry is one labelled prefix.
type RouteEntry struct {
	CIDR  string `msgpack:"cidr"`
	Bits  string `msgpack:"b"`
	Label string `msgpack:"lb"`
}

// RoutesResponse answers routes.
type RoutesResponse struct {
	ID     string       `msgpack:"id"`
	Routes []RouteEntry `msgpack:"rt"`
}

// PatternEntry is one indexed k-mer with its positions.
type PatternEntry struct {
	Sequence  string `msgpack:"q"`
	Positions []int  `msgpack:"pos"`
	Count     int    `msgpack:"c"`
}

// PatternsResponse answers kmer_find.
type PatternsResponse struct {
	ID       string         `msgpack:"id"`
	Patterns []PatternEntry `msgpack:"ps"`
}

// PositionsResponse answers kmer_search.
type PositionsResponse struct {
	ID        string `msgpack:"id"`
	Positions []int  `msgpack:"pos"`
}

// TextResponse answers censor.
type TextResponse struct {
	ID   string `msgpack:"id"`
	Text string `msgpack:"x"`
}

// ContinuationsResponse answers continuations.
type ContinuationsResponse struct {
	ID            string                  `msgpack:"id"`
	Continuations []openings.Continuation `msgpack:"s"`
}

// OpeningsResponse answers openings.
type OpeningsResponse struct {
	ID       string             `msgpack:"id"`
	Openings []openings.Opening `msgpack:"o"`
}

// StatsResponse answers stats.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// StatusResponse acknowledges mutations, health checks and startup.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// CompletionError holds basic error information for a failed request
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
