package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/trielab/internal/logger"
	"github.com/bastiangx/trielab/internal/utils"
	"github.com/bastiangx/trielab/pkg/config"
	"github.com/bastiangx/trielab/pkg/engine"
	"github.com/bastiangx/trielab/pkg/openings"
	"github.com/bastiangx/trielab/pkg/route"
	"github.com/bastiangx/trielab/pkg/scan"
	"github.com/bastiangx/trielab/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	codeBadRequest = 400
	codeInternal   = 500
)

// Server answers msgpack requests against one engine.
type Server struct {
	engine       *engine.Engine
	config       *config.Config
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	writer       *bufio.Writer
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server using stdin/stdout for IPC.
func NewServer(eng *engine.Engine, cfg *config.Config) *Server {
	return NewServerWithIO(eng, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over explicit streams.
func NewServerWithIO(eng *engine.Engine, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(bw)
	return &Server{
		engine:  eng,
		config:  cfg,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		encoder: enc,
		writer:  bw,
		logger:  logger.New("server"),
	}
}

// Start announces readiness and serves requests until the input stream ends.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", codeBadRequest)
			return fmt.Errorf("decode request: %w", err)
		}
		s.requestCount++
		s.handleRequest(req)
	}
}

// RequestCount returns the number of decoded requests.
func (s *Server) RequestCount() int {
	return s.requestCount
}

func (s *Server) handleRequest(req Request) {
	switch req.Op {
	case "suggest":
		s.handleSuggest(req)
	case "record":
		if strings.TrimSpace(req.Word) == "" {
			s.sendError(req.ID, "missing 'w' parameter", codeBadRequest)
			return
		}
		s.engine.RecordQuery(req.Word)
		s.sendOK(req.ID)
	case "check":
		ok, fixes := s.engine.Check(req.Word)
		s.sendResponse(CheckResponse{ID: req.ID, Known: ok, Corrections: fixes})
	case "correct":
		fixes := s.engine.Correct(req.Word)
		s.sendResponse(WordsResponse{ID: req.ID, Words: fixes, Count: len(fixes)})
	case "route_add":
		s.handleRouteAdd(req)
	case "route_lookup":
		s.handleRouteLookup(req)
	case "routes":
		s.handleRoutes(req)
	case "kmer_index":
		if err := s.engine.IndexGenome(req.Genome, req.K); err != nil {
			s.sendError(req.ID, err.Error(), codeBadRequest)
			return
		}
		s.sendOK(req.ID)
	case "kmer_find":
		s.handleKmerFind(req)
	case "kmer_search":
		s.sendResponse(PositionsResponse{ID: req.ID, Positions: s.engine.SearchKmer(req.Prefix)})
	case "grid_scan":
		s.handleGridScan(req)
	case "censor":
		s.sendResponse(TextResponse{ID: req.ID, Text: s.engine.Censor(req.Text)})
	case "censor_add":
		s.engine.Forbid(append(req.Words, req.Word)...)
		s.sendOK(req.ID)
	case "book_add":
		s.handleBookAdd(req)
	case "continuations":
		side, err := engine.ParseSide(req.Side)
		if err != nil {
			s.sendError(req.ID, err.Error(), codeBadRequest)
			return
		}
		s.sendResponse(ContinuationsResponse{ID: req.ID, Continuations: s.engine.Continuations(side, req.Moves)})
	case "openings":
		side, err := engine.ParseSide(req.Side)
		if err != nil {
			s.sendError(req.ID, err.Error(), codeBadRequest)
			return
		}
		s.sendResponse(OpeningsResponse{ID: req.ID, Openings: s.engine.Book(side).Openings()})
	case "stats":
		s.sendResponse(StatsResponse{ID: req.ID, Stats: s.engine.Stats()})
	case "health":
		s.sendOK(req.ID)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), codeBadRequest)
	}
}

// handleSuggest validates the prefix against the server bounds, clamps the limit
// and ranks the suggestions 1..n.
func (s *Server) handleSuggest(req Request) {
	prefix := strings.TrimSpace(req.Prefix)
	cfg := s.config.Server
	n := utf8.RuneCountInString(prefix)

	if prefix == "" {
		s.sendError(req.ID, "missing 'p' parameter", codeBadRequest)
		return
	}
	if n < cfg.MinPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", cfg.MinPrefix), codeBadRequest)
		return
	}
	if n > cfg.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", cfg.MaxPrefix), codeBadRequest)
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.config.Suggest.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	start := time.Now()
	var suggestions []suggest.Suggestion
	if !cfg.EnableFilter || utils.IsValidInput(prefix) {
		suggestions = s.engine.Complete(prefix, limit)
	} else {
		s.logger.Debugf("Filtered prefix %q", prefix)
	}
	elapsed := time.Since(start)

	s.sendResponse(CompletionResponse{
		ID:          req.ID,
		Suggestions: rankSuggestions(suggestions),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// rankSuggestions numbers already-sorted suggestions from 1.
func rankSuggestions(suggestions []suggest.Suggestion) []CompletionSuggestion {
	ranks := utils.CreateRankList(len(suggestions))
	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{Word: sg.Word, Rank: ranks[i], Freq: sg.Frequency}
	}
	return out
}

func (s *Server) handleRouteAdd(req Request) {
	var err error
	switch {
	case req.CIDR != "":
		err = s.engine.AddRoute(req.CIDR, req.Label)
	case utils.IsBitString(req.Bits):
		length := req.K
		if length == 0 {
			length = len(req.Bits)
		}
		s.engine.InsertRoute(req.Bits, length, req.Label)
	default:
		err = fmt.Errorf("%w: bits %q", route.ErrMalformedInput, req.Bits)
	}
	if err != nil {
		s.sendError(req.ID, err.Error(), codeBadRequest)
		return
	}
	s.sendOK(req.ID)
}

func (s *Server) handleRouteLookup(req Request) {
	bits := req.Bits
	if req.Addr != "" {
		parsed, err := route.ParseAddr(req.Addr)
		if err != nil {
			s.sendError(req.ID, err.Error(), codeBadRequest)
			return
		}
		bits = parsed
	} else if !utils.IsBitString(bits) {
		s.sendError(req.ID, fmt.Sprintf("%v: bits %q", route.ErrMalformedInput, bits), codeBadRequest)
		return
	}
	label, ok := s.engine.LookupLongestPrefix(bits)
	s.sendResponse(RouteResponse{ID: req.ID, Label: label, Found: ok})
}

func (s *Server) handleRoutes(req Request) {
	routes := s.engine.Routes()
	out := make([]RouteEntry, 0, len(routes))
	for _, r := range routes {
		entry := RouteEntry{Bits: r.Bits, Label: r.Label}
		if prefix, err := route.PrefixFromBits(r.Bits); err == nil {
			entry.CIDR = prefix.String()
		}
		out = append(out, entry)
	}
	s.sendResponse(RoutesResponse{ID: req.ID, Routes: out})
}

func (s *Server) handleKmerFind(req Request) {
	patterns := s.engine.FindPatterns(req.Prefix)
	out := make([]PatternEntry, len(patterns))
	for i, p := range patterns {
		out[i] = PatternEntry{Sequence: p.Sequence, Positions: p.Positions, Count: p.Count}
	}
	s.sendResponse(PatternsResponse{ID: req.ID, Patterns: out})
}

func (s *Server) handleGridScan(req Request) {
	targets := req.Words
	if req.Word != "" {
		targets = append(targets, req.Word)
	}
	grid := scan.ParseGrid(strings.Join(req.Grid, "\n"))
	matches := s.engine.FindInGrid(grid, targets)

	spans := make([]GridSpan, len(matches))
	for i, m := range matches {
		spans[i] = GridSpan{Word: m.Word, Row: m.Row, Col: m.Col, Direction: m.Direction.String()}
	}
	words := s.engine.ScanGrid(grid, targets)
	s.sendResponse(WordsResponse{ID: req.ID, Words: words, Count: len(words), Matches: spans})
}

func (s *Server) handleBookAdd(req Request) {
	side, err := engine.ParseSide(req.Side)
	if err != nil {
		s.sendError(req.ID, err.Error(), codeBadRequest)
		return
	}
	result, err := openings.ParseResult(req.Result)
	if err != nil {
		s.sendError(req.ID, err.Error(), codeBadRequest)
		return
	}
	if len(req.Moves) == 0 {
		s.sendError(req.ID, "missing 'm' parameter", codeBadRequest)
		return
	}
	games := max(req.Count, 1)
	for i := 0; i < games; i++ {
		s.engine.RecordGame(side, req.Moves, result, req.Label)
	}
	s.sendOK(req.ID)
}

func (s *Server) sendOK(id string) {
	s.sendResponse(StatusResponse{ID: id, Status: "ok"})
}

// sendResponse encodes response and flushes it so clients see it immediately.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		if _, isErr := response.(CompletionError); !isErr {
			s.sendError("", "internal server error", codeInternal)
		}
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Flushing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(CompletionError{ID: id, Error: message, Code: code})
}
