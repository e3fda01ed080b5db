package openings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownResult is returned when result text names no known outcome.
var ErrUnknownResult = errors.New("unknown game result")

// Result is the outcome of one game from the book's perspective.
type Result int

const (
	Win Result = iota
	Loss
	Draw
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// ParseResult accepts win, loss and draw as well as PGN scores (1-0, 0-1, 1/2-1/2).
func ParseResult(s string) (Result, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "w", "1-0":
		return Win, nil
	case "loss", "l", "0-1":
		return Loss, nil
	case "draw", "d", "=", "1/2-1/2", "½-½":
		return Draw, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResult, s)
}

// Counters accumulates game outcomes.
type Counters struct {
	Wins   int `msgpack:"w" json:"wins"`
	Losses int `msgpack:"l" json:"losses"`
	Draws  int `msgpack:"d" json:"draws"`
}

// Add counts one game with result r.
func (c *Counters) Add(r Result) {
	switch r {
	case Win:
		c.Wins++
	case Loss:
		c.Losses++
	case Draw:
		c.Draws++
	}
}

// Merge returns the element-wise sum of c and o.
func (c Counters) Merge(o Counters) Counters {
	return Counters{
		Wins:   c.Wins + o.Wins,
		Losses: c.Losses + o.Losses,
		Draws:  c.Draws + o.Draws,
	}
}

// Total returns the number of games counted.
func (c Counters) Total() int {
	return c.Wins + c.Losses + c.Draws
}

// Percentages returns win, loss and draw shares in percent; all zero when empty.
func (c Counters) Percentages() (win, loss, draw float64) {
	total := c.Total()
	if total == 0 {
		return 0, 0, 0
	}
	t := float64(total)
	return float64(c.Wins) / t * 100, float64(c.Losses) / t * 100, float64(c.Draws) / t * 100
}
