package cli

import (
	"fmt"
	"io"

	"github.com/bastiangx/trielab/pkg/openings"
	"github.com/charmbracelet/lipgloss"
)

// renderer styles REPL output. Colors degrade to plain text when the writer is not a
// terminal.
type renderer struct {
	wordStyle    lipgloss.Style
	commandStyle lipgloss.Style
	labelStyle   lipgloss.Style
	warnStyle    lipgloss.Style
	errStyle     lipgloss.Style
	winStyle     lipgloss.Style
	lossStyle    lipgloss.Style
	drawStyle    lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		wordStyle:    r.NewStyle().Foreground(lipgloss.Color("75")),
		commandStyle: r.NewStyle().Bold(true),
		labelStyle:   r.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		warnStyle:    r.NewStyle().Foreground(lipgloss.Color("214")),
		errStyle:     r.NewStyle().Foreground(lipgloss.Color("203")),
		winStyle:     r.NewStyle().Foreground(lipgloss.Color("114")),
		lossStyle:    r.NewStyle().Foreground(lipgloss.Color("203")),
		drawStyle:    r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (r *renderer) word(s string) string    { return r.wordStyle.Render(s) }
func (r *renderer) command(s string) string { return r.commandStyle.Render(s) }
func (r *renderer) warn(s string) string    { return r.warnStyle.Render(s) }
func (r *renderer) err(s string) string     { return r.errStyle.Render(s) }

func (r *renderer) label(s string) string {
	if s == "" {
		return ""
	}
	return r.labelStyle.Render("[" + s + "]")
}

// counters renders "W:n (p%) L:n (p%) D:n (p%)", or a placeholder when empty.
func (r *renderer) counters(c openings.Counters) string {
	if c.Total() == 0 {
		return r.drawStyle.Render("no games")
	}
	w, l, d := c.Percentages()
	return fmt.Sprintf("%s %s %s",
		r.winStyle.Render(fmt.Sprintf("W:%d (%.1f%%)", c.Wins, w)),
		r.lossStyle.Render(fmt.Sprintf("L:%d (%.1f%%)", c.Losses, l)),
		r.drawStyle.Render(fmt.Sprintf("D:%d (%.1f%%)", c.Draws, d)),
	)
}
