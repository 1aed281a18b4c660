package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/amirbrooks/tasklist/internal/store"
)

// Bright ANSI background colors, rendered as ESC[10Xm under the ANSI profile.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
)

// Palette renders the one-cell color swatches of the table.
type Palette struct {
	red    lipgloss.Style
	green  lipgloss.Style
	yellow lipgloss.Style
	blue   lipgloss.Style
}

// NewPalette returns a palette that always emits 16-color ANSI sequences, or
// plain cells when color is false. The terminal is never probed.
func NewPalette(color bool) Palette {
	r := lipgloss.NewRenderer(io.Discard)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	swatch := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Background(c)
	}
	return Palette{
		red:    swatch(colorRed),
		green:  swatch(colorGreen),
		yellow: swatch(colorYellow),
		blue:   swatch(colorBlue),
	}
}

func (p Palette) Priority(pr store.Priority) string {
	switch pr {
	case store.PriorityCritical:
		return p.red.Render(" ")
	case store.PriorityHigh:
		return p.yellow.Render(" ")
	case store.PriorityNormal:
		return p.green.Render(" ")
	case store.PriorityLow:
		return p.blue.Render(" ")
	default:
		return " "
	}
}

func (p Palette) Due(s DueStatus) string {
	switch s {
	case DueIncoming:
		return p.green.Render(" ")
	case DueToday:
		return p.yellow.Render(" ")
	case DueOverdue:
		return p.red.Render(" ")
	default:
		return " "
	}
}
