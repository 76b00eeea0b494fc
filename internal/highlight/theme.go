package highlight

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#B7410E", Dark: "#FFB454"}
	ColorPath    = lipgloss.AdaptiveColor{Light: "#7D3C98", Dark: "#D2A8FF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8B949E"}
)

// Theme holds the styles for text output.
type Theme struct {
	File       lipgloss.Style
	LineNumber lipgloss.Style
	Match      lipgloss.Style
}

// NewTheme builds the text styles on renderer r.
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		File:       r.NewStyle().Foreground(ColorPath).Bold(true),
		LineNumber: r.NewStyle().Foreground(ColorMuted),
		Match:      r.NewStyle().Foreground(ColorPrimary).Bold(true).Underline(true),
	}
}

// Highlighter returns a Highlighter that renders matches with the theme's match style.
func (t Theme) Highlighter() *Highlighter {
	return New(func(s string) string { return t.Match.Render(s) })
}

// NewRenderer returns a lipgloss renderer for w. Colors are forced on or off
// so piping output with --color=always still emits ANSI sequences.
func NewRenderer(w io.Writer, color bool, dark bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	r.SetHasDarkBackground(dark)
	return r
}

// ColorEnabled resolves a --color mode. In auto mode colors are used only
// when fd is a terminal.
func ColorEnabled(mode string, fd uintptr) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}
