package flowreport

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme decides how the parts of a narrative are painted.
// The zero value is the plain theme.
type Theme struct {
	styled bool

	header  lipgloss.Style
	source  lipgloss.Style
	arrow   lipgloss.Style
	reason  lipgloss.Style
	sink    lipgloss.Style
	failure lipgloss.Style
}

// PlainTheme leaves every line untouched.
func PlainTheme() Theme {
	return Theme{}
}

// NewTheme returns a colored theme rendering for w. When force is set the
// colors are emitted even if w is not a terminal.
func NewTheme(w io.Writer, force bool) Theme {
	r := lipgloss.NewRenderer(w)
	if force {
		r.SetColorProfile(termenv.ANSI256)
		r.SetHasDarkBackground(true)
	}

	blue := lipgloss.AdaptiveColor{Light: "#3366cc", Dark: "#8fb3ff"}
	teal := lipgloss.AdaptiveColor{Light: "#2b7a78", Dark: "#7ad1c4"}
	gold := lipgloss.AdaptiveColor{Light: "#b58b00", Dark: "#ffd666"}
	rose := lipgloss.AdaptiveColor{Light: "#ad5d7d", Dark: "#ffb3c9"}
	gray := lipgloss.AdaptiveColor{Light: "#7a7f88", Dark: "#aab2bd"}

	return Theme{
		styled:  true,
		header:  r.NewStyle().Foreground(blue).Bold(true),
		source:  r.NewStyle().Foreground(teal),
		arrow:   r.NewStyle().Foreground(gray),
		reason:  r.NewStyle().Foreground(gray).Italic(true),
		sink:    r.NewStyle().Foreground(gold).Bold(true),
		failure: r.NewStyle().Foreground(rose).Bold(true),
	}
}

// paint renders text with s. Text must not contain tabs or newlines;
// lipgloss rewrites both.
func (t Theme) paint(s lipgloss.Style, text string) string {
	if !t.styled {
		return text
	}
	return s.Render(text)
}
