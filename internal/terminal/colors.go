package terminal

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
)

// ColorMode controls whether the text report is colorized
type ColorMode int

const (
	// ColorAuto lets the renderer detect terminal support (NO_COLOR is honored)
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output
	ColorAlways
	// ColorNever disables colored output
	ColorNever
)

// ParseColorMode converts a --color value into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always", "force":
		return ColorAlways, nil
	case "never", "off":
		return ColorNever, nil
	default:
		return ColorAuto, errors.Errorf("unknown color mode %q", s)
	}
}

type palette struct {
	pass   lipgloss.Style
	fail   lipgloss.Style
	detail lipgloss.Style
	header lipgloss.Style
	dim    lipgloss.Style
}

func newPalette(w io.Writer, mode ColorMode) palette {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	return palette{
		pass:   r.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		fail:   r.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true),
		detail: r.NewStyle().Foreground(lipgloss.Color("#f9e2af")),
		header: r.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true),
		dim:    r.NewStyle().Foreground(lipgloss.Color("#6c7086")),
	}
}
