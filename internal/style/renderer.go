package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects when styles produce escape sequences.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid checks if the color mode is known
func (m ColorMode) IsValid() bool {
	return m == ColorAuto || m == ColorAlways || m == ColorNever
}

// ParseColorMode converts a flag or config value into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	m := ColorMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
	return m, nil
}

// NewRenderer returns a renderer for output written to w. In auto mode the
// color profile is detected from w and the environment, so NO_COLOR and
// non-terminal outputs disable styling.
func NewRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// DefaultPalette is cycled through for items without an explicit style.
var DefaultPalette = []string{"blue", "red", "magenta", "cyan", "yellow", "green"}

// Palette parses every entry of specs and binds the styles to r.
func Palette(r *lipgloss.Renderer, specs []string) ([]lipgloss.Style, error) {
	styles := make([]lipgloss.Style, 0, len(specs))
	for _, spec := range specs {
		attrs, err := Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		styles = append(styles, attrs.Style(r))
	}
	return styles, nil
}
