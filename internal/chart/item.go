package chart

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// DefaultFill is the glyph used when an item does not choose one.
const DefaultFill = '•'

// Color is an optional styling token. The zero value means "no styling": the
// glyph is written as is.
type Color struct {
	style lipgloss.Style
	set   bool
}

// Styled returns a Color that renders glyphs with s.
func Styled(s lipgloss.Style) Color {
	return Color{style: s, set: true}
}

// IsSet reports whether the color carries a style.
func (c Color) IsSet() bool {
	return c.set
}

// Style returns the wrapped style and whether one is present.
func (c Color) Style() (lipgloss.Style, bool) {
	return c.style, c.set
}

// Paint wraps s in the style, or returns it unchanged when no style is set.
func (c Color) Paint(s string) string {
	if !c.set {
		return s
	}
	return c.style.Render(s)
}

// Item is one sector of a chart.
type Item struct {
	Label string
	Value float64
	Color Color
	Fill  rune
}

// DefaultItem returns an unlabeled item of weight 1 drawn with DefaultFill.
func DefaultItem() Item {
	return Item{Value: 1, Fill: DefaultFill}
}

func (d Item) glyph() string {
	fill := d.Fill
	if fill == 0 {
		fill = DefaultFill
	}
	return d.Color.Paint(string(fill))
}

// LegendLabel formats the legend entry of the item: the styled glyph, the
// label and the item's share of total as a percentage.
func (d Item) LegendLabel(total float64) string {
	return fmt.Sprintf("%s %s %.2f%%", d.glyph(), d.Label, d.Value/total*100)
}
