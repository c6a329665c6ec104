// Package style parses git-style color strings such as "bold red" or
// "italic #ff8800 black" into terminal styles.
package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// UnknownWord is a word that is neither an attribute nor a color.
	UnknownWord ErrorKind = iota
	// ExtraColor is a color after the foreground and background colors.
	ExtraColor
)

// ParseError is returned by Parse.
type ParseError struct {
	Input string
	Word  string
	Kind  ErrorKind
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ExtraColor:
		return fmt.Sprintf("parsing style %q: extra color %q", e.Input, e.Word)
	default:
		return fmt.Sprintf("parsing style %q: unknown word %q", e.Input, e.Word)
	}
}

// Attributes is the parsed form of a style string. A nil color means the
// terminal default.
type Attributes struct {
	Foreground lipgloss.TerminalColor
	Background lipgloss.TerminalColor

	Bold      bool
	Dim       bool
	Underline bool
	Blink     bool
	Reverse   bool
	Italic    bool
	Strike    bool
}

var namedColors = map[string]lipgloss.ANSIColor{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// Parse reads a whitespace separated list of words. Attributes are bold,
// dim, ul, blink, reverse, italic and strike, each negated by a "no" or "no-"
// prefix; the last mention wins. Up to two colors may appear, the first is
// the foreground and the second the background. A color is a name, "normal"
// or "-1" for the default, a #RRGGBB hex value or a 0-255 palette index.
func Parse(s string) (Attributes, error) {
	var attrs Attributes
	colors := 0

	for _, word := range strings.Fields(s) {
		lower := strings.ToLower(word)
		if field, value := attrs.flag(lower); field != nil {
			*field = value
			continue
		}

		color, ok := parseColor(lower)
		if !ok {
			return Attributes{}, &ParseError{Input: s, Word: word, Kind: UnknownWord}
		}
		switch colors {
		case 0:
			attrs.Foreground = color
		case 1:
			attrs.Background = color
		default:
			return Attributes{}, &ParseError{Input: s, Word: word, Kind: ExtraColor}
		}
		colors++
	}
	return attrs, nil
}

// flag returns the field named by word and the value the word sets it to.
// It returns nil when word is not an attribute.
func (a *Attributes) flag(word string) (*bool, bool) {
	name, value := word, true
	if rest, ok := strings.CutPrefix(word, "no-"); ok {
		name, value = rest, false
	} else if rest, ok := strings.CutPrefix(word, "no"); ok {
		name, value = rest, false
	}

	switch name {
	case "bold":
		return &a.Bold, value
	case "dim":
		return &a.Dim, value
	case "ul":
		return &a.Underline, value
	case "blink":
		return &a.Blink, value
	case "reverse":
		return &a.Reverse, value
	case "italic":
		return &a.Italic, value
	case "strike":
		return &a.Strike, value
	}
	return nil, false
}

// parseColor returns the color named by word. A nil color with ok set is
// the terminal default.
func parseColor(word string) (lipgloss.TerminalColor, bool) {
	switch word {
	case "normal", "-1":
		return nil, true
	}
	if c, ok := namedColors[word]; ok {
		return c, true
	}
	if strings.HasPrefix(word, "#") && len(word) == 7 {
		// Hex stops scanning at the first bad digit of the last byte.
		c, err := colorful.Hex(word)
		if err != nil || c.Hex() != word {
			return nil, false
		}
		return lipgloss.Color(c.Hex()), true
	}
	if n, err := strconv.ParseUint(word, 10, 8); err == nil {
		return lipgloss.ANSIColor(n), true
	}
	return nil, false
}

// Style builds a lipgloss style bound to r.
func (a Attributes) Style(r *lipgloss.Renderer) lipgloss.Style {
	s := r.NewStyle()
	if a.Foreground != nil {
		s = s.Foreground(a.Foreground)
	}
	if a.Background != nil {
		s = s.Background(a.Background)
	}
	if a.Bold {
		s = s.Bold(true)
	}
	if a.Dim {
		s = s.Faint(true)
	}
	if a.Underline {
		s = s.Underline(true)
	}
	if a.Blink {
		s = s.Blink(true)
	}
	if a.Reverse {
		s = s.Reverse(true)
	}
	if a.Italic {
		s = s.Italic(true)
	}
	if a.Strike {
		s = s.Strikethrough(true)
	}
	return s
}
