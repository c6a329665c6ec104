// Package values turns command line tokens of the form
// label:value[:style][:fill] into chart items.
package values

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sst/piechart/internal/chart"
	"github.com/sst/piechart/internal/style"
)

var (
	ErrFieldCount = errors.New("expected 2-4 fields: `Red:4.0:bold red:•`")
	ErrValue      = errors.New("value has to be a finite, non-negative number")
	ErrFill       = errors.New("fill has to be a single character")
)

// DefaultFills is cycled through for items without an explicit fill.
var DefaultFills = []rune{'•', '▪', '▴'}

// TokenError reports which token failed to parse.
type TokenError struct {
	Token string
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("invalid value %q: %v", e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// Parser hands out fallback styles and fills in order, so it is meant for a
// single list of tokens.
type Parser struct {
	renderer *lipgloss.Renderer
	palette  []lipgloss.Style
	fills    []rune

	nextStyle int
	nextFill  int
}

// NewParser returns a parser binding explicit styles to r. Items without a
// style take the next entry of palette, items without a fill the next entry
// of fills. An empty palette leaves such items unstyled; empty fills fall
// back to DefaultFills.
func NewParser(r *lipgloss.Renderer, palette []lipgloss.Style, fills []rune) *Parser {
	if len(fills) == 0 {
		fills = DefaultFills
	}
	return &Parser{
		renderer: r,
		palette:  palette,
		fills:    fills,
	}
}

// Parse parses a single token.
func (p *Parser) Parse(token string) (chart.Item, error) {
	item, err := p.parse(token)
	if err != nil {
		return chart.Item{}, &TokenError{Token: token, Err: err}
	}
	return item, nil
}

// ParseAll parses tokens in order and stops at the first error.
func (p *Parser) ParseAll(tokens []string) ([]chart.Item, error) {
	items := make([]chart.Item, 0, len(tokens))
	for _, token := range tokens {
		item, err := p.Parse(token)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *Parser) parse(token string) (chart.Item, error) {
	fields := strings.Split(token, ":")
	if len(fields) < 2 || len(fields) > 4 {
		return chart.Item{}, ErrFieldCount
	}

	value, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return chart.Item{}, fmt.Errorf("cannot parse value: %w", err)
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return chart.Item{}, fmt.Errorf("%w: %v", ErrValue, value)
	}

	item := chart.Item{Label: fields[0], Value: value}

	if len(fields) > 2 {
		attrs, err := style.Parse(fields[2])
		if err != nil {
			return chart.Item{}, err
		}
		item.Color = chart.Styled(attrs.Style(p.renderer))
	} else {
		item.Color = p.fallbackColor()
	}

	if len(fields) > 3 {
		fill := fields[3]
		if utf8.RuneCountInString(fill) != 1 {
			return chart.Item{}, fmt.Errorf("%w: %q", ErrFill, fill)
		}
		item.Fill, _ = utf8.DecodeRuneInString(fill)
	} else {
		item.Fill = p.fallbackFill()
	}

	return item, nil
}

func (p *Parser) fallbackColor() chart.Color {
	if len(p.palette) == 0 {
		return chart.Color{}
	}
	s := p.palette[p.nextStyle%len(p.palette)]
	p.nextStyle++
	return chart.Styled(s)
}

func (p *Parser) fallbackFill() rune {
	f := p.fills[p.nextFill%len(p.fills)]
	p.nextFill++
	return f
}

// Fills converts config strings into fill runes.
func Fills(specs []string) ([]rune, error) {
	fills := make([]rune, 0, len(specs))
	for _, s := range specs {
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrFill, s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		fills = append(fills, r)
	}
	return fills, nil
}
