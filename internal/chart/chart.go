// Package chart draws pie charts as rows of terminal characters.
//
// Every cell of a scanline circle is assigned to the data item whose sector
// contains the cell's angle, measured clockwise from the top. The circle is
// stretched horizontally by the aspect ratio to compensate for character
// cells that are taller than they are wide.
package chart

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// legendPadding is the gap between the right edge of the circle and the
// legend column.
const legendPadding = 2

var (
	ErrEmptyData          = errors.New("chart data cannot be empty")
	ErrNonPositiveTotal   = errors.New("total of data values has to be greater than zero")
	ErrInvalidValue       = errors.New("data values have to be finite and non-negative")
	ErrInvalidRadius      = errors.New("radius cannot be negative")
	ErrInvalidAspectRatio = errors.New("aspect ratio has to be greater than zero")
)

// Chart is the configuration for drawing data. The zero value is not
// usable; start from New.
type Chart struct {
	Radius      int
	AspectRatio int
	Legend      bool
}

// New returns a chart with radius 8, aspect ratio 2 and no legend.
func New() *Chart {
	return &Chart{
		Radius:      8,
		AspectRatio: 2,
		Legend:      false,
	}
}

// Validate reports configuration errors.
func (c *Chart) Validate() error {
	if c.Radius < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRadius, c.Radius)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAspectRatio, c.AspectRatio)
	}
	return nil
}

// Draw renders data to standard output. It panics on any error; use DrawInto
// to handle errors.
func (c *Chart) Draw(data []Item) {
	if err := c.DrawInto(os.Stdout, data); err != nil {
		panic(fmt.Sprintf("failed to draw chart to stdout: %v", err))
	}
}

// DrawInto renders data and writes it to w, one newline-terminated line per
// row. Nothing is written when the configuration or the data is invalid.
// Write errors are returned wrapped.
func (c *Chart) DrawInto(w io.Writer, data []Item) error {
	rows, err := c.Render(data)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := bw.WriteString(row); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// Render returns the rows of the chart without a trailing newline. There are
// always 2*Radius+1 rows.
//
// for each y from -radius to radius:
//
//	compute the half-width of the circle on that row
//	pad with center - width spaces
//	for each x from -width to width:
//	    pick the item whose sector holds atan2(x, y)
//	    write its glyph
//	append the legend gutter and, on legend rows, the item's label
func (c *Chart) Render(data []Item) ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	table, err := NewAngleTable(data)
	if err != nil {
		return nil, err
	}

	glyphs := make([]string, len(data))
	for i, d := range data {
		glyphs[i] = d.glyph()
	}

	radius, aspect := c.Radius, c.AspectRatio
	center := CenterX(radius, aspect)

	rows := make([]string, 0, 2*radius+1)
	for y := -radius; y <= radius; y++ {
		width := Width(radius, y, aspect)
		padding := max(center-width, 0)

		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", padding))
		for x := -width; x <= width; x++ {
			sb.WriteString(glyphs[table.Lookup(sectorAngle(x, y))])
		}

		if c.Legend {
			sb.WriteString(strings.Repeat(" ", padding+legendPadding))
			if idx, ok := legendSlot(y, len(data)); ok {
				sb.WriteString(data[idx].LegendLabel(table.Total()))
			}
		}
		rows = append(rows, sb.String())
	}
	return rows, nil
}

// legendSlot returns the item whose legend entry sits on row y. Entries are
// two rows apart and centered on y = 0: item i is on row 2i - (n-1).
func legendSlot(y, n int) (int, bool) {
	offset := y + n - 1
	if offset < 0 || offset%2 != 0 {
		return 0, false
	}
	idx := offset / 2
	if idx >= n {
		return 0, false
	}
	return idx, true
}
