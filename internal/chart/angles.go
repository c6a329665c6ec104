package chart

import (
	"fmt"
	"math"
	"sort"
)

const fullCircle = 360.0

// AngleTable holds the cumulative sector boundaries, in degrees, of one
// render. Entry i is the angle at which the sector of item i ends.
type AngleTable struct {
	bounds []float64
	total  float64
}

// NewAngleTable builds the boundaries for data in input order. It fails when
// data is empty, when a value is negative or not finite, and when the values
// sum to zero.
func NewAngleTable(data []Item) (AngleTable, error) {
	if len(data) == 0 {
		return AngleTable{}, ErrEmptyData
	}

	var total float64
	for i, d := range data {
		if d.Value < 0 || math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
			return AngleTable{}, fmt.Errorf("%w: item %d (%q) has value %v", ErrInvalidValue, i, d.Label, d.Value)
		}
		total += d.Value
	}
	if total <= 0 {
		return AngleTable{}, ErrNonPositiveTotal
	}

	bounds := make([]float64, len(data))
	var angle float64
	for i, d := range data {
		angle += d.Value / total * fullCircle
		bounds[i] = angle
	}
	// The sum only reaches 360 up to rounding; pin it so every angle in
	// [0, 360) has an owner.
	bounds[len(bounds)-1] = fullCircle

	return AngleTable{bounds: bounds, total: total}, nil
}

// Total returns the sum of all item values.
func (t AngleTable) Total() float64 {
	return t.total
}

// Bounds returns a copy of the cumulative boundaries.
func (t AngleTable) Bounds() []float64 {
	return append([]float64(nil), t.bounds...)
}

// Spans returns the angular extent of every sector.
func (t AngleTable) Spans() []float64 {
	spans := make([]float64, len(t.bounds))
	prev := 0.0
	for i, b := range t.bounds {
		spans[i] = b - prev
		prev = b
	}
	return spans
}

// Lookup returns the index of the item owning target, the first boundary
// that is >= target. The table is non-decreasing, so a binary search finds
// the same index a linear scan would.
func (t AngleTable) Lookup(target float64) int {
	idx := sort.SearchFloat64s(t.bounds, target)
	if idx == len(t.bounds) {
		panic(fmt.Sprintf("chart: no sector for angle %v (bounds end at %v)", target, t.bounds[len(t.bounds)-1]))
	}
	return idx
}

// sectorAngle maps the cell (x, y) to the angle looked up in the table.
// atan2(x, y) puts 0 on the vertical axis; 180 minus it sweeps clockwise
// from the top of the circle.
func sectorAngle(x, y int) float64 {
	deg := math.Atan2(float64(x), float64(y)) * 180 / math.Pi
	return fullCircle/2 - deg
}
