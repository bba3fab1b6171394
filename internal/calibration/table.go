package calibration

import (
	"fmt"
	"math"
	"sort"

	"github.com/mamadbah2/fueldepot/pkg/rounding"
)

// Point is one row of a strapping table.
type Point struct {
	Level  int     `yaml:"mm"`
	Volume float64 `yaml:"l"`
}

// Table maps a level in millimeters to a calibrated volume in liters.
// A Table is immutable once built.
type Table struct {
	name   string
	points []Point
}

// NewTable copies and sorts the points by level. Duplicate levels are rejected.
func NewTable(name string, points []Point) (*Table, error) {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Level == sorted[i-1].Level {
			return nil, fmt.Errorf("table %s: duplicate level %d", name, sorted[i].Level)
		}
	}

	return &Table{name: name, points: sorted}, nil
}

// Name returns the vessel type the table belongs to.
func (t *Table) Name() string { return t.name }

// Len returns the number of calibration points.
func (t *Table) Len() int { return len(t.points) }

// Points returns a copy of the calibration points in ascending level order.
func (t *Table) Points() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}

// Bounds returns the lowest and highest calibrated levels.
func (t *Table) Bounds() (low, high int) {
	if len(t.points) == 0 {
		return 0, 0
	}
	return t.points[0].Level, t.points[len(t.points)-1].Level
}

// Lookup returns the stored volume for an exact level.
func (t *Table) Lookup(level int) (float64, bool) {
	i := sort.Search(len(t.points), func(i int) bool { return t.points[i].Level >= level })
	if i < len(t.points) && t.points[i].Level == level {
		return t.points[i].Volume, true
	}
	return 0, false
}

// Resolve converts a level into a volume. Exact levels return the stored
// value, levels outside the table clamp to the nearest end and anything in
// between is linearly interpolated and rounded to 2 decimals. An empty table
// and a NaN level resolve to 0.
func (t *Table) Resolve(level float64) float64 {
	if t == nil || len(t.points) == 0 || math.IsNaN(level) {
		return 0
	}
	n := len(t.points)

	first, last := t.points[0], t.points[n-1]
	if level <= float64(first.Level) {
		return first.Volume
	}
	if level >= float64(last.Level) {
		return last.Volume
	}

	// first index whose level is >= the requested one; 0 < i < n here
	i := sort.Search(n, func(i int) bool { return float64(t.points[i].Level) >= level })
	upper := t.points[i]
	if float64(upper.Level) == level {
		return upper.Volume
	}
	lower := t.points[i-1]

	fraction := (level - float64(lower.Level)) / float64(upper.Level-lower.Level)
	return rounding.Liters(lower.Volume + (upper.Volume-lower.Volume)*fraction)
}
