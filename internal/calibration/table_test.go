package calibration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	// deliberately unsorted
	table, err := NewTable("sample", []Point{
		{Level: 30, Volume: 300},
		{Level: 10, Volume: 100},
		{Level: 20, Volume: 150},
	})
	require.NoError(t, err)
	return table
}

func TestResolveExactKeys(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	tables := []*Table{reg.DrainTable()}
	for _, tank := range []string{"RGS-50 #1", "RGS-100 #1"} {
		table, ok := reg.TankTable(tank)
		require.True(t, ok)
		tables = append(tables, table)
	}
	for _, car := range reg.CarTypes() {
		table, ok := reg.CarTable(car)
		require.True(t, ok)
		tables = append(tables, table)
	}

	for _, table := range tables {
		for _, p := range table.Points() {
			assert.Equal(t, p.Volume, table.Resolve(float64(p.Level)), "table %s level %d", table.Name(), p.Level)
		}
	}
}

func TestResolveInterpolates(t *testing.T) {
	table := sampleTable(t)

	assert.Equal(t, 125.0, table.Resolve(15))
	assert.Equal(t, 110.0, table.Resolve(12))
	assert.Equal(t, 225.0, table.Resolve(25))
	assert.Equal(t, 249.99, table.Resolve(26.666))
	assert.Equal(t, 150.0, table.Resolve(20))
}

func TestResolveClamps(t *testing.T) {
	table := sampleTable(t)

	assert.Equal(t, 100.0, table.Resolve(10))
	assert.Equal(t, 100.0, table.Resolve(-5))
	assert.Equal(t, 300.0, table.Resolve(30))
	assert.Equal(t, 300.0, table.Resolve(9999))
	assert.Equal(t, 100.0, table.Resolve(math.Inf(-1)))
	assert.Equal(t, 300.0, table.Resolve(math.Inf(1)))
}

func TestResolveNaN(t *testing.T) {
	assert.Equal(t, 0.0, sampleTable(t).Resolve(math.NaN()))
}

func TestResolveMonotonicWithinSegment(t *testing.T) {
	reg := MustLoad()
	table, ok := reg.TankTable("RGS-50 #4")
	require.True(t, ok)

	prev := table.Resolve(0)
	for level := 1; level <= 2760; level++ {
		got := table.Resolve(float64(level))
		require.GreaterOrEqual(t, got, prev, "level %d", level)
		prev = got
	}
}

func TestResolveRGS50Segment(t *testing.T) {
	table, ok := MustLoad().TankTable("RGS-50 #1")
	require.True(t, ok)

	assert.Equal(t, 18.50, table.Resolve(10))
	assert.Equal(t, 52.26, table.Resolve(20))
	assert.Equal(t, 35.38, table.Resolve(15))
}

func TestResolveEmptyTable(t *testing.T) {
	table, err := NewTable("empty", nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, table.Resolve(100))

	var missing *Table
	assert.Equal(t, 0.0, missing.Resolve(100))
}

func TestNewTableRejectsDuplicates(t *testing.T) {
	_, err := NewTable("dup", []Point{{Level: 1, Volume: 1}, {Level: 1, Volume: 2}})
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	table := sampleTable(t)

	v, ok := table.Lookup(20)
	assert.True(t, ok)
	assert.Equal(t, 150.0, v)

	_, ok = table.Lookup(21)
	assert.False(t, ok)

	low, high := table.Bounds()
	assert.Equal(t, 10, low)
	assert.Equal(t, 30, high)
}
