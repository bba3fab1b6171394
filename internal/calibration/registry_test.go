package calibration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	assert.Len(t, reg.Tanks(), 12)
	assert.Equal(t, []string{"66", "72", "81", "90", "92"}, reg.CarTypes())
	require.NotNil(t, reg.DrainTable())
	assert.Equal(t, 800, reg.DrainTable().Len())

	t50, ok := reg.TankTable("RGS-50 #8")
	require.True(t, ok)
	assert.Equal(t, ShapeRGS50, t50.Name())

	t100, ok := reg.TankTable("RGS-100 #2")
	require.True(t, ok)
	assert.Equal(t, ShapeRGS100, t100.Name())

	_, ok = reg.TankTable("RGS-100 #9")
	assert.False(t, ok)
	_, ok = reg.CarTable("55")
	assert.False(t, ok)
	_, ok = reg.CarTable(" 72 ")
	assert.True(t, ok)
}

func TestTankGroup(t *testing.T) {
	reg := MustLoad()

	all50, err := reg.TankGroup(GroupRGS50)
	require.NoError(t, err)
	assert.Len(t, all50, 8)
	assert.Equal(t, "RGS-50 #1", all50[0])

	all100, err := reg.TankGroup(GroupRGS100)
	require.NoError(t, err)
	assert.Equal(t, []string{"RGS-100 #1", "RGS-100 #2", "RGS-100 #3", "RGS-100 #4"}, all100)

	_, err = reg.TankGroup("some")
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestLoadFSValidation(t *testing.T) {
	fsys := fstest.MapFS{
		"t/a.yaml": {Data: []byte("name: \"A\"\nkind: tank\npoints:\n  - {mm: 0, l: 0}\n  - {mm: 10, l: 5}\n")},
	}

	reg, err := LoadFS(fsys, "t", []string{"A #1", "A #2"})
	require.NoError(t, err)
	idx, ok := reg.TankIndex("A #2")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, err = LoadFS(fsys, "t", []string{"B #1"})
	assert.Error(t, err)

	_, err = LoadFS(fsys, "t", []string{"A #1", "A #1"})
	assert.Error(t, err)

	bad := fstest.MapFS{"t/a.yaml": {Data: []byte("name: \"A\"\nkind: boiler\npoints:\n  - {mm: 0, l: 0}\n")}}
	_, err = LoadFS(bad, "t", nil)
	assert.Error(t, err)
}
