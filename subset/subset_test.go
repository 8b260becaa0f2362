package subset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gocluster/geom"
	"github.com/phil-mansfield/gocluster/io"
)

// vesicle returns two lipids in each leaflet of a vesicle centered on the
// origin. Heads (type H) are bonded to tails (type T); outer heads sit
// further from the center than their tails, inner heads closer.
func vesicle() *io.Snapshot {
	return &io.Snapshot{
		Positions: []geom.Vec{
			{0, 0, 2}, {0, 0, 1}, // up
			{1, 0, -1}, {1, 0, -2}, // down
			{2, 0, 2}, {2, 0, 1}, // up
			{3, 0, -1}, {3, 0, -2}, // down
			{9, 9, 9}, // solvent
		},
		Types: []string{"H", "T", "H", "T", "H", "T", "H", "T", "W"},
		Bonds: []io.Bond{
			{I: 0, J: 1, TypeI: "H", TypeJ: "T"},
			{I: 3, J: 2, TypeI: "T", TypeJ: "H"},
			{I: 4, J: 5, TypeI: "H", TypeJ: "T"},
			{I: 6, J: 7, TypeI: "H", TypeJ: "T"},
			{I: 0, J: 5, TypeI: "H", TypeJ: "T"},
		},
	}
}

func TestParseLayers(t *testing.T) {
	ls, err := ParseLayers("UpDown")
	require.NoError(t, err)
	assert.Equal(t, []Layer{Up, Down}, ls)

	ls, err = ParseLayers("All")
	require.NoError(t, err)
	assert.Equal(t, []Layer{All}, ls)

	_, err = ParseLayers("Sideways")
	assert.Error(t, err)

	assert.Equal(t, "up", Up.String())
}

func TestByType(t *testing.T) {
	sels := ByType(vesicle(), []string{"T", "W", "X"})
	require.Len(t, sels, 3)

	assert.Equal(t, "T", sels[0].Type)
	assert.Equal(t, []int{1, 3, 5, 7}, sels[0].Indices)
	assert.Equal(t, geom.Vec{1, 0, -2}, sels[0].Positions[1])
	assert.Equal(t, []int{8}, sels[1].Indices)
	assert.Equal(t, 0, sels[2].Len())
}

func TestLeaflets(t *testing.T) {
	sels, err := Leaflets(vesicle(), []string{"H"}, []Layer{Up, Down})
	require.NoError(t, err)
	require.Len(t, sels, 2)

	assert.Equal(t, Up, sels[0].Layer)
	assert.Equal(t, []int{0, 4}, sels[0].Indices)
	assert.Equal(t, Down, sels[1].Layer)
	assert.Equal(t, []int{2, 6}, sels[1].Indices)
}

func TestLeafletsSingle(t *testing.T) {
	sels, err := Leaflets(vesicle(), []string{"H"}, []Layer{Down})
	require.NoError(t, err)
	require.Len(t, sels, 1)
	assert.Equal(t, []int{2, 6}, sels[0].Indices)
}

func TestSelect(t *testing.T) {
	sels, err := Select(vesicle(), []string{"H"}, []Layer{All})
	require.NoError(t, err)
	require.Len(t, sels, 1)
	assert.Equal(t, []int{0, 2, 4, 6}, sels[0].Indices)

	_, err = Select(vesicle(), []string{"H"}, []Layer{All, Up})
	assert.Error(t, err)
}

func TestMolecules(t *testing.T) {
	sel := ByType(vesicle(), []string{"T"})[0]

	xs, ids, err := Molecules(sel, 2)
	require.NoError(t, err)
	assert.Len(t, xs, 4)
	assert.Equal(t, []int{1, 5}, ids)

	_, _, err = Molecules(sel, 3)
	assert.Error(t, err)
}
