package tiles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLatLngToTile(t *testing.T) {
	require.Equal(t, Coord{Z: 0, X: 0, Y: 0}, LatLngToTile(0, 0, 0))
	require.Equal(t, Coord{Z: 1, X: 1, Y: 1}, LatLngToTile(-1, 1, 1))
	require.Equal(t, Coord{Z: 1, X: 0, Y: 0}, LatLngToTile(1, -1, 1))
	// Poles and the antimeridian clamp onto edge tiles.
	require.Equal(t, Coord{Z: 2, X: 3, Y: 0}, LatLngToTile(90, 180, 2))
	require.Equal(t, Coord{Z: 2, X: 0, Y: 3}, LatLngToTile(-90, -180, 2))
}

func TestTilesInBoundsOrderAndCount(t *testing.T) {
	b := Bounds{North: 10, South: -10, East: 10, West: -10}
	zoom := ZoomRange{Min: 0, Max: 1}
	got := TilesInBounds(b, zoom)
	require.Equal(t, []Coord{
		{Z: 0, X: 0, Y: 0},
		{Z: 1, X: 0, Y: 0},
		{Z: 1, X: 0, Y: 1},
		{Z: 1, X: 1, Y: 0},
		{Z: 1, X: 1, Y: 1},
	}, got)
	require.Equal(t, len(got), CountTiles(b, zoom))
}

func TestRegionCovers(t *testing.T) {
	r := Region{Bounds: Bounds{North: 10, South: 1, East: 10, West: 1}, Zoom: ZoomRange{Min: 1, Max: 1}}
	require.True(t, r.Covers(Coord{Z: 1, X: 1, Y: 0}))
	require.False(t, r.Covers(Coord{Z: 1, X: 0, Y: 0}))
	require.False(t, r.Covers(Coord{Z: 0}))
}

func TestCoordValid(t *testing.T) {
	require.True(t, Coord{Z: 2, X: 3, Y: 3}.Valid(18))
	require.False(t, Coord{Z: 2, X: 4, Y: 0}.Valid(18))
	require.False(t, Coord{Z: 19}.Valid(18))
	require.False(t, Coord{Z: 1, X: -1}.Valid(18))
}
