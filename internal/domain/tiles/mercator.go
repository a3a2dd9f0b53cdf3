package tiles

import "math"

// MaxLatitude is the web-mercator latitude limit.
const MaxLatitude = 85.05112878

// LatLngToTile returns the XYZ tile containing the coordinate at zoom z.
// Inputs outside the projection are clamped onto the edge tiles.
func LatLngToTile(lat, lng float64, z int) Coord {
	n := math.Exp2(float64(z))
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	latRad := lat * math.Pi / 180

	x := int(math.Floor((lng + 180) / 360 * n))
	y := int(math.Floor((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n))

	last := int(n) - 1
	return Coord{Z: z, X: clampInt(x, 0, last), Y: clampInt(y, 0, last)}
}

// TileRange returns the top-left and bottom-right tiles of b at zoom z.
func TileRange(b Bounds, z int) (Coord, Coord) {
	return LatLngToTile(b.North, b.West, z), LatLngToTile(b.South, b.East, z)
}

// CountTiles returns how many tiles TilesInBounds would produce.
func CountTiles(b Bounds, zoom ZoomRange) int {
	total := 0
	for z := zoom.Min; z <= zoom.Max; z++ {
		tl, br := TileRange(b, z)
		total += (br.X - tl.X + 1) * (br.Y - tl.Y + 1)
	}
	return total
}

// TilesInBounds enumerates every tile covering b across the zoom range,
// ordered by zoom, then x, then y.
func TilesInBounds(b Bounds, zoom ZoomRange) []Coord {
	out := make([]Coord, 0, CountTiles(b, zoom))
	for z := zoom.Min; z <= zoom.Max; z++ {
		tl, br := TileRange(b, z)
		for x := tl.X; x <= br.X; x++ {
			for y := tl.Y; y <= br.Y; y++ {
				out = append(out, Coord{Z: z, X: x, Y: y})
			}
		}
	}
	return out
}

// Valid reports whether c addresses a tile at a zoom no deeper than maxZoom.
func (c Coord) Valid(maxZoom int) bool {
	if c.Z < 0 || c.Z > maxZoom {
		return false
	}
	n := 1 << uint(c.Z)
	return c.X >= 0 && c.X < n && c.Y >= 0 && c.Y < n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
