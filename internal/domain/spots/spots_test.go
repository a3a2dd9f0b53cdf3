package spots

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ids(list []Spot) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestDefaultCatalog(t *testing.T) {
	all := Default().All()
	require.Len(t, all, 5)
	require.Equal(t, []string{"spot-001", "spot-002", "spot-003", "spot-004", "spot-005"}, ids(all))
	require.True(t, all[0].Public)
	require.Equal(t, WaterLake, all[0].Type)
	require.InDelta(t, 4.5, all[0].Rating, 1e-9)
}

func TestInRadiusExactCoordinate(t *testing.T) {
	got := Default().InRadius(39.8283, -98.5795, 1)
	require.Equal(t, []string{"spot-001"}, ids(got))

	got = Default().InRadius(39.8283, -98.5795, 0)
	require.Equal(t, []string{"spot-001"}, ids(got))

	require.Empty(t, Default().InRadius(0, 0, 0))
}

func TestInRadiusMonotonic(t *testing.T) {
	catalog := Default()
	prev := map[string]bool{}
	for _, radius := range []float64{0, 1, 100, 500, 1000, 1500, 2000, 5000} {
		got := catalog.InRadius(39.8283, -98.5795, radius)
		current := map[string]bool{}
		for _, s := range got {
			current[s.ID] = true
		}
		for id := range prev {
			require.True(t, current[id], "radius %.0f dropped %s", radius, id)
		}
		prev = current
	}
	require.Len(t, prev, 5)
}

func TestByID(t *testing.T) {
	spot, ok := Default().ByID("spot-004")
	require.True(t, ok)
	require.Equal(t, "Eagle Lake", spot.Name)

	_, ok = Default().ByID("spot-999")
	require.False(t, ok)
}

func TestReturnedSpotsAreCopies(t *testing.T) {
	spot, _ := Default().ByID("spot-001")
	spot.Species[0] = "mutated"

	again, _ := Default().ByID("spot-001")
	require.Equal(t, "Largemouth Bass", again.Species[0])
}

func TestDistanceKm(t *testing.T) {
	require.InDelta(t, 0, DistanceKm(10, 10, 10, 10), 1e-9)
	// Bass Cove to Trout Run is roughly 570 km.
	d := DistanceKm(39.8283, -98.5795, 40.0150, -105.2705)
	require.InDelta(t, 571, d, 10)
	require.InDelta(t, d, DistanceKm(40.0150, -105.2705, 39.8283, -98.5795), 1e-9)
}

func TestParseRejectsInvalidRating(t *testing.T) {
	_, err := Parse([]byte("- id: x\n  name: X\n  rating: 7\n"))
	require.Error(t, err)
}
