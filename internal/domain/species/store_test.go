package species

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestDefaultStoreLoadsAllSpecies(t *testing.T) {
	store := Default()
	require.Equal(t, []ID{LargemouthBass, SmallmouthBass, Trout, Walleye, Catfish, Panfish}, store.All())

	p, ok := store.Profile(LargemouthBass)
	require.True(t, ok)
	require.Equal(t, "Largemouth Bass", p.Name)
	require.Equal(t, "Micropterus salmoides", p.ScientificName)
	require.Equal(t, TempRange{Min: 65, Max: 85}, p.OptimalTempRange)
	require.InDelta(t, 75, p.OptimalTempRange.Midpoint(), 1e-9)
	require.Len(t, p.LurePreferences.Seasonal["spring"], 3)
	require.Equal(t, `Dropshot 1/4 oz - 3" minnow, nose-hooked`, p.LurePreferences.Seasonal["summer"][0])
}

func TestProfileUnknownSpecies(t *testing.T) {
	_, ok := Default().Profile(ID("muskie"))
	require.False(t, ok)
}

func TestProfileReturnsCopy(t *testing.T) {
	store := Default()
	p, _ := store.Profile(Trout)
	p.LurePreferences.Seasonal["spring"][0] = "mutated"
	p.PreferredStructure[0] = "mutated"

	again, _ := store.Profile(Trout)
	require.NotEqual(t, "mutated", again.LurePreferences.Seasonal["spring"][0])
	require.NotEqual(t, "mutated", again.PreferredStructure[0])
}

func TestForConditions(t *testing.T) {
	store := Default()
	cases := []struct {
		name  string
		query SuitabilityQuery
		want  []ID
	}{
		{
			name:  "mild spring keeps everyone",
			query: SuitabilityQuery{Season: "spring", WaterTempF: floatPtr(60)},
			want:  []ID{LargemouthBass, SmallmouthBass, Trout, Walleye, Catfish, Panfish},
		},
		{
			name:  "cold winter water keeps only trout",
			query: SuitabilityQuery{Season: "winter", WaterTempF: floatPtr(40)},
			want:  []ID{Trout},
		},
		{
			name:  "hot summer water favours warm-water species",
			query: SuitabilityQuery{Season: "summer", WaterTempF: floatPtr(90)},
			want:  []ID{LargemouthBass, Catfish, Panfish},
		},
		{
			name:  "air temperature used when water temperature missing",
			query: SuitabilityQuery{Season: "winter", Temp: floatPtr(40)},
			want:  []ID{Trout},
		},
		{
			name:  "spawn aliases to spring",
			query: SuitabilityQuery{Season: "spawn", WaterTempF: floatPtr(60)},
			want:  []ID{LargemouthBass, SmallmouthBass, Trout, Walleye, Catfish, Panfish},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, store.ForConditions(tc.query))
			require.Equal(t, tc.want, store.ForConditions(tc.query))
		})
	}
}

func TestForConditionsKeywordFilter(t *testing.T) {
	store, err := Parse([]byte(`
- id: a
  name: A
  optimalTempRange: {min: 60, max: 70}
  seasonalBehavior:
    summer: [Shallow cruising]
- id: b
  name: B
  optimalTempRange: {min: 60, max: 70}
  seasonalBehavior:
    summer: [STRUCTURE hugging]
`))
	require.NoError(t, err)
	require.Equal(t, []ID{"b"}, store.ForConditions(SuitabilityQuery{Season: "summer"}))
	require.Equal(t, []ID{"a", "b"}, store.ForConditions(SuitabilityQuery{Season: "monsoon"}))
}

func TestParseRejectsBadData(t *testing.T) {
	_, err := Parse([]byte(`- name: nameless`))
	require.Error(t, err)

	_, err = Parse([]byte("- id: a\n- id: a\n"))
	require.Error(t, err)

	_, err = Parse([]byte("- id: a\n  optimalTempRange: {min: 80, max: 60}\n"))
	require.Error(t, err)
}

func TestSeasonKey(t *testing.T) {
	for _, s := range []string{"pre-spawn", "spawn", "post-spawn", "spring"} {
		require.Equal(t, "spring", SeasonKey(s))
	}
	require.Equal(t, "fall", SeasonKey("fall"))
}
