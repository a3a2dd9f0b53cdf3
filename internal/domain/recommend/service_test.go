package recommend

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/bitebrain/internal/domain/species"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(rules map[species.ID]Rule) Service {
	return NewService(species.Default(), rules, newTestLogger())
}

func floatPtr(v float64) *float64 { return &v }

func requireSortedAndBounded(t *testing.T, recs []Recommendation, max int) {
	t.Helper()
	require.LessOrEqual(t, len(recs), max)
	for i, r := range recs {
		require.Greater(t, r.Confidence, 0.0)
		require.LessOrEqual(t, r.Confidence, 1.0)
		require.LessOrEqual(t, len(r.Lures), 3)
		if i > 0 {
			require.GreaterOrEqual(t, recs[i-1].Confidence, r.Confidence)
		}
	}
}

func TestRecommendDefaultTargets(t *testing.T) {
	svc := newTestService(nil)
	recs, err := svc.Recommend(context.Background(), Conditions{
		Season:     SeasonSpring,
		Wind:       WindLight,
		WaterTempF: floatPtr(75),
	})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	requireSortedAndBounded(t, recs, MaxSpeciesRecommendations)

	require.Equal(t, "Wind-blown secondary points", recs[0].Pattern)
	require.Equal(t, species.LargemouthBass, recs[0].Species)
	require.InDelta(t, 0.85, recs[0].Confidence, 1e-9)
	require.NotEmpty(t, recs[0].Reasons)
	require.NotEmpty(t, recs[0].Technique)

	require.Equal(t, species.SmallmouthBass, recs[1].Species)
	require.InDelta(t, 0.5, recs[1].Confidence, 1e-9)
	require.Equal(t, species.Trout, recs[2].Species)
	require.InDelta(t, 0.1, recs[2].Confidence, 1e-9)
}

func TestRecommendSummerIncludesDeepPattern(t *testing.T) {
	svc := newTestService(nil)
	recs, err := svc.Recommend(context.Background(), Conditions{
		Season:  SeasonSummer,
		Wind:    WindCalm,
		Temp:    floatPtr(85),
		Clarity: ClarityClear,
	})
	require.NoError(t, err)
	requireSortedAndBounded(t, recs, MaxSpeciesRecommendations)

	found := false
	for _, r := range recs {
		if strings.Contains(r.Pattern, "Deep") {
			found = true
		}
	}
	require.True(t, found)
}

func TestRecommendSpawnAliasesToSpringLures(t *testing.T) {
	svc := newTestService(nil)
	profile, ok := species.Default().Profile(species.LargemouthBass)
	require.True(t, ok)

	for _, season := range []Season{SeasonSpring, SeasonPreSpawn, SeasonSpawn, SeasonPostSpawn} {
		recs, err := svc.Recommend(context.Background(), Conditions{
			Season:        season,
			Wind:          WindModerate,
			WaterTempF:    floatPtr(72),
			TargetSpecies: []species.ID{species.LargemouthBass},
		})
		require.NoError(t, err)
		require.Len(t, recs, 1, season)
		require.Equal(t, profile.LurePreferences.Seasonal["spring"], recs[0].Lures, season)
	}
}

func TestRecommendUnknownSpeciesYieldsNothing(t *testing.T) {
	svc := newTestService(nil)
	recs, err := svc.Recommend(context.Background(), Conditions{
		Season:        SeasonSummer,
		TargetSpecies: []species.ID{"muskie"},
	})
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestRecommendExtremeTemperatureDropsEverything(t *testing.T) {
	svc := newTestService(nil)
	recs, err := svc.Recommend(context.Background(), Conditions{
		Season:     SeasonWinter,
		WaterTempF: floatPtr(-10),
	})
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestRecommendUnknownSeasonHasNoFallback(t *testing.T) {
	svc := newTestService(nil)
	recs, err := svc.Recommend(context.Background(), Conditions{Season: "monsoon"})
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestRecommendConfidenceCappedAtOne(t *testing.T) {
	svc := newTestService(nil)
	recs, err := svc.Recommend(context.Background(), Conditions{
		Season:        SeasonSummer,
		Wind:          WindCalm,
		Sky:           SkyCloudy,
		WaterTempF:    floatPtr(75),
		TargetSpecies: []species.ID{species.LargemouthBass},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, 1.0, recs[0].Confidence)
}

func TestRecommendClassifiesWindSpeed(t *testing.T) {
	svc := newTestService(nil)
	recs, err := svc.Recommend(context.Background(), Conditions{
		Season:        SeasonSpring,
		WindMph:       floatPtr(25),
		WaterTempF:    floatPtr(75),
		TargetSpecies: []species.ID{species.LargemouthBass},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Protected spawning pockets", recs[0].Pattern)
	require.Less(t, recs[0].Confidence, 0.75)
}

func TestRecommendSmallmouthStrongWind(t *testing.T) {
	svc := newTestService(nil)
	recs, err := svc.Recommend(context.Background(), Conditions{
		Season:        SeasonSpring,
		Wind:          WindStrong,
		WaterTempF:    floatPtr(65),
		TargetSpecies: []species.ID{species.SmallmouthBass},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Wind-swept rock flats", recs[0].Pattern)

	recs, err = svc.Recommend(context.Background(), Conditions{
		Season:        SeasonSpring,
		Wind:          WindCalm,
		WaterTempF:    floatPtr(65),
		TargetSpecies: []species.ID{species.SmallmouthBass},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Rock and current breaks", recs[0].Pattern)
}

func TestRecommendTruncatesToSix(t *testing.T) {
	many := RuleFunc(func(in RuleInput) []Pattern {
		out := make([]Pattern, 0, 10)
		for i := 0; i < 10; i++ {
			out = append(out, Pattern{Name: "p", BaseConfidence: 0.1 * float64(i+1), Lures: in.SeasonalLures})
		}
		return out
	})
	svc := newTestService(map[species.ID]Rule{species.Trout: many})
	recs, err := svc.Recommend(context.Background(), Conditions{
		Season:        SeasonFall,
		WaterTempF:    floatPtr(57.5),
		TargetSpecies: []species.ID{species.Trout},
	})
	require.NoError(t, err)
	require.Len(t, recs, MaxSpeciesRecommendations)
	requireSortedAndBounded(t, recs, MaxSpeciesRecommendations)
	require.Equal(t, 1.0, recs[0].Confidence)
}

func TestRecommendHonoursCancellation(t *testing.T) {
	svc := newTestService(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Recommend(ctx, Conditions{Season: SeasonSpring})
	require.ErrorIs(t, err, context.Canceled)
}

func TestTempModifierMonotonic(t *testing.T) {
	prev := TempModifier(75, 75)
	require.Equal(t, 1.0, prev)
	for d := 1.0; d <= 30; d++ {
		cur := TempModifier(75+d, 75)
		require.LessOrEqual(t, cur, prev)
		require.Equal(t, cur, TempModifier(75-d, 75))
		prev = cur
	}
	require.Equal(t, 0.0, TempModifier(95, 75))
	require.Equal(t, 0.0, TempModifier(200, 75))
}

func TestModifierConstants(t *testing.T) {
	require.Equal(t, 0.7, WindModifier(WindStrong))
	require.Equal(t, 1.1, WindModifier(WindCalm))
	require.Equal(t, 1.0, WindModifier(WindLight))
	require.Equal(t, 1.0, WindModifier(""))
	require.Equal(t, 0.9, SkyModifier(SkySunny))
	require.Equal(t, 1.1, SkyModifier(SkyCloudy))
	require.Equal(t, 1.0, SkyModifier(SkyMixed))

	require.Equal(t, WindCalm, ClassifyWind(2))
	require.Equal(t, WindLight, ClassifyWind(8))
	require.Equal(t, WindModerate, ClassifyWind(15))
	require.Equal(t, WindStrong, ClassifyWind(20))
}

func TestRecommendBasic(t *testing.T) {
	svc := newTestService(nil)
	cases := []struct {
		name    string
		in      BasicConditions
		pattern string
		conf    float64
	}{
		{
			name:    "spring light wind",
			in:      BasicConditions{Season: SeasonSpring, Wind: WindLight, Temp: 68, Clarity: ClarityClear},
			pattern: "Wind-blown secondary points",
			conf:    0.85,
		},
		{
			name:    "pre-spawn calm",
			in:      BasicConditions{Season: SeasonPreSpawn, Wind: WindCalm, Temp: 60},
			pattern: "Shallow water finesse",
			conf:    0.75,
		},
		{
			name:    "hot summer",
			in:      BasicConditions{Season: SeasonSummer, Wind: WindCalm, Temp: 85, Clarity: ClarityClear},
			pattern: "Deep structure fishing",
			conf:    0.9,
		},
		{
			name:    "mild summer falls back",
			in:      BasicConditions{Season: SeasonSummer, Temp: 75},
			pattern: FallbackPattern,
			conf:    0.65,
		},
		{
			name:    "winter falls back",
			in:      BasicConditions{Season: SeasonWinter, Wind: WindCalm, Temp: 35, Clarity: ClarityMuddy},
			pattern: FallbackPattern,
			conf:    0.65,
		},
		{
			name:    "unknown season falls back",
			in:      BasicConditions{Season: "monsoon"},
			pattern: FallbackPattern,
			conf:    0.65,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs, err := svc.RecommendBasic(context.Background(), tc.in)
			require.NoError(t, err)
			require.NotEmpty(t, recs)
			requireSortedAndBounded(t, recs, MaxBasicRecommendations)
			require.Equal(t, tc.pattern, recs[0].Pattern)
			require.InDelta(t, tc.conf, recs[0].Confidence, 1e-9)
			require.Len(t, recs[0].Lures, 3)
		})
	}
}
