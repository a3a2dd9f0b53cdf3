package weather

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/bitebrain/internal/domain/recommend"
)

func TestStaticProviderBySeason(t *testing.T) {
	p := NewStaticProvider()
	cases := map[recommend.Season]float64{
		recommend.SeasonWinter: 45,
		recommend.SeasonSummer: 88,
		recommend.SeasonSpring: 72,
		recommend.SeasonFall:   72,
		recommend.SeasonSpawn:  72,
	}
	for season, temp := range cases {
		w, err := p.Current(context.Background(), 39.8, -98.5, season)
		require.NoError(t, err)
		require.Equal(t, temp, w.Temperature, season)
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	w := Preset(PresetColdFront)
	*w.WaterTemp = 1
	require.Equal(t, 52.0, *Preset(PresetColdFront).WaterTemp)
	require.Equal(t, 72.0, Preset("unknown").Temperature)
}

func TestStaticProviderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStaticProvider().Current(ctx, 0, 0, recommend.SeasonSpring)
	require.ErrorIs(t, err, context.Canceled)
}
