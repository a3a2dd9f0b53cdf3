package weather

import (
	"context"

	"github.com/yanqian/bitebrain/internal/domain/outlook"
	"github.com/yanqian/bitebrain/internal/domain/recommend"
)

// Preset names understood by StaticProvider.
const (
	PresetDefault   = "default"
	PresetColdFront = "cold-front"
	PresetSummerHot = "summer-hot"
)

func ptr(v float64) *float64 { return &v }

var presets = map[string]outlook.Weather{
	PresetDefault: {
		Temperature:   72,
		WindSpeed:     8,
		WindDirection: "SW",
		Pressure:      29.92,
		Humidity:      65,
		CloudCover:    30,
		WaterTemp:     ptr(68),
	},
	PresetColdFront: {
		Temperature:   45,
		WindSpeed:     15,
		WindDirection: "N",
		Pressure:      30.15,
		Humidity:      45,
		CloudCover:    80,
		WaterTemp:     ptr(52),
	},
	PresetSummerHot: {
		Temperature:   88,
		WindSpeed:     5,
		WindDirection: "S",
		Pressure:      29.85,
		Humidity:      75,
		CloudCover:    10,
		WaterTemp:     ptr(78),
	},
}

// StaticProvider returns canned weather chosen by season. Location is ignored.
type StaticProvider struct{}

// NewStaticProvider builds the canned weather source.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Current implements outlook.WeatherProvider.
func (p *StaticProvider) Current(ctx context.Context, _, _ float64, season recommend.Season) (outlook.Weather, error) {
	if err := ctx.Err(); err != nil {
		return outlook.Weather{}, err
	}
	return Preset(presetFor(season)), nil
}

// Preset returns a copy of a named preset, or the default preset.
func Preset(name string) outlook.Weather {
	w, ok := presets[name]
	if !ok {
		w = presets[PresetDefault]
	}
	if w.WaterTemp != nil {
		w.WaterTemp = ptr(*w.WaterTemp)
	}
	return w
}

func presetFor(season recommend.Season) string {
	switch season.Base() {
	case recommend.SeasonWinter:
		return PresetColdFront
	case recommend.SeasonSummer:
		return PresetSummerHot
	default:
		return PresetDefault
	}
}
