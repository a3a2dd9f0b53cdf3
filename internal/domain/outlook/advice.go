package outlook

import (
	"fmt"
	"math"
	"time"

	"github.com/yanqian/bitebrain/internal/domain/recommend"
	"github.com/yanqian/bitebrain/internal/domain/solunar"
	"github.com/yanqian/bitebrain/internal/domain/spots"
)

// TemperatureAdvice interprets a water temperature in °F.
func TemperatureAdvice(waterTemp float64) Advice {
	switch {
	case waterTemp < 45:
		return Advice{
			Activity:       ActivityLow,
			Advice:         "Fish are sluggish. Use slow presentations and smaller baits.",
			SuggestedDepth: "Deep water, 15-30 feet",
			Metabolism:     "Very slow - fish need fewer calories",
		}
	case waterTemp < 55:
		return Advice{
			Activity:       ActivityLow,
			Advice:         "Pre-spawn conditions. Fish are moving but still slow.",
			SuggestedDepth: "Medium depth, 8-15 feet",
			Metabolism:     "Slow - use finesse techniques",
		}
	case waterTemp < 65:
		return Advice{
			Activity:       ActivityModerate,
			Advice:         "Good fishing conditions. Fish are becoming more active.",
			SuggestedDepth: "Shallow to medium, 5-12 feet",
			Metabolism:     "Moderate - fish are feeding regularly",
		}
	case waterTemp < 75:
		return Advice{
			Activity:       ActivityHigh,
			Advice:         "Excellent fishing! Peak activity for most species.",
			SuggestedDepth: "Shallow water, 2-8 feet",
			Metabolism:     "High - aggressive feeding periods",
		}
	case waterTemp < 85:
		return Advice{
			Activity:       ActivityModerate,
			Advice:         "Hot water - fish early morning and late evening.",
			SuggestedDepth: "Deeper structure, 12-25 feet",
			Metabolism:     "High but seeking cooler areas",
		}
	default:
		return Advice{
			Activity:       ActivityLow,
			Advice:         "Very hot water. Fish are stressed and inactive.",
			SuggestedDepth: "Deepest available water, 20+ feet",
			Metabolism:     "Stressed - fish are conserving energy",
		}
	}
}

var monthlyNorms = map[time.Month]Norms{
	time.January:   {Typical: 38, Range: TempRange{Min: 32, Max: 45}},
	time.February:  {Typical: 42, Range: TempRange{Min: 35, Max: 48}},
	time.March:     {Typical: 48, Range: TempRange{Min: 42, Max: 55}},
	time.April:     {Typical: 55, Range: TempRange{Min: 48, Max: 62}},
	time.May:       {Typical: 65, Range: TempRange{Min: 58, Max: 72}},
	time.June:      {Typical: 72, Range: TempRange{Min: 68, Max: 78}},
	time.July:      {Typical: 78, Range: TempRange{Min: 75, Max: 82}},
	time.August:    {Typical: 82, Range: TempRange{Min: 78, Max: 85}},
	time.September: {Typical: 75, Range: TempRange{Min: 68, Max: 80}},
	time.October:   {Typical: 65, Range: TempRange{Min: 58, Max: 72}},
	time.November:  {Typical: 52, Range: TempRange{Min: 45, Max: 58}},
	time.December:  {Typical: 42, Range: TempRange{Min: 35, Max: 48}},
}

// SeasonalNorms returns the typical water temperature for a month.
// Out-of-range months report false.
func SeasonalNorms(month time.Month) (Norms, bool) {
	n, ok := monthlyNorms[month]
	return n, ok
}

// SeasonForMonth maps a calendar month onto a base season.
func SeasonForMonth(month time.Month) recommend.Season {
	switch {
	case month >= time.March && month <= time.May:
		return recommend.SeasonSpring
	case month >= time.June && month <= time.August:
		return recommend.SeasonSummer
	case month >= time.September && month <= time.November:
		return recommend.SeasonFall
	default:
		return recommend.SeasonWinter
	}
}

// SeasonalBaseTemp is the starting water temperature estimate for a season.
func SeasonalBaseTemp(season recommend.Season) float64 {
	switch season {
	case recommend.SeasonSpring:
		return 58
	case recommend.SeasonSummer:
		return 75
	case recommend.SeasonFall:
		return 62
	case recommend.SeasonWinter:
		return 42
	default:
		return 60
	}
}

// WaterBodyAdjustment shifts the estimate for how quickly a water body warms.
func WaterBodyAdjustment(t spots.WaterType) float64 {
	switch t {
	case spots.WaterPond:
		return 3
	case spots.WaterCreek:
		return -2
	case spots.WaterRiver:
		return -1
	case spots.WaterReservoir:
		return 1
	default:
		return 0
	}
}

// EstimateWaterTemp combines the seasonal base with the water-body adjustment.
func EstimateWaterTemp(season recommend.Season, waterBody spots.WaterType) float64 {
	return math.Round(SeasonalBaseTemp(season) + WaterBodyAdjustment(waterBody))
}

// ImpactFor scores an optional current solunar period.
func ImpactFor(period solunar.Period, ok bool) SolunarImpact {
	if !ok {
		return SolunarImpact{
			Impact:      0,
			Description: "No significant solunar activity",
			Confidence:  0.5,
		}
	}

	pct := math.Round(period.Confidence * 100)
	var impact float64
	var description string
	if period.Type == solunar.PeriodMajor {
		impact = period.Confidence * 0.8
		description = fmt.Sprintf("Major solunar period (%.0f%% confidence)", pct)
	} else {
		impact = period.Confidence * 0.4
		description = fmt.Sprintf("Minor solunar period (%.0f%% confidence)", pct)
	}
	if period.MoonIllumination > 0.75 || period.MoonIllumination < 0.25 {
		impact *= 1.2
		description += " - Strong moon phase"
	}

	p := period
	return SolunarImpact{
		CurrentPeriod: &p,
		Impact:        math.Min(1, impact),
		Description:   description,
		Confidence:    period.Confidence,
	}
}

// SkyFromCloudCover buckets a cloud-cover percentage.
func SkyFromCloudCover(pct float64) recommend.Sky {
	switch {
	case pct < 30:
		return recommend.SkySunny
	case pct > 70:
		return recommend.SkyCloudy
	default:
		return recommend.SkyMixed
	}
}
