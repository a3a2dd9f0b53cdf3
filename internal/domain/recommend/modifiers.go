package recommend

import "math"

// Modifiers scale a pattern's base confidence.
type Modifiers struct {
	Temp float64
	Wind float64
	Sky  float64
}

// Product multiplies the three modifiers.
func (m Modifiers) Product() float64 {
	return m.Temp * m.Wind * m.Sky
}

// TempModifier falls off linearly to zero at 20°F from the optimal midpoint.
func TempModifier(waterTemp, optimalMidpoint float64) float64 {
	return math.Max(0, 1-math.Abs(waterTemp-optimalMidpoint)/20)
}

// WindModifier penalises strong wind and favours calm water.
func WindModifier(w Wind) float64 {
	switch w {
	case WindStrong:
		return 0.7
	case WindCalm:
		return 1.1
	default:
		return 1.0
	}
}

// SkyModifier penalises bright sun and favours overcast.
func SkyModifier(s Sky) float64 {
	switch s {
	case SkySunny:
		return 0.9
	case SkyCloudy:
		return 1.1
	default:
		return 1.0
	}
}

// ClassifyWind buckets a wind speed in mph.
func ClassifyWind(mph float64) Wind {
	switch {
	case mph < 5:
		return WindCalm
	case mph < 12:
		return WindLight
	case mph < 20:
		return WindModerate
	default:
		return WindStrong
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
