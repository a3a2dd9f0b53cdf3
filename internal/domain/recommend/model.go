package recommend

import "github.com/yanqian/bitebrain/internal/domain/species"

// Season is the angler-facing season, including the spawn-cycle refinements of spring.
type Season string

const (
	SeasonSpring    Season = "spring"
	SeasonSummer    Season = "summer"
	SeasonFall      Season = "fall"
	SeasonWinter    Season = "winter"
	SeasonPreSpawn  Season = "pre-spawn"
	SeasonSpawn     Season = "spawn"
	SeasonPostSpawn Season = "post-spawn"
)

// Base folds spawn-cycle seasons onto spring.
func (s Season) Base() Season {
	return Season(species.SeasonKey(string(s)))
}

// Wind is a categorical wind strength.
type Wind string

const (
	WindCalm     Wind = "calm"
	WindLight    Wind = "light"
	WindModerate Wind = "moderate"
	WindStrong   Wind = "strong"
)

// Sky is a categorical cloud cover.
type Sky string

const (
	SkySunny  Sky = "sunny"
	SkyCloudy Sky = "cloudy"
	SkyMixed  Sky = "mixed"
)

// Clarity is the qualitative water turbidity.
type Clarity string

const (
	ClarityClear   Clarity = "clear"
	ClarityStained Clarity = "stained"
	ClarityMuddy   Clarity = "muddy"
)

// Conditions is the input to the species-aware engine.
type Conditions struct {
	Season        Season       `json:"season"`
	WaterTempF    *float64     `json:"waterTempF,omitempty"`
	WindMph       *float64     `json:"windMph,omitempty"`
	Wind          Wind         `json:"wind,omitempty"`
	Sky           Sky          `json:"sky,omitempty"`
	Temp          *float64     `json:"temp,omitempty"`
	Clarity       Clarity      `json:"clarity,omitempty"`
	TargetSpecies []species.ID `json:"targetSpecies,omitempty"`
}

// EffectiveWind returns the categorical wind, classifying WindMph when no
// category was supplied.
func (c Conditions) EffectiveWind() Wind {
	if c.Wind != "" || c.WindMph == nil {
		return c.Wind
	}
	return ClassifyWind(*c.WindMph)
}

// WaterTemp resolves water temperature, then air temperature, then 70°F.
func (c Conditions) WaterTemp() float64 {
	return species.ResolveWaterTemp(c.WaterTempF, c.Temp)
}

// BasicConditions is the input to the species-agnostic engine.
type BasicConditions struct {
	Season  Season  `json:"season" form:"season"`
	Wind    Wind    `json:"wind" form:"wind"`
	Temp    float64 `json:"temp" form:"temp"`
	Clarity Clarity `json:"clarity" form:"clarity"`
}

// Recommendation is a ranked fishing pattern.
type Recommendation struct {
	Pattern       string     `json:"pattern"`
	Lures         []string   `json:"lures"`
	Confidence    float64    `json:"confidence"`
	Species       species.ID `json:"species,omitempty"`
	Reasons       []string   `json:"reasons,omitempty"`
	BestTimeOfDay string     `json:"bestTimeOfDay,omitempty"`
	WaterDepth    string     `json:"waterDepth,omitempty"`
	Technique     string     `json:"technique,omitempty"`
}

const (
	// MaxSpeciesRecommendations caps the species-aware engine output.
	MaxSpeciesRecommendations = 6
	// MaxBasicRecommendations caps the basic engine output.
	MaxBasicRecommendations = 3
	maxLures                = 3
)

// DefaultTargets are used when the caller names no species.
var DefaultTargets = []species.ID{species.LargemouthBass, species.SmallmouthBass, species.Trout}
