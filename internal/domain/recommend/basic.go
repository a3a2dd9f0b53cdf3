package recommend

import "context"

// FallbackPattern is returned by the basic engine when no seasonal rule matches.
const FallbackPattern = "Dock shade finesse"

var (
	windBlownLures = []string{
		"Chatterbait 3/8 oz - white/chartreuse + paddletail",
		"Flat-side crank - red/orange, deflect off rock",
		"Ned 1/10 oz - green pumpkin, shake + dead-stick",
	}
	shallowFinesseLures = []string{
		`Wacky Stick Worm - 5", natural greens`,
		"Texas rig creature - 1/8 oz, green pumpkin",
		"Small swimbait - bluegill colors",
	}
	deepStructureLures = []string{
		`Dropshot 1/4 oz - 3" minnow, nose-hooked`,
		"Deep diving crankbait - crawfish colors",
		"Carolina rig - 1/2 oz, creature bait",
	}
	dockShadeLures = []string{
		`Wacky Stick Worm - 5", natural greens`,
		`Dropshot 1/4 oz - 3" minnow, nose-hooked`,
		"Swim jig 1/4 oz - bluegill colors, slow roll",
	}
)

func (s *service) RecommendBasic(ctx context.Context, c BasicConditions) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := basicPatterns(c)
	s.logger.Debug("basic recommendations computed", "season", c.Season, "wind", c.Wind, "results", len(out))
	return out, nil
}

func basicPatterns(c BasicConditions) []Recommendation {
	var out []Recommendation
	if c.Season == SeasonSpring || c.Season == SeasonPreSpawn {
		if c.Wind == WindLight || c.Wind == WindModerate {
			out = append(out, basic("Wind-blown secondary points", windBlownLures, 0.85))
		} else {
			out = append(out, basic("Shallow water finesse", shallowFinesseLures, 0.75))
		}
	}
	if c.Season == SeasonSummer && c.Temp > 75 {
		out = append(out, basic("Deep structure fishing", deepStructureLures, 0.9))
	}
	if len(out) == 0 {
		out = append(out, basic(FallbackPattern, dockShadeLures, 0.65))
	}
	if len(out) > MaxBasicRecommendations {
		out = out[:MaxBasicRecommendations]
	}
	return out
}

func basic(pattern string, lures []string, confidence float64) Recommendation {
	return Recommendation{
		Pattern:    pattern,
		Lures:      append([]string(nil), lures...),
		Confidence: confidence,
	}
}
