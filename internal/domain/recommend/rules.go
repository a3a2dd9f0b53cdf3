package recommend

import "github.com/yanqian/bitebrain/internal/domain/species"

// Pattern is what a rule emits before modifiers are applied.
type Pattern struct {
	Name           string
	BaseConfidence float64
	Lures          []string
	Reasons        []string
	BestTimeOfDay  string
	WaterDepth     string
	Technique      string
}

// RuleInput carries everything a species rule may inspect.
type RuleInput struct {
	Conditions    Conditions
	Profile       species.Profile
	SeasonalLures []string
	Modifiers     Modifiers
}

// Rule produces zero or more patterns for one species.
type Rule interface {
	Generate(in RuleInput) []Pattern
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc func(in RuleInput) []Pattern

// Generate implements Rule.
func (f RuleFunc) Generate(in RuleInput) []Pattern {
	return f(in)
}

// DefaultRules returns the built-in rule table, one rule per species.
func DefaultRules() map[species.ID]Rule {
	return map[species.ID]Rule{
		species.LargemouthBass: RuleFunc(largemouthRule),
		species.SmallmouthBass: RuleFunc(smallmouthRule),
		species.Trout:          RuleFunc(troutRule),
		species.Walleye:        RuleFunc(walleyeRule),
		species.Catfish:        RuleFunc(catfishRule),
		species.Panfish:        RuleFunc(panfishRule),
	}
}

func one(p Pattern) []Pattern {
	return []Pattern{p}
}

func largemouthRule(in RuleInput) []Pattern {
	switch in.Conditions.Season.Base() {
	case SeasonSpring:
		switch in.Conditions.EffectiveWind() {
		case WindLight, WindModerate:
			return one(Pattern{
				Name:           "Wind-blown secondary points",
				BaseConfidence: 0.85,
				Lures:          in.SeasonalLures,
				Reasons:        []string{"Wind pushes baitfish onto points", "Pre-spawn bass stage on secondary points"},
				BestTimeOfDay:  "Midday to afternoon",
				WaterDepth:     "3-8 feet",
				Technique:      "Fast-moving baits parallel to the windy bank",
			})
		case WindStrong:
			return one(Pattern{
				Name:           "Protected spawning pockets",
				BaseConfidence: 0.75,
				Lures:          in.SeasonalLures,
				Reasons:        []string{"Strong wind muddies main-lake points", "Bass retreat to sheltered spawning flats"},
				BestTimeOfDay:  "Afternoon",
				WaterDepth:     "2-5 feet",
				Technique:      "Slow presentations in wind-protected coves",
			})
		default:
			return one(Pattern{
				Name:           "Shallow water finesse",
				BaseConfidence: 0.75,
				Lures:          in.SeasonalLures,
				Reasons:        []string{"Calm water makes fish wary", "Bass cruise shallow flats before spawning"},
				BestTimeOfDay:  "Late morning to afternoon",
				WaterDepth:     "2-6 feet",
				Technique:      "Light line, subtle finesse presentations",
			})
		}
	case SeasonSummer:
		return one(Pattern{
			Name:           "Deep structure fishing",
			BaseConfidence: 0.9,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Warm surface water pushes bass deep", "Offshore structure holds schooling fish"},
			BestTimeOfDay:  "Early morning and evening",
			WaterDepth:     "12-25 feet",
			Technique:      "Bottom contact on ledges and humps",
		})
	case SeasonFall:
		return one(Pattern{
			Name:           "Shallow baitfish chase",
			BaseConfidence: 0.8,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Bass follow shad into creek arms", "Feeding frenzy before winter"},
			BestTimeOfDay:  "All day, peak in afternoon",
			WaterDepth:     "2-10 feet",
			Technique:      "Cover water with reaction baits",
		})
	default:
		return nil
	}
}

func smallmouthRule(in RuleInput) []Pattern {
	switch in.Conditions.Season.Base() {
	case SeasonSpring:
		if in.Conditions.EffectiveWind() == WindStrong {
			return one(Pattern{
				Name:           "Wind-swept rock flats",
				BaseConfidence: 0.85,
				Lures:          in.SeasonalLures,
				Reasons:        []string{"Wave action stirs crayfish off the rocks", "Chop hides the angler from wary smallmouth"},
				BestTimeOfDay:  "Afternoon",
				WaterDepth:     "3-8 feet",
				Technique:      "Jerkbaits and swimbaits worked into the wind",
			})
		}
		return one(Pattern{
			Name:           "Rock and current breaks",
			BaseConfidence: 0.8,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Smallmouth ambush from rock structure", "Current concentrates forage"},
			BestTimeOfDay:  "Midday",
			WaterDepth:     "4-12 feet",
			Technique:      "Drag tubes and jigs along rock transitions",
		})
	case SeasonSummer:
		return one(Pattern{
			Name:           "Deep rock humps",
			BaseConfidence: 0.8,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Fish hold on deep rock during the heat", "Current seams stay oxygenated"},
			BestTimeOfDay:  "Dawn and dusk",
			WaterDepth:     "15-30 feet",
			Technique:      "Drop shot and football jig on offshore rock",
		})
	case SeasonFall:
		return one(Pattern{
			Name:           "Topwater over shallow rock",
			BaseConfidence: 0.85,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Aggressive fall feeding", "Fish roam shallow rock hunting baitfish"},
			BestTimeOfDay:  "Morning",
			WaterDepth:     "2-8 feet",
			Technique:      "Walk topwater and burn spinners over rock",
		})
	case SeasonWinter:
		return one(Pattern{
			Name:           "Deep pool finesse",
			BaseConfidence: 0.6,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Fish stack in deep pools", "Minimal movement in cold water"},
			BestTimeOfDay:  "Warmest part of the day",
			WaterDepth:     "20-40 feet",
			Technique:      "Hair jigs and blade baits with long pauses",
		})
	default:
		return nil
	}
}

func troutRule(in RuleInput) []Pattern {
	switch in.Conditions.Season.Base() {
	case SeasonSpring:
		return one(Pattern{
			Name:           "Runoff nymphing",
			BaseConfidence: 0.8,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"High water washes nymphs downstream", "Trout feed near the bottom"},
			BestTimeOfDay:  "Late morning",
			WaterDepth:     "2-6 feet",
			Technique:      "Dead-drift nymphs through seams",
		})
	case SeasonSummer:
		return one(Pattern{
			Name:           "Riffle hatch matching",
			BaseConfidence: 0.75,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Riffles carry oxygen in warm water", "Evening hatches bring fish up"},
			BestTimeOfDay:  "Early morning and evening",
			WaterDepth:     "1-4 feet",
			Technique:      "Match the hatch with dries and emergers",
		})
	case SeasonFall:
		return one(Pattern{
			Name:           "Streamer stripping",
			BaseConfidence: 0.85,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Pre-spawn browns turn territorial", "Big fish chase larger prey"},
			BestTimeOfDay:  "Overcast afternoons",
			WaterDepth:     "3-8 feet",
			Technique:      "Strip streamers across undercut banks",
		})
	case SeasonWinter:
		return one(Pattern{
			Name:           "Slow deep drift",
			BaseConfidence: 0.6,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Cold water slows metabolism", "Fish hold in slow deep runs"},
			BestTimeOfDay:  "Midday",
			WaterDepth:     "4-10 feet",
			Technique:      "Small nymphs drifted slowly near bottom",
		})
	default:
		return nil
	}
}

func walleyeRule(in RuleInput) []Pattern {
	switch in.Conditions.Season.Base() {
	case SeasonSpring:
		return one(Pattern{
			Name:           "Post-spawn river mouths",
			BaseConfidence: 0.8,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Walleye gather near spawning rivers", "Current delivers baitfish"},
			BestTimeOfDay:  "Dusk",
			WaterDepth:     "5-15 feet",
			Technique:      "Jig and minnow along current edges",
		})
	case SeasonSummer:
		return one(Pattern{
			Name:           "Night crankbait trolling",
			BaseConfidence: 0.8,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Low light triggers feeding", "Fish roam flats after dark"},
			BestTimeOfDay:  "Night",
			WaterDepth:     "8-20 feet",
			Technique:      "Troll shallow-running cranks over flats",
		})
	case SeasonFall:
		return one(Pattern{
			Name:           "Rocky point feeding",
			BaseConfidence: 0.85,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Fall feeding binge", "Baitfish school on rocky points"},
			BestTimeOfDay:  "Dusk into night",
			WaterDepth:     "10-25 feet",
			Technique:      "Slow-roll swimbaits and rip jigs",
		})
	case SeasonWinter:
		return one(Pattern{
			Name:           "Vertical jigging basins",
			BaseConfidence: 0.65,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Walleye suspend over deep basins", "Slow metabolism needs subtle presentations"},
			BestTimeOfDay:  "Low light",
			WaterDepth:     "20-40 feet",
			Technique:      "Vertical jigging with small spoons",
		})
	default:
		return nil
	}
}

func catfishRule(in RuleInput) []Pattern {
	switch in.Conditions.Season.Base() {
	case SeasonSpring:
		return one(Pattern{
			Name:           "Warming shallow flats",
			BaseConfidence: 0.75,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Catfish move shallow as water warms", "Runoff brings food into flats"},
			BestTimeOfDay:  "Afternoon",
			WaterDepth:     "3-10 feet",
			Technique:      "Cut bait on the bottom near inflows",
		})
	case SeasonSummer:
		return one(Pattern{
			Name:           "Night channel drift",
			BaseConfidence: 0.9,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Catfish feed heavily at night", "Channel edges funnel movement"},
			BestTimeOfDay:  "Night",
			WaterDepth:     "10-30 feet",
			Technique:      "Drift bait along channel ledges",
		})
	case SeasonFall:
		return one(Pattern{
			Name:           "Baitfish school ambush",
			BaseConfidence: 0.8,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Shad migrations draw catfish", "Heavy feeding before winter"},
			BestTimeOfDay:  "Evening",
			WaterDepth:     "5-20 feet",
			Technique:      "Anchor near bait schools with fresh cut bait",
		})
	default:
		return nil
	}
}

func panfishRule(in RuleInput) []Pattern {
	switch in.Conditions.Season.Base() {
	case SeasonSpring:
		return one(Pattern{
			Name:           "Spawning bed fishing",
			BaseConfidence: 0.9,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Panfish crowd shallow spawning beds", "Aggressive nest defence"},
			BestTimeOfDay:  "Midday",
			WaterDepth:     "1-4 feet",
			Technique:      "Small jigs under a float over beds",
		})
	case SeasonSummer:
		return one(Pattern{
			Name:           "Brush pile schools",
			BaseConfidence: 0.75,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Schools suspend around brush", "Shade and cover hold fish"},
			BestTimeOfDay:  "Morning",
			WaterDepth:     "8-15 feet",
			Technique:      "Vertical jig into brush piles",
		})
	case SeasonFall:
		return one(Pattern{
			Name:           "Weed edge roaming",
			BaseConfidence: 0.7,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Fish follow dying weed lines", "Feeding up before winter"},
			BestTimeOfDay:  "Afternoon",
			WaterDepth:     "4-12 feet",
			Technique:      "Swim small spinners along weed edges",
		})
	case SeasonWinter:
		return one(Pattern{
			Name:           "Deep basin suspenders",
			BaseConfidence: 0.6,
			Lures:          in.SeasonalLures,
			Reasons:        []string{"Schools suspend in deep basins", "Minimal feeding windows"},
			BestTimeOfDay:  "Midday",
			WaterDepth:     "15-30 feet",
			Technique:      "Tiny jigs with slow hops",
		})
	default:
		return nil
	}
}
