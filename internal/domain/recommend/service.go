package recommend

import (
	"context"
	"log/slog"
	"sort"

	"github.com/yanqian/bitebrain/internal/domain/species"
)

// Service exposes the two recommendation engines.
type Service interface {
	// Recommend runs the species-aware engine. The result may be empty.
	Recommend(ctx context.Context, c Conditions) ([]Recommendation, error)
	// RecommendBasic runs the species-agnostic engine. The result is never empty.
	RecommendBasic(ctx context.Context, c BasicConditions) ([]Recommendation, error)
}

// ProfileSource resolves species profiles.
type ProfileSource interface {
	Profile(id species.ID) (species.Profile, bool)
}

type service struct {
	profiles ProfileSource
	rules    map[species.ID]Rule
	logger   *slog.Logger
}

// NewService wires the recommendation engines. A nil rule table selects DefaultRules.
func NewService(profiles ProfileSource, rules map[species.ID]Rule, logger *slog.Logger) Service {
	if rules == nil {
		rules = DefaultRules()
	}
	return &service{
		profiles: profiles,
		rules:    rules,
		logger:   logger.With("component", "recommend.service"),
	}
}

func (s *service) Recommend(ctx context.Context, c Conditions) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	targets := c.TargetSpecies
	if len(targets) == 0 {
		targets = DefaultTargets
	}
	waterTemp := c.WaterTemp()
	seasonKey := string(c.Season.Base())
	windMod := WindModifier(c.EffectiveWind())
	skyMod := SkyModifier(c.Sky)

	out := make([]Recommendation, 0, len(targets))
	for _, id := range targets {
		profile, ok := s.profiles.Profile(id)
		if !ok {
			s.logger.Debug("skipping unknown species", "species", id)
			continue
		}
		rule, ok := s.rules[id]
		if !ok {
			continue
		}
		mods := Modifiers{
			Temp: TempModifier(waterTemp, profile.OptimalTempRange.Midpoint()),
			Wind: windMod,
			Sky:  skyMod,
		}
		patterns := rule.Generate(RuleInput{
			Conditions:    c,
			Profile:       profile,
			SeasonalLures: profile.LurePreferences.Seasonal[seasonKey],
			Modifiers:     mods,
		})
		for _, p := range patterns {
			confidence := round2(p.BaseConfidence * mods.Product())
			if confidence > 1 {
				confidence = 1
			}
			if confidence <= 0 {
				continue
			}
			out = append(out, Recommendation{
				Pattern:       p.Name,
				Lures:         firstN(p.Lures, maxLures),
				Confidence:    confidence,
				Species:       id,
				Reasons:       p.Reasons,
				BestTimeOfDay: p.BestTimeOfDay,
				WaterDepth:    p.WaterDepth,
				Technique:     p.Technique,
			})
		}
	}

	sortByConfidence(out)
	if len(out) > MaxSpeciesRecommendations {
		out = out[:MaxSpeciesRecommendations]
	}
	s.logger.Debug("species recommendations computed",
		"season", c.Season,
		"water_temp", waterTemp,
		"targets", len(targets),
		"results", len(out),
	)
	return out, nil
}

func sortByConfidence(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
}

func firstN(in []string, n int) []string {
	if len(in) > n {
		in = in[:n]
	}
	return append([]string(nil), in...)
}
