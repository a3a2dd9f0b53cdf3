package species

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultWaterTempF is assumed when neither water nor air temperature is known.
const DefaultWaterTempF = 70.0

//go:embed profiles.yaml
var profilesYAML []byte

var seasonKeywords = map[string][]string{
	"spring": {"spawn", "aggression"},
	"summer": {"deep", "structure"},
	"fall":   {"feeding", "migration"},
	"winter": {"deep", "minimal"},
}

// Store is a read-only view over the embedded species profiles.
type Store struct {
	order    []ID
	profiles map[ID]Profile
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide store decoded from the embedded data.
func Default() *Store {
	defaultOnce.Do(func() {
		store, err := Parse(profilesYAML)
		if err != nil {
			panic(fmt.Sprintf("species: embedded profiles invalid: %v", err))
		}
		defaultStore = store
	})
	return defaultStore
}

// Parse builds a store from a YAML list of profiles.
func Parse(data []byte) (*Store, error) {
	var list []Profile
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode species profiles: %w", err)
	}
	store := &Store{profiles: make(map[ID]Profile, len(list))}
	for _, p := range list {
		if p.ID == "" {
			return nil, fmt.Errorf("species profile %q has no id", p.Name)
		}
		if _, dup := store.profiles[p.ID]; dup {
			return nil, fmt.Errorf("duplicate species profile %q", p.ID)
		}
		if p.OptimalTempRange.Min > p.OptimalTempRange.Max {
			return nil, fmt.Errorf("species %q: optimal range min exceeds max", p.ID)
		}
		store.order = append(store.order, p.ID)
		store.profiles[p.ID] = p
	}
	return store, nil
}

// Profile looks up a species. Unknown ids report false.
func (s *Store) Profile(id ID) (Profile, bool) {
	p, ok := s.profiles[id]
	if !ok {
		return Profile{}, false
	}
	return p.clone(), true
}

// All lists every known species in declaration order.
func (s *Store) All() []ID {
	return append([]ID(nil), s.order...)
}

// ForConditions pre-filters species whose temperature band and seasonal
// behaviour fit the query.
func (s *Store) ForConditions(q SuitabilityQuery) []ID {
	waterTemp := ResolveWaterTemp(q.WaterTempF, q.Temp)
	season := SeasonKey(q.Season)
	keywords := seasonKeywords[season]

	out := make([]ID, 0, len(s.order))
	for _, id := range s.order {
		p := s.profiles[id]
		if waterTemp < p.OptimalTempRange.Min-10 || waterTemp > p.OptimalTempRange.Max+10 {
			continue
		}
		if len(keywords) > 0 && !matchesAny(p.SeasonalBehavior.For(season), keywords) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// SeasonKey folds the spawn-cycle refinements onto spring.
func SeasonKey(season string) string {
	switch season {
	case "pre-spawn", "spawn", "post-spawn":
		return "spring"
	default:
		return season
	}
}

// ResolveWaterTemp picks water temperature, then air temperature, then the default.
func ResolveWaterTemp(waterTempF, temp *float64) float64 {
	if waterTempF != nil {
		return *waterTempF
	}
	if temp != nil {
		return *temp
	}
	return DefaultWaterTempF
}

func matchesAny(behaviors, keywords []string) bool {
	for _, b := range behaviors {
		lower := strings.ToLower(b)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
