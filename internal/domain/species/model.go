package species

// ID identifies a fish species profile.
type ID string

const (
	LargemouthBass ID = "largemouth-bass"
	SmallmouthBass ID = "smallmouth-bass"
	Trout          ID = "trout"
	Walleye        ID = "walleye"
	Catfish        ID = "catfish"
	Panfish        ID = "panfish"
)

// TempRange is an inclusive temperature band in degrees Fahrenheit.
type TempRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Midpoint returns the centre of the band.
func (r TempRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// SeasonalBehavior lists free-text behaviours per base season.
type SeasonalBehavior struct {
	Spring []string `json:"spring" yaml:"spring"`
	Summer []string `json:"summer" yaml:"summer"`
	Fall   []string `json:"fall" yaml:"fall"`
	Winter []string `json:"winter" yaml:"winter"`
}

// For returns the behaviours for a base season key.
func (b SeasonalBehavior) For(season string) []string {
	switch season {
	case "spring":
		return b.Spring
	case "summer":
		return b.Summer
	case "fall":
		return b.Fall
	case "winter":
		return b.Winter
	default:
		return nil
	}
}

// LurePreferences groups lure descriptions by priority and season.
type LurePreferences struct {
	Primary   []string            `json:"primary" yaml:"primary"`
	Secondary []string            `json:"secondary" yaml:"secondary"`
	Seasonal  map[string][]string `json:"seasonal" yaml:"seasonal"`
}

// Profile is the static reference data for one species.
type Profile struct {
	ID                 ID               `json:"id" yaml:"id"`
	Name               string           `json:"name" yaml:"name"`
	ScientificName     string           `json:"scientificName" yaml:"scientificName"`
	OptimalTempRange   TempRange        `json:"optimalTempRange" yaml:"optimalTempRange"`
	SpawnTempRange     TempRange        `json:"spawnTempRange" yaml:"spawnTempRange"`
	PreferredStructure []string         `json:"preferredStructure" yaml:"preferredStructure"`
	FeedingTimes       []string         `json:"feedingTimes" yaml:"feedingTimes"`
	SeasonalBehavior   SeasonalBehavior `json:"seasonalBehavior" yaml:"seasonalBehavior"`
	LurePreferences    LurePreferences  `json:"lurePreferences" yaml:"lurePreferences"`
}

// SuitabilityQuery is the input to the species pre-filter.
type SuitabilityQuery struct {
	Season     string   `json:"season"`
	WaterTempF *float64 `json:"waterTempF,omitempty"`
	Temp       *float64 `json:"temp,omitempty"`
}

func (p Profile) clone() Profile {
	out := p
	out.PreferredStructure = cloneStrings(p.PreferredStructure)
	out.FeedingTimes = cloneStrings(p.FeedingTimes)
	out.SeasonalBehavior = SeasonalBehavior{
		Spring: cloneStrings(p.SeasonalBehavior.Spring),
		Summer: cloneStrings(p.SeasonalBehavior.Summer),
		Fall:   cloneStrings(p.SeasonalBehavior.Fall),
		Winter: cloneStrings(p.SeasonalBehavior.Winter),
	}
	out.LurePreferences = LurePreferences{
		Primary:   cloneStrings(p.LurePreferences.Primary),
		Secondary: cloneStrings(p.LurePreferences.Secondary),
		Seasonal:  make(map[string][]string, len(p.LurePreferences.Seasonal)),
	}
	for season, lures := range p.LurePreferences.Seasonal {
		out.LurePreferences.Seasonal[season] = cloneStrings(lures)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
