package spots

import (
	_ "embed"
	"fmt"
	"math"
	"sync"

	"gopkg.in/yaml.v3"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// WaterType classifies the body of water.
type WaterType string

const (
	WaterLake      WaterType = "lake"
	WaterRiver     WaterType = "river"
	WaterPond      WaterType = "pond"
	WaterCreek     WaterType = "creek"
	WaterReservoir WaterType = "reservoir"
)

// Spot is a known fishing location.
type Spot struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Latitude    float64   `json:"latitude" yaml:"latitude"`
	Longitude   float64   `json:"longitude" yaml:"longitude"`
	Type        WaterType `json:"type" yaml:"type"`
	Species     []string  `json:"species" yaml:"species"`
	Rating      float64   `json:"rating" yaml:"rating"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Depth       string    `json:"depth,omitempty" yaml:"depth"`
	Structure   []string  `json:"structure,omitempty" yaml:"structure"`
	Public      bool      `json:"isPublic" yaml:"public"`
}

func (s Spot) clone() Spot {
	out := s
	out.Species = append([]string(nil), s.Species...)
	if s.Structure != nil {
		out.Structure = append([]string(nil), s.Structure...)
	}
	return out
}

//go:embed spots.yaml
var spotsYAML []byte

// Catalog is an immutable set of spots.
type Catalog struct {
	spots []Spot
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded sample catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(spotsYAML)
		if err != nil {
			panic(fmt.Sprintf("spots: embedded catalog invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse builds a catalog from a YAML list of spots.
func Parse(data []byte) (*Catalog, error) {
	var list []Spot
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode spots: %w", err)
	}
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		if s.ID == "" {
			return nil, fmt.Errorf("spot %q has no id", s.Name)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("duplicate spot %q", s.ID)
		}
		if s.Rating < 1 || s.Rating > 5 {
			return nil, fmt.Errorf("spot %q: rating %.1f outside 1-5", s.ID, s.Rating)
		}
		seen[s.ID] = struct{}{}
	}
	return &Catalog{spots: list}, nil
}

// All returns every spot.
func (c *Catalog) All() []Spot {
	out := make([]Spot, 0, len(c.spots))
	for _, s := range c.spots {
		out = append(out, s.clone())
	}
	return out
}

// InRadius returns spots whose great-circle distance from the centre is at
// most radiusKm, in catalog order.
func (c *Catalog) InRadius(lat, lng, radiusKm float64) []Spot {
	out := make([]Spot, 0)
	for _, s := range c.spots {
		if DistanceKm(lat, lng, s.Latitude, s.Longitude) <= radiusKm {
			out = append(out, s.clone())
		}
	}
	return out
}

// ByID looks up a spot.
func (c *Catalog) ByID(id string) (Spot, bool) {
	for _, s := range c.spots {
		if s.ID == id {
			return s.clone(), true
		}
	}
	return Spot{}, false
}

// DistanceKm is the haversine distance between two coordinates.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
