package outlook

import (
	"time"

	"github.com/yanqian/bitebrain/internal/domain/recommend"
	"github.com/yanqian/bitebrain/internal/domain/solunar"
	"github.com/yanqian/bitebrain/internal/domain/spots"
)

// Weather is a snapshot of surface conditions at a location.
type Weather struct {
	Temperature   float64  `json:"temperature"`
	WindSpeed     float64  `json:"windSpeed"`
	WindDirection string   `json:"windDirection"`
	Pressure      float64  `json:"pressure"`
	Humidity      float64  `json:"humidity"`
	CloudCover    float64  `json:"cloudCover"`
	Precipitation float64  `json:"precipitation"`
	WaterTemp     *float64 `json:"waterTemp,omitempty"`
}

// Activity is the expected fish activity level.
type Activity string

const (
	ActivityHigh     Activity = "high"
	ActivityModerate Activity = "moderate"
	ActivityLow      Activity = "low"
)

// Advice describes how a water temperature affects fish behaviour.
type Advice struct {
	Activity       Activity `json:"activity"`
	Advice         string   `json:"advice"`
	SuggestedDepth string   `json:"suggestedDepth"`
	Metabolism     string   `json:"metabolism"`
}

// TempRange is an inclusive band in degrees Fahrenheit.
type TempRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Norms are the typical water temperatures for a month.
type Norms struct {
	Typical float64   `json:"typical"`
	Range   TempRange `json:"range"`
}

// WaterTemp bundles the estimate with its interpretation.
type WaterTemp struct {
	Current  float64 `json:"current"`
	Advice   Advice  `json:"advice"`
	Seasonal Norms   `json:"seasonal"`
}

// SolunarImpact scores the current solunar period.
type SolunarImpact struct {
	CurrentPeriod *solunar.Period `json:"currentPeriod"`
	Impact        float64         `json:"impact"`
	Description   string          `json:"description"`
	Confidence    float64         `json:"confidence"`
}

// Request asks for the outlook at a location.
type Request struct {
	Latitude  float64         `json:"latitude" form:"lat"`
	Longitude float64         `json:"longitude" form:"lng"`
	WaterBody spots.WaterType `json:"waterBody" form:"waterBody"`
	Timezone  string          `json:"timezone" form:"tz"`
}

// Response is the combined fishing outlook.
type Response struct {
	Weather         Weather                    `json:"weather"`
	WaterTemp       WaterTemp                  `json:"waterTemp"`
	Solunar         SolunarImpact              `json:"solunar"`
	OverallRating   float64                    `json:"overallRating"`
	Factors         []string                   `json:"factors"`
	Season          recommend.Season           `json:"season"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	GeneratedAt     time.Time                  `json:"generatedAt"`
}
