package outlook

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/yanqian/bitebrain/internal/domain/recommend"
	"github.com/yanqian/bitebrain/internal/domain/solunar"
	"github.com/yanqian/bitebrain/internal/domain/spots"
	apperrors "github.com/yanqian/bitebrain/pkg/errors"
)

// Service assembles a fishing outlook for a location.
type Service interface {
	Outlook(ctx context.Context, req Request) (Response, error)
}

// WeatherProvider supplies current surface weather.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lng float64, season recommend.Season) (Weather, error)
}

// SolunarSource finds the active solunar period for an observer.
type SolunarSource interface {
	CurrentPeriodFor(cfg solunar.Config) (solunar.Period, bool)
}

type service struct {
	weather     WeatherProvider
	solunar     SolunarSource
	recommender recommend.Service
	defaultTZ   string
	logger      *slog.Logger
	now         func() time.Time
}

// NewService wires the outlook domain.
func NewService(weather WeatherProvider, source SolunarSource, recommender recommend.Service, defaultTZ string, logger *slog.Logger) Service {
	return &service{
		weather:     weather,
		solunar:     source,
		recommender: recommender,
		defaultTZ:   defaultTZ,
		logger:      logger.With("component", "outlook.service"),
		now:         time.Now,
	}
}

func (s *service) Outlook(ctx context.Context, req Request) (Response, error) {
	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return Response{}, err
	}
	waterBody := req.WaterBody
	if waterBody == "" {
		waterBody = spots.WaterLake
	}
	tz := req.Timezone
	if tz == "" {
		tz = s.defaultTZ
	}
	cfg := solunar.Config{Latitude: req.Latitude, Longitude: req.Longitude, Timezone: tz}
	now := s.now().In(cfg.Location())
	season := SeasonForMonth(now.Month())

	weather, err := s.weather.Current(ctx, req.Latitude, req.Longitude, season)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeUpstream, "failed to fetch weather", err)
	}

	current := EstimateWaterTemp(season, waterBody)
	norms, _ := SeasonalNorms(now.Month())
	water := WaterTemp{Current: current, Advice: TemperatureAdvice(current), Seasonal: norms}

	period, ok := s.solunar.CurrentPeriodFor(cfg)
	impact := ImpactFor(period, ok)

	rating, factors := score(water.Advice, impact, weather)

	recs, err := s.recommender.Recommend(ctx, recommend.Conditions{
		Season:     season,
		WaterTempF: &current,
		WindMph:    &weather.WindSpeed,
		Sky:        SkyFromCloudCover(weather.CloudCover),
		Temp:       &weather.Temperature,
	})
	if err != nil {
		return Response{}, err
	}

	s.logger.Info("outlook computed",
		"lat", req.Latitude,
		"lng", req.Longitude,
		"season", season,
		"rating", rating,
		"recommendations", len(recs),
	)
	return Response{
		Weather:         weather,
		WaterTemp:       water,
		Solunar:         impact,
		OverallRating:   rating,
		Factors:         factors,
		Season:          season,
		Recommendations: recs,
		GeneratedAt:     now,
	}, nil
}

func score(advice Advice, impact SolunarImpact, weather Weather) (float64, []string) {
	rating := 5.0
	factors := make([]string, 0, 4)

	tempRating := 0.0
	switch advice.Activity {
	case ActivityHigh:
		tempRating = 3
	case ActivityModerate:
		tempRating = 1.5
	}
	rating += tempRating * 0.4
	factors = append(factors, fmt.Sprintf("Water temp: %s activity", advice.Activity))

	rating += impact.Impact * 3
	factors = append(factors, "Solunar: "+impact.Description)

	windRating := -0.5
	switch {
	case weather.WindSpeed < 10:
		windRating = 1
	case weather.WindSpeed < 20:
		windRating = 0.5
	}
	rating += windRating
	if windRating > 0 {
		factors = append(factors, "Weather: favorable")
	} else {
		factors = append(factors, "Weather: challenging")
	}

	pressureRating := 0.0
	pressure := "steady"
	switch {
	case weather.Pressure > 30.0:
		pressureRating, pressure = 0.5, "rising"
	case weather.Pressure < 29.8:
		pressureRating, pressure = -0.5, "falling"
	}
	rating += pressureRating
	factors = append(factors, "Pressure: "+pressure)

	return math.Max(0, math.Min(10, rating)), factors
}

func validateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "latitude must be between -90 and 90", nil)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "longitude must be between -180 and 180", nil)
	}
	return nil
}
