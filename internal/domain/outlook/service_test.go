package outlook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/bitebrain/internal/domain/recommend"
	"github.com/yanqian/bitebrain/internal/domain/solunar"
	"github.com/yanqian/bitebrain/internal/domain/species"
	"github.com/yanqian/bitebrain/internal/domain/spots"
	apperrors "github.com/yanqian/bitebrain/pkg/errors"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubWeather struct {
	weather Weather
	err     error
	season  recommend.Season
}

func (s *stubWeather) Current(_ context.Context, _, _ float64, season recommend.Season) (Weather, error) {
	s.season = season
	return s.weather, s.err
}

type stubSolunar struct {
	period solunar.Period
	ok     bool
	cfg    solunar.Config
}

func (s *stubSolunar) CurrentPeriodFor(cfg solunar.Config) (solunar.Period, bool) {
	s.cfg = cfg
	return s.period, s.ok
}

func calmSummerWeather() Weather {
	return Weather{Temperature: 88, WindSpeed: 5, Pressure: 30.1, CloudCover: 10}
}

func newTestService(w *stubWeather, sol *stubSolunar) *service {
	rec := recommend.NewService(species.Default(), nil, newTestLogger())
	svc := NewService(w, sol, rec, "America/New_York", newTestLogger()).(*service)
	svc.now = func() time.Time { return time.Date(2024, time.June, 15, 16, 0, 0, 0, time.UTC) }
	return svc
}

func TestOutlookDuringMajorPeriod(t *testing.T) {
	w := &stubWeather{weather: calmSummerWeather()}
	sol := &stubSolunar{ok: true, period: solunar.Period{Type: solunar.PeriodMajor, Confidence: 1, MoonIllumination: 1}}
	svc := newTestService(w, sol)

	resp, err := svc.Outlook(context.Background(), Request{Latitude: 39.8, Longitude: -98.5})
	require.NoError(t, err)

	require.Equal(t, recommend.SeasonSummer, w.season)
	require.Equal(t, recommend.SeasonSummer, resp.Season)
	require.Equal(t, "America/New_York", sol.cfg.Timezone)
	require.InDelta(t, 39.8, sol.cfg.Latitude, 1e-9)

	require.Equal(t, 75.0, resp.WaterTemp.Current)
	require.Equal(t, ActivityModerate, resp.WaterTemp.Advice.Activity)
	require.Equal(t, 72.0, resp.WaterTemp.Seasonal.Typical)

	require.InDelta(t, 0.96, resp.Solunar.Impact, 1e-9)
	require.NotNil(t, resp.Solunar.CurrentPeriod)
	require.InDelta(t, 9.98, resp.OverallRating, 1e-9)
	require.Equal(t, []string{
		"Water temp: moderate activity",
		"Solunar: Major solunar period (100% confidence) - Strong moon phase",
		"Weather: favorable",
		"Pressure: rising",
	}, resp.Factors)

	require.NotEmpty(t, resp.Recommendations)
	require.Equal(t, species.LargemouthBass, resp.Recommendations[0].Species)
}

func TestOutlookWithoutSolunarPeriod(t *testing.T) {
	w := &stubWeather{weather: calmSummerWeather()}
	svc := newTestService(w, &stubSolunar{})

	resp, err := svc.Outlook(context.Background(), Request{Latitude: 39.8, Longitude: -98.5, WaterBody: spots.WaterPond, Timezone: "UTC"})
	require.NoError(t, err)
	require.Equal(t, 78.0, resp.WaterTemp.Current)
	require.Nil(t, resp.Solunar.CurrentPeriod)
	require.Equal(t, 0.5, resp.Solunar.Confidence)
	require.InDelta(t, 7.1, resp.OverallRating, 1e-9)
}

func TestOutlookRejectsBadCoordinates(t *testing.T) {
	svc := newTestService(&stubWeather{}, &stubSolunar{})
	_, err := svc.Outlook(context.Background(), Request{Latitude: 100})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Outlook(context.Background(), Request{Longitude: -200})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestOutlookWeatherFailure(t *testing.T) {
	svc := newTestService(&stubWeather{err: errors.New("offline")}, &stubSolunar{})
	_, err := svc.Outlook(context.Background(), Request{Latitude: 10, Longitude: 10})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstream))
}

func TestTemperatureAdviceBands(t *testing.T) {
	cases := []struct {
		temp float64
		want Activity
	}{
		{30, ActivityLow},
		{50, ActivityLow},
		{60, ActivityModerate},
		{70, ActivityHigh},
		{80, ActivityModerate},
		{90, ActivityLow},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, TemperatureAdvice(tc.temp).Activity, tc.temp)
	}
}

func TestSeasonHelpers(t *testing.T) {
	require.Equal(t, recommend.SeasonWinter, SeasonForMonth(time.February))
	require.Equal(t, recommend.SeasonSpring, SeasonForMonth(time.April))
	require.Equal(t, recommend.SeasonSummer, SeasonForMonth(time.August))
	require.Equal(t, recommend.SeasonFall, SeasonForMonth(time.October))
	require.Equal(t, recommend.SeasonWinter, SeasonForMonth(time.December))

	n, ok := SeasonalNorms(time.July)
	require.True(t, ok)
	require.Equal(t, Norms{Typical: 78, Range: TempRange{Min: 75, Max: 82}}, n)
	_, ok = SeasonalNorms(time.Month(13))
	require.False(t, ok)

	require.Equal(t, 40.0, EstimateWaterTemp(recommend.SeasonWinter, spots.WaterCreek))
	require.Equal(t, 63.0, EstimateWaterTemp(recommend.SeasonFall, spots.WaterReservoir))
}

func TestImpactFor(t *testing.T) {
	minor := ImpactFor(solunar.Period{Type: solunar.PeriodMinor, Confidence: 0.6, MoonIllumination: 0.5}, true)
	require.InDelta(t, 0.24, minor.Impact, 1e-9)
	require.Equal(t, "Minor solunar period (60% confidence)", minor.Description)

	strong := ImpactFor(solunar.Period{Type: solunar.PeriodMinor, Confidence: 0.6, MoonIllumination: 0.1}, true)
	require.InDelta(t, 0.288, strong.Impact, 1e-9)

	none := ImpactFor(solunar.Period{}, false)
	require.Zero(t, none.Impact)
	require.Equal(t, "No significant solunar activity", none.Description)
}

func TestSkyFromCloudCover(t *testing.T) {
	require.Equal(t, recommend.SkySunny, SkyFromCloudCover(10))
	require.Equal(t, recommend.SkyMixed, SkyFromCloudCover(50))
	require.Equal(t, recommend.SkyCloudy, SkyFromCloudCover(90))
}
