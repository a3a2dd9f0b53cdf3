package solunar

import (
	"math"
	"time"
)

// SunMoonTimeProvider supplies the astronomical reference times for a day.
// day is local midnight in the observer's zone.
type SunMoonTimeProvider interface {
	SunTimes(cfg Config, day time.Time) (sunrise, sunset time.Time)
	MoonTimes(cfg Config, day time.Time) (rise, set *time.Time)
	MoonPhase(day time.Time) (name string, illumination float64)
}

const synodicMonth = 29.53

var referenceNewMoon = time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

// SimplifiedProvider approximates sun and moon events without an ephemeris.
type SimplifiedProvider struct{}

var _ SunMoonTimeProvider = SimplifiedProvider{}

// SunTimes uses a declination approximation and the standard hour-angle
// equation, clamping the hour angle during polar day and night.
func (SimplifiedProvider) SunTimes(cfg Config, day time.Time) (time.Time, time.Time) {
	utcDay := calendarUTC(day)
	doy := float64(day.YearDay())

	declination := 23.45 * math.Sin(radians(360*(284+doy)/365))
	solarNoon := 12 - cfg.Longitude/15

	cosH := -math.Tan(radians(cfg.Latitude)) * math.Tan(radians(declination))
	cosH = math.Max(-1, math.Min(1, cosH))
	hourAngle := degrees(math.Acos(cosH)) / 15

	return utcDay.Add(hoursToDuration(solarNoon - hourAngle)),
		utcDay.Add(hoursToDuration(solarNoon + hourAngle))
}

// MoonTimes places moonrise at 06:00 and moonset at 18:00 local mean time,
// floored to the hour.
func (SimplifiedProvider) MoonTimes(cfg Config, day time.Time) (*time.Time, *time.Time) {
	utcDay := calendarUTC(day)
	offset := -cfg.Longitude / 15
	rise := utcDay.Add(time.Duration(math.Floor(6+offset)) * time.Hour)
	set := utcDay.Add(time.Duration(math.Floor(18+offset)) * time.Hour)
	return &rise, &set
}

// MoonPhase buckets the synodic cycle measured from a known new moon.
func (SimplifiedProvider) MoonPhase(day time.Time) (string, float64) {
	days := math.Floor(calendarUTC(day).Sub(referenceNewMoon).Hours() / 24)
	age := math.Mod(days, synodicMonth)
	if age < 0 {
		age += synodicMonth
	}
	phase := age / synodicMonth

	switch {
	case phase < 0.125:
		return PhaseNew, 0
	case phase < 0.375:
		return PhaseFirstQuarter, clamp01((phase - 0.125) * 4)
	case phase < 0.625:
		return PhaseFull, 1
	case phase < 0.875:
		return PhaseLastQuarter, clamp01((0.875 - phase) * 4)
	default:
		return PhaseNew, 0
	}
}

// calendarUTC maps the calendar date of t onto UTC midnight.
func calendarUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
