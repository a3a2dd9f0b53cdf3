package solunar

import (
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/bitebrain/pkg/util"
)

const (
	majorHalfWidth     = time.Hour
	minorHalfWidth     = 45 * time.Minute
	minorConfidence    = 0.6
	strongConfidence   = 0.8
	baseRating         = 3
	maxRating          = 10
	daysPerWeek        = 7
	brightMoonBase     = 0.9
	dimMoonBase        = 0.7
	brightMoonFraction = 0.5
)

// positionBonus is indexed by the reference slot: sunrise, sunset, moonrise, moonset.
var positionBonus = [4]float64{0.1, 0.05, 0.08, 0.03}

// Calculator derives solunar periods for a configured observer.
type Calculator struct {
	mu       sync.RWMutex
	cfg      Config
	provider SunMoonTimeProvider
	logger   *slog.Logger
	now      func() time.Time
}

// NewCalculator wires a calculator. A nil provider selects SimplifiedProvider.
func NewCalculator(cfg Config, provider SunMoonTimeProvider, logger *slog.Logger) *Calculator {
	if provider == nil {
		provider = SimplifiedProvider{}
	}
	return &Calculator{
		cfg:      cfg,
		provider: provider,
		logger:   logger.With("component", "solunar.calculator"),
		now:      time.Now,
	}
}

// Config returns the current observer configuration.
func (c *Calculator) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// UpdateConfig overlays p on the configuration used by later calls.
func (c *Calculator) UpdateConfig(p ConfigPatch) Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = p.Apply(c.cfg)
	c.logger.Info("solunar config updated",
		"latitude", c.cfg.Latitude,
		"longitude", c.cfg.Longitude,
		"timezone", c.cfg.Timezone,
	)
	return c.cfg
}

// CalculateDay computes the day containing date for the configured observer.
func (c *Calculator) CalculateDay(date time.Time) Day {
	return c.Compute(c.Config(), date)
}

// CalculateWeek computes seven consecutive days starting at start.
func (c *Calculator) CalculateWeek(start time.Time) []Day {
	return c.ComputeWeek(c.Config(), start)
}

// CurrentPeriod returns the period of today that contains now, if any.
func (c *Calculator) CurrentPeriod() (Period, bool) {
	return c.CurrentPeriodFor(c.Config())
}

// CurrentPeriodFor is CurrentPeriod with an explicit configuration.
func (c *Calculator) CurrentPeriodFor(cfg Config) (Period, bool) {
	now := c.now()
	day := c.Compute(cfg, now)
	for _, p := range day.Periods {
		if p.Contains(now) {
			return p, true
		}
	}
	return Period{}, false
}

// ComputeWeek is CalculateWeek with an explicit configuration.
func (c *Calculator) ComputeWeek(cfg Config, start time.Time) []Day {
	loc := cfg.Location()
	first := util.StartOfDay(start, loc)
	days := make([]Day, 0, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		days = append(days, c.Compute(cfg, first.AddDate(0, 0, i)))
	}
	return days
}

// Compute derives the solunar day for cfg without touching shared state.
func (c *Calculator) Compute(cfg Config, date time.Time) Day {
	day := util.StartOfDay(date, cfg.Location())

	phase, illumination := c.provider.MoonPhase(day)
	sunrise, sunset := c.provider.SunTimes(cfg, day)
	moonrise, moonset := c.provider.MoonTimes(cfg, day)

	refs := []*time.Time{&sunrise, &sunset, moonrise, moonset}
	periods := buildPeriods(refs, phase, illumination, day.Location())

	return Day{
		Date:             day,
		Periods:          periods,
		OverallRating:    overallRating(periods, illumination),
		BestPeriod:       bestPeriod(periods),
		Sunrise:          sunrise.In(day.Location()),
		Sunset:           sunset.In(day.Location()),
		Moonrise:         inLocation(moonrise, day.Location()),
		Moonset:          inLocation(moonset, day.Location()),
		MoonPhase:        phase,
		MoonIllumination: illumination,
	}
}

func buildPeriods(refs []*time.Time, phase string, illumination float64, loc *time.Location) []Period {
	base := dimMoonBase
	if illumination > brightMoonFraction {
		base = brightMoonBase
	}

	majors := make([]Period, 0, len(refs))
	for i, ref := range refs {
		if ref == nil {
			continue
		}
		peak := *ref
		majors = append(majors, Period{
			Type:             PeriodMajor,
			Start:            peak.Add(-majorHalfWidth),
			End:              peak.Add(majorHalfWidth),
			Peak:             peak,
			Confidence:       round2(math.Min(1, base+positionBonus[i])),
			MoonPhase:        phase,
			MoonIllumination: illumination,
		})
	}

	periods := append([]Period(nil), majors...)
	for i := 0; i+1 < len(majors); i++ {
		a, b := majors[i].Peak, majors[i+1].Peak
		peak := a.Add(b.Sub(a) / 2)
		periods = append(periods, Period{
			Type:             PeriodMinor,
			Start:            peak.Add(-minorHalfWidth),
			End:              peak.Add(minorHalfWidth),
			Peak:             peak,
			Confidence:       minorConfidence,
			MoonPhase:        phase,
			MoonIllumination: illumination,
		})
	}

	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})
	for i := range periods {
		periods[i].Start = periods[i].Start.In(loc)
		periods[i].End = periods[i].End.In(loc)
		periods[i].Peak = periods[i].Peak.In(loc)
	}
	return periods
}

func overallRating(periods []Period, illumination float64) float64 {
	strong := 0
	for _, p := range periods {
		if p.Confidence > strongConfidence {
			strong++
		}
	}
	bonus := 0.0
	if illumination > 0.25 && illumination < 0.75 {
		bonus = 2
	}
	return math.Max(0, math.Min(maxRating, float64(strong)*2+bonus+baseRating))
}

func bestPeriod(periods []Period) *Period {
	if len(periods) == 0 {
		return nil
	}
	best := periods[0]
	for _, p := range periods[1:] {
		if p.Confidence > best.Confidence {
			best = p
		}
	}
	return &best
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(loc)
	return &local
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
