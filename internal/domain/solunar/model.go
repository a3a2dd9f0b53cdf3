package solunar

import (
	"time"

	"github.com/yanqian/bitebrain/pkg/util"
)

// Config locates the observer.
type Config struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Location resolves the configured zone, falling back to UTC.
func (c Config) Location() *time.Location {
	return util.LoadLocationOrUTC(c.Timezone)
}

// ConfigPatch carries a partial configuration update.
type ConfigPatch struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timezone  *string  `json:"timezone,omitempty"`
}

// Apply returns c with every set field of p overlaid.
func (p ConfigPatch) Apply(c Config) Config {
	if p.Latitude != nil {
		c.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		c.Longitude = *p.Longitude
	}
	if p.Timezone != nil {
		c.Timezone = *p.Timezone
	}
	return c
}

// PeriodType distinguishes major and minor feeding windows.
type PeriodType string

const (
	PeriodMajor PeriodType = "major"
	PeriodMinor PeriodType = "minor"
)

// Period is a window of heightened fish activity.
type Period struct {
	Type             PeriodType `json:"type"`
	Start            time.Time  `json:"startTime"`
	End              time.Time  `json:"endTime"`
	Peak             time.Time  `json:"peakTime"`
	Confidence       float64    `json:"confidence"`
	MoonPhase        string     `json:"moonPhase"`
	MoonIllumination float64    `json:"moonIllumination"`
}

// Contains reports whether t falls within [Start, End].
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Day is the solunar summary for one calendar date.
type Day struct {
	Date             time.Time  `json:"date"`
	Periods          []Period   `json:"periods"`
	OverallRating    float64    `json:"overallRating"`
	BestPeriod       *Period    `json:"bestPeriod,omitempty"`
	Sunrise          time.Time  `json:"sunrise"`
	Sunset           time.Time  `json:"sunset"`
	Moonrise         *time.Time `json:"moonrise,omitempty"`
	Moonset          *time.Time `json:"moonset,omitempty"`
	MoonPhase        string     `json:"moonPhase"`
	MoonIllumination float64    `json:"moonIllumination"`
}

// Moon phase names.
const (
	PhaseNew          = "New Moon"
	PhaseFirstQuarter = "First Quarter"
	PhaseFull         = "Full Moon"
	PhaseLastQuarter  = "Last Quarter"
)
