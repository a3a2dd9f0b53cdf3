package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/yanqian/bitebrain/internal/domain/solunar"
	"github.com/yanqian/bitebrain/internal/infra/config"
	"github.com/yanqian/bitebrain/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lat := flag.Float64("lat", cfg.Solunar.Latitude, "observer latitude")
	lng := flag.Float64("lng", cfg.Solunar.Longitude, "observer longitude")
	tz := flag.String("tz", cfg.Solunar.Timezone, "IANA timezone")
	date := flag.String("date", "", "first day, YYYY-MM-DD (default today)")
	flag.Parse()

	observer := solunar.Config{Latitude: *lat, Longitude: *lng, Timezone: *tz}
	start := time.Now().In(observer.Location())
	if *date != "" {
		start, err = time.ParseInLocation("2006-01-02", *date, observer.Location())
		if err != nil {
			log.Fatalf("invalid -date: %v", err)
		}
	}

	calc := solunar.NewCalculator(observer, nil, logger.New(cfg))
	renderWeek(os.Stdout, calc.ComputeWeek(observer, start))
}

func renderWeek(w io.Writer, days []solunar.Day) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Date", "Rating", "Moon", "Illum", "Sunrise", "Sunset", "Best", "Majors", "Minors"})
	for _, day := range days {
		best := "-"
		if day.BestPeriod != nil {
			best = fmt.Sprintf("%s %s", day.BestPeriod.Type, clock(day.BestPeriod.Peak))
		}
		t.AppendRow(table.Row{
			day.Date.Format("Mon 2006-01-02"),
			fmt.Sprintf("%.1f", day.OverallRating),
			day.MoonPhase,
			fmt.Sprintf("%.0f%%", day.MoonIllumination*100),
			clock(day.Sunrise),
			clock(day.Sunset),
			best,
			windows(day.Periods, solunar.PeriodMajor),
			windows(day.Periods, solunar.PeriodMinor),
		})
	}
	t.Render()
}

func windows(periods []solunar.Period, kind solunar.PeriodType) string {
	var parts []string
	for _, p := range periods {
		if p.Type == kind {
			parts = append(parts, clock(p.Start)+"-"+clock(p.End))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func clock(t time.Time) string {
	return t.Format("15:04")
}
